// Package server provides the HTTP API for generating, previewing and
// scoring landing pages.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/alexramsey92/ai-web-design-workbench/internal/db"
	"github.com/alexramsey92/ai-web-design-workbench/internal/fetch"
	"github.com/alexramsey92/ai-web-design-workbench/internal/generation"
	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
	"github.com/alexramsey92/ai-web-design-workbench/internal/server/ratelimit"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
	"github.com/alexramsey92/ai-web-design-workbench/internal/validation"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 2 << 20

// Generator produces pages. *generation.Orchestrator satisfies it.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
	AIEnabled() bool
	Variant() templates.Variant
}

// AIStatus reports on the AI backend. *llm.Client satisfies it.
type AIStatus interface {
	Config() llm.Config
	HealthCheck(ctx context.Context) bool
}

// BrandStore looks up stored brands. *db.DB satisfies it.
type BrandStore interface {
	GetProfileBySlug(ctx context.Context, slug string) (*brand.Profile, error)
	ListProfiles(ctx context.Context) ([]db.BrandSummary, error)
}

var (
	_ Generator  = (*generation.Orchestrator)(nil)
	_ AIStatus   = (*llm.Client)(nil)
	_ BrandStore = (*db.DB)(nil)
)

// PageFetcher retrieves a live page for scoring.
type PageFetcher func(ctx context.Context, url string, opts fetch.PageOptions) (*fetch.Result, error)

// Config holds server dependencies. Brands, AI and Limiter are optional.
type Config struct {
	Addr      string
	Generator Generator
	AI        AIStatus
	Brands    BrandStore
	Catalog   *stylelevel.Catalog
	Limiter   *ratelimit.Limiter
	Fetch     PageFetcher
	Log       *logger.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	generator  Generator
	ai         AIStatus
	brands     BrandStore
	catalog    *stylelevel.Catalog
	limiter    *ratelimit.Limiter
	fetch      PageFetcher
	log        *logger.Logger
}

// New creates a new server instance
func New(cfg Config) *Server {
	if cfg.Catalog == nil {
		cfg.Catalog = stylelevel.Default()
	}
	if cfg.Fetch == nil {
		cfg.Fetch = fetch.Page
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	s := &Server{
		generator: cfg.Generator,
		ai:        cfg.AI,
		brands:    cfg.Brands,
		catalog:   cfg.Catalog,
		limiter:   cfg.Limiter,
		fetch:     cfg.Fetch,
		log:       cfg.Log,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // generation retries can take a while
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ai/status", s.handleAIStatus)

	mux.HandleFunc("GET /style-levels", s.handleListStyleLevels)
	mux.HandleFunc("GET /style-levels/{level}", s.handleGetStyleLevel)

	mux.HandleFunc("POST /generate", s.handleGenerate)
	mux.HandleFunc("POST /preview", s.handlePreview)
	mux.HandleFunc("POST /score", s.handleScore)
	mux.HandleFunc("POST /palette", s.handlePalette)

	mux.HandleFunc("GET /brands", s.handleListBrands)
	mux.HandleFunc("GET /brands/{slug}", s.handleGetBrand)
	mux.HandleFunc("GET /brands/{slug}/css", s.handleBrandCSS)

	return s.withRequestID(s.withLogging(s.withCORS(s.withRateLimit(mux))))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.With("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id assigned to the request by the server.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// withRequestID stamps each request with an X-Request-ID, reusing the
// caller's when it is a valid UUID.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit throttles per client address.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.limiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		}
		if !info.Allowed {
			seconds := int(info.RetryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
			s.log.WithFields(map[string]any{
				"client": clientID(r),
				"path":   r.URL.Path,
			}).Warn("rate limit exceeded")
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, retry later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  RequestID(r.Context()),
		}).Info("request")
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error(err, "failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// fail maps err to a status and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(err, "request failed")
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a bounded JSON body into dst and returns the raw bytes.
// Malformed bodies yield a *validation.Error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, validation.New("body", fmt.Sprintf("failed to read request body: %v", err))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return body, validation.New("body", fmt.Sprintf("invalid JSON: %v", err))
	}
	return body, nil
}
