package server

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/alexramsey92/ai-web-design-workbench/internal/generation"
	"github.com/alexramsey92/ai-web-design-workbench/internal/schemas"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
	"github.com/alexramsey92/ai-web-design-workbench/internal/validation"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AIStatusResponse is the body of GET /ai/status.
type AIStatusResponse struct {
	Enabled          bool    `json:"enabled"`
	Provider         string  `json:"provider,omitempty"`
	Model            string  `json:"model,omitempty"`
	BaseURL          string  `json:"base_url,omitempty"`
	APIKeyConfigured bool    `json:"api_key_configured"`
	MaxTokens        int     `json:"max_tokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	Healthy          *bool   `json:"healthy,omitempty"`
}

// handleAIStatus reports the backend configuration and, when enabled,
// probes it.
func (s *Server) handleAIStatus(w http.ResponseWriter, r *http.Request) {
	if s.ai == nil {
		s.jsonResponse(w, http.StatusOK, AIStatusResponse{})
		return
	}

	cfg := s.ai.Config()
	resp := AIStatusResponse{
		Enabled:          cfg.IsEnabled(),
		Provider:         string(cfg.Provider),
		Model:            cfg.Model,
		BaseURL:          cfg.BaseURL,
		APIKeyConfigured: cfg.APIKey != "",
		MaxTokens:        cfg.MaxTokens,
		Temperature:      cfg.Temperature,
	}
	if resp.Enabled {
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()
		healthy := s.ai.HealthCheck(ctx)
		resp.Healthy = &healthy
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleListStyleLevels(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"levels":     s.catalog.All(),
		"default":    stylelevel.DefaultLevel,
		"categories": s.catalog.Categories(),
	})
}

// StyleLevelResponse is the body of GET /style-levels/{level}.
type StyleLevelResponse struct {
	stylelevel.Info
	Classes      []stylelevel.CategoryClasses `json:"classes"`
	TotalClasses int                          `json:"total_classes"`
}

func (s *Server) handleGetStyleLevel(w http.ResponseWriter, r *http.Request) {
	key := stylelevel.Level(strings.ToLower(r.PathValue("level")))
	info, ok := s.catalog.Get(key)
	if !ok {
		s.fail(w, &ErrNotFound{Resource: "style level", Key: string(key)})
		return
	}
	s.jsonResponse(w, http.StatusOK, StyleLevelResponse{
		Info:         info,
		Classes:      s.catalog.ClassesByCategory(key),
		TotalClasses: len(s.catalog.FlattenedClasses(key)),
	})
}

// GenerateRequest is the body of POST /generate. Brand names a stored brand
// whose voice and visual identity are applied; Document wraps the fragment
// in a complete HTML document.
type GenerateRequest struct {
	generation.Request
	Brand    string `json:"brand,omitempty"`
	Document bool   `json:"document,omitempty"`
}

// GenerateResponse is the body of a successful POST /generate.
type GenerateResponse struct {
	*generation.Result
	RequestID string `json:"request_id"`
	Brand     string `json:"brand,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.fail(w, &ErrUnavailable{Feature: "page generation"})
		return
	}

	var req GenerateRequest
	body, err := decodeJSON(w, r, &req)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := schemas.Validate(schemas.GenerationRequest, body); err != nil {
		s.fail(w, err)
		return
	}

	var profile *brand.Profile
	if req.Brand != "" {
		profile, err = s.profile(r.Context(), req.Brand)
		if err != nil {
			s.fail(w, err)
			return
		}
		req.ApplyProfile(profile)
	}

	res, err := s.generator.Generate(r.Context(), req.Request)
	if err != nil {
		body := map[string]any{"error": err.Error(), "request_id": RequestID(r.Context())}
		if res != nil && res.Diagnostics != nil {
			body["diagnostics"] = res.Diagnostics
		}
		if HTTPStatus(err) >= http.StatusInternalServerError {
			s.log.Error(err, "generation failed")
		}
		s.jsonResponse(w, HTTPStatus(err), body)
		return
	}

	html := res.HTML
	var visual *brand.VisualIdentity
	if profile != nil {
		visual = profile.Visual
	}
	if req.Document {
		html, err = s.document(html, req.CompanyName, visual)
		if err != nil {
			s.fail(w, err)
			return
		}
	}
	if visual != nil {
		html = visual.Apply(html)
	}
	res.HTML = html
	res.CharacterCount = utf8.RuneCountInString(html)

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Result:    res,
		RequestID: RequestID(r.Context()),
		Brand:     req.Brand,
	})
}

func (s *Server) document(body, title string, visual *brand.VisualIdentity) (string, error) {
	variant := templates.VariantSemantic
	if s.generator != nil {
		variant = s.generator.Variant()
	}
	opts := templates.DocumentOptions{Title: title, Variant: variant}
	if visual != nil {
		opts.Stylesheets = visual.FontStylesheets()
	}
	return templates.WrapDocument(body, opts)
}

// PreviewRequest is the body of POST /preview.
type PreviewRequest struct {
	HTML  string `json:"html"`
	Title string `json:"title,omitempty"`
	Brand string `json:"brand,omitempty"`
}

const previewCSP = "default-src 'self' 'unsafe-inline' 'unsafe-eval' https://cdn.tailwindcss.com https://cdnjs.cloudflare.com; " +
	"script-src 'self' 'unsafe-inline' 'unsafe-eval' https://cdn.tailwindcss.com; " +
	"style-src 'self' 'unsafe-inline' https://cdn.tailwindcss.com https://fonts.googleapis.com https://cdnjs.cloudflare.com; " +
	"img-src 'self' data: https:; " +
	"font-src 'self' data: https://fonts.gstatic.com https://cdnjs.cloudflare.com;"

// handlePreview renders markup as a standalone page for an iframe.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if _, err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if strings.TrimSpace(req.HTML) == "" {
		s.fail(w, validation.New("html", "is required"))
		return
	}

	var visual *brand.VisualIdentity
	if req.Brand != "" {
		p, err := s.profile(r.Context(), req.Brand)
		if err != nil {
			s.fail(w, err)
			return
		}
		visual = p.Visual
	}

	page, err := s.document(req.HTML, req.Title, visual)
	if err != nil {
		s.fail(w, err)
		return
	}
	if visual != nil {
		page = visual.Apply(page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")
	w.Header().Set("Content-Security-Policy", previewCSP)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page)); err != nil {
		s.log.Error(err, "failed to write preview")
	}
}

// profile loads a stored brand or returns a typed error.
func (s *Server) profile(ctx context.Context, slug string) (*brand.Profile, error) {
	if s.brands == nil {
		return nil, &ErrUnavailable{Feature: "brand store"}
	}
	p, err := s.brands.GetProfileBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ErrNotFound{Resource: "brand", Key: slug}
	}
	return p, nil
}
