package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/alexramsey92/ai-web-design-workbench/internal/db"
	"github.com/alexramsey92/ai-web-design-workbench/internal/fetch"
	"github.com/alexramsey92/ai-web-design-workbench/internal/generation"
	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
	"github.com/alexramsey92/ai-web-design-workbench/internal/server/ratelimit"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
	"github.com/alexramsey92/ai-web-design-workbench/internal/validation"
)

type fakeBrands struct {
	profiles map[string]*brand.Profile
	err      error
}

func (f *fakeBrands) GetProfileBySlug(_ context.Context, slug string) (*brand.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[slug], nil
}

func (f *fakeBrands) ListProfiles(_ context.Context) ([]db.BrandSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []db.BrandSummary{}
	for slug, p := range f.profiles {
		out = append(out, db.BrandSummary{Name: p.Name, Slug: slug})
	}
	return out, nil
}

type fakeAI struct {
	cfg     llm.Config
	healthy bool
}

func (f *fakeAI) Config() llm.Config                 { return f.cfg }
func (f *fakeAI) HealthCheck(_ context.Context) bool { return f.healthy }

type failingGenerator struct{}

func (failingGenerator) Generate(_ context.Context, _ generation.Request) (*generation.Result, error) {
	return &generation.Result{Diagnostics: &llm.Diagnostics{RequestID: "req-1", Attempts: 3}},
		&llm.GenerationFailure{Attempts: 3, Last: errors.New("backend responded with status 500")}
}
func (failingGenerator) AIEnabled() bool            { return true }
func (failingGenerator) Variant() templates.Variant { return templates.VariantSemantic }

func ridgeProfile() *brand.Profile {
	visual := brand.DefaultVisualIdentity()
	visual.PrimaryColor = "#6F4E37"
	visual.HeadingFont = "Playfair Display"
	voice := brand.DefaultVoiceProfile()
	voice.AvoidTerms = []string{"synergy"}
	return &brand.Profile{
		Name:    "Ridge Coffee",
		Slug:    "ridge-coffee",
		Tagline: "Roasted on the ridge",
		Visual:  &visual,
		Voice:   &voice,
	}
}

func newTestServer(t *testing.T, mutate func(*Config)) http.Handler {
	t.Helper()
	orch, err := generation.New(nil, generation.Options{TemplateFallback: true}, nil)
	require.NoError(t, err)

	cfg := Config{
		Generator: orch,
		Brands: &fakeBrands{profiles: map[string]*brand.Profile{
			"ridge-coffee": ridgeProfile(),
			"bare":         {Name: "Bare", Slug: "bare"},
		}},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return New(cfg).Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestRequestIDIsReused(t *testing.T) {
	h := newTestServer(t, nil)
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodOptions, "/generate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestAIStatus(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		w := do(t, newTestServer(t, nil), http.MethodGet, "/ai/status", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["enabled"])
		assert.NotContains(t, body, "healthy")
	})

	t.Run("enabled and healthy", func(t *testing.T) {
		ai := &fakeAI{healthy: true, cfg: llm.Config{
			Enabled:  true,
			Provider: llm.ProviderAnthropic,
			BaseURL:  llm.DefaultBaseURL,
			APIKey:   "sk-secret",
			Model:    llm.DefaultModel,
		}}
		h := newTestServer(t, func(c *Config) { c.AI = ai })

		w := do(t, h, http.MethodGet, "/ai/status", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["enabled"])
		assert.Equal(t, true, body["healthy"])
		assert.Equal(t, true, body["api_key_configured"])
		assert.NotContains(t, w.Body.String(), "sk-secret")
	})
}

func TestStyleLevels(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/style-levels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	levels := decode(t, w)["levels"].([]any)
	assert.Len(t, levels, 3)

	w = do(t, h, http.MethodGet, "/style-levels/MID", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "mid", body["key"])
	assert.Greater(t, body["total_classes"].(float64), 0.0)

	w = do(t, h, http.MethodGet, "/style-levels/ultra", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerate_Templates(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/generate", map[string]any{
		"headline": "Roasted on the ridge",
		"sections": []string{"hero", "cta"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "template", body["source"])
	assert.Contains(t, body["html"], "Roasted on the ridge")
	assert.NotEmpty(t, body["request_id"])
	assert.Equal(t, []any{}, body["guardrail_issues"])
}

func TestGenerate_BrandDocument(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/generate", map[string]any{
		"brand":    "ridge-coffee",
		"document": true,
		"sections": []string{"hero"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	html := body["html"].(string)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Ridge Coffee</title>")
	assert.Contains(t, html, "Roasted on the ridge", "tagline fills the subheadline")
	assert.Equal(t, "ridge-coffee", body["brand"])
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		body   any
		status int
	}{
		{"malformed json", nil, "{", http.StatusBadRequest},
		{"wrong field type", nil, `{"prompt": 42}`, http.StatusBadRequest},
		{"schema violation", nil, map[string]any{"max_tokens": 0}, http.StatusBadRequest},
		{"invalid style level", nil, map[string]any{"style_level": "ultra"}, http.StatusBadRequest},
		{"unknown section", nil, map[string]any{"sections": []string{"carousel"}}, http.StatusBadRequest},
		{"unknown brand", nil, map[string]any{"brand": "nope"}, http.StatusNotFound},
		{"no brand store", func(c *Config) { c.Brands = nil }, map[string]any{"brand": "ridge-coffee"}, http.StatusServiceUnavailable},
		{"no generator", func(c *Config) { c.Generator = nil }, map[string]any{}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(t, tt.mutate), http.MethodPost, "/generate", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestGenerate_BackendFailureCarriesDiagnostics(t *testing.T) {
	h := newTestServer(t, func(c *Config) { c.Generator = failingGenerator{} })

	w := do(t, h, http.MethodPost, "/generate", map[string]any{"prompt": "A bakery in Brooklyn with sourdough"})
	require.Equal(t, http.StatusBadGateway, w.Code)

	body := decode(t, w)
	assert.Contains(t, body["error"], "generation failed after 3 attempts")
	diag := body["diagnostics"].(map[string]any)
	assert.Equal(t, "req-1", diag["request_id"])
}

func TestPreview(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/preview", map[string]any{"html": "<section><h1>Hi</h1></section>", "title": "Draft"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "https://cdn.tailwindcss.com")
	assert.Contains(t, w.Body.String(), "<title>Draft</title>")
	assert.Contains(t, w.Body.String(), "<h1>Hi</h1>")

	w = do(t, h, http.MethodPost, "/preview", map[string]any{"html": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScore_InlineHTML(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/score", map[string]any{
		"html":  `<h1 style="color:#6F4E37;font-family:'Playfair Display'">Synergy for mornings</h1>`,
		"brand": "ridge-coffee",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	cats := body["categories"].(map[string]any)
	assert.Equal(t, "pass", cats["colors"].(map[string]any)["status"])
	voice := cats["voice"].(map[string]any)
	assert.NotEmpty(t, voice["issues"], "avoided term is flagged")
	assert.Contains(t, body, "overall_score")
}

func TestScore_URL(t *testing.T) {
	var gotOpts fetch.PageOptions
	h := newTestServer(t, func(c *Config) {
		c.Fetch = func(_ context.Context, url string, opts fetch.PageOptions) (*fetch.Result, error) {
			gotOpts = opts
			return &fetch.Result{URL: url, HTML: "<h1>Live</h1><img src=a.png>", Text: "Live", Rendered: true}, nil
		}
	})

	w := do(t, h, http.MethodPost, "/score", map[string]any{"url": "https://example.com", "browser": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, gotOpts.Browser)

	body := decode(t, w)
	assert.Equal(t, "https://example.com", body["url"])
	assert.Equal(t, true, body["rendered"])
	access := body["categories"].(map[string]any)["accessibility"].(map[string]any)
	assert.Len(t, access["issues"], 1)
}

func TestScore_Errors(t *testing.T) {
	fetchFails := func(c *Config) {
		c.Fetch = func(_ context.Context, url string, _ fetch.PageOptions) (*fetch.Result, error) {
			return nil, &fetch.Error{URL: url, Message: "HTTP status 500"}
		}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		body   any
		status int
	}{
		{"neither html nor url", nil, map[string]any{}, http.StatusBadRequest},
		{"both html and url", nil, map[string]any{"html": "<p>x</p>", "url": "https://example.com"}, http.StatusBadRequest},
		{"invalid inline visual", nil, map[string]any{"html": "<p>x</p>", "visual_identity": map[string]any{"primary_color": "blue"}}, http.StatusBadRequest},
		{"fetch failure", fetchFails, map[string]any{"url": "https://example.com"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(t, tt.mutate), http.MethodPost, "/score", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestPalette(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/palette", map[string]any{"primary": "#3b82f6", "mood": "complementary"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "#3B82F6", body["palette"].(map[string]any)["primary"])
	assert.Len(t, body["slots"], 9)
	assert.Len(t, body["shades"], 10)

	w = do(t, h, http.MethodPost, "/palette", map[string]any{"industry": "finance"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/palette", map[string]any{"primary": "not-a-color"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodPost, "/palette", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBrands(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/brands", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, decode(t, w)["count"])

	w = do(t, h, http.MethodGet, "/brands/ridge-coffee", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Ridge Coffee", body["profile"].(map[string]any)["name"])
	assert.Contains(t, body, "tailwind")

	w = do(t, h, http.MethodGet, "/brands/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/brands/ridge-coffee/css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/css; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "--brand-primary: #6F4E37;")

	w = do(t, h, http.MethodGet, "/brands/bare/css", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrands_StoreErrors(t *testing.T) {
	h := newTestServer(t, func(c *Config) { c.Brands = nil })
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/brands", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/brands/ridge-coffee", nil).Code)

	h = newTestServer(t, func(c *Config) { c.Brands = &fakeBrands{err: errors.New("connection refused")} })
	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodGet, "/brands", nil).Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Enabled: true,
		Rules:   []ratelimit.Rule{{Method: "POST", Path: "/generate", Limit: 1, Window: time.Minute}},
	})
	h := newTestServer(t, func(c *Config) { c.Limiter = limiter })

	w := do(t, h, http.MethodPost, "/generate", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = do(t, h, http.MethodPost, "/generate", map[string]any{})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil).Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", validation.New("prompt", "too short"), http.StatusBadRequest},
		{"not found", &ErrNotFound{Resource: "brand", Key: "x"}, http.StatusNotFound},
		{"configuration", &llm.ConfigurationError{Message: "disabled"}, http.StatusServiceUnavailable},
		{"unavailable", &ErrUnavailable{Feature: "brand store"}, http.StatusServiceUnavailable},
		{"generation failure", &llm.GenerationFailure{Attempts: 3}, http.StatusBadGateway},
		{"wrapped fetch", errors.Join(errors.New("ctx"), &fetch.Error{URL: "u", Message: "m"}), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
