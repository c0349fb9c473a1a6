package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
)

func testConfig(url string) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.BaseURL = url
	cfg.APIKey = "sk-test-secret-key"
	cfg.Timeout = 5 * time.Second
	cfg.RetryDelay = time.Millisecond
	return cfg
}

func newTestClient(t *testing.T, cfg *Config) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	require.True(t, c.Enabled())
	return c
}

func messagesReply(text string) []byte {
	body, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return body
}

func TestGenerate_SucceedsFirstAttempt(t *testing.T) {
	var calls int32
	var got messagesPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "sk-test-secret-key", r.Header.Get("x-api-key"))
		assert.Equal(t, AnthropicVersion, r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write(messagesReply("Sure!\n```html\n<section class=\"hero\"><h1>Roast</h1></section>\n```"))
	}))
	defer srv.Close()

	c := newTestClient(t, testConfig(srv.URL))
	res, err := c.Generate(context.Background(), "an artisan coffee roastery", GenerationContext{StyleLevel: stylelevel.Low, MaxTokens: 2000})
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, `<section class="hero"><h1>Roast</h1></section>`, res.HTML)
	assert.Equal(t, 1, res.Diagnostics.Attempts)
	assert.Equal(t, "anthropic", res.Diagnostics.Transport)
	assert.NotEmpty(t, res.Diagnostics.RequestID)
	assert.Equal(t, http.StatusOK, res.Diagnostics.Response.Status)

	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, 2000, got.MaxTokens)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, DefaultTemperature, *got.Temperature, 1e-9)
	assert.Contains(t, got.System, "RULES:")
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "an artisan coffee roastery")
}

func TestGenerate_MaxTokensFallsBackToConfig(t *testing.T) {
	var got messagesPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write(messagesReply("<p>ok</p>"))
	}))
	defer srv.Close()

	c := newTestClient(t, testConfig(srv.URL))
	_, err := c.Generate(context.Background(), "a mindfulness app", GenerationContext{})
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"overloaded"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, testConfig(srv.URL))
	res, err := c.Generate(context.Background(), "a vintage vinyl shop", GenerationContext{})
	require.Error(t, err)

	var failure *GenerationFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, DefaultMaxRetries, failure.Attempts)
	assert.Equal(t, int32(DefaultMaxRetries), atomic.LoadInt32(&calls))

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.Contains(t, transportErr.Body, "overloaded")

	require.NotNil(t, res)
	assert.Equal(t, DefaultMaxRetries, res.Diagnostics.Attempts)
	assert.Equal(t, http.StatusInternalServerError, res.Diagnostics.Response.Status)
	assert.Contains(t, res.Diagnostics.Error, "status 500")
	assert.Empty(t, res.HTML)
}

func TestGenerate_RecoversOnRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(messagesReply("<main>second</main>"))
	}))
	defer srv.Close()

	c := newTestClient(t, testConfig(srv.URL))
	res, err := c.Generate(context.Background(), "a plant-based meal prep service", GenerationContext{})
	require.NoError(t, err)
	assert.Equal(t, "<main>second</main>", res.HTML)
	assert.Equal(t, 2, res.Diagnostics.Attempts)
}

func TestGenerate_ExtractionFailureIsRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"unexpected":true}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2
	c := newTestClient(t, cfg)
	_, err := c.Generate(context.Background(), "an AI fitness coach", GenerationContext{})

	var failure *GenerationFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, 2, failure.Attempts)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Contains(t, err.Error(), "missing content or html field")
}

func TestGenerate_DisabledFailsFast(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"flag off", func(c *Config) { c.Enabled = false }},
		{"missing key", func(c *Config) { c.APIKey = "" }},
		{"missing url", func(c *Config) { c.BaseURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(srv.URL)
			tt.mutate(cfg)
			c, err := NewClient(context.Background(), cfg, nil)
			require.NoError(t, err)

			res, err := c.Generate(context.Background(), "a boutique glamping retreat", GenerationContext{})
			assert.Nil(t, res)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGenerate_CancelledContextStopsRetrying(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.RetryDelay = time.Hour
	c := newTestClient(t, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Generate(ctx, "a mindfulness app", GenerationContext{})
	var failure *GenerationFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, 1, failure.Attempts)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGenerate_MasksCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(messagesReply("<p>ok</p>"))
	}))
	defer srv.Close()

	c := newTestClient(t, testConfig(srv.URL))
	res, err := c.Generate(context.Background(), "a vintage vinyl shop", GenerationContext{})
	require.NoError(t, err)

	assert.Equal(t, "sk-t********", res.Diagnostics.Request.Headers["x-api-key"])
	raw, err := json.Marshal(res.Diagnostics)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sk-test-secret-key")
}

func TestGenerate_HTMLServerTransport(t *testing.T) {
	var got serverPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "Bearer server-key-123", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"html":"<section>served</section>"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Provider = ProviderHTMLServer
	cfg.APIKey = "server-key-123"
	c := newTestClient(t, cfg)

	res, err := c.Generate(context.Background(), "an AI fitness coach", GenerationContext{StyleLevel: stylelevel.Mid})
	require.NoError(t, err)
	assert.Equal(t, "<section>served</section>", res.HTML)
	assert.Equal(t, "html_server", res.Diagnostics.Transport)

	assert.Equal(t, "an AI fitness coach", got.Prompt)
	assert.Equal(t, stylelevel.Mid, got.Context.StyleLevel)
	assert.Equal(t, Whitelist(stylelevel.Mid), got.Whitelist)
	assert.Equal(t, 10, got.Guardrails.MaxNestingDepth)
}

func TestGenerate_HTMLServerMissingHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Provider = ProviderHTMLServer
	cfg.MaxRetries = 1
	c := newTestClient(t, cfg)

	_, err := c.Generate(context.Background(), "a vintage vinyl shop", GenerationContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing content or html field")
}

func TestHealthCheck(t *testing.T) {
	t.Run("messages backend healthy", func(t *testing.T) {
		var got messagesPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write(messagesReply("Hello"))
		}))
		defer srv.Close()

		assert.True(t, newTestClient(t, testConfig(srv.URL)).HealthCheck(context.Background()))
		assert.Equal(t, probeMaxTokens, got.MaxTokens)
		require.Len(t, got.Messages, 1)
		assert.Equal(t, "Hi", got.Messages[0].Content)
	})

	t.Run("messages backend rejects key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		assert.False(t, newTestClient(t, testConfig(srv.URL)).HealthCheck(context.Background()))
	})

	t.Run("html server health endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/health", r.URL.Path)
		}))
		defer srv.Close()

		cfg := testConfig(srv.URL)
		cfg.Provider = ProviderHTMLServer
		assert.True(t, newTestClient(t, cfg).HealthCheck(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		assert.False(t, newTestClient(t, testConfig(url)).HealthCheck(context.Background()))
	})

	t.Run("disabled", func(t *testing.T) {
		c, err := NewClient(context.Background(), DefaultConfig(), nil)
		require.NoError(t, err)
		assert.False(t, c.HealthCheck(context.Background()))
	})
}

func TestNewClient_UnknownProvider(t *testing.T) {
	cfg := testConfig("http://localhost")
	cfg.Provider = "openai"
	_, err := NewClient(context.Background(), cfg, nil)
	var cfgErr *ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestConfig_IsEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want bool
	}{
		{"nil", nil, false},
		{"default", DefaultConfig(), false},
		{"anthropic with key", &Config{Enabled: true, Provider: ProviderAnthropic, BaseURL: DefaultBaseURL, APIKey: "k"}, true},
		{"html server without key", &Config{Enabled: true, Provider: ProviderHTMLServer, BaseURL: "http://localhost:3000"}, true},
		{"html server without url", &Config{Enabled: true, Provider: ProviderHTMLServer}, false},
		{"gemini with key", &Config{Enabled: true, Provider: ProviderGemini, APIKey: "k"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.IsEnabled())
		})
	}
}

func TestConfig_WithModel(t *testing.T) {
	base := DefaultConfig()
	other := base.WithModel("claude-3-5-haiku-latest")
	assert.Equal(t, DefaultModel, base.Model)
	assert.Equal(t, "claude-3-5-haiku-latest", other.Model)
}

func TestErrors(t *testing.T) {
	assert.Equal(t, "backend responded with status 429: slow down", (&TransportError{StatusCode: 429, Body: "slow down"}).Error())
	cause := errors.New("connection refused")
	assert.Equal(t, "transport error: connection refused", (&TransportError{Cause: cause}).Error())
	assert.ErrorIs(t, &GenerationFailure{Attempts: 3, Last: &TransportError{Cause: cause}}, cause)
	assert.Equal(t, "generation failed after 3 attempts: transport error: connection refused",
		(&GenerationFailure{Attempts: 3, Last: &TransportError{Cause: cause}}).Error())
}
