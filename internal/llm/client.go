package llm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/alexramsey92/ai-web-design-workbench/internal/guardrails"
	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
)

// RequestRecord is the request side of Diagnostics. Credentials in Headers
// are masked.
type RequestRecord struct {
	Payload any               `json:"payload,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Prompt  string            `json:"prompt"`
	Context GenerationContext `json:"context"`
}

// ResponseRecord is the response side of Diagnostics.
type ResponseRecord struct {
	Status     int    `json:"status,omitempty"`
	Body       string `json:"body"`
	DurationMS int64  `json:"duration_ms"`
}

// Diagnostics describes the last attempt of a Generate call.
type Diagnostics struct {
	RequestID string         `json:"request_id"`
	Transport string         `json:"transport"`
	Attempts  int            `json:"attempts"`
	Request   RequestRecord  `json:"request"`
	Response  ResponseRecord `json:"response"`
	Error     string         `json:"error,omitempty"`
}

// Result is the outcome of Generate. It is returned with GenerationFailure
// too, carrying the diagnostics of the final attempt.
type Result struct {
	HTML        string      `json:"html"`
	Diagnostics Diagnostics `json:"diagnostics"`
}

// Client runs generation requests through a Transport with a fixed-delay
// retry loop. It holds no per-call state and is safe for concurrent use.
type Client struct {
	cfg        Config
	transport  Transport
	guardrails guardrails.Guardrails
	log        *logger.Logger
}

// NewClient builds the transport for cfg.Provider. A disabled config yields
// a client whose Generate fails with ConfigurationError.
func NewClient(ctx context.Context, cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := &Client{cfg: *cfg, guardrails: guardrails.Default(), log: log}
	if !cfg.IsEnabled() {
		return c, nil
	}

	switch cfg.Provider {
	case ProviderAnthropic, "":
		c.transport = NewMessagesTransport(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	case ProviderHTMLServer:
		c.transport = NewHTMLServerTransport(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	case ProviderGemini:
		t, err := NewGeminiTransport(ctx, cfg.APIKey, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		c.transport = t
	default:
		return nil, &ConfigurationError{Message: fmt.Sprintf("unknown AI provider %q", cfg.Provider)}
	}
	return c, nil
}

// NewClientWithTransport wires an explicit transport.
func NewClientWithTransport(cfg *Config, t Transport, log *logger.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{cfg: *cfg, transport: t, guardrails: guardrails.Default(), log: log}
}

// WithGuardrails returns a copy of c that forwards g to backends accepting them.
func (c *Client) WithGuardrails(g guardrails.Guardrails) *Client {
	out := *c
	out.guardrails = g
	return &out
}

// Enabled reports whether Generate will reach a backend.
func (c *Client) Enabled() bool {
	return c != nil && c.transport != nil && c.cfg.IsEnabled()
}

// Config returns a copy of the client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Close releases transport resources.
func (c *Client) Close() error {
	if closer, ok := c.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Generate asks the backend for page markup. It makes up to MaxRetries
// attempts separated by RetryDelay; every failure is retried. After the
// last failed attempt it returns the Result with a *GenerationFailure.
func (c *Client) Generate(ctx context.Context, prompt string, gctx GenerationContext) (*Result, error) {
	if !c.Enabled() {
		return nil, &ConfigurationError{Message: "AI generation is not enabled or configured; check AI_CONTENT_GENERATION_ENABLED and the provider credentials"}
	}

	if !gctx.StyleLevel.Valid() {
		gctx.StyleLevel = stylelevel.DefaultLevel
	}
	whitelist := Whitelist(gctx.StyleLevel)
	system, err := BuildSystemPrompt(whitelist, gctx.VoiceInstructions)
	if err != nil {
		return nil, err
	}
	user, err := BuildUserPrompt(prompt)
	if err != nil {
		return nil, err
	}

	maxTokens := c.cfg.MaxTokens
	if gctx.MaxTokens > 0 {
		maxTokens = gctx.MaxTokens
	}
	req := &Request{
		Model:       c.cfg.Model,
		MaxTokens:   maxTokens,
		Temperature: c.cfg.Temperature,
		System:      system,
		Prompt:      user,
		Brief:       prompt,
		Whitelist:   whitelist,
		Context:     gctx,
		Guardrails:  c.guardrails,
	}

	res := &Result{Diagnostics: Diagnostics{
		RequestID: uuid.NewString(),
		Transport: c.transport.Name(),
		Request:   RequestRecord{Prompt: user, Context: gctx},
	}}
	log := c.log.WithFields(map[string]any{
		"request_id": res.Diagnostics.RequestID,
		"transport":  res.Diagnostics.Transport,
	})

	maxAttempts := c.cfg.attempts()
	var last error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res.Diagnostics.Attempts = attempt

		start := time.Now()
		ex, err := c.transport.Send(ctx, req)
		res.Diagnostics.record(ex, time.Since(start))

		if err == nil {
			res.HTML = ex.HTML
			log.With("attempt", attempt).With("duration_ms", res.Diagnostics.Response.DurationMS).Info("generation succeeded")
			return res, nil
		}

		last = err
		log.WithFields(map[string]any{
			"attempt":     attempt,
			"max_retries": maxAttempts,
			"error":       err.Error(),
		}).Warn("generation attempt failed")

		if attempt < maxAttempts {
			if sleepErr := sleep(ctx, c.cfg.RetryDelay); sleepErr != nil {
				break
			}
		}
	}

	res.Diagnostics.Error = last.Error()
	return res, &GenerationFailure{Attempts: res.Diagnostics.Attempts, Last: last}
}

func (d *Diagnostics) record(ex *Exchange, elapsed time.Duration) {
	d.Response = ResponseRecord{DurationMS: elapsed.Milliseconds()}
	if ex == nil {
		return
	}
	d.Request.Payload = ex.Payload
	d.Request.Headers = ex.Headers
	d.Response.Status = ex.Status
	d.Response.Body = ex.Body
}

// HealthCheck probes the backend. It never returns an error; any failure
// reads as unhealthy.
func (c *Client) HealthCheck(ctx context.Context) bool {
	if !c.Enabled() {
		return false
	}
	if err := c.transport.Probe(ctx, c.cfg.Model); err != nil {
		c.log.With("transport", c.transport.Name()).Error(err, "AI backend health check failed")
		return false
	}
	return true
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
