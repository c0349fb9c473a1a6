package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexramsey92/ai-web-design-workbench/internal/guardrails"
	"github.com/alexramsey92/ai-web-design-workbench/internal/prompts"
)

const (
	maxResponseBytes     = 4 << 20
	messagesProbeTimeout = 10 * time.Second
	serverProbeTimeout   = 5 * time.Second
	probeMaxTokens       = 10
)

// Request is one generation call as handed to a transport.
type Request struct {
	Model       string
	MaxTokens   int
	Temperature float64
	System      string
	Prompt      string // user message sent to chat-style backends
	Brief       string // caller's free-text request
	Whitelist   []string
	Context     GenerationContext
	Guardrails  guardrails.Guardrails
}

// Exchange records what a transport sent and received. Transports return
// it even when the call fails so diagnostics can show the failed response.
type Exchange struct {
	Payload any
	Headers map[string]string
	Status  int
	Body    string
	HTML    string
}

// Transport sends one generation request to a backend.
type Transport interface {
	Name() string
	Send(ctx context.Context, req *Request) (*Exchange, error)
	// Probe makes a minimal call to confirm the backend is reachable.
	Probe(ctx context.Context, model string) error
}

// maskSecret keeps a short prefix of a credential for recognition.
func maskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 8:
		return "********"
	}
	return s[:4] + "********"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesPayload struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature *float64      `json:"temperature,omitempty"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

// MessagesTransport posts to a messages-style chat API.
type MessagesTransport struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewMessagesTransport returns a transport posting to baseURL/messages.
func NewMessagesTransport(baseURL, apiKey string, timeout time.Duration) *MessagesTransport {
	return &MessagesTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

func (t *MessagesTransport) Name() string { return string(ProviderAnthropic) }

func (t *MessagesTransport) headers(mask bool) map[string]string {
	key := t.apiKey
	if mask {
		key = maskSecret(key)
	}
	return map[string]string{
		"x-api-key":         key,
		"anthropic-version": AnthropicVersion,
		"Content-Type":      "application/json",
	}
}

func (t *MessagesTransport) Send(ctx context.Context, req *Request) (*Exchange, error) {
	temperature := req.Temperature
	payload := messagesPayload{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: &temperature,
		System:      req.System,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
	}
	ex := &Exchange{Payload: payload, Headers: t.headers(true)}

	status, body, err := postJSON(ctx, t.http, t.baseURL+"/messages", payload, t.headers(false))
	ex.Status, ex.Body = status, string(body)
	if err != nil {
		return ex, err
	}
	if ex.HTML, err = ExtractHTML(body); err != nil {
		return ex, err
	}
	return ex, nil
}

func (t *MessagesTransport) Probe(ctx context.Context, model string) error {
	ctx, cancel := context.WithTimeout(ctx, messagesProbeTimeout)
	defer cancel()

	payload := messagesPayload{
		Model:     model,
		MaxTokens: probeMaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: healthPrompt()}},
	}
	_, _, err := postJSON(ctx, t.http, t.baseURL+"/messages", payload, t.headers(false))
	return err
}

type serverPayload struct {
	Prompt     string                `json:"prompt"`
	Context    GenerationContext     `json:"context"`
	Whitelist  []string              `json:"whitelist"`
	Guardrails guardrails.Guardrails `json:"guardrails"`
}

// HTMLServerTransport posts briefs to a server that answers with {"html": ...}.
type HTMLServerTransport struct {
	serverURL string
	apiKey    string
	http      *http.Client
}

// NewHTMLServerTransport returns a transport posting to serverURL/generate.
func NewHTMLServerTransport(serverURL, apiKey string, timeout time.Duration) *HTMLServerTransport {
	return &HTMLServerTransport{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		http:      &http.Client{Timeout: timeout},
	}
}

func (t *HTMLServerTransport) Name() string { return string(ProviderHTMLServer) }

func (t *HTMLServerTransport) headers(mask bool) map[string]string {
	h := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if t.apiKey != "" {
		key := t.apiKey
		if mask {
			key = maskSecret(key)
		}
		h["Authorization"] = "Bearer " + key
	}
	return h
}

func (t *HTMLServerTransport) Send(ctx context.Context, req *Request) (*Exchange, error) {
	payload := serverPayload{
		Prompt:     req.Brief,
		Context:    req.Context,
		Whitelist:  req.Whitelist,
		Guardrails: req.Guardrails,
	}
	ex := &Exchange{Payload: payload, Headers: t.headers(true)}

	status, body, err := postJSON(ctx, t.http, t.serverURL+"/generate", payload, t.headers(false))
	ex.Status, ex.Body = status, string(body)
	if err != nil {
		return ex, err
	}
	if ex.HTML, err = ExtractHTML(body); err != nil {
		return ex, err
	}
	return ex, nil
}

func (t *HTMLServerTransport) Probe(ctx context.Context, _ string) error {
	ctx, cancel := context.WithTimeout(ctx, serverProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.serverURL+"/health", nil)
	if err != nil {
		return &TransportError{Cause: err}
	}
	for k, v := range t.headers(false) {
		req.Header.Set(k, v)
	}
	resp, err := t.http.Do(req)
	if err != nil {
		return &TransportError{Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// postJSON sends payload and returns the status and body. Non-2xx statuses
// come back as *TransportError together with the body.
func postJSON(ctx context.Context, client *http.Client, url string, payload any, headers map[string]string) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, &TransportError{Cause: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, body, &TransportError{StatusCode: resp.StatusCode, Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, body, &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return resp.StatusCode, body, nil
}

func healthPrompt() string {
	p, err := prompts.Get(prompts.Generation, "health")
	if err != nil {
		return "Hi"
	}
	return p
}
