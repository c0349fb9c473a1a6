package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiTransport generates through the Gemini API.
type GeminiTransport struct {
	client  *genai.Client
	apiKey  string
	timeout time.Duration
}

// NewGeminiTransport creates a Gemini client for apiKey. Each generation call
// is bounded by timeout, or DefaultTimeout when it is zero.
func NewGeminiTransport(ctx context.Context, apiKey string, timeout time.Duration) (*GeminiTransport, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Message: "Gemini API key is required"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiTransport{client: client, apiKey: apiKey, timeout: timeout}, nil
}

func (t *GeminiTransport) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := t.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (t *GeminiTransport) Name() string { return string(ProviderGemini) }

func (t *GeminiTransport) model(name string, maxTokens int, temperature float64, system string) *genai.GenerativeModel {
	model := t.client.GenerativeModel(name)
	model.SetTemperature(float32(temperature))
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	return model
}

func (t *GeminiTransport) Send(ctx context.Context, req *Request) (*Exchange, error) {
	ex := &Exchange{
		Payload: map[string]any{
			"model":       req.Model,
			"max_tokens":  req.MaxTokens,
			"temperature": req.Temperature,
			"system":      req.System,
			"prompt":      req.Prompt,
		},
		Headers: map[string]string{"x-goog-api-key": maskSecret(t.apiKey)},
	}

	ctx, cancel := t.callContext(ctx)
	defer cancel()

	resp, err := t.model(req.Model, req.MaxTokens, req.Temperature, req.System).
		GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return ex, &TransportError{Cause: err}
	}

	text, err := responseText(resp)
	if err != nil {
		return ex, err
	}
	ex.Body = text
	ex.HTML = StripCodeFence(text)
	return ex, nil
}

func (t *GeminiTransport) Probe(ctx context.Context, model string) error {
	ctx, cancel := context.WithTimeout(ctx, messagesProbeTimeout)
	defer cancel()

	_, err := t.model(model, probeMaxTokens, 0, "").GenerateContent(ctx, genai.Text(healthPrompt()))
	if err != nil {
		return &TransportError{Cause: err}
	}
	return nil
}

// Close releases the underlying client.
func (t *GeminiTransport) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", errors.New("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
