// Package llm talks to the AI backend that writes landing page markup.
// One retry loop drives interchangeable transports: a messages-style API,
// a plain HTML generation server and Gemini.
package llm

import "time"

// Provider names a generation backend.
type Provider string

const (
	ProviderAnthropic  Provider = "anthropic"
	ProviderHTMLServer Provider = "html_server"
	ProviderGemini     Provider = "gemini"
)

// Defaults for the messages API backend.
const (
	DefaultBaseURL     = "https://api.anthropic.com/v1"
	DefaultModel       = "claude-sonnet-4-20250514"
	DefaultGeminiModel = "gemini-2.5-flash"
	DefaultMaxTokens   = 4096
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = time.Second

	AnthropicVersion = "2023-06-01"
)

// Config selects and parameterizes the backend.
//
// BaseURL is the API root for the messages provider and the server root for
// the html_server provider. APIKey is the credential for whichever provider
// is active; the html_server provider may run without one.
type Config struct {
	Enabled     bool
	Provider    Provider
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}

// DefaultConfig returns a disabled messages API configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderAnthropic,
		BaseURL:     DefaultBaseURL,
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
		Timeout:     DefaultTimeout,
		MaxRetries:  DefaultMaxRetries,
		RetryDelay:  DefaultRetryDelay,
	}
}

// IsEnabled reports whether generation is switched on and the active
// provider has what it needs to reach its backend.
func (c *Config) IsEnabled() bool {
	if c == nil || !c.Enabled {
		return false
	}
	switch c.Provider {
	case ProviderHTMLServer:
		return c.BaseURL != ""
	case ProviderGemini:
		return c.APIKey != ""
	default:
		return c.BaseURL != "" && c.APIKey != ""
	}
}

// WithModel returns a copy of c using model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}

func (c *Config) attempts() int {
	if c.MaxRetries < 1 {
		return 1
	}
	return c.MaxRetries
}
