// Package config loads workbench settings from a JSON or YAML file and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexramsey92/ai-web-design-workbench/internal/generation"
	"github.com/alexramsey92/ai-web-design-workbench/internal/guardrails"
	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
)

// AIConfig holds the generation backend settings.
type AIConfig struct {
	Enabled  bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // anthropic, html_server or gemini

	APIURL    string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Model     string `json:"model,omitempty" yaml:"model,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	// Temperature is a pointer so an explicit 0 survives merging.
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`

	ServerURL    string `json:"server_url,omitempty" yaml:"server_url,omitempty"`
	ServerAPIKey string `json:"server_api_key,omitempty" yaml:"server_api_key,omitempty"`

	GeminiAPIKey string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
	GeminiModel  string `json:"gemini_model,omitempty" yaml:"gemini_model,omitempty"`

	TimeoutSeconds int `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	MaxRetries     int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	RetryDelayMS   int `json:"retry_delay_ms,omitempty" yaml:"retry_delay_ms,omitempty"`
}

// RateLimitConfig throttles the HTTP endpoints that reach the AI backend or
// fetch remote pages. Limits are requests per minute per client address.
type RateLimitConfig struct {
	Disabled          bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	GeneratePerMinute int  `json:"generate_per_minute,omitempty" yaml:"generate_per_minute,omitempty"`
	ScorePerMinute    int  `json:"score_per_minute,omitempty" yaml:"score_per_minute,omitempty"`
}

// Config is the full workbench configuration. Every field is optional in
// files; Default supplies the rest.
type Config struct {
	AI AIConfig `json:"ai" yaml:"ai"`

	DefaultStyleLevel string `json:"default_style_level,omitempty" yaml:"default_style_level,omitempty"`
	// Pointers distinguish "unset" from an explicit false for settings
	// that default to true.
	UseSemanticClasses *bool                 `json:"use_semantic_classes,omitempty" yaml:"use_semantic_classes,omitempty"`
	TemplateFallback   *bool                 `json:"template_fallback,omitempty" yaml:"template_fallback,omitempty"`
	FormatOutput       bool                  `json:"format_output,omitempty" yaml:"format_output,omitempty"`
	Guardrails         guardrails.Guardrails `json:"guardrails" yaml:"guardrails"`

	DatabaseURL string          `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	ServerAddr  string          `json:"server_addr,omitempty" yaml:"server_addr,omitempty"`
	RateLimit   RateLimitConfig `json:"rate_limit" yaml:"rate_limit"`

	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogHuman bool   `json:"log_human,omitempty" yaml:"log_human,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }

// Default returns the built-in configuration. AI generation is off.
func Default() Config {
	return Config{
		AI: AIConfig{
			Provider:       string(llm.ProviderAnthropic),
			APIURL:         llm.DefaultBaseURL,
			Model:          llm.DefaultModel,
			MaxTokens:      llm.DefaultMaxTokens,
			Temperature:    floatPtr(llm.DefaultTemperature),
			GeminiModel:    llm.DefaultGeminiModel,
			TimeoutSeconds: int(llm.DefaultTimeout / time.Second),
			MaxRetries:     llm.DefaultMaxRetries,
			RetryDelayMS:   int(llm.DefaultRetryDelay / time.Millisecond),
		},
		DefaultStyleLevel:  string(stylelevel.DefaultLevel),
		UseSemanticClasses: boolPtr(true),
		TemplateFallback:   boolPtr(true),
		Guardrails:         guardrails.Default(),
		ServerAddr:         ":8080",
		RateLimit:          RateLimitConfig{GeneratePerMinute: 20, ScorePerMinute: 30},
		LogLevel:           "info",
	}
}

// LoadConfig reads a configuration file. Files ending in .yaml or .yml are
// parsed as YAML, anything else as JSON. Unset fields stay zero; use
// MergeWithDefaults to fill them.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return &cfg, nil
}

// Load builds the effective configuration: the file at path (optional),
// merged over Default, then overlaid with environment variables from lookup.
func Load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch llm.Provider(c.AI.Provider) {
	case llm.ProviderAnthropic, llm.ProviderHTMLServer, llm.ProviderGemini, "":
	default:
		return fmt.Errorf("config error: unknown ai provider %q (anthropic, html_server, gemini)", c.AI.Provider)
	}
	if c.DefaultStyleLevel != "" && !stylelevel.Level(c.DefaultStyleLevel).Valid() {
		return fmt.Errorf("config error: 'default_style_level' must be one of full, mid, low, got %q", c.DefaultStyleLevel)
	}
	if c.AI.MaxTokens < 0 {
		return fmt.Errorf("config error: 'max_tokens' must be non-negative")
	}
	if t := c.AI.Temperature; t != nil && (*t < 0 || *t > 1) {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 1")
	}
	if c.AI.TimeoutSeconds < 0 || c.AI.MaxRetries < 0 || c.AI.RetryDelayMS < 0 {
		return fmt.Errorf("config error: timeout, retries and retry delay must be non-negative")
	}
	if c.RateLimit.GeneratePerMinute < 0 || c.RateLimit.ScorePerMinute < 0 {
		return fmt.Errorf("config error: rate limits must be non-negative")
	}
	if c.Guardrails.MaxNestingDepth < 0 || c.Guardrails.MaxElementCount < 0 {
		return fmt.Errorf("config error: guardrail limits must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a copy of c with unset fields taken from
// defaults. Plain bools cannot be told apart from false and are left alone;
// optional settings whose zero value is meaningful are pointers.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	mergeInt := func(dst *int, def int) {
		if *dst == 0 {
			*dst = def
		}
	}

	mergeString(&result.AI.Provider, defaults.AI.Provider)
	mergeString(&result.AI.APIURL, defaults.AI.APIURL)
	mergeString(&result.AI.APIKey, defaults.AI.APIKey)
	mergeString(&result.AI.Model, defaults.AI.Model)
	mergeString(&result.AI.ServerURL, defaults.AI.ServerURL)
	mergeString(&result.AI.ServerAPIKey, defaults.AI.ServerAPIKey)
	mergeString(&result.AI.GeminiAPIKey, defaults.AI.GeminiAPIKey)
	mergeString(&result.AI.GeminiModel, defaults.AI.GeminiModel)
	mergeInt(&result.AI.MaxTokens, defaults.AI.MaxTokens)
	mergeInt(&result.AI.TimeoutSeconds, defaults.AI.TimeoutSeconds)
	mergeInt(&result.AI.MaxRetries, defaults.AI.MaxRetries)
	mergeInt(&result.AI.RetryDelayMS, defaults.AI.RetryDelayMS)
	if result.AI.Temperature == nil {
		result.AI.Temperature = defaults.AI.Temperature
	}

	mergeString(&result.DefaultStyleLevel, defaults.DefaultStyleLevel)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.ServerAddr, defaults.ServerAddr)
	mergeInt(&result.RateLimit.GeneratePerMinute, defaults.RateLimit.GeneratePerMinute)
	mergeInt(&result.RateLimit.ScorePerMinute, defaults.RateLimit.ScorePerMinute)
	mergeString(&result.LogLevel, defaults.LogLevel)
	if result.UseSemanticClasses == nil {
		result.UseSemanticClasses = defaults.UseSemanticClasses
	}
	if result.TemplateFallback == nil {
		result.TemplateFallback = defaults.TemplateFallback
	}

	mergeInt(&result.Guardrails.MaxNestingDepth, defaults.Guardrails.MaxNestingDepth)
	mergeInt(&result.Guardrails.MaxElementCount, defaults.Guardrails.MaxElementCount)
	if len(result.Guardrails.AllowedTags) == 0 {
		result.Guardrails.AllowedTags = defaults.Guardrails.AllowedTags
	}

	return result
}

// SemanticClasses reports whether templates use the semantic variant.
func (c *Config) SemanticClasses() bool {
	return c.UseSemanticClasses == nil || *c.UseSemanticClasses
}

// FallbackEnabled reports whether backend failures fall back to templates.
func (c *Config) FallbackEnabled() bool {
	return c.TemplateFallback == nil || *c.TemplateFallback
}

// TemplateVariant maps UseSemanticClasses to a template family.
func (c *Config) TemplateVariant() templates.Variant {
	if c.SemanticClasses() {
		return templates.VariantSemantic
	}
	return templates.VariantUtility
}

func (c *Config) temperature() float64 {
	if c.AI.Temperature == nil {
		return llm.DefaultTemperature
	}
	return *c.AI.Temperature
}

// LLMConfig resolves the settings of the active provider.
func (c *Config) LLMConfig() *llm.Config {
	out := &llm.Config{
		Enabled:     c.AI.Enabled,
		Provider:    llm.Provider(c.AI.Provider),
		BaseURL:     c.AI.APIURL,
		APIKey:      c.AI.APIKey,
		Model:       c.AI.Model,
		MaxTokens:   c.AI.MaxTokens,
		Temperature: c.temperature(),
		Timeout:     time.Duration(c.AI.TimeoutSeconds) * time.Second,
		MaxRetries:  c.AI.MaxRetries,
		RetryDelay:  time.Duration(c.AI.RetryDelayMS) * time.Millisecond,
	}
	switch out.Provider {
	case llm.ProviderHTMLServer:
		out.BaseURL = c.AI.ServerURL
		out.APIKey = c.AI.ServerAPIKey
	case llm.ProviderGemini:
		out.BaseURL = ""
		out.APIKey = c.AI.GeminiAPIKey
		out.Model = c.AI.GeminiModel
	case "":
		out.Provider = llm.ProviderAnthropic
	}
	return out
}

// GuardrailLimits returns the configured guardrails, with defaults for
// unset limits.
func (c *Config) GuardrailLimits() guardrails.Guardrails {
	g := c.Guardrails
	def := guardrails.Default()
	if g.MaxNestingDepth == 0 {
		g.MaxNestingDepth = def.MaxNestingDepth
	}
	if g.MaxElementCount == 0 {
		g.MaxElementCount = def.MaxElementCount
	}
	if len(g.AllowedTags) == 0 {
		g.AllowedTags = def.AllowedTags
	}
	return g
}

// GenerationOptions builds orchestrator settings.
func (c *Config) GenerationOptions() generation.Options {
	return generation.Options{
		DefaultStyleLevel: stylelevel.Level(c.DefaultStyleLevel),
		Variant:           c.TemplateVariant(),
		TemplateFallback:  c.FallbackEnabled(),
		Format:            c.FormatOutput,
		Guardrails:        c.GuardrailLimits(),
	}
}

// LoggerOptions builds logger settings.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, HumanReadable: c.LogHuman}
}
