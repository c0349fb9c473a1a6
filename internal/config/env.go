package config

import (
	"fmt"
	"strconv"
)

// ApplyEnv overlays environment variables read through lookup (os.LookupEnv
// in production). Set but malformed values are an error.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var err error
	boolean := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			err = fmt.Errorf("config error: %s must be a boolean, got %q", key, v)
			return
		}
		*dst = b
	}
	integer := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		n, perr := strconv.Atoi(v)
		if perr != nil {
			err = fmt.Errorf("config error: %s must be an integer, got %q", key, v)
			return
		}
		*dst = n
	}
	float := func(key string, dst **float64) {
		v, ok := lookup(key)
		if !ok || v == "" || err != nil {
			return
		}
		f, perr := strconv.ParseFloat(v, 64)
		if perr != nil {
			err = fmt.Errorf("config error: %s must be a number, got %q", key, v)
			return
		}
		*dst = &f
	}
	optBool := func(key string, dst **bool) {
		var b bool
		if v, ok := lookup(key); ok && v != "" {
			if *dst != nil {
				b = **dst
			}
			boolean(key, &b)
			*dst = &b
		}
	}

	boolean("AI_CONTENT_GENERATION_ENABLED", &c.AI.Enabled)
	str("AI_PROVIDER", &c.AI.Provider)
	str("ANTHROPIC_API_KEY", &c.AI.APIKey)
	str("ANTHROPIC_MODEL", &c.AI.Model)
	integer("ANTHROPIC_MAX_TOKENS", &c.AI.MaxTokens)
	float("ANTHROPIC_TEMPERATURE", &c.AI.Temperature)
	str("AI_API_URL", &c.AI.APIURL)
	str("AI_SERVER_URL", &c.AI.ServerURL)
	str("AI_SERVER_API_KEY", &c.AI.ServerAPIKey)
	str("GEMINI_API_KEY", &c.AI.GeminiAPIKey)
	str("GEMINI_MODEL", &c.AI.GeminiModel)
	integer("AI_TIMEOUT", &c.AI.TimeoutSeconds)
	integer("AI_MAX_RETRIES", &c.AI.MaxRetries)
	integer("AI_RETRY_DELAY_MS", &c.AI.RetryDelayMS)

	str("DEFAULT_STYLE_LEVEL", &c.DefaultStyleLevel)
	optBool("USE_SEMANTIC_CLASSES", &c.UseSemanticClasses)
	optBool("TEMPLATE_FALLBACK", &c.TemplateFallback)

	str("DATABASE_URL", &c.DatabaseURL)
	str("SERVER_ADDR", &c.ServerAddr)
	boolean("RATE_LIMIT_DISABLED", &c.RateLimit.Disabled)
	integer("RATE_LIMIT_GENERATE_PER_MINUTE", &c.RateLimit.GeneratePerMinute)
	integer("RATE_LIMIT_SCORE_PER_MINUTE", &c.RateLimit.ScorePerMinute)
	str("LOG_LEVEL", &c.LogLevel)
	boolean("LOG_HUMAN", &c.LogHuman)

	return err
}
