package llm

import (
	"strings"

	"github.com/alexramsey92/ai-web-design-workbench/internal/prompts"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
)

// SemanticClasses is the semantic class vocabulary offered to the model.
var SemanticClasses = []string{"hero", "section", "feature-grid", "feature-card", "cta-button", "btn-primary", "btn-secondary", "prose", "card"}

// WhitelistLimit caps the classes listed in the system prompt.
const WhitelistLimit = 100

// GenerationContext carries per-call settings alongside the prompt.
type GenerationContext struct {
	Type              string           `json:"type,omitempty"`
	StyleLevel        stylelevel.Level `json:"style_level"`
	MaxTokens         int              `json:"max_tokens,omitempty"`
	VoiceInstructions string           `json:"voice_instructions,omitempty"`
}

// Whitelist returns the utility classes permitted at level.
func Whitelist(level stylelevel.Level) []string {
	if !level.Valid() {
		level = stylelevel.DefaultLevel
	}
	return stylelevel.Default().FlattenedClasses(level)
}

func summarizeWhitelist(classes []string) string {
	if len(classes) <= WhitelistLimit {
		return strings.Join(classes, ", ")
	}
	return strings.Join(classes[:WhitelistLimit], ", ") + " (and more)"
}

// BuildSystemPrompt composes the system prompt from the class whitelist and
// optional brand voice instructions.
func BuildSystemPrompt(whitelist []string, voiceInstructions string) (string, error) {
	system, err := prompts.Render(prompts.Generation, "system", map[string]string{
		"SemanticClasses": strings.Join(SemanticClasses, ", "),
		"Whitelist":       summarizeWhitelist(whitelist),
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(voiceInstructions) == "" {
		return system, nil
	}
	voice, err := prompts.Render(prompts.Generation, "voice", map[string]string{"Instructions": voiceInstructions})
	if err != nil {
		return "", err
	}
	return system + voice, nil
}

// BuildUserPrompt wraps the free-text brief with the closing instructions.
func BuildUserPrompt(request string) (string, error) {
	return prompts.Render(prompts.Generation, "user", map[string]string{"Request": request})
}
