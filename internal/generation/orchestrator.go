package generation

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/alexramsey92/ai-web-design-workbench/internal/guardrails"
	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
)

// Source says where a page's markup came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceTemplate Source = "template"
)

// Generator is the AI backend. *llm.Client satisfies it.
type Generator interface {
	Enabled() bool
	Generate(ctx context.Context, prompt string, gctx llm.GenerationContext) (*llm.Result, error)
}

// Options configures an Orchestrator.
type Options struct {
	DefaultStyleLevel stylelevel.Level
	Variant           templates.Variant
	// TemplateFallback assembles the templates when the backend fails.
	TemplateFallback bool
	// Format pretty-prints the markup before the guardrail check.
	Format     bool
	Guardrails guardrails.Guardrails
}

// Result is a generated page.
type Result struct {
	HTML            string              `json:"html"`
	CharacterCount  int                 `json:"character_count"`
	StyleLevel      stylelevel.Level    `json:"style_level"`
	Source          Source              `json:"source"`
	Sections        []templates.Section `json:"sections,omitempty"`
	GuardrailIssues []string            `json:"guardrail_issues"`
	Diagnostics     *llm.Diagnostics    `json:"diagnostics,omitempty"`
	FallbackReason  string              `json:"fallback_reason,omitempty"`
}

// Orchestrator validates requests and routes them to the backend or the
// templates. It is safe for concurrent use.
type Orchestrator struct {
	ai        Generator
	assembler *templates.Assembler
	opts      Options
	log       *logger.Logger
}

// New returns an Orchestrator. ai may be nil for template-only operation.
func New(ai Generator, opts Options, log *logger.Logger) (*Orchestrator, error) {
	if opts.Variant == "" {
		opts.Variant = templates.VariantSemantic
	}
	if !opts.DefaultStyleLevel.Valid() {
		opts.DefaultStyleLevel = stylelevel.DefaultLevel
	}
	if opts.Guardrails.MaxNestingDepth == 0 && opts.Guardrails.MaxElementCount == 0 {
		opts.Guardrails = guardrails.Default()
	}

	assembler, err := templates.New(opts.Variant)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{ai: ai, assembler: assembler, opts: opts, log: log}, nil
}

// AIEnabled reports whether requests go to the backend first.
func (o *Orchestrator) AIEnabled() bool {
	return o.ai != nil && o.ai.Enabled()
}

// Variant is the template family used for template generation.
func (o *Orchestrator) Variant() templates.Variant {
	return o.assembler.Variant()
}

// Generate validates req and produces a page. Validation failures return a
// *validation.Error before any generation. Backend failures fall back to the
// templates when TemplateFallback is set; otherwise the error is returned
// with a Result holding the backend diagnostics.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	level := req.StyleLevel
	if level == "" {
		level = o.opts.DefaultStyleLevel
	}
	res := &Result{StyleLevel: level}
	log := o.log.With("style_level", level)

	html, err := o.fromAI(ctx, req, res)
	switch {
	case err == nil && res.Source == SourceAI:
	case err != nil && !(o.opts.TemplateFallback && fallbackable(err)):
		return res, err
	default:
		if err != nil {
			res.FallbackReason = err.Error()
			log.With("reason", res.FallbackReason).Warn("AI generation failed, using templates")
		}
		html, err = o.fromTemplates(req, level, res)
		if err != nil {
			return res, err
		}
	}

	if o.opts.Format {
		html = Format(html)
	}
	res.HTML = html
	res.CharacterCount = utf8.RuneCountInString(html)
	res.GuardrailIssues = guardrails.Validate(html, o.opts.Guardrails)
	if res.GuardrailIssues == nil {
		res.GuardrailIssues = []string{}
	}

	log.WithFields(map[string]any{
		"source":           res.Source,
		"characters":       res.CharacterCount,
		"guardrail_issues": len(res.GuardrailIssues),
	}).Info("page generated")
	return res, nil
}

// fromAI returns ("", nil) without touching res.Source when no backend is enabled.
func (o *Orchestrator) fromAI(ctx context.Context, req Request, res *Result) (string, error) {
	if !o.AIEnabled() {
		return "", nil
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	gctx := llm.GenerationContext{
		Type:       string(req.Type),
		StyleLevel: res.StyleLevel,
		MaxTokens:  req.MaxTokens,
	}
	if req.Voice != nil {
		gctx.VoiceInstructions = req.Voice.AIInstructions()
	}

	out, err := o.ai.Generate(ctx, prompt, gctx)
	if out != nil {
		diag := out.Diagnostics
		res.Diagnostics = &diag
	}
	if err != nil {
		return "", err
	}
	res.Source = SourceAI
	return out.HTML, nil
}

func (o *Orchestrator) fromTemplates(req Request, level stylelevel.Level, res *Result) (string, error) {
	sections := req.Sections
	if len(sections) == 0 {
		sections = templates.DefaultSections
	}
	html, err := o.assembler.Assemble(sections, level, req.Options)
	if err != nil {
		return "", err
	}
	res.Source = SourceTemplate
	res.Sections = sections
	return html, nil
}

// fallbackable reports whether err is a backend condition the templates can
// stand in for.
func fallbackable(err error) bool {
	var cfgErr *llm.ConfigurationError
	var failure *llm.GenerationFailure
	return errors.As(err, &cfgErr) || errors.As(err, &failure)
}
