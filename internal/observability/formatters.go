// Package observability renders human-readable summaries for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexramsey92/ai-web-design-workbench/internal/color"
	"github.com/alexramsey92/ai-web-design-workbench/internal/compliance"
	"github.com/alexramsey92/ai-web-design-workbench/internal/generation"
	"github.com/alexramsey92/ai-web-design-workbench/internal/llm"
)

const (
	// boxWidth is the outer width of every box
	boxWidth = 60
	// maxItemsToShow caps list lengths inside a box
	maxItemsToShow = 5
)

// Printer writes boxed summaries to out.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

//nolint:errcheck // terminal output; nothing to recover
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

//nolint:errcheck // terminal output; nothing to recover
func (p *Printer) printBanner(text string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, text)
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func statusMark(s compliance.Status) string {
	switch s {
	case compliance.StatusPass:
		return "✓"
	case compliance.StatusWarning:
		return "⚠"
	case compliance.StatusFail:
		return "✗"
	}
	return "-"
}

// PrintComplianceReport summarizes a brand compliance report with the first
// few issues of each category.
func (p *Printer) PrintComplianceReport(r *compliance.Report) {
	if r == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall:  %d/100 (%s)\n", r.OverallScore, r.OverallStatus)
	fmt.Fprintf(&sb, "Issues:   %d\n", r.TotalIssues)

	cats := []struct {
		name string
		c    compliance.CategoryReport
	}{
		{"Colors", r.Categories.Colors},
		{"Typography", r.Categories.Typography},
		{"Voice", r.Categories.Voice},
		{"Accessibility", r.Categories.Accessibility},
	}
	for _, cat := range cats {
		sb.WriteString("\n")
		if cat.c.Status == compliance.StatusSkip {
			fmt.Fprintf(&sb, "- %s: skipped (%s)\n", cat.name, cat.c.Message)
			continue
		}
		fmt.Fprintf(&sb, "%s %s: %d\n", statusMark(cat.c.Status), cat.name, cat.c.Score)
		count := min(len(cat.c.Issues), maxItemsToShow)
		for i := 0; i < count; i++ {
			is := cat.c.Issues[i]
			fmt.Fprintf(&sb, "  [%s] %s\n", is.Severity, is.Message)
		}
		if len(cat.c.Issues) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(cat.c.Issues)-maxItemsToShow)
		}
	}

	p.printBox("BRAND COMPLIANCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGeneration summarizes a generated page.
func (p *Printer) PrintGeneration(res *generation.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:      %s\n", res.Source)
	fmt.Fprintf(&sb, "Style level: %s\n", res.StyleLevel)
	fmt.Fprintf(&sb, "Characters:  %d\n", res.CharacterCount)
	if len(res.Sections) > 0 {
		names := make([]string, len(res.Sections))
		for i, s := range res.Sections {
			names[i] = string(s)
		}
		fmt.Fprintf(&sb, "Sections:    %s\n", strings.Join(names, ", "))
	}
	if d := res.Diagnostics; d != nil {
		fmt.Fprintf(&sb, "Backend:     %s (%d attempt(s), %d ms)\n", d.Transport, d.Attempts, d.Response.DurationMS)
		fmt.Fprintf(&sb, "Request ID:  %s\n", d.RequestID)
	}
	if res.FallbackReason != "" {
		fmt.Fprintf(&sb, "Fallback:    %s\n", res.FallbackReason)
	}

	p.printBox("GENERATED PAGE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGuardrailIssues lists guardrail violations, or a clean banner.
func (p *Printer) PrintGuardrailIssues(issues []string) {
	if len(issues) == 0 {
		p.printBanner("✅ NO GUARDRAIL ISSUES")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d issues:\n\n", len(issues))
	count := min(len(issues), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		fmt.Fprintf(&sb, "⚠ %s\n", issues[i])
	}
	if len(issues) > count {
		fmt.Fprintf(&sb, "\n... and %d more", len(issues)-count)
	}
	p.printBox("GUARDRAIL ISSUES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPalette shows every palette slot with its hex value.
func (p *Printer) PrintPalette(title string, pal color.Palette) {
	var sb strings.Builder
	for _, slot := range pal.Slots() {
		fmt.Fprintf(&sb, "%-12s %s\n", slot.Name, slot.Hex)
	}
	p.printBox(strings.ToUpper(title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAIStatus shows the backend configuration. Credentials are reported
// only as configured or not.
func (p *Printer) PrintAIStatus(cfg llm.Config) {
	if !cfg.Enabled {
		p.printBox("AI CONTENT GENERATION", strings.Join([]string{
			"⚠ AI Content Generation is DISABLED",
			"",
			"To enable AI generation:",
			"1. Set AI_CONTENT_GENERATION_ENABLED=true",
			"2. Set the API key for your provider",
			"3. Configure model and generation settings as needed",
			"",
			"Template-based generation is used while AI is off.",
		}, "\n"))
		return
	}

	key := "(not set)"
	if cfg.APIKey != "" {
		key = "(configured)"
	}
	var sb strings.Builder
	sb.WriteString("✓ AI Content Generation is ENABLED\n\n")
	fmt.Fprintf(&sb, "Provider:    %s\n", cfg.Provider)
	if cfg.BaseURL != "" {
		fmt.Fprintf(&sb, "Endpoint:    %s\n", cfg.BaseURL)
	}
	fmt.Fprintf(&sb, "Model:       %s\n", cfg.Model)
	fmt.Fprintf(&sb, "API Key:     %s\n", key)
	fmt.Fprintf(&sb, "Max Tokens:  %d\n", cfg.MaxTokens)
	fmt.Fprintf(&sb, "Temperature: %g\n", cfg.Temperature)
	fmt.Fprintf(&sb, "Timeout:     %s\n", cfg.Timeout)
	fmt.Fprintf(&sb, "Retries:     %d every %s", cfg.MaxRetries, cfg.RetryDelay)
	p.printBox("AI CONTENT GENERATION", sb.String())
}
