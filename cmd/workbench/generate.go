package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/alexramsey92/ai-web-design-workbench/internal/generation"
	"github.com/alexramsey92/ai-web-design-workbench/internal/observability"
	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
	"github.com/alexramsey92/ai-web-design-workbench/internal/templates"
)

var generateCmd = &cobra.Command{
	Use:   "generate [type]",
	Short: "Generate a landing page",
	Long: "Generates page markup from the AI backend when it is enabled and from the built-in templates otherwise. " +
		"The type defaults to landing-page. Without --output the fragment is written to stdout.",
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateStyle       string
	generateOutput      string
	generateCompany     string
	generateHeadline    string
	generateSubheadline string
	generatePrompt      string
	generateSections    []string
	generateMaxTokens   int
	generateExample     int
	generatePreview     bool
	generateSemantic    bool
	generateBrandFile   string
)

func init() {
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "Style level: full, mid or low (default from config)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write a complete HTML document to this path")
	generateCmd.Flags().StringVar(&generateCompany, "company", "", "Company name")
	generateCmd.Flags().StringVar(&generateHeadline, "headline", "", "Hero headline")
	generateCmd.Flags().StringVar(&generateSubheadline, "subheadline", "", "Hero subheadline")
	generateCmd.Flags().StringVarP(&generatePrompt, "prompt", "p", "", "Brief for the AI backend")
	generateCmd.Flags().StringSliceVar(&generateSections, "sections", nil, "Sections to include (hero, features, cta, problem, testimonials, stats, footer)")
	generateCmd.Flags().IntVar(&generateMaxTokens, "max-tokens", 0, "Override the backend token limit")
	generateCmd.Flags().IntVar(&generateExample, "example", 0, "Use the Nth built-in example brief as the prompt")
	generateCmd.Flags().BoolVar(&generatePreview, "preview", false, "Open the output file in a browser")
	generateCmd.Flags().BoolVar(&generateSemantic, "semantic", true, "Use semantic CSS classes for templates")
	generateCmd.Flags().StringVar(&generateBrandFile, "brand-file", "", "Brand profile JSON applied to copy, colors and fonts")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("semantic") {
		semantic := generateSemantic
		cfg.UseSemanticClasses = &semantic
	}

	req, err := buildGenerateRequest(args)
	if err != nil {
		return err
	}

	var visual *brand.VisualIdentity
	if generateBrandFile != "" {
		profile, err := brand.LoadProfile(generateBrandFile)
		if err != nil {
			return err
		}
		req.ApplyProfile(profile)
		visual = profile.Visual
	}

	orch, client, err := newGenerator(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	errOut := cmd.ErrOrStderr()
	level := req.StyleLevel
	if level == "" {
		level = stylelevel.Level(cfg.DefaultStyleLevel)
	}
	_, _ = fmt.Fprintf(errOut, "Generating %s with %s styling...\n", generation.NormalizeType(string(req.Type)), level)

	printer := observability.NewPrinter(errOut)
	res, err := orch.Generate(cmd.Context(), req)
	if err != nil {
		printer.PrintGeneration(res)
		return fmt.Errorf("generation failed: %w", err)
	}

	if len(res.GuardrailIssues) > 0 {
		_, _ = fmt.Fprintln(errOut, "Validation warnings:")
		for _, issue := range res.GuardrailIssues {
			_, _ = fmt.Fprintf(errOut, "  - %s\n", issue)
		}
	}

	if generateOutput == "" {
		html := res.HTML
		if visual != nil {
			html = visual.Apply(html)
		}
		writeFragment(cmd.OutOrStdout(), html)
	} else {
		title := req.CompanyName
		opts := templates.DocumentOptions{Title: title, Variant: orch.Variant()}
		if visual != nil {
			opts.Stylesheets = visual.FontStylesheets()
		}
		doc, err := templates.WrapDocument(res.HTML, opts)
		if err != nil {
			return err
		}
		if visual != nil {
			doc = visual.Apply(doc)
		}
		if err := writeOutput(generateOutput, doc); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(errOut, "HTML saved to: %s\n", generateOutput)
	}

	printer.PrintGeneration(res)
	_, _ = fmt.Fprintln(errOut, "✓ HTML generated successfully!")

	if generatePreview && generateOutput != "" {
		if err := openInBrowser(generateOutput); err != nil {
			log.Error(err, "failed to open preview")
		}
	}
	return nil
}

func buildGenerateRequest(args []string) (generation.Request, error) {
	req := generation.Request{
		StyleLevel: stylelevel.Level(strings.ToLower(generateStyle)),
		Prompt:     generatePrompt,
		MaxTokens:  generateMaxTokens,
	}
	if len(args) > 0 {
		req.Type = generation.PageType(args[0])
	}
	if req.StyleLevel != "" && !stylelevel.Default().Exists(req.StyleLevel) {
		return req, fmt.Errorf("invalid style level: %s (available: %s, %s, %s)",
			generateStyle, stylelevel.Full, stylelevel.Mid, stylelevel.Low)
	}

	if generateExample != 0 {
		examples := generation.ExamplePrompts()
		if generateExample < 1 || generateExample > len(examples) {
			return req, fmt.Errorf("--example must be between 1 and %d", len(examples))
		}
		if req.Prompt == "" {
			req.Prompt = examples[generateExample-1]
		}
	}

	req.Sections = templates.ParseSections(generateSections)
	req.CompanyName = generateCompany
	req.Headline = generateHeadline
	req.Subheadline = generateSubheadline
	return req, nil
}

//nolint:errcheck // terminal output
func writeFragment(w io.Writer, html string) {
	rule := strings.Repeat("─", 41)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generated HTML:")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, html)
	fmt.Fprintln(w, rule)
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func openInBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		c = exec.Command("cmd", "/c", "start", "", abs)
	case "darwin":
		c = exec.Command("open", abs)
	default:
		c = exec.Command("xdg-open", abs)
	}
	return c.Start()
}
