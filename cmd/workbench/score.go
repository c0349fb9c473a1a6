package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexramsey92/ai-web-design-workbench/internal/brand"
	"github.com/alexramsey92/ai-web-design-workbench/internal/compliance"
	"github.com/alexramsey92/ai-web-design-workbench/internal/config"
	"github.com/alexramsey92/ai-web-design-workbench/internal/db"
	"github.com/alexramsey92/ai-web-design-workbench/internal/fetch"
	"github.com/alexramsey92/ai-web-design-workbench/internal/logger"
	"github.com/alexramsey92/ai-web-design-workbench/internal/observability"
	"github.com/alexramsey92/ai-web-design-workbench/internal/schemas"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a page against a brand",
	Long: "Checks colors, typography, voice and accessibility of an HTML file or a live URL " +
		"against a brand profile file or a stored brand.",
	Args: cobra.NoArgs,
	RunE: runScore,
}

var (
	scoreFile      string
	scoreURL       string
	scoreBrowser   bool
	scoreBrandFile string
	scoreBrand     string
	scoreJSON      bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "HTML file to score")
	scoreCmd.Flags().StringVarP(&scoreURL, "url", "u", "", "Live page to fetch and score")
	scoreCmd.Flags().BoolVar(&scoreBrowser, "browser", false, "Render the URL in headless Chrome")
	scoreCmd.Flags().StringVar(&scoreBrandFile, "brand-file", "", "Brand profile JSON")
	scoreCmd.Flags().StringVar(&scoreBrand, "brand", "", "Stored brand slug (needs DATABASE_URL)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the report as JSON")
	scoreCmd.MarkFlagsMutuallyExclusive("file", "url")
	scoreCmd.MarkFlagsOneRequired("file", "url")
	scoreCmd.MarkFlagsMutuallyExclusive("brand-file", "brand")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	profile, err := loadBrand(cmd, cfg, scoreBrandFile, scoreBrand, log)
	if err != nil {
		return err
	}

	var markup, text string
	if scoreFile != "" {
		data, err := os.ReadFile(scoreFile)
		if err != nil {
			return fmt.Errorf("failed to read HTML file: %w", err)
		}
		markup = string(data)
	} else {
		page, err := fetch.Page(cmd.Context(), scoreURL, fetch.PageOptions{
			Browser:         scoreBrowser,
			BrowserFallback: scoreBrowser,
			Log:             log,
		})
		if err != nil {
			return err
		}
		markup, text = page.HTML, page.Text
	}
	if text == "" {
		text = compliance.TextFromHTML(markup)
	}

	var visual *brand.VisualIdentity
	var voice *brand.VoiceProfile
	if profile != nil {
		visual, voice = profile.Visual, profile.Voice
	}
	report := compliance.Evaluate(visual, voice, markup, text)

	if !scoreJSON {
		observability.NewPrinter(cmd.OutOrStdout()).PrintComplianceReport(&report)
		return nil
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := schemas.Validate(schemas.ComplianceReport, data); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			log.Warn("report does not match the compliance report schema: " + err.Error())
		} else {
			log.Error(err, "could not validate report against schema")
		}
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// loadBrand reads a profile file or a stored brand. Both empty means no
// brand.
func loadBrand(cmd *cobra.Command, cfg *config.Config, file, slug string, log *logger.Logger) (*brand.Profile, error) {
	switch {
	case file != "":
		return brand.LoadProfile(file)
	case slug != "":
		store, err := db.Connect(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		p, err := store.GetProfileBySlug(cmd.Context(), slug)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("brand not found: %s", slug)
		}
		log.With("brand", slug).Debug("loaded stored brand")
		return p, nil
	}
	return nil, nil
}
