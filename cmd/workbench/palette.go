package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexramsey92/ai-web-design-workbench/internal/color"
	"github.com/alexramsey92/ai-web-design-workbench/internal/observability"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Build a brand palette from a primary color or an industry",
	Args:  cobra.NoArgs,
	RunE:  runPalette,
}

var (
	palettePrimary  string
	paletteMood     string
	paletteIndustry string
	palettePick     int
	paletteJSON     bool
)

func init() {
	paletteCmd.Flags().StringVar(&palettePrimary, "primary", "", "Primary color as #RRGGBB")
	paletteCmd.Flags().StringVar(&paletteMood, "mood", string(color.MoodBalanced), "warm, cool, balanced or complementary")
	paletteCmd.Flags().StringVar(&paletteIndustry, "industry", "", "Industry for a curated palette ("+strings.Join(color.Industries(), ", ")+")")
	paletteCmd.Flags().IntVar(&palettePick, "pick", 0, "Which curated palette to use for the industry")
	paletteCmd.Flags().BoolVar(&paletteJSON, "json", false, "Print the palette as JSON")
	paletteCmd.MarkFlagsOneRequired("primary", "industry")

	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, _ []string) error {
	var (
		p     color.Palette
		title string
		err   error
	)
	if palettePrimary != "" {
		p, err = color.PaletteFromPrimary(palettePrimary, color.Mood(strings.ToLower(paletteMood)))
		if err != nil {
			return err
		}
		title = "Palette (" + paletteMood + ")"
	} else {
		p = color.SuggestByIndustry(paletteIndustry, palettePick)
		title = "Palette for " + paletteIndustry
	}

	shades, err := color.ShadeRamp(p.Primary)
	if err != nil {
		return err
	}
	ratio, err := color.Contrast(p.Primary, "#FFFFFF")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if paletteJSON {
		data, err := json.MarshalIndent(map[string]any{
			"palette":             p,
			"shades":              shades,
			"contrast_on_white":   ratio,
			"accessible_on_white": color.ValidateContrast(p.Primary, "#FFFFFF"),
		}, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	observability.NewPrinter(out).PrintPalette(title, p)
	for _, step := range color.ShadeSteps {
		_, _ = fmt.Fprintf(out, "  %-4d %s\n", step, shades[step])
	}
	mark := "✓"
	if !color.ValidateContrast(p.Primary, "#FFFFFF") {
		mark = "✗"
	}
	_, _ = fmt.Fprintf(out, "%s Contrast on white: %.2f:1\n", mark, ratio)
	return nil
}
