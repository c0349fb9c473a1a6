package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var brandCSSCmd = &cobra.Command{
	Use:   "brand-css [slug]",
	Short: "Print a brand's CSS custom properties",
	Long:  "Prints the :root CSS variables for a brand profile file or a stored brand slug.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrandCSS,
}

var (
	brandCSSFile     string
	brandCSSTailwind bool
)

func init() {
	brandCSSCmd.Flags().StringVarP(&brandCSSFile, "file", "f", "", "Brand profile JSON")
	brandCSSCmd.Flags().BoolVar(&brandCSSTailwind, "tailwind", false, "Print the Tailwind theme extension instead")
	rootCmd.AddCommand(brandCSSCmd)
}

func runBrandCSS(cmd *cobra.Command, args []string) error {
	var slug string
	if len(args) > 0 {
		slug = args[0]
	}
	if (slug == "") == (brandCSSFile == "") {
		return fmt.Errorf("provide either a brand slug or --file")
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	p, err := loadBrand(cmd, cfg, brandCSSFile, slug, log)
	if err != nil {
		return err
	}
	if p.Visual == nil {
		return fmt.Errorf("brand %s has no visual identity", p.Name)
	}

	out := cmd.OutOrStdout()
	if brandCSSTailwind {
		data, err := json.MarshalIndent(p.Visual.TailwindConfig(), "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}
	_, _ = fmt.Fprint(out, p.Visual.CSSVariables())
	return nil
}
