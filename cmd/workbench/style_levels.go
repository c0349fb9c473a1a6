package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"
)

var styleLevelsCmd = &cobra.Command{
	Use:   "style-levels",
	Short: "List styling levels and their Tailwind classes",
	Args:  cobra.NoArgs,
	RunE:  runStyleLevels,
}

var (
	styleLevelsLevel   string
	styleLevelsClasses bool
)

// classesPerLine is how many class names share one output line.
const classesPerLine = 10

func init() {
	styleLevelsCmd.Flags().StringVar(&styleLevelsLevel, "level", "", "Show details for one level")
	styleLevelsCmd.Flags().BoolVar(&styleLevelsClasses, "classes", false, "Show the available classes")
	rootCmd.AddCommand(styleLevelsCmd)
}

func runStyleLevels(cmd *cobra.Command, _ []string) error {
	catalog := stylelevel.Default()
	out := cmd.OutOrStdout()

	if styleLevelsLevel == "" {
		printAllLevels(out, catalog)
		return nil
	}

	key := stylelevel.Level(strings.ToLower(styleLevelsLevel))
	info, ok := catalog.Get(key)
	if !ok {
		return fmt.Errorf("style level '%s' not found", styleLevelsLevel)
	}
	printLevel(out, catalog, info, styleLevelsClasses)
	return nil
}

//nolint:errcheck // terminal output
func printAllLevels(out io.Writer, catalog *stylelevel.Catalog) {
	fmt.Fprintln(out, "Available Styling Levels")
	fmt.Fprintln(out)
	for _, info := range catalog.All() {
		fmt.Fprintf(out, "%s (%s)\n", info.Name, info.Key)
		fmt.Fprintf(out, "  %s\n", info.Description)
		fmt.Fprintf(out, "  Class Density: %s\n", info.ClassDensity)
		fmt.Fprintf(out, "  Features: %s\n", strings.Join(info.Features, ", "))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "Use --level=<level> to see detailed class information")
	fmt.Fprintln(out, "Use --classes with --level to see all available classes")
}

//nolint:errcheck // terminal output
func printLevel(out io.Writer, catalog *stylelevel.Catalog, info stylelevel.Info, classes bool) {
	fmt.Fprintln(out, info.Name)
	fmt.Fprintln(out, info.Description)
	fmt.Fprintln(out)

	if !classes {
		fmt.Fprintln(out, "Features:")
		for _, f := range info.Features {
			fmt.Fprintf(out, "  • %s\n", f)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Add --classes to see all available Tailwind classes for this level")
		return
	}

	fmt.Fprintln(out, "Available Classes by Category:")
	fmt.Fprintln(out)
	for _, cat := range catalog.ClassesByCategory(info.Key) {
		fmt.Fprintln(out, cat.Category)
		for _, chunk := range chunk(cat.Classes, classesPerLine) {
			fmt.Fprintf(out, "  %s\n", strings.Join(chunk, ", "))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Total classes available: %d\n", len(catalog.FlattenedClasses(info.Key)))
}

func chunk(items []string, size int) [][]string {
	var out [][]string
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
