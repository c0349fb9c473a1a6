// Package brand models an organization's visual identity and voice, and
// derives CSS variables, Tailwind theme config and generation instructions
// from them.
package brand

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexramsey92/ai-web-design-workbench/internal/color"
)

// VisualIdentity is a brand's palette, typography and shape settings.
// Secondary and accent are optional; empty means unset.
type VisualIdentity struct {
	PrimaryColor   string `json:"primary_color" validate:"required,hexcolor"`
	SecondaryColor string `json:"secondary_color,omitempty" validate:"omitempty,hexcolor"`
	AccentColor    string `json:"accent_color,omitempty" validate:"omitempty,hexcolor"`
	SuccessColor   string `json:"success_color" validate:"required,hexcolor"`
	WarningColor   string `json:"warning_color" validate:"required,hexcolor"`
	ErrorColor     string `json:"error_color" validate:"required,hexcolor"`
	Neutral50      string `json:"neutral_50" validate:"omitempty,hexcolor"`
	Neutral100     string `json:"neutral_100" validate:"omitempty,hexcolor"`
	Neutral900     string `json:"neutral_900" validate:"omitempty,hexcolor"`

	HeadingFont    string `json:"heading_font" validate:"required"`
	HeadingFontURL string `json:"heading_font_url,omitempty" validate:"omitempty,url"`
	BodyFont       string `json:"body_font" validate:"required"`
	BodyFontURL    string `json:"body_font_url,omitempty" validate:"omitempty,url"`
	CodeFont       string `json:"code_font" validate:"required"`

	SpacingUnit    int `json:"spacing_unit" validate:"gte=1"`
	BorderRadiusSM int `json:"border_radius_sm" validate:"gte=0"`
	BorderRadiusMD int `json:"border_radius_md" validate:"gte=0"`
	BorderRadiusLG int `json:"border_radius_lg" validate:"gte=0"`

	UseShadows    bool `json:"use_shadows"`
	UseGradients  bool `json:"use_gradients"`
	UseAnimations bool `json:"use_animations"`
}

// DefaultVisualIdentity returns the identity new brands start from.
func DefaultVisualIdentity() VisualIdentity {
	return VisualIdentity{
		PrimaryColor:   "#3B82F6",
		SuccessColor:   color.Success,
		WarningColor:   color.Warning,
		ErrorColor:     color.Error,
		Neutral50:      color.Neutral50,
		Neutral100:     color.Neutral100,
		Neutral900:     color.Neutral900,
		HeadingFont:    "Inter",
		BodyFont:       "Inter",
		CodeFont:       "JetBrains Mono",
		SpacingUnit:    4,
		BorderRadiusSM: 4,
		BorderRadiusMD: 8,
		BorderRadiusLG: 12,
		UseShadows:     true,
		UseGradients:   true,
		UseAnimations:  true,
	}
}

// UnmarshalJSON decodes over DefaultVisualIdentity so omitted fields keep
// their defaults.
func (v *VisualIdentity) UnmarshalJSON(data []byte) error {
	type plain VisualIdentity
	p := plain(DefaultVisualIdentity())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = VisualIdentity(p)
	return nil
}

// NamedColor is one palette entry.
type NamedColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Colors returns the configured palette in a fixed order, skipping unset entries.
func (v VisualIdentity) Colors() []NamedColor {
	all := []NamedColor{
		{"primary", v.PrimaryColor},
		{"secondary", v.SecondaryColor},
		{"accent", v.AccentColor},
		{"success", v.SuccessColor},
		{"warning", v.WarningColor},
		{"error", v.ErrorColor},
		{"neutral-50", v.Neutral50},
		{"neutral-100", v.Neutral100},
		{"neutral-900", v.Neutral900},
	}
	out := all[:0]
	for _, c := range all {
		if c.Hex != "" {
			out = append(out, c)
		}
	}
	return out
}

// HasColor reports whether hex equals any palette color, ignoring case.
func (v VisualIdentity) HasColor(hex string) bool {
	for _, c := range v.Colors() {
		if strings.EqualFold(c.Hex, hex) {
			return true
		}
	}
	return false
}

// CSSVariables renders the identity as a :root custom property block.
func (v VisualIdentity) CSSVariables() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --brand-primary: %s;\n", v.PrimaryColor)
	if v.SecondaryColor != "" {
		fmt.Fprintf(&b, "  --brand-secondary: %s;\n", v.SecondaryColor)
	}
	if v.AccentColor != "" {
		fmt.Fprintf(&b, "  --brand-accent: %s;\n", v.AccentColor)
	}
	fmt.Fprintf(&b, "  --brand-success: %s;\n", v.SuccessColor)
	fmt.Fprintf(&b, "  --brand-warning: %s;\n", v.WarningColor)
	fmt.Fprintf(&b, "  --brand-error: %s;\n", v.ErrorColor)
	fmt.Fprintf(&b, "  --font-heading: '%s', sans-serif;\n", v.HeadingFont)
	fmt.Fprintf(&b, "  --font-body: '%s', sans-serif;\n", v.BodyFont)
	fmt.Fprintf(&b, "  --font-code: '%s', monospace;\n", v.CodeFont)
	fmt.Fprintf(&b, "  --spacing-unit: %dpx;\n", v.SpacingUnit)
	fmt.Fprintf(&b, "  --radius-sm: %dpx;\n", v.BorderRadiusSM)
	fmt.Fprintf(&b, "  --radius-md: %dpx;\n", v.BorderRadiusMD)
	fmt.Fprintf(&b, "  --radius-lg: %dpx;\n", v.BorderRadiusLG)
	b.WriteString("}\n")
	return b.String()
}

// TailwindConfig is the theme.extend block for a Tailwind configuration.
type TailwindConfig struct {
	Colors struct {
		Brand struct {
			Primary   string `json:"primary"`
			Secondary string `json:"secondary"`
			Accent    string `json:"accent"`
		} `json:"brand"`
		Success string `json:"success"`
		Warning string `json:"warning"`
		Error   string `json:"error"`
	} `json:"colors"`
	FontFamily struct {
		Heading []string `json:"heading"`
		Body    []string `json:"body"`
		Mono    []string `json:"mono"`
	} `json:"fontFamily"`
	Spacing struct {
		Unit string `json:"unit"`
	} `json:"spacing"`
	BorderRadius struct {
		SM string `json:"sm"`
		MD string `json:"md"`
		LG string `json:"lg"`
	} `json:"borderRadius"`
}

// TailwindConfig maps the identity onto Tailwind theme keys. Missing
// secondary and accent colors fall back to the primary color.
func (v VisualIdentity) TailwindConfig() TailwindConfig {
	var tc TailwindConfig
	tc.Colors.Brand.Primary = v.PrimaryColor
	tc.Colors.Brand.Secondary = orPrimary(v.SecondaryColor, v.PrimaryColor)
	tc.Colors.Brand.Accent = orPrimary(v.AccentColor, v.PrimaryColor)
	tc.Colors.Success = v.SuccessColor
	tc.Colors.Warning = v.WarningColor
	tc.Colors.Error = v.ErrorColor
	tc.FontFamily.Heading = []string{v.HeadingFont, "sans-serif"}
	tc.FontFamily.Body = []string{v.BodyFont, "sans-serif"}
	tc.FontFamily.Mono = []string{v.CodeFont, "monospace"}
	tc.Spacing.Unit = fmt.Sprintf("%dpx", v.SpacingUnit)
	tc.BorderRadius.SM = fmt.Sprintf("%dpx", v.BorderRadiusSM)
	tc.BorderRadius.MD = fmt.Sprintf("%dpx", v.BorderRadiusMD)
	tc.BorderRadius.LG = fmt.Sprintf("%dpx", v.BorderRadiusLG)
	return tc
}

func orPrimary(c, primary string) string {
	if c == "" {
		return primary
	}
	return c
}

// FontStylesheets returns the font stylesheet URLs to load, without duplicates.
func (v VisualIdentity) FontStylesheets() []string {
	var out []string
	if v.HeadingFontURL != "" {
		out = append(out, v.HeadingFontURL)
	}
	if v.BodyFontURL != "" && v.BodyFontURL != v.HeadingFontURL {
		out = append(out, v.BodyFontURL)
	}
	return out
}

var genericColorClasses = []string{"bg-blue-600", "text-blue-600", "border-blue-600"}

// Apply rewrites generic blue utility classes to the brand primary color and
// injects font stylesheet links before </head> when the markup has one.
func (v VisualIdentity) Apply(markup string) string {
	pairs := make([]string, 0, len(genericColorClasses)*2)
	for _, cls := range genericColorClasses {
		prefix := strings.TrimSuffix(cls, "-blue-600")
		pairs = append(pairs, cls, prefix+"-["+v.PrimaryColor+"]")
	}
	markup = strings.NewReplacer(pairs...).Replace(markup)

	links := v.FontStylesheets()
	if len(links) == 0 {
		return markup
	}
	idx := strings.Index(strings.ToLower(markup), "</head>")
	if idx < 0 {
		return markup
	}
	var b strings.Builder
	for _, href := range links {
		fmt.Fprintf(&b, "<link rel=\"stylesheet\" href=\"%s\">\n", href)
	}
	return markup[:idx] + b.String() + markup[idx:]
}
