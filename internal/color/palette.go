package color

import (
	"math"
	"strings"
)

// Fixed semantic colors shared by every generated palette.
const (
	Success    = "#10B981"
	Warning    = "#F59E0B"
	Error      = "#EF4444"
	Neutral50  = "#F9FAFB"
	Neutral100 = "#F3F4F6"
	Neutral900 = "#111827"
)

// Mood selects the hue offsets used when deriving a palette from a primary color.
type Mood string

const (
	MoodWarm          Mood = "warm"
	MoodCool          Mood = "cool"
	MoodBalanced      Mood = "balanced"
	MoodComplementary Mood = "complementary"
)

var secondaryShift = map[Mood]float64{
	MoodWarm:          30,
	MoodCool:          -30,
	MoodBalanced:      60,
	MoodComplementary: 180,
}

var accentShift = map[Mood]float64{
	MoodWarm:          150,
	MoodCool:          210,
	MoodBalanced:      180,
	MoodComplementary: 120,
}

const (
	defaultSecondaryShift = 60
	defaultAccentShift    = 180
	accentSaturationBoost = 1.2
)

// Palette is a full brand palette.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Success    string `json:"success"`
	Warning    string `json:"warning"`
	Error      string `json:"error"`
	Neutral50  string `json:"neutral_50"`
	Neutral100 string `json:"neutral_100"`
	Neutral900 string `json:"neutral_900"`
}

// Slot is one named palette entry.
type Slot struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Slots returns the palette entries in display order.
func (p Palette) Slots() []Slot {
	return []Slot{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"success", p.Success},
		{"warning", p.Warning},
		{"error", p.Error},
		{"neutral_50", p.Neutral50},
		{"neutral_100", p.Neutral100},
		{"neutral_900", p.Neutral900},
	}
}

// Map returns the palette keyed by role name.
func (p Palette) Map() map[string]string {
	m := make(map[string]string, 9)
	for _, s := range p.Slots() {
		m[s.Name] = s.Hex
	}
	return m
}

func withFixedColors(primary, secondary, accent string) Palette {
	return Palette{
		Primary:    primary,
		Secondary:  secondary,
		Accent:     accent,
		Success:    Success,
		Warning:    Warning,
		Error:      Error,
		Neutral50:  Neutral50,
		Neutral100: Neutral100,
		Neutral900: Neutral900,
	}
}

// PaletteFromPrimary derives secondary and accent colors from primary by
// mood-keyed hue rotation. Unknown moods use the balanced defaults.
func PaletteFromPrimary(primary string, mood Mood) (Palette, error) {
	base, err := Normalize(primary)
	if err != nil {
		return Palette{}, err
	}

	shift, ok := secondaryShift[mood]
	if !ok {
		shift = defaultSecondaryShift
	}
	secondary, err := RotateHue(base, shift, 1)
	if err != nil {
		return Palette{}, err
	}

	shift2, ok := accentShift[mood]
	if !ok {
		shift2 = defaultAccentShift
	}
	accent, err := RotateHue(base, shift2, accentSaturationBoost)
	if err != nil {
		return Palette{}, err
	}

	return withFixedColors(base, secondary, accent), nil
}

// ShadeSteps lists the shade ramp keys in ascending order.
var ShadeSteps = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

var shadeAmounts = map[int]float64{
	50:  0.95,
	100: 0.9,
	200: 0.75,
	300: 0.5,
	400: 0.25,
	500: 0,
	600: -0.2,
	700: -0.4,
	800: -0.6,
	900: -0.8,
}

// ShadeRamp returns lighter and darker variations of hex keyed by step.
// Each channel moves by 255*amount and is clamped, so positive amounts
// approach white and negative amounts approach black. Step 500 is hex itself.
func ShadeRamp(hex string) (map[int]string, error) {
	base, err := HexToRGB(hex)
	if err != nil {
		return nil, err
	}
	out := make(map[int]string, len(ShadeSteps))
	for _, step := range ShadeSteps {
		out[step] = adjustBrightness(base, shadeAmounts[step])
	}
	return out, nil
}

func adjustBrightness(c RGB, amount float64) string {
	shift := func(v int) int {
		return int(math.Round(float64(v) + 255*amount))
	}
	return RGBToHex(RGB{R: shift(c.R), G: shift(c.G), B: shift(c.B)})
}

// Analogous returns the colors 30 degrees either side of hex.
func Analogous(hex string) ([]string, error) {
	return rotations(hex, -30, 30)
}

// Complementary returns the color opposite hex on the color wheel.
func Complementary(hex string) (string, error) {
	return RotateHue(hex, 180, 1)
}

// Triadic returns the two colors 120 and 240 degrees from hex.
func Triadic(hex string) ([]string, error) {
	return rotations(hex, 120, 240)
}

func rotations(hex string, degrees ...float64) ([]string, error) {
	out := make([]string, 0, len(degrees))
	for _, d := range degrees {
		c, err := RotateHue(hex, d, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// industryPalettes holds three hand-picked primary/secondary/accent sets per industry.
var industryPalettes = map[string][3][3]string{
	"technology": {
		{"#3B82F6", "#8B5CF6", "#10B981"},
		{"#06B6D4", "#6366F1", "#F59E0B"},
		{"#8B5CF6", "#EC4899", "#10B981"},
	},
	"finance": {
		{"#1E40AF", "#059669", "#F59E0B"},
		{"#065F46", "#1F2937", "#10B981"},
		{"#1E3A8A", "#475569", "#3B82F6"},
	},
	"healthcare": {
		{"#0EA5E9", "#10B981", "#06B6D4"},
		{"#059669", "#0284C7", "#10B981"},
		{"#06B6D4", "#6366F1", "#14B8A6"},
	},
	"local_services": {
		{"#F59E0B", "#3B82F6", "#10B981"},
		{"#EF4444", "#F59E0B", "#3B82F6"},
		{"#10B981", "#06B6D4", "#F59E0B"},
	},
	"creative": {
		{"#EC4899", "#8B5CF6", "#F97316"},
		{"#F97316", "#EC4899", "#8B5CF6"},
		{"#8B5CF6", "#F97316", "#06B6D4"},
	},
	"professional_services": {
		{"#1E40AF", "#64748B", "#0EA5E9"},
		{"#475569", "#1E40AF", "#3B82F6"},
		{"#1F2937", "#3B82F6", "#10B981"},
	},
	"ecommerce": {
		{"#EF4444", "#F59E0B", "#10B981"},
		{"#8B5CF6", "#EC4899", "#F59E0B"},
		{"#F59E0B", "#EF4444", "#10B981"},
	},
}

var industryOrder = []string{
	"technology",
	"finance",
	"healthcare",
	"local_services",
	"creative",
	"professional_services",
	"ecommerce",
}

// DefaultIndustry is used when an industry has no curated palettes.
const DefaultIndustry = "technology"

// Industries returns the industries with curated palettes in a stable order.
func Industries() []string {
	out := make([]string, len(industryOrder))
	copy(out, industryOrder)
	return out
}

// SuggestByIndustry returns curated palette number pick (wrapped into 0..2)
// for industry, falling back to technology.
func SuggestByIndustry(industry string, pick int) Palette {
	sets, ok := industryPalettes[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		sets = industryPalettes[DefaultIndustry]
	}
	idx := pick % len(sets)
	if idx < 0 {
		idx += len(sets)
	}
	set := sets[idx]
	return withFixedColors(set[0], set[1], set[2])
}
