// Package color implements hex/RGB/HSL conversion, WCAG contrast math and
// palette derivation for brand colors.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color with channels in [0,255].
type RGB struct {
	R, G, B int
}

// HSL is a color with hue in [0,360) and saturation/lightness in [0,1].
type HSL struct {
	H, S, L float64
}

// InvalidHexError is returned when a string cannot be parsed as a hex color.
type InvalidHexError struct {
	Value string
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("invalid hex color %q", e.Value)
}

// HexToRGB parses a 3- or 6-digit hex color. The leading '#' is optional.
func HexToRGB(hex string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, &InvalidHexError{Value: hex}
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, &InvalidHexError{Value: hex}
	}
	return RGB{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, nil
}

// RGBToHex formats c as uppercase #RRGGBB, clamping each channel first.
func RGBToHex(c RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", clampChannel(c.R), clampChannel(c.G), clampChannel(c.B))
}

// Normalize returns hex in canonical #RRGGBB form.
func Normalize(hex string) (string, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return "", err
	}
	return RGBToHex(c), nil
}

// ToHSL converts c to HSL. Achromatic colors have zero hue and saturation.
func (c RGB) ToHSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2
	if max == min {
		return HSL{H: 0, S: 0, L: l}
	}

	d := max - min
	var s float64
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	var h float64
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return HSL{H: h * 60, S: s, L: l}
}

// ToRGB converts an HSL color back to RGB, rounding each channel.
func (c HSL) ToRGB() RGB {
	h := math.Mod(c.H, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	s := clampUnit(c.S)
	l := clampUnit(c.L)

	if s == 0 {
		v := int(math.Round(l * 255))
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return RGB{
		R: int(math.Round(hueToRGB(p, q, h+1.0/3) * 255)),
		G: int(math.Round(hueToRGB(p, q, h) * 255)),
		B: int(math.Round(hueToRGB(p, q, h-1.0/3) * 255)),
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// HexToHSL parses hex and converts it to HSL.
func HexToHSL(hex string) (HSL, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return HSL{}, err
	}
	return c.ToHSL(), nil
}

// HSLToHex converts h, s, l to #RRGGBB.
func HSLToHex(h, s, l float64) string {
	return RGBToHex(HSL{H: h, S: s, L: l}.ToRGB())
}

// RelativeLuminance returns the WCAG relative luminance of c.
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel int) float64 {
	v := float64(clampChannel(channel)) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio of two luminance values.
// The result is symmetric and never below 1.
func ContrastRatio(l1, l2 float64) float64 {
	hi := math.Max(l1, l2)
	lo := math.Min(l1, l2)
	return (hi + 0.05) / (lo + 0.05)
}

// WCAGAAThreshold is the minimum contrast ratio for normal text.
const WCAGAAThreshold = 4.5

// Contrast returns the contrast ratio between two hex colors.
func Contrast(fg, bg string) (float64, error) {
	a, err := HexToRGB(fg)
	if err != nil {
		return 0, err
	}
	b, err := HexToRGB(bg)
	if err != nil {
		return 0, err
	}
	return ContrastRatio(RelativeLuminance(a), RelativeLuminance(b)), nil
}

// ValidateContrast reports whether fg on bg meets WCAG AA for normal text.
// Unparseable colors never pass.
func ValidateContrast(fg, bg string) bool {
	ratio, err := Contrast(fg, bg)
	if err != nil {
		return false
	}
	return ratio >= WCAGAAThreshold
}

// RotateHue shifts the hue of hex by degrees (wrapping) and scales its
// saturation by satMul, clamped to [0,1].
func RotateHue(hex string, degrees, satMul float64) (string, error) {
	hsl, err := HexToHSL(hex)
	if err != nil {
		return "", err
	}
	h := math.Mod(hsl.H+degrees, 360)
	if h < 0 {
		h += 360
	}
	return HSLToHex(h, math.Min(1, math.Max(0, hsl.S*satMul)), hsl.L), nil
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
