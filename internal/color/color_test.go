package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleColors = []string{
	"#3B82F6", "#000000", "#FFFFFF", "#FF0000", "#10B981", "#F59E0B",
	"#EF4444", "#111827", "#8B5CF6", "#EC4899", "#7F7F7F", "#1E40AF",
}

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "six digits", input: "#3B82F6", want: RGB{59, 130, 246}},
		{name: "no hash", input: "3b82f6", want: RGB{59, 130, 246}},
		{name: "three digits", input: "#fff", want: RGB{255, 255, 255}},
		{name: "three digits expanded", input: "#1a2", want: RGB{0x11, 0xAA, 0x22}},
		{name: "bad length", input: "#12345", wantErr: true},
		{name: "not hex", input: "#GGGGGG", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HexToRGB(tt.input)
			if tt.wantErr {
				var hexErr *InvalidHexError
				assert.ErrorAs(t, err, &hexErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRGBToHex_Clamps(t *testing.T) {
	assert.Equal(t, "#FF0010", RGBToHex(RGB{R: 300, G: -5, B: 16}))
	assert.Equal(t, "#3B82F6", RGBToHex(RGB{59, 130, 246}))
}

func TestRGBRoundTrip(t *testing.T) {
	for _, c := range sampleColors {
		rgb, err := HexToRGB(c)
		require.NoError(t, err)
		assert.Equal(t, c, RGBToHex(rgb))
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for _, c := range sampleColors {
		hsl, err := HexToHSL(c)
		require.NoError(t, err)
		back, err := HexToRGB(HSLToHex(hsl.H, hsl.S, hsl.L))
		require.NoError(t, err)
		orig, _ := HexToRGB(c)
		assert.InDelta(t, orig.R, back.R, 1, c)
		assert.InDelta(t, orig.G, back.G, 1, c)
		assert.InDelta(t, orig.B, back.B, 1, c)
	}
}

func TestToHSL_Achromatic(t *testing.T) {
	hsl := RGB{128, 128, 128}.ToHSL()
	assert.Equal(t, 0.0, hsl.H)
	assert.Equal(t, 0.0, hsl.S)
	assert.InDelta(t, 0.502, hsl.L, 0.001)
}

func TestContrastRatio(t *testing.T) {
	black := RelativeLuminance(RGB{0, 0, 0})
	white := RelativeLuminance(RGB{255, 255, 255})
	assert.InDelta(t, 21.0, ContrastRatio(black, white), 0.001)
	assert.Equal(t, ContrastRatio(black, white), ContrastRatio(white, black))

	for _, c := range sampleColors {
		rgb, _ := HexToRGB(c)
		l := RelativeLuminance(rgb)
		assert.Equal(t, 1.0, ContrastRatio(l, l), c)
		assert.GreaterOrEqual(t, ContrastRatio(l, white), 1.0)
		assert.GreaterOrEqual(t, ContrastRatio(black, l), 1.0)
	}
}

func TestValidateContrast(t *testing.T) {
	assert.True(t, ValidateContrast("#000000", "#FFFFFF"))
	assert.False(t, ValidateContrast("#777777", "#FFFFFF"))
	assert.False(t, ValidateContrast("nope", "#FFFFFF"))
}

func TestRotateHue(t *testing.T) {
	tests := []struct {
		name    string
		degrees float64
		want    string
	}{
		{name: "plus 120", degrees: 120, want: "#00FF00"},
		{name: "negative wraps", degrees: -120, want: "#0000FF"},
		{name: "full turn", degrees: 360, want: "#FF0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RotateHue("#FF0000", tt.degrees, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRotateHue_SaturationClamped(t *testing.T) {
	got, err := RotateHue("#FF0000", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, "#FF0000", got)

	gray, err := RotateHue("#FF0000", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "#808080", gray)
}

func TestRotateHue_InvalidHex(t *testing.T) {
	_, err := RotateHue("zzz", 30, 1)
	assert.Error(t, err)
}
