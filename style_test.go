package quotecard

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		{"#f59e0b", color.NRGBA{R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF}},
		{"1F2937", color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}},
		{"#abc", color.NRGBA{R: 0xAA, G: 0xBB, B: 0xCC, A: 0xFF}},
		{"#11223380", color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{" #000 ", color.NRGBA{A: 0xFF}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#", "#12", "#12345", "#GGGGGG", "red", "#1234567"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColor_FallsBackToBlack(t *testing.T) {
	assert.Equal(t, color.NRGBA{A: 0xFF}, Color("not-a-color").RGBA())
	assert.False(t, Color("not-a-color").Valid())
	assert.True(t, ColorAmber.Valid())
}

func TestColor_WithAlpha(t *testing.T) {
	assert.Equal(t, Color("#1F2937B3"), ColorInk.WithAlpha(0xB3))
	assert.Equal(t, color.NRGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xB3}, ColorInk.WithAlpha(0xB3).RGBA())
	assert.Equal(t, Color("#00000000"), Color("#fff8").WithAlpha(0), "invalid colors fall back to black")
}

func TestFontFamily_Known(t *testing.T) {
	for _, f := range FontFamilies {
		assert.True(t, f.Known(), f)
	}
	assert.True(t, FontFamily("MONTSERRAT").Known())
	assert.False(t, FontFamily("Helvetica").Known())
}

func TestTextStyle_LineHeight(t *testing.T) {
	assert.InDelta(t, 48.0, TextStyle{}.lineHeight(40), 1e-9)
	assert.InDelta(t, 54.0, TextStyle{LineSpacing: 1.35}.lineHeight(40), 1e-9)
}
