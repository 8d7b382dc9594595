package quotecard

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a hex color string: "#RGB", "#RRGGBB" or "#RRGGBBAA".
// The leading "#" is optional. Colors are not validated when a card is
// drawn; a malformed value renders as opaque black.
type Color string

// Predefined colors.
const (
	ColorBlack Color = "#000000"
	ColorWhite Color = "#FFFFFF"
	ColorAmber Color = "#F59E0B"
	ColorInk   Color = "#1F2937"
)

var fallbackColor = color.NRGBA{A: 0xFF}

// RGBA returns the color as non-premultiplied RGBA, falling back to opaque
// black when the value cannot be parsed.
func (c Color) RGBA() color.NRGBA {
	rgba, err := ParseColor(string(c))
	if err != nil {
		return fallbackColor
	}
	return rgba
}

// Valid reports whether the color parses.
func (c Color) Valid() bool {
	_, err := ParseColor(string(c))
	return err == nil
}

// WithAlpha returns the color with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	rgba := c.RGBA()
	return Color(fmt.Sprintf("#%02X%02X%02X%02X", rgba.R, rgba.G, rgba.B, a))
}

// ParseColor parses a hex color string.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "FF"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	var b [4]uint8
	for i := range b {
		h, l := hexVal(hex[2*i]), hexVal(hex[2*i+1])
		if h < 0 || l < 0 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
		}
		b[i] = uint8(h<<4 | l)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// FontFamily names one of the font families a card can be set in.
type FontFamily string

const (
	FontInter           FontFamily = "Inter"
	FontPlayfairDisplay FontFamily = "Playfair Display"
	FontMontserrat      FontFamily = "Montserrat"
	FontRoboto          FontFamily = "Roboto"
	FontLora            FontFamily = "Lora"
)

// FontFamilies lists the selectable families in display order.
var FontFamilies = []FontFamily{FontInter, FontPlayfairDisplay, FontMontserrat, FontRoboto, FontLora}

// Known reports whether f is one of FontFamilies.
func (f FontFamily) Known() bool {
	for _, known := range FontFamilies {
		if strings.EqualFold(string(known), string(f)) {
			return true
		}
	}
	return false
}

// HorizontalAlignment represents horizontal text alignment.
type HorizontalAlignment string

const (
	HorizontalLeft   HorizontalAlignment = "left"
	HorizontalCenter HorizontalAlignment = "center"
	HorizontalRight  HorizontalAlignment = "right"
)

// anchor returns the gg anchor fraction for the alignment.
func (a HorizontalAlignment) anchor() float64 {
	switch a {
	case HorizontalCenter:
		return 0.5
	case HorizontalRight:
		return 1
	default:
		return 0
	}
}

// VerticalAlignment represents vertical placement of a text block in its box.
type VerticalAlignment string

const (
	VerticalTop    VerticalAlignment = "top"
	VerticalMiddle VerticalAlignment = "middle"
	VerticalBottom VerticalAlignment = "bottom"
)

// TextStyle describes how a text block is set.
// Size is the preferred size in pixels. When MinSize is set and smaller than
// Size, the block shrinks in 2px steps until it fits its box.
type TextStyle struct {
	Family      FontFamily
	Bold        bool
	Size        float64
	MinSize     float64
	LineSpacing float64 // multiple of the font size; 0 means 1.2
	Color       Color
	Align       HorizontalAlignment
	Vertical    VerticalAlignment
}

func (s TextStyle) lineHeight(size float64) float64 {
	spacing := s.LineSpacing
	if spacing <= 0 {
		spacing = 1.2
	}
	return size * spacing
}
