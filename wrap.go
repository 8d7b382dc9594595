package quotecard

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureFunc returns the rendered width of s in pixels.
type MeasureFunc func(s string) float64

// faceMeasure measures strings with a font face.
func faceMeasure(face font.Face) MeasureFunc {
	return func(s string) float64 {
		return float64(font.MeasureString(face, s)) / 64
	}
}

// Wrap breaks text into lines no wider than maxWidth using greedy,
// space-delimited packing. A word that alone is wider than maxWidth is
// emitted unsplit on its own line. Lines carry no trailing space, so
// re-wrapping strings.Join(lines, " ") yields the same lines.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := current + word + " "
		if measure(candidate) > maxWidth && current != "" {
			lines = append(lines, strings.TrimRight(current, " "))
			current = word + " "
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, strings.TrimRight(current, " "))
	}
	return lines
}

// Ellipsis terminates a text block cut short by FitText.
const Ellipsis = "…"

// Fit is the outcome of fitting a text block into a box.
type Fit struct {
	Lines     []string
	Size      float64
	Truncated bool
}

// FitText wraps text into a box of width×height. It starts at style.Size and
// steps down by 2px to style.MinSize, returning the first size whose wrapped
// lines fit the height. If nothing fits, it keeps as many lines as the box
// holds at MinSize and ends the last kept line with Ellipsis, dropping words
// until that line fits the width.
func FitText(text string, width, height float64, style TextStyle, measureAt func(size float64) MeasureFunc) Fit {
	maxSize := style.Size
	minSize := style.MinSize
	if minSize <= 0 || minSize > maxSize {
		minSize = maxSize
	}

	for size := maxSize; size >= minSize; size -= 2 {
		lines := Wrap(text, width, measureAt(size))
		if float64(len(lines))*style.lineHeight(size) <= height {
			return Fit{Lines: lines, Size: size}
		}
	}

	measure := measureAt(minSize)
	lines := Wrap(text, width, measure)
	capacity := int(height / style.lineHeight(minSize))
	if capacity < 1 {
		capacity = 1
	}
	if len(lines) <= capacity {
		return Fit{Lines: lines, Size: minSize}
	}

	kept := append([]string(nil), lines[:capacity]...)
	last := strings.Fields(kept[capacity-1])
	for len(last) > 1 && measure(strings.Join(last, " ")+Ellipsis) > width {
		last = last[:len(last)-1]
	}
	kept[capacity-1] = strings.Join(last, " ") + Ellipsis
	return Fit{Lines: kept, Size: minSize, Truncated: true}
}
