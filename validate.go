package quotecard

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the design for values the renderer would silently replace
// and returns an error describing all problems found, or nil. Rendering does
// not require a valid design: bad colors draw black and unknown families use
// the default face.
func (c DesignConfig) Validate() error {
	var errs []string

	for _, field := range []struct {
		name  string
		value Color
	}{
		{"background color", c.BackgroundColor},
		{"text color", c.TextColor},
		{"accent color", c.AccentColor},
	} {
		if !field.value.Valid() {
			errs = append(errs, fmt.Sprintf("%s %q is not a hex color", field.name, field.value))
		}
	}
	if !c.FontFamily.Known() {
		errs = append(errs, fmt.Sprintf("font family %q is not one of %s", c.FontFamily, joinFamilies()))
	}
	if _, err := SpecFor(c.Layout); err != nil {
		errs = append(errs, err.Error())
	}
	if c.IncludePhoto {
		errs = append(errs, ErrPhotoNotImplemented.Error())
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("design validation failed:\n  %s", strings.Join(errs, "\n  "))
}

// Validate checks the testimonial fields a card draws.
func (t Testimonial) Validate() error {
	var errs []string
	if strings.TrimSpace(t.Quote) == "" {
		errs = append(errs, "quote is empty")
	}
	if strings.TrimSpace(t.CustomerName) == "" {
		errs = append(errs, "customer name is empty")
	}
	if math.IsNaN(t.Score) || t.Score < MinScore || t.Score > MaxScore {
		errs = append(errs, fmt.Sprintf("score %v is outside [%d, %d] and will be clamped", t.Score, MinScore, MaxScore))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("testimonial validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func joinFamilies() string {
	names := make([]string, len(FontFamilies))
	for i, f := range FontFamilies {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
