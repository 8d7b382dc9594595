package quotecard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLayout is returned for a LayoutKind with no composer.
var ErrUnknownLayout = errors.New("unknown layout")

// DefaultBrandText is drawn when a card includes the brand but names none.
const DefaultBrandText = "FitPro"

// Testimonial is the client quote a card is made from. The core never
// modifies it.
type Testimonial struct {
	Quote        string  `yaml:"quote"`
	CustomerName string  `yaml:"customer_name"`
	Role         string  `yaml:"role"`
	Score        float64 `yaml:"score"`
	MediaURL     string  `yaml:"media_url,omitempty"`
}

// LayoutKind selects a layout composer.
type LayoutKind string

const (
	LayoutClassic LayoutKind = "classic"
	LayoutModern  LayoutKind = "modern"
	LayoutMinimal LayoutKind = "minimal"
)

// Layouts lists the available layouts in display order.
var Layouts = []LayoutKind{LayoutClassic, LayoutModern, LayoutMinimal}

// DesignConfig is the visual configuration of a card. It is a value type;
// composers receive copies and never write back.
type DesignConfig struct {
	BackgroundColor Color      `yaml:"background_color"`
	TextColor       Color      `yaml:"text_color"`
	AccentColor     Color      `yaml:"accent_color"`
	FontFamily      FontFamily `yaml:"font_family"`
	Layout          LayoutKind `yaml:"layout"`
	IncludePhoto    bool       `yaml:"include_photo"`
	IncludeBrand    bool       `yaml:"include_brand"`
	BrandText       string     `yaml:"brand_text,omitempty"`
}

// DefaultDesignConfig returns the design a new card starts with.
func DefaultDesignConfig() DesignConfig {
	return DesignConfig{
		BackgroundColor: ColorWhite,
		TextColor:       ColorInk,
		AccentColor:     ColorAmber,
		FontFamily:      FontInter,
		Layout:          LayoutClassic,
		IncludeBrand:    true,
		BrandText:       DefaultBrandText,
	}
}

func (c DesignConfig) brandText() string {
	if text := strings.TrimSpace(c.BrandText); text != "" {
		return text
	}
	return DefaultBrandText
}

// LayoutSpec is the declarative description of a card: a background and an
// ordered list of elements, drawn first to last.
type LayoutSpec struct {
	Layout     LayoutKind
	Width      int
	Height     int
	Background Color
	Elements   []Element
}

// Find returns the first element with the given name, or nil.
func (s LayoutSpec) Find(name string) Element {
	for _, e := range s.Elements {
		if e.GetName() == name {
			return e
		}
	}
	return nil
}

// Element names shared by the layouts.
const (
	NameBrand  = "brand"
	NameHeader = "header"
	NameGlyph  = "quote-mark"
	NameQuote  = "quote"
	NameStars  = "stars"
	NameRule   = "divider"
	NameAuthor = "author"
	NameRole   = "role"
	NamePhoto  = "photo"
)

// SpecFunc composes a layout from a testimonial and a design.
type SpecFunc func(t Testimonial, cfg DesignConfig) LayoutSpec

// SpecFor returns the composer for a layout.
func SpecFor(kind LayoutKind) (SpecFunc, error) {
	switch LayoutKind(strings.ToLower(string(kind))) {
	case LayoutClassic:
		return ClassicSpec, nil
	case LayoutModern:
		return ModernSpec, nil
	case LayoutMinimal:
		return MinimalSpec, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, kind)
	}
}

func newSpec(kind LayoutKind, cfg DesignConfig) LayoutSpec {
	return LayoutSpec{
		Layout:     kind,
		Width:      CanvasSize,
		Height:     CanvasSize,
		Background: cfg.BackgroundColor,
	}
}

func (s *LayoutSpec) add(e ...Element) { s.Elements = append(s.Elements, e...) }

func (s *LayoutSpec) addPhoto(t Testimonial, cfg DesignConfig, box Rect) {
	if cfg.IncludePhoto {
		s.add(&PhotoSlot{Name: NamePhoto, Box: box, MediaURL: t.MediaURL})
	}
}

// ClassicSpec stacks everything on the center line: brand, a large quotation
// mark, the quote, a five-star rating, the author name and role.
func ClassicSpec(t Testimonial, cfg DesignConfig) LayoutSpec {
	spec := newSpec(LayoutClassic, cfg)
	spec.add(
		&BrandMark{
			Name:    NameBrand,
			Text:    cfg.brandText(),
			Box:     Rect{X: 96, Y: 64, W: 888, H: 56},
			Visible: cfg.IncludeBrand,
			Style: TextStyle{
				Family: cfg.FontFamily, Bold: true, Size: 34,
				Color: cfg.AccentColor, Align: HorizontalCenter, Vertical: VerticalMiddle,
			},
		},
		&TextBlock{
			Name: NameGlyph,
			Text: "“",
			Box:  Rect{X: 96, Y: 130, W: 888, H: 170},
			Style: TextStyle{
				Family: cfg.FontFamily, Bold: true, Size: 160, LineSpacing: 1,
				Color: cfg.AccentColor, Align: HorizontalCenter, Vertical: VerticalTop,
			},
		},
		&TextBlock{
			Name: NameQuote,
			Text: t.Quote,
			Box:  Rect{X: 120, Y: 300, W: 840, H: 380},
			Style: TextStyle{
				Family: cfg.FontFamily, Size: 54, MinSize: 28, LineSpacing: 1.35,
				Color: cfg.TextColor, Align: HorizontalCenter, Vertical: VerticalMiddle,
			},
		},
		&StarRow{
			Name:        NameStars,
			Box:         Rect{X: 96, Y: 712, W: 888, H: 60},
			Total:       MaxScore,
			Filled:      StarFill(t.Score),
			OuterRadius: 26,
			InnerRadius: 11,
			Gap:         18,
			StrokeWidth: 2.5,
			Color:       cfg.AccentColor,
			Align:       HorizontalCenter,
		},
		&TextBlock{
			Name: NameAuthor,
			Text: t.CustomerName,
			Box:  Rect{X: 96, Y: 800, W: 888, H: 56},
			Style: TextStyle{
				Family: cfg.FontFamily, Bold: true, Size: 38, MinSize: 24,
				Color: cfg.TextColor, Align: HorizontalCenter, Vertical: VerticalMiddle,
			},
		},
		&TextBlock{
			Name: NameRole,
			Text: t.Role,
			Box:  Rect{X: 96, Y: 862, W: 888, H: 44},
			Style: TextStyle{
				Family: cfg.FontFamily, Size: 28, MinSize: 20,
				Color: cfg.TextColor.WithAlpha(0xB3), Align: HorizontalCenter, Vertical: VerticalMiddle,
			},
		},
	)
	spec.addPhoto(t, cfg, Rect{X: 480, Y: 930, W: 120, H: 120})
	return spec
}

// ModernSpec puts the brand in a full-width accent header bar, the quote
// left-aligned below it, then an accent rule, the author and a star row with
// one star per whole point of the score.
func ModernSpec(t Testimonial, cfg DesignConfig) LayoutSpec {
	spec := newSpec(LayoutModern, cfg)
	filled := StarFill(t.Score)
	spec.add(
		&Panel{Name: NameHeader, Box: Rect{X: 0, Y: 0, W: CanvasSize, H: 180}, Color: cfg.AccentColor},
		&BrandMark{
			Name:    NameBrand,
			Text:    cfg.brandText(),
			Box:     Rect{X: 80, Y: 62, W: 920, H: 56},
			Visible: cfg.IncludeBrand,
			Style: TextStyle{
				Family: cfg.FontFamily, Bold: true, Size: 40,
				Color: cfg.BackgroundColor, Align: HorizontalLeft, Vertical: VerticalMiddle,
			},
		},
		&TextBlock{
			Name: NameQuote,
			Text: t.Quote,
			Box:  Rect{X: 80, Y: 250, W: 920, H: 430},
			Style: TextStyle{
				Family: cfg.FontFamily, Size: 58, MinSize: 30, LineSpacing: 1.35,
				Color: cfg.TextColor, Align: HorizontalLeft, Vertical: VerticalTop,
			},
		},
		&Divider{
			Name:  NameRule,
			From:  Point{X: 80, Y: 716},
			To:    Point{X: 240, Y: 716},
			Width: 6,
			Color: cfg.AccentColor,
		},
		&TextBlock{
			Name: NameAuthor,
			Text: t.CustomerName,
			Box:  Rect{X: 80, Y: 750, W: 920, H: 52},
			Style: TextStyle{
				Family: cfg.FontFamily, Bold: true, Size: 40, MinSize: 24,
				Color: cfg.TextColor, Align: HorizontalLeft, Vertical: VerticalMiddle,
			},
		},
		&TextBlock{
			Name: NameRole,
			Text: t.Role,
			Box:  Rect{X: 80, Y: 806, W: 920, H: 40},
			Style: TextStyle{
				Family: cfg.FontFamily, Size: 28, MinSize: 20,
				Color: cfg.TextColor.WithAlpha(0xB3), Align: HorizontalLeft, Vertical: VerticalMiddle,
			},
		},
		&StarRow{
			Name:        NameStars,
			Box:         Rect{X: 80, Y: 880, W: 920, H: 60},
			Total:       filled,
			Filled:      filled,
			OuterRadius: 24,
			InnerRadius: 10,
			Gap:         14,
			StrokeWidth: 2,
			Color:       cfg.AccentColor,
			Align:       HorizontalLeft,
		},
	)
	spec.addPhoto(t, cfg, Rect{X: 880, Y: 740, W: 120, H: 120})
	return spec
}

// MinimalSpec draws only the quote, large and centered, a thin rule, the
// author name and a small brand mark near the bottom edge. It has no rating.
func MinimalSpec(t Testimonial, cfg DesignConfig) LayoutSpec {
	spec := newSpec(LayoutMinimal, cfg)
	spec.add(
		&TextBlock{
			Name: NameQuote,
			Text: t.Quote,
			Box:  Rect{X: 120, Y: 180, W: 840, H: 540},
			Style: TextStyle{
				Family: cfg.FontFamily, Size: 72, MinSize: 36, LineSpacing: 1.3,
				Color: cfg.TextColor, Align: HorizontalCenter, Vertical: VerticalMiddle,
			},
		},
		&Divider{
			Name:  NameRule,
			From:  Point{X: 500, Y: 780},
			To:    Point{X: 580, Y: 780},
			Width: 2,
			Color: cfg.TextColor,
		},
		&TextBlock{
			Name: NameAuthor,
			Text: t.CustomerName,
			Box:  Rect{X: 120, Y: 812, W: 840, H: 52},
			Style: TextStyle{
				Family: cfg.FontFamily, Size: 34, MinSize: 22,
				Color: cfg.TextColor, Align: HorizontalCenter, Vertical: VerticalMiddle,
			},
		},
		&BrandMark{
			Name:    NameBrand,
			Text:    cfg.brandText(),
			Box:     Rect{X: 120, Y: 984, W: 840, H: 40},
			Visible: cfg.IncludeBrand,
			Style: TextStyle{
				Family: cfg.FontFamily, Bold: true, Size: 24,
				Color: cfg.AccentColor, Align: HorizontalCenter, Vertical: VerticalMiddle,
			},
		},
	)
	spec.addPhoto(t, cfg, Rect{X: 480, Y: 60, W: 120, H: 120})
	return spec
}
