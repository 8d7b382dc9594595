package quotecard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func janeDoe() Testimonial {
	return Testimonial{Quote: "Great coaching", CustomerName: "Jane Doe", Role: "Client", Score: 4.6}
}

func designFor(layout LayoutKind, brand bool) DesignConfig {
	cfg := DefaultDesignConfig()
	cfg.Layout = layout
	cfg.IncludeBrand = brand
	cfg.BrandText = "FitPro"
	return cfg
}

func elementNames(spec LayoutSpec) []string {
	names := make([]string, len(spec.Elements))
	for i, e := range spec.Elements {
		names[i] = e.GetName()
	}
	return names
}

func TestClassicSpec_FullConfig(t *testing.T) {
	spec := ClassicSpec(janeDoe(), designFor(LayoutClassic, true))

	assert.Equal(t, LayoutClassic, spec.Layout)
	assert.Equal(t, CanvasSize, spec.Width)
	assert.Equal(t, CanvasSize, spec.Height)
	assert.Equal(t, []string{NameBrand, NameGlyph, NameQuote, NameStars, NameAuthor, NameRole}, elementNames(spec))

	brand, ok := spec.Find(NameBrand).(*BrandMark)
	require.True(t, ok)
	assert.True(t, brand.Visible)
	assert.Equal(t, "FitPro", brand.Text)
	assert.Equal(t, HorizontalCenter, brand.Style.Align)

	quote := spec.Find(NameQuote).(*TextBlock)
	assert.Equal(t, "Great coaching", quote.Text)
	assert.Equal(t, HorizontalCenter, quote.Style.Align)
	assert.Less(t, brand.Box.Bottom(), quote.Box.Y, "brand sits above the quote")

	stars := spec.Find(NameStars).(*StarRow)
	assert.Equal(t, 5, stars.Total)
	assert.Equal(t, 4, stars.Filled)

	author := spec.Find(NameAuthor).(*TextBlock)
	role := spec.Find(NameRole).(*TextBlock)
	assert.Equal(t, "Jane Doe", author.Text)
	assert.Equal(t, "Client", role.Text)
	assert.Less(t, stars.Box.Y, author.Box.Y)
	assert.Less(t, author.Box.Y, role.Box.Y)
}

func TestMinimalSpec_NoBrandNoStars(t *testing.T) {
	spec := MinimalSpec(janeDoe(), designFor(LayoutMinimal, false))

	for _, e := range spec.Elements {
		assert.NotEqual(t, ElementStarRow, e.GetType(), "minimal has no rating")
		assert.NotEqual(t, ElementPanel, e.GetType(), "minimal has no header bar")
		if brand, ok := e.(*BrandMark); ok {
			assert.False(t, brand.Visible)
		}
	}

	quote := spec.Find(NameQuote).(*TextBlock)
	assert.Equal(t, HorizontalCenter, quote.Style.Align)
	assert.Equal(t, VerticalMiddle, quote.Style.Vertical)

	classicQuote := ClassicSpec(janeDoe(), designFor(LayoutClassic, false)).Find(NameQuote).(*TextBlock)
	assert.Greater(t, quote.Style.Size, classicQuote.Style.Size, "minimal sets the quote larger")
}

func TestMinimalSpec_BrandPinnedToBottom(t *testing.T) {
	spec := MinimalSpec(janeDoe(), designFor(LayoutMinimal, true))
	brand := spec.Find(NameBrand).(*BrandMark)
	assert.True(t, brand.Visible)
	assert.Greater(t, brand.Box.Y, float64(CanvasSize)*0.85)
	assert.LessOrEqual(t, brand.Box.Bottom(), float64(CanvasSize))
}

func TestModernSpec_HeaderAndPartialStars(t *testing.T) {
	for _, score := range []float64{1, 2.5, 3.9, 5} {
		testimonial := janeDoe()
		testimonial.Score = score
		spec := ModernSpec(testimonial, designFor(LayoutModern, true))

		header := spec.Find(NameHeader).(*Panel)
		assert.Equal(t, Rect{X: 0, Y: 0, W: CanvasSize, H: 180}, header.Box)
		assert.Equal(t, ColorAmber, header.Color)

		brand := spec.Find(NameBrand).(*BrandMark)
		assert.True(t, header.Box.Contains(Point{X: brand.Box.X, Y: brand.Box.Y}))
		assert.True(t, header.Box.Contains(Point{X: brand.Box.Right() - 1, Y: brand.Box.Bottom() - 1}))

		stars := spec.Find(NameStars).(*StarRow)
		assert.Equal(t, StarFill(score), stars.Total, "score %v", score)
		assert.Equal(t, stars.Total, stars.Filled)

		rule := spec.Find(NameRule).(*Divider)
		assert.Equal(t, ColorAmber, rule.Color)
	}
}

func TestSpecs_BrandDefaultsWhenEmpty(t *testing.T) {
	cfg := designFor(LayoutClassic, true)
	cfg.BrandText = "  "
	for _, kind := range Layouts {
		compose, err := SpecFor(kind)
		require.NoError(t, err)
		brand := compose(janeDoe(), cfg).Find(NameBrand).(*BrandMark)
		assert.Equal(t, DefaultBrandText, brand.Text, "layout %s", kind)
	}
}

func TestSpecs_PhotoSlotOnlyWhenRequested(t *testing.T) {
	for _, kind := range Layouts {
		compose, err := SpecFor(kind)
		require.NoError(t, err)

		cfg := designFor(kind, true)
		assert.Nil(t, compose(janeDoe(), cfg).Find(NamePhoto), "layout %s", kind)

		cfg.IncludePhoto = true
		testimonial := janeDoe()
		testimonial.MediaURL = "https://example.com/jane.jpg"
		slot, ok := compose(testimonial, cfg).Find(NamePhoto).(*PhotoSlot)
		require.True(t, ok, "layout %s", kind)
		assert.Equal(t, testimonial.MediaURL, slot.MediaURL)
	}
}

func TestSpecs_DeterministicAndPure(t *testing.T) {
	for _, kind := range Layouts {
		compose, err := SpecFor(kind)
		require.NoError(t, err)

		testimonial := janeDoe()
		cfg := designFor(kind, true)
		cfgBefore, testimonialBefore := cfg, testimonial

		first := compose(testimonial, cfg)
		second := compose(testimonial, cfg)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("layout %s not deterministic (-first +second):\n%s", kind, diff)
		}
		assert.Equal(t, cfgBefore, cfg)
		assert.Equal(t, testimonialBefore, testimonial)
	}
}

func TestSpecs_ElementsInsideCanvas(t *testing.T) {
	canvas := Rect{W: CanvasSize, H: CanvasSize}
	for _, kind := range Layouts {
		compose, _ := SpecFor(kind)
		cfg := designFor(kind, true)
		cfg.IncludePhoto = true
		for _, e := range compose(janeDoe(), cfg).Elements {
			var box Rect
			switch el := e.(type) {
			case *TextBlock:
				box = el.Box
			case *BrandMark:
				box = el.Box
			case *StarRow:
				box = el.Box
			case *Panel:
				box = el.Box
			case *PhotoSlot:
				box = el.Box
			case *Divider:
				box = Rect{X: el.From.X, Y: el.From.Y, W: el.To.X - el.From.X, H: 1}
			}
			assert.True(t, canvas.Contains(Point{X: box.X, Y: box.Y}), "%s/%s", kind, e.GetName())
			assert.LessOrEqual(t, box.Right(), float64(CanvasSize), "%s/%s", kind, e.GetName())
			assert.LessOrEqual(t, box.Bottom(), float64(CanvasSize), "%s/%s", kind, e.GetName())
		}
	}
}

func TestSpecFor(t *testing.T) {
	for _, kind := range Layouts {
		compose, err := SpecFor(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, compose(janeDoe(), designFor(kind, true)).Layout)
	}

	compose, err := SpecFor("MODERN")
	require.NoError(t, err)
	assert.Equal(t, LayoutModern, compose(janeDoe(), DefaultDesignConfig()).Layout)

	_, err = SpecFor("brutalist")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestStarRow_Centers(t *testing.T) {
	row := &StarRow{Box: Rect{X: 0, Y: 0, W: 200, H: 40}, Total: 3, OuterRadius: 10, Gap: 5, Align: HorizontalCenter}
	centers := row.Centers()
	require.Len(t, centers, 3)
	// Row is 3*20 + 2*5 = 70 wide, centered in 200.
	assert.Equal(t, Point{X: 75, Y: 20}, centers[0])
	assert.Equal(t, Point{X: 100, Y: 20}, centers[1])
	assert.Equal(t, Point{X: 125, Y: 20}, centers[2])

	row.Align = HorizontalLeft
	assert.Equal(t, 10.0, row.Centers()[0].X)
	row.Align = HorizontalRight
	assert.Equal(t, 190.0, row.Centers()[2].X)

	row.Total = 0
	assert.Empty(t, row.Centers())
}
