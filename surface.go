package quotecard

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Surface is the raster canvas a card is drawn onto. It has a single owner:
// the Dispatcher holds it for the duration of a pass, and Renderer.Draw
// takes it as an explicit argument rather than reaching for shared state.
type Surface struct {
	dc *gg.Context
}

// NewSurface allocates a width×height surface.
func NewSurface(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(width, height)}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.dc.Width() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.dc.Height() }

// Clear fills the whole surface with c, discarding everything drawn before.
func (s *Surface) Clear(c color.Color) {
	s.dc.SetColor(c)
	s.dc.Clear()
}

// Snapshot copies the current pixels. The copy is independent of later
// passes.
func (s *Surface) Snapshot() *image.NRGBA {
	return imaging.Clone(s.dc.Image())
}
