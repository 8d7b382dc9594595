package quotecard

// Card geometry is expressed in output pixels. Every layout targets a square
// canvas of CanvasSize pixels.
const CanvasSize = 1080

// Point is a position on the canvas.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box on the canvas.
type Rect struct {
	X, Y, W, H float64
}

// CenterX returns the horizontal center of the box.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center of the box.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside the box.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// clampFloat clamps v to [lo, hi].
func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
