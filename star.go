package quotecard

import "math"

// Rating bounds for a testimonial score.
const (
	MinScore = 1
	MaxScore = 5
)

// Star returns the vertices of an N-pointed star polygon around center.
// It yields 2*points vertices alternating between outer and inner radius,
// vertex i at angle i*π/points - π/2 so the first point faces straight up.
// The path is closed by the caller back to vertex 0. points below 2 yield nil.
func Star(center Point, outer, inner float64, points int) []Point {
	if points < 2 {
		return nil
	}
	vertices := make([]Point, 2*points)
	for i := range vertices {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/float64(points) - math.Pi/2
		vertices[i] = Point{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		}
	}
	return vertices
}

// ClampScore clamps a score to [MinScore, MaxScore]. NaN clamps to MinScore.
func ClampScore(score float64) float64 {
	if math.IsNaN(score) {
		return MinScore
	}
	return clampFloat(score, MinScore, MaxScore)
}

// StarFill returns how many stars a score fills: floor of the clamped score.
func StarFill(score float64) int {
	return int(math.Floor(ClampScore(score)))
}
