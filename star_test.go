package quotecard

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStar_VertexCount(t *testing.T) {
	for points := 2; points <= 9; points++ {
		assert.Len(t, Star(Point{X: 50, Y: 50}, 20, 8, points), 2*points, "points=%d", points)
	}
}

func TestStar_TooFewPoints(t *testing.T) {
	assert.Nil(t, Star(Point{}, 10, 5, 1))
	assert.Nil(t, Star(Point{}, 10, 5, 0))
}

func TestStar_AlternatesRadii(t *testing.T) {
	center := Point{X: 100, Y: 80}
	vertices := Star(center, 30, 12, 5)
	for i, v := range vertices {
		want := 30.0
		if i%2 == 1 {
			want = 12.0
		}
		assert.InDelta(t, want, math.Hypot(v.X-center.X, v.Y-center.Y), 1e-9, "vertex %d", i)
	}
}

func TestStar_StartsStraightUp(t *testing.T) {
	center := Point{X: 40, Y: 40}
	vertices := Star(center, 25, 10, 5)
	require.NotEmpty(t, vertices)
	assert.InDelta(t, 40, vertices[0].X, 1e-9)
	assert.InDelta(t, 15, vertices[0].Y, 1e-9)

	for i, v := range vertices {
		want := float64(i)*math.Pi/5 - math.Pi/2
		got := math.Atan2(v.Y-center.Y, v.X-center.X)
		assert.InDelta(t, 0, math.Remainder(got-want, 2*math.Pi), 1e-9, "vertex %d", i)
	}
}

func TestStarFill(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{3.9, 3},
		{5, 5},
		{0.5, 1},
		{4.6, 4},
		{1, 1},
		{7.2, 5},
		{-3, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StarFill(tt.score), "score %v", tt.score)
	}
}
