package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLargestEmptyRect_NoObstacles(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, W: 60, H: 40}
	got := LargestEmptyRect(bounds, nil)
	assert.Equal(t, bounds, got)

	got = LargestEmptyRect(bounds, []Rect{{X: 100, Y: 100, W: 5, H: 5}})
	assert.Equal(t, bounds, got, "obstacles outside bounds are ignored")
}

func TestLargestEmptyRect_SplitByStrip(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, W: 10, H: 10}
	// A full-width strip leaves a 10x3 band below and a 10x3 band above.
	obstacles := []Rect{{X: 0, Y: 3, W: 10, H: 4}}
	got := LargestEmptyRect(bounds, obstacles)
	require.Equal(t, 30, got.Area())
	assert.True(t, bounds.ContainsRect(got))
	assert.False(t, got.Overlaps(obstacles[0]))
}

func TestLargestEmptyRect_CornerObstacle(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, W: 10, H: 10}
	// Blocking a 4x4 corner leaves an L-shape whose best rectangle is 10x6.
	obstacles := []Rect{{X: 0, Y: 6, W: 4, H: 4}}
	got := LargestEmptyRect(bounds, obstacles)
	require.Equal(t, 60, got.Area())
	assert.False(t, got.Overlaps(obstacles[0]))
}

func TestLargestEmptyRect_FullyCovered(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, W: 5, H: 5}
	got := LargestEmptyRect(bounds, []Rect{{X: -1, Y: -1, W: 10, H: 10}})
	assert.True(t, got.Empty())
}

func TestLargestEmptyRect_CanonicalLot(t *testing.T) {
	// The default lot: flood zone and utility pole.
	bounds := Rect{X: 0, Y: 0, W: 60, H: 40}
	obstacles := []Rect{
		{X: 10, Y: 20, W: 7, H: 12},
		{X: 40, Y: 30, W: 5, H: 5},
	}
	got := LargestEmptyRect(bounds, obstacles)
	// Right of the flood zone and below the pole: 43x30 = 1290, the best
	// available (the full-width band below both zones is only 60x20).
	require.Equal(t, 1290, got.Area())
	for _, o := range obstacles {
		assert.False(t, got.Overlaps(o))
	}
	assert.True(t, bounds.ContainsRect(got))
}

func TestLargestEmptyRect_Deterministic(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, W: 30, H: 30}
	obstacles := []Rect{{X: 5, Y: 5, W: 4, H: 4}, {X: 20, Y: 12, W: 6, H: 6}}
	first := LargestEmptyRect(bounds, obstacles)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, LargestEmptyRect(bounds, obstacles))
	}
}
