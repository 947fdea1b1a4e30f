package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLinearFalloff checks the documented curve contract: threshold met
// gives the full base, past the threshold is monotonically non-increasing
// and never negative.
func TestLinearFalloff(t *testing.T) {
	curve := LinearFalloff(2000)

	t.Run("at or under threshold gives full base", func(t *testing.T) {
		assert.Equal(t, 50.0, curve(8000, 10000, 50))
		assert.Equal(t, 50.0, curve(10000, 10000, 50))
	})

	t.Run("halfway through span gives half base", func(t *testing.T) {
		assert.InDelta(t, 25.0, curve(11000, 10000, 50), 0.001)
	})

	t.Run("at or past span gives zero", func(t *testing.T) {
		assert.Equal(t, 0.0, curve(12000, 10000, 50))
		assert.Equal(t, 0.0, curve(20000, 10000, 50))
	})

	t.Run("monotone non-increasing and never negative", func(t *testing.T) {
		prev := curve(10000, 10000, 50)
		for v := 10000.0; v <= 14000; v += 100 {
			score := curve(v, 10000, 50)
			assert.LessOrEqual(t, score, prev)
			assert.GreaterOrEqual(t, score, 0.0)
			prev = score
		}
	})

	t.Run("zero span never awards past threshold", func(t *testing.T) {
		flat := LinearFalloff(0)
		assert.Equal(t, 50.0, flat(10000, 10000, 50))
		assert.Equal(t, 0.0, flat(10001, 10000, 50))
	})
}

// TestTriangularDistance checks the peak and both monotone flanks.
func TestTriangularDistance(t *testing.T) {
	curve := TriangularDistance(50, 50)

	t.Run("peaks at target", func(t *testing.T) {
		assert.Equal(t, 2500.0, curve(50, 2500))
	})

	t.Run("symmetric around target", func(t *testing.T) {
		assert.InDelta(t, curve(40, 2500), curve(60, 2500), 0.001)
	})

	t.Run("zero at or past spread", func(t *testing.T) {
		assert.Equal(t, 0.0, curve(0, 2500))
		assert.Equal(t, 0.0, curve(100, 2500))
		assert.Equal(t, 0.0, curve(250, 2500))
	})

	t.Run("monotone increasing below target", func(t *testing.T) {
		prev := -1.0
		for d := 0.0; d <= 50; d += 5 {
			score := curve(d, 2500)
			assert.Greater(t, score, prev)
			prev = score
		}
	})

	t.Run("monotone decreasing above target", func(t *testing.T) {
		prev := curve(50, 2500)
		for d := 55.0; d <= 120; d += 5 {
			score := curve(d, 2500)
			assert.LessOrEqual(t, score, prev)
			assert.GreaterOrEqual(t, score, 0.0)
			prev = score
		}
	})

	t.Run("zero spread scores nothing", func(t *testing.T) {
		flat := TriangularDistance(50, 0)
		assert.Equal(t, 0.0, flat(50, 2500))
	})
}
