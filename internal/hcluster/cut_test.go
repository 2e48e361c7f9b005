package hcluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoCut_DetectsJump(t *testing.T) {
	t.Parallel()

	// Nine merges over ten items; the last merge jumps far above the
	// intra-curve heights.
	heights := []float64{1, 1, 1, 1, 1, 1, 1, 1, 20}
	count, threshold := AutoCut(heights)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 10.5, threshold, 1e-12)
}

func TestAutoCut_NoJumpYieldsOneCluster(t *testing.T) {
	t.Parallel()

	heights := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	count, threshold := AutoCut(heights)
	assert.Equal(t, 1, count)
	assert.Equal(t, 9.0, threshold)
}

func TestAutoCut_AllZeroTailGuard(t *testing.T) {
	t.Parallel()

	// Co-located items: every merge at height zero must not trigger
	// the jump condition.
	heights := []float64{0, 0, 0, 0, 0}
	count, _ := AutoCut(heights)
	assert.Equal(t, 1, count)
}

func TestAutoCut_JumpInLowerHalfIgnored(t *testing.T) {
	t.Parallel()

	// The search starts at ⌊(M−1)/2⌋, so an early jump that has
	// settled again is not considered.
	heights := []float64{0.1, 5, 5, 5, 5, 5, 5, 5, 5}
	count, _ := AutoCut(heights)
	assert.Equal(t, 1, count)
}

func TestAutoCut_TwoItems(t *testing.T) {
	t.Parallel()

	count, _ := AutoCut([]float64{3})
	assert.Equal(t, 2, count)

	count, _ = AutoCut([]float64{0})
	assert.Equal(t, 1, count)
}

func TestCutCountAt(t *testing.T) {
	t.Parallel()

	heights := []float64{1, 1, 8}
	assert.Equal(t, 2, CutCountAt(heights, 5))
	assert.Equal(t, 4, CutCountAt(heights, 0.5))
	assert.Equal(t, 1, CutCountAt(heights, 100))
	// Threshold equal to a height cuts at that merge.
	assert.Equal(t, 2, CutCountAt(heights, 8))
}
