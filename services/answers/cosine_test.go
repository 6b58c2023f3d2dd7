package answers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2, 3}, []float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-9)

	// Magnitude does not matter, only direction.
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 1}, []float64{10, 10}), 1e-9)
}

func TestCosineSimilarityDegenerate(t *testing.T) {
	assert.Zero(t, cosineSimilarity(nil, nil))
	assert.Zero(t, cosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}))
	assert.Zero(t, cosineSimilarity([]float64{0, 0}, []float64{1, 2}))
}
