package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeSimilarity(t *testing.T) {
	assert.Equal(t, 0.0, SafeSimilarity(math.NaN()))
	assert.Equal(t, 0.0, SafeSimilarity(math.Inf(1)))
	assert.Equal(t, 0.0, SafeSimilarity(math.Inf(-1)))
	assert.Equal(t, 0.42, SafeSimilarity(0.42))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 0}), "zero vector has no direction")
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}), "mismatched lengths")
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
