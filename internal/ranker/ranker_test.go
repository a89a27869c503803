package ranker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopK_SelfSimilarityRanksFirst(t *testing.T) {
	query := []float32{1, 0, 0}
	rows := [][]float32{
		{0, 1, 0},
		{1, 0, 0},
		{0.5, 0.5, 0},
	}

	hits := TopK(query, rows, 2)

	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Row)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Equal(t, 2, hits[1].Row)
}

func TestTopK_ScaleInvariant(t *testing.T) {
	query := []float32{2, 2, 0}
	rows := [][]float32{
		{1, 1, 0},
		{100, 100, 0},
	}

	hits := TopK(query, rows, 2)

	require.Len(t, hits, 2)
	// Cosine ignores magnitude; both rows score identically.
	assert.InDelta(t, hits[0].Score, hits[1].Score, 1e-9)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
}

func TestTopK_ZeroRowScoresZero(t *testing.T) {
	query := []float32{1, 0}
	rows := [][]float32{
		{0, 0},
		{1, 0},
	}

	hits := TopK(query, rows, 2)

	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].Row)
	assert.Equal(t, 0, hits[1].Row)
	assert.Equal(t, 0.0, hits[1].Score)
}

func TestTopK_ZeroQueryScoresAllZero(t *testing.T) {
	query := []float32{0, 0}
	rows := [][]float32{
		{1, 0},
		{0, 1},
	}

	hits := TopK(query, rows, 2)

	require.Len(t, hits, 2)
	for _, hit := range hits {
		assert.Equal(t, 0.0, hit.Score)
	}
}

func TestTopK_KLargerThanRows(t *testing.T) {
	query := []float32{1, 0}
	rows := [][]float32{{1, 0}}

	hits := TopK(query, rows, 10)

	assert.Len(t, hits, 1)
}

func TestTopK_EmptyRows(t *testing.T) {
	assert.Empty(t, TopK([]float32{1}, nil, 5))
}

func TestTopK_DescendingOrder(t *testing.T) {
	query := []float32{1, 0, 0}
	rows := [][]float32{
		{0.2, 1, 0},
		{1, 0.1, 0},
		{0.6, 0.6, 0},
		{-1, 0, 0},
	}

	hits := TopK(query, rows, 4)

	require.Len(t, hits, 4)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score)
	}
	assert.Equal(t, 3, hits[len(hits)-1].Row)
}

func TestTopK_StableForTies(t *testing.T) {
	query := []float32{1, 0}
	rows := [][]float32{
		{1, 0},
		{2, 0},
		{3, 0},
	}

	hits := TopK(query, rows, 3)

	require.Len(t, hits, 3)
	// Equal scores keep row order.
	assert.Equal(t, 0, hits[0].Row)
	assert.Equal(t, 1, hits[1].Row)
	assert.Equal(t, 2, hits[2].Row)
}
