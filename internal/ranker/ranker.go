// Package ranker scores stored chunk vectors against a query vector by
// cosine similarity and selects the top-K rows.
package ranker

import (
	"math"
	"sort"
)

// Hit is a ranked row from a document's vector store.
type Hit struct {
	// Row is the row index, which equals the chunk index.
	Row int

	// Score is the cosine similarity in [-1, 1].
	Score float64
}

// TopK ranks every row of the stored matrix against the query vector and
// returns the min(k, rows) best hits in descending score order. Ties keep
// the original row order. A zero query or a zero row scores 0 against
// everything; there is no divide-by-zero path.
func TopK(query []float32, rows [][]float32, k int) []Hit {
	if k <= 0 || len(rows) == 0 {
		return nil
	}

	qn := normalize(query)

	hits := make([]Hit, len(rows))
	for i, row := range rows {
		hits[i] = Hit{Row: i, Score: dot(qn, normalize(row))}
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k]
}

// normalize returns the unit-length copy of v. The all-zero vector
// normalizes to all-zero rather than NaN.
func normalize(v []float32) []float64 {
	out := make([]float64, len(v))

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return out
	}

	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float64(x) / norm
	}
	return out
}

// dot returns the inner product of two vectors, scored over the shorter
// length when they differ.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
