// Package vectorizer turns raw documents into sparse numeric feature rows
package vectorizer

import "sort"

// Vectorizer is a fitted, read-only text transformer
// Transform must be safe for concurrent use
type Vectorizer interface {
	// Transform returns one row per document, in order
	Transform(docs []string) ([]Vector, error)
	// Dim is the number of feature columns
	Dim() int
}

// Vector is a sparse row: Indices are strictly increasing and each is < Dim
type Vector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// NNZ returns the number of stored entries
func (v Vector) NNZ() int { return len(v.Indices) }

// At returns the value of column i, zero when not stored
func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// Dense expands the row to Dim values
func (v Vector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, i := range v.Indices {
		out[i] = v.Values[k]
	}
	return out
}

// Dot returns the inner product with a dense weight row of the same Dim
func (v Vector) Dot(w []float64) float64 {
	var s float64
	for k, i := range v.Indices {
		if i < len(w) {
			s += v.Values[k] * w[i]
		}
	}
	return s
}
