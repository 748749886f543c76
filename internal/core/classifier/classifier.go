// Package classifier maps feature rows to class labels with fitted models
// Backends
// 1 random_forest  averaged leaf distributions of scikit-learn decision trees
// 2 linear         one-vs-rest or binary decision function
// 3 onnx           any exported graph run through onnxruntime
package classifier

import (
	"errors"
	"fmt"
	"math"

	"textclf/internal/core/vectorizer"
)

// ErrDimMismatch is returned when a row does not have the model's feature count
var ErrDimMismatch = errors.New("classifier: feature dimension mismatch")

// Classifier is a fitted, read-only model. Predict must be safe for concurrent use
type Classifier interface {
	// Predict returns one label per row, in order
	Predict(rows []vectorizer.Vector) ([]Label, error)
	// Classes lists the labels the model can emit, in column order
	Classes() []Label
	// Dim is the expected feature count, zero when the model does not declare one
	Dim() int
}

// Prober is implemented by models that expose class probabilities
type Prober interface {
	PredictProba(rows []vectorizer.Vector) ([][]float64, error)
}

// Closer is implemented by models that hold native resources
type Closer interface {
	Close() error
}

func checkDim(rows []vectorizer.Vector, dim int) error {
	if dim == 0 {
		return nil
	}
	for i, r := range rows {
		if r.Dim != dim {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrDimMismatch, i, r.Dim, dim)
		}
	}
	return nil
}

// argmax returns the first index holding the largest value
func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
