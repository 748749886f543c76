package classifier

import (
	"encoding/json"
	"fmt"

	"textclf/internal/core/vectorizer"
)

// LinearSpec is the JSON form of a fitted linear model (logistic regression,
// linear SVM, SGD). Coef has one row per class, or a single row for two classes
type LinearSpec struct {
	Classes   []Label     `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Linear scores rows with coef . x + intercept
type Linear struct {
	classes   []Label
	coef      [][]float64
	intercept []float64
	dim       int
}

var _ Classifier = (*Linear)(nil)

// DecodeLinear parses and validates a linear spec
func DecodeLinear(raw []byte) (*Linear, error) {
	var spec LinearSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("classifier: parse linear: %w", err)
	}
	return NewLinear(spec)
}

// NewLinear validates spec and compiles it
func NewLinear(spec LinearSpec) (*Linear, error) {
	if err := checkClasses(spec.Classes); err != nil {
		return nil, err
	}
	want := len(spec.Classes)
	if want == 2 {
		want = 1
	}
	if len(spec.Coef) != want {
		return nil, fmt.Errorf("classifier: %d coef rows for %d classes, want %d", len(spec.Coef), len(spec.Classes), want)
	}
	if len(spec.Intercept) != want {
		return nil, fmt.Errorf("classifier: %d intercepts for %d coef rows", len(spec.Intercept), want)
	}
	dim := len(spec.Coef[0])
	if dim == 0 {
		return nil, fmt.Errorf("classifier: empty coef row")
	}
	for i, row := range spec.Coef {
		if len(row) != dim {
			return nil, fmt.Errorf("classifier: coef row %d has %d weights, want %d", i, len(row), dim)
		}
		if !finite(row...) {
			return nil, fmt.Errorf("classifier: coef row %d is not finite", i)
		}
	}
	if !finite(spec.Intercept...) {
		return nil, fmt.Errorf("classifier: intercept is not finite")
	}
	return &Linear{classes: spec.Classes, coef: spec.Coef, intercept: spec.Intercept, dim: dim}, nil
}

// Classes returns the class labels in column order
func (l *Linear) Classes() []Label { return l.classes }

// Dim returns the coef row width
func (l *Linear) Dim() int { return l.dim }

// Decision returns the raw scores per row
func (l *Linear) Decision(rows []vectorizer.Vector) ([][]float64, error) {
	if err := checkDim(rows, l.dim); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for r, v := range rows {
		s := make([]float64, len(l.coef))
		for k, w := range l.coef {
			s[k] = v.Dot(w) + l.intercept[k]
		}
		out[r] = s
	}
	return out, nil
}

// Predict picks classes[1] for a positive binary score, the top score otherwise
func (l *Linear) Predict(rows []vectorizer.Vector) ([]Label, error) {
	scores, err := l.Decision(rows)
	if err != nil {
		return nil, err
	}
	out := make([]Label, len(scores))
	for i, s := range scores {
		if len(s) == 1 {
			if s[0] > 0 {
				out[i] = l.classes[1]
			} else {
				out[i] = l.classes[0]
			}
			continue
		}
		out[i] = l.classes[argmax(s)]
	}
	return out, nil
}
