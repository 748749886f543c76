package classifier

import (
	"encoding/json"
	"fmt"

	"textclf/internal/core/vectorizer"
)

// leaf marks a node without children in the flat tree arrays
const leaf = -1

// TreeSpec is one fitted decision tree in scikit-learn's flat node layout
// Node i is a leaf when ChildrenLeft[i] == -1, otherwise a sample goes left
// when its Feature[i] value is <= Threshold[i]. Value[i] holds class weights
type TreeSpec struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// ForestSpec is the JSON form of a fitted random forest
type ForestSpec struct {
	Classes   []Label    `json:"classes"`
	NFeatures int        `json:"n_features"`
	Trees     []TreeSpec `json:"trees"`
}

type tree struct {
	left, right []int
	feature     []int
	threshold   []float64
	proba       [][]float64 // Value rows scaled to sum to one
}

// Forest averages the class distributions of its trees
type Forest struct {
	classes []Label
	dim     int
	trees   []tree
}

var (
	_ Classifier = (*Forest)(nil)
	_ Prober     = (*Forest)(nil)
)

// DecodeForest parses and validates a random forest spec
func DecodeForest(raw []byte) (*Forest, error) {
	var spec ForestSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("classifier: parse forest: %w", err)
	}
	return NewForest(spec)
}

// NewForest validates spec and compiles it
func NewForest(spec ForestSpec) (*Forest, error) {
	if err := checkClasses(spec.Classes); err != nil {
		return nil, err
	}
	if spec.NFeatures <= 0 {
		return nil, fmt.Errorf("classifier: n_features must be positive, got %d", spec.NFeatures)
	}
	if len(spec.Trees) == 0 {
		return nil, fmt.Errorf("classifier: forest has no trees")
	}
	f := &Forest{classes: spec.Classes, dim: spec.NFeatures, trees: make([]tree, len(spec.Trees))}
	for i, ts := range spec.Trees {
		t, err := compileTree(ts, len(spec.Classes), spec.NFeatures)
		if err != nil {
			return nil, fmt.Errorf("classifier: tree %d: %w", i, err)
		}
		f.trees[i] = t
	}
	return f, nil
}

func compileTree(ts TreeSpec, nClasses, nFeatures int) (tree, error) {
	n := len(ts.ChildrenLeft)
	if n == 0 {
		return tree{}, fmt.Errorf("no nodes")
	}
	if len(ts.ChildrenRight) != n || len(ts.Feature) != n || len(ts.Threshold) != n || len(ts.Value) != n {
		return tree{}, fmt.Errorf("node arrays differ in length")
	}
	t := tree{
		left:      ts.ChildrenLeft,
		right:     ts.ChildrenRight,
		feature:   ts.Feature,
		threshold: ts.Threshold,
		proba:     make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		l, r := ts.ChildrenLeft[i], ts.ChildrenRight[i]
		if l == leaf || r == leaf {
			if l != r {
				return tree{}, fmt.Errorf("node %d has one child", i)
			}
			row := ts.Value[i]
			if len(row) != nClasses {
				return tree{}, fmt.Errorf("node %d has %d class weights, want %d", i, len(row), nClasses)
			}
			p, err := distribution(row)
			if err != nil {
				return tree{}, fmt.Errorf("node %d: %w", i, err)
			}
			t.proba[i] = p
			continue
		}
		// children always come after their parent, so every walk terminates
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, fmt.Errorf("node %d children (%d, %d) out of range", i, l, r)
		}
		if ft := ts.Feature[i]; ft < 0 || ft >= nFeatures {
			return tree{}, fmt.Errorf("node %d feature %d out of range [0,%d)", i, ft, nFeatures)
		}
		if !finite(ts.Threshold[i]) {
			return tree{}, fmt.Errorf("node %d threshold is not finite", i)
		}
	}
	return t, nil
}

// distribution scales a leaf's class weights to sum to one
func distribution(w []float64) ([]float64, error) {
	var sum float64
	for _, x := range w {
		if !finite(x) || x < 0 {
			return nil, fmt.Errorf("class weight %v is not a finite non-negative number", x)
		}
		sum += x
	}
	p := make([]float64, len(w))
	if sum == 0 {
		return p, nil
	}
	for i, x := range w {
		p[i] = x / sum
	}
	return p, nil
}

// leafOf walks the tree for one row. Feature values are compared at float32
// precision, the precision the trees were fitted at
func (t *tree) leafOf(v vectorizer.Vector) []float64 {
	i := 0
	for t.left[i] != leaf {
		x := float64(float32(v.At(t.feature[i])))
		if x <= t.threshold[i] {
			i = t.left[i]
		} else {
			i = t.right[i]
		}
	}
	return t.proba[i]
}

// Classes returns the class labels in column order
func (f *Forest) Classes() []Label { return f.classes }

// Dim returns n_features
func (f *Forest) Dim() int { return f.dim }

// Trees returns the number of estimators
func (f *Forest) Trees() int { return len(f.trees) }

// PredictProba returns the averaged class distribution per row
func (f *Forest) PredictProba(rows []vectorizer.Vector) ([][]float64, error) {
	if err := checkDim(rows, f.dim); err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	scale := 1 / float64(len(f.trees))
	for r, v := range rows {
		acc := make([]float64, len(f.classes))
		for k := range f.trees {
			for c, p := range f.trees[k].leafOf(v) {
				acc[c] += p
			}
		}
		for c := range acc {
			acc[c] *= scale
		}
		out[r] = acc
	}
	return out, nil
}

// Predict returns the most probable class per row, ties go to the earlier class
func (f *Forest) Predict(rows []vectorizer.Vector) ([]Label, error) {
	proba, err := f.PredictProba(rows)
	if err != nil {
		return nil, err
	}
	out := make([]Label, len(proba))
	for i, p := range proba {
		out[i] = f.classes[argmax(p)]
	}
	return out, nil
}
