// Package artifacttest writes a small review sentiment model pair for tests
package artifacttest

import (
	"testing"

	"textclf/internal/core/artifact"
	kit "textclf/internal/platform/testkit"
)

// VectorizerJSON is a tfidf artifact over an eight term vocabulary
const VectorizerJSON = `{
  "format": "textclf.vectorizer",
  "version": 1,
  "kind": "tfidf",
  "meta": {"exported_by": "sklearn 1.5.1", "name": "reviews"},
  "spec": {
    "vocabulary": {"great": 0, "product": 1, "highly": 2, "recommend": 3,
                   "terrible": 4, "waste": 5, "money": 6, "broken": 7},
    "idf": [1.6931, 1.2876, 2.0986, 1.9808, 1.8109, 2.3862, 2.3862, 2.7918],
    "lowercase": true,
    "ngram_range": [1, 1],
    "norm": "l2",
    "use_idf": true,
    "smooth_idf": true
  }
}`

// ClassifierJSON is a one tree forest over VectorizerJSON's columns
// terrible -> negative, great -> positive, waste -> negative, else positive
const ClassifierJSON = `{
  "format": "textclf.classifier",
  "version": 1,
  "kind": "random_forest",
  "meta": {"exported_by": "sklearn 1.5.1"},
  "spec": {
    "classes": ["negative", "positive"],
    "n_features": 8,
    "trees": [{
      "children_left":  [1, 3, -1, 5, -1, -1, -1],
      "children_right": [2, 4, -1, 6, -1, -1, -1],
      "feature":        [4, 0, -2, 5, -2, -2, -2],
      "threshold":      [0.0, 0.0, -2, 0.0, -2, -2, -2],
      "value":          [[10, 7], [5, 7], [5, 0], [5, 2], [0, 5], [1, 2], [4, 0]]
    }]
  }
}`

// Expected maps sample texts to the label the pair predicts for them
var Expected = map[string]string{
	"great product, highly recommend": "positive",
	"Terrible. A waste of money":      "negative",
	"what a waste":                    "negative",
	"GREAT!!!":                        "positive",
	"hello world":                     "positive",
}

// Write puts both artifacts into dir under their default names
func Write(t *testing.T, dir string) artifact.Paths {
	t.Helper()
	return artifact.Paths{
		Vectorizer: kit.WriteFileIn(t, dir, artifact.DefaultVectorizerPath, VectorizerJSON),
		Classifier: kit.WriteFileIn(t, dir, artifact.DefaultClassifierPath, ClassifierJSON),
	}
}

// Load writes the pair into a temp dir and loads it
func Load(t *testing.T) *artifact.Bundle {
	t.Helper()
	b, err := artifact.Load(t.Context(), Write(t, t.TempDir()))
	if err != nil {
		t.Fatalf("load fixture artifacts: %v", err)
	}
	return b
}
