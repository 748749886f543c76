// Package artifact loads the fitted vectorizer and classifier from disk
// Each artifact is one JSON document
//
//	{"format": "textclf.vectorizer", "version": 1, "kind": "tfidf", "meta": {...}, "spec": {...}}
//
// format names the slot, version guards against newer exporters, kind picks a
// registered decoder and spec is handed to it untouched
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"

	"textclf/internal/core/classifier"
	"textclf/internal/core/vectorizer"
)

const (
	// FormatVectorizer marks a vectorizer artifact
	FormatVectorizer = "textclf.vectorizer"
	// FormatClassifier marks a classifier artifact
	FormatClassifier = "textclf.classifier"
	// Version is the newest header version this build reads
	Version = 1

	// DefaultVectorizerPath is read when no path is configured
	DefaultVectorizerPath = "tfidf_vectorizer.json"
	// DefaultClassifierPath is read when no path is configured
	DefaultClassifierPath = "random_forest_model.json"
)

// header is the envelope shared by both artifact kinds
type header struct {
	Format  string          `json:"format"`
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	Meta    map[string]any  `json:"meta,omitempty"`
	Spec    json.RawMessage `json:"spec"`
}

// Info describes a loaded artifact file
type Info struct {
	Path    string         `json:"path"`
	Format  string         `json:"format"`
	Version int            `json:"version"`
	Kind    string         `json:"kind"`
	SHA256  string         `json:"sha256"`
	Size    int64          `json:"size"`
	Dim     int            `json:"dim"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Paths locates the two artifacts
type Paths struct {
	Vectorizer string
	Classifier string
}

// DefaultPaths returns the working directory defaults
func DefaultPaths() Paths {
	return Paths{Vectorizer: DefaultVectorizerPath, Classifier: DefaultClassifierPath}
}

// Bundle is the loaded, read-only model pair. It is shared by all requests
type Bundle struct {
	Vectorizer     vectorizer.Vectorizer
	Classifier     classifier.Classifier
	VectorizerInfo Info
	ClassifierInfo Info
}

// NewBundle assembles a bundle from already built parts
func NewBundle(v vectorizer.Vectorizer, c classifier.Classifier) *Bundle {
	return &Bundle{
		Vectorizer:     v,
		Classifier:     c,
		VectorizerInfo: Info{Format: FormatVectorizer, Version: Version, Dim: v.Dim()},
		ClassifierInfo: Info{Format: FormatClassifier, Version: Version, Dim: c.Dim()},
	}
}

// Classes lists the labels the classifier can emit
func (b *Bundle) Classes() []classifier.Label { return b.Classifier.Classes() }

// Close releases native resources held by the classifier
func (b *Bundle) Close() error {
	if b == nil || b.Classifier == nil {
		return nil
	}
	if c, ok := b.Classifier.(classifier.Closer); ok {
		return c.Close()
	}
	return nil
}

// Encode renders an artifact document, the inverse of the loaders
func Encode(format, kind string, spec any, meta map[string]any) ([]byte, error) {
	if format != FormatVectorizer && format != FormatClassifier {
		return nil, fmt.Errorf("artifact: unknown format %q", format)
	}
	if kind == "" {
		return nil, errors.New("artifact: empty kind")
	}
	raw, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("artifact: encode spec: %w", err)
	}
	return json.MarshalIndent(header{Format: format, Version: Version, Kind: kind, Meta: meta, Spec: raw}, "", "  ")
}
