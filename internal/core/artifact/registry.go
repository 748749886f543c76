package artifact

import (
	"sort"
	"sync"

	"textclf/internal/core/classifier"
	"textclf/internal/core/vectorizer"
)

// DecodeContext tells a decoder where its artifact lives, for specs that
// reference side files
type DecodeContext struct {
	Path string
	Dir  string
}

// VectorizerDecoder builds a vectorizer from a spec
type VectorizerDecoder func(dc DecodeContext, spec []byte) (vectorizer.Vectorizer, error)

// ClassifierDecoder builds a classifier from a spec
type ClassifierDecoder func(dc DecodeContext, spec []byte) (classifier.Classifier, error)

var (
	regMu sync.RWMutex

	vectorizers = map[string]VectorizerDecoder{
		"tfidf": func(_ DecodeContext, spec []byte) (vectorizer.Vectorizer, error) {
			return vectorizer.DecodeTFIDF(spec)
		},
		"count": func(_ DecodeContext, spec []byte) (vectorizer.Vectorizer, error) {
			return vectorizer.DecodeCount(spec)
		},
	}

	classifiers = map[string]ClassifierDecoder{
		"random_forest": func(_ DecodeContext, spec []byte) (classifier.Classifier, error) {
			return classifier.DecodeForest(spec)
		},
		"linear": func(_ DecodeContext, spec []byte) (classifier.Classifier, error) {
			return classifier.DecodeLinear(spec)
		},
		"onnx": func(dc DecodeContext, spec []byte) (classifier.Classifier, error) {
			return classifier.DecodeONNX(spec, dc.Dir)
		},
	}
)

// RegisterVectorizer adds or replaces the decoder for kind
func RegisterVectorizer(kind string, d VectorizerDecoder) {
	regMu.Lock()
	defer regMu.Unlock()
	vectorizers[kind] = d
}

// RegisterClassifier adds or replaces the decoder for kind
func RegisterClassifier(kind string, d ClassifierDecoder) {
	regMu.Lock()
	defer regMu.Unlock()
	classifiers[kind] = d
}

func vectorizerDecoder(kind string) (VectorizerDecoder, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	d, ok := vectorizers[kind]
	return d, ok
}

func classifierDecoder(kind string) (ClassifierDecoder, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	d, ok := classifiers[kind]
	return d, ok
}

// VectorizerKinds lists registered vectorizer kinds, sorted
func VectorizerKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return sortedKeys(vectorizers)
}

// ClassifierKinds lists registered classifier kinds, sorted
func ClassifierKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	return sortedKeys(classifiers)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
