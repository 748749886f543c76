package vectorizer

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"textclf/internal/core/normalize"
)

// Norm names a row normalization
type Norm string

const (
	NormNone Norm = ""
	NormL1   Norm = "l1"
	NormL2   Norm = "l2"
)

// TFIDFSpec is the JSON form of a fitted term-frequency vectorizer
// Field names and defaults follow scikit-learn's TfidfVectorizer. A null norm
// means no normalization
type TFIDFSpec struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	Analyzer     Analyzer       `json:"analyzer"`
	Lowercase    bool           `json:"lowercase"`
	StripAccents *string        `json:"strip_accents"`
	TokenPattern string         `json:"token_pattern"`
	NgramRange   []int          `json:"ngram_range"`
	StopWords    []string       `json:"stop_words"`
	Norm         *string        `json:"norm"`
	UseIDF       bool           `json:"use_idf"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Binary       bool           `json:"binary"`
}

// DefaultTFIDFSpec returns the spec a bare TfidfVectorizer is fitted with
func DefaultTFIDFSpec() TFIDFSpec {
	l2 := string(NormL2)
	return TFIDFSpec{
		Analyzer:     AnalyzerWord,
		Lowercase:    true,
		TokenPattern: DefaultTokenPattern,
		NgramRange:   []int{1, 1},
		Norm:         &l2,
		UseIDF:       true,
	}
}

// DefaultCountSpec returns the spec a bare CountVectorizer is fitted with
func DefaultCountSpec() TFIDFSpec {
	s := DefaultTFIDFSpec()
	s.Norm = nil
	s.UseIDF = false
	return s
}

// TFIDF is a fitted bag-of-terms vectorizer. It is immutable after New and
// safe for concurrent Transform calls
type TFIDF struct {
	an       analyzer
	vocab    map[string]int
	idf      []float64
	norm     Norm
	useIDF   bool
	sublin   bool
	binary   bool
	dim      int
	analyzer Analyzer
}

var _ Vectorizer = (*TFIDF)(nil)

// DecodeTFIDF parses a tfidf spec over the TfidfVectorizer defaults
func DecodeTFIDF(raw []byte) (*TFIDF, error) {
	return decode(raw, DefaultTFIDFSpec())
}

// DecodeCount parses a count spec over the CountVectorizer defaults
func DecodeCount(raw []byte) (*TFIDF, error) {
	return decode(raw, DefaultCountSpec())
}

func decode(raw []byte, spec TFIDFSpec) (*TFIDF, error) {
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("vectorizer: parse spec: %w", err)
	}
	return New(spec)
}

// New validates spec and compiles it
func New(spec TFIDFSpec) (*TFIDF, error) {
	n := len(spec.Vocabulary)
	if n == 0 {
		return nil, fmt.Errorf("vectorizer: empty vocabulary")
	}
	seen := make([]bool, n)
	for term, col := range spec.Vocabulary {
		if col < 0 || col >= n {
			return nil, fmt.Errorf("vectorizer: term %q column %d out of range [0,%d)", term, col, n)
		}
		if seen[col] {
			return nil, fmt.Errorf("vectorizer: column %d assigned to more than one term", col)
		}
		seen[col] = true
	}

	if spec.UseIDF {
		if len(spec.IDF) != n {
			return nil, fmt.Errorf("vectorizer: idf has %d weights for %d terms", len(spec.IDF), n)
		}
		for i, w := range spec.IDF {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("vectorizer: idf[%d] is not finite", i)
			}
		}
	}

	if len(spec.NgramRange) != 2 {
		return nil, fmt.Errorf("vectorizer: ngram_range must have two values, got %d", len(spec.NgramRange))
	}
	minN, maxN := spec.NgramRange[0], spec.NgramRange[1]
	if minN < 1 || minN > maxN {
		return nil, fmt.Errorf("vectorizer: invalid ngram_range [%d, %d]", minN, maxN)
	}

	var accents normalize.Accents
	if spec.StripAccents != nil {
		a, ok := normalize.ParseAccents(*spec.StripAccents)
		if !ok {
			return nil, fmt.Errorf("vectorizer: unknown strip_accents %q", *spec.StripAccents)
		}
		accents = a
	}

	norm := NormNone
	if spec.Norm != nil {
		switch Norm(*spec.Norm) {
		case NormNone, NormL1, NormL2:
			norm = Norm(*spec.Norm)
		default:
			return nil, fmt.Errorf("vectorizer: unknown norm %q", *spec.Norm)
		}
	}

	an := analyzer{
		kind:      spec.Analyzer,
		lowercase: spec.Lowercase,
		accents:   accents,
		minN:      minN,
		maxN:      maxN,
	}
	switch spec.Analyzer {
	case AnalyzerWord:
		re, group, err := compileTokenPattern(spec.TokenPattern)
		if err != nil {
			return nil, fmt.Errorf("vectorizer: %w", err)
		}
		an.tokens, an.group = re, group
		if len(spec.StopWords) > 0 {
			an.stop = make(map[string]struct{}, len(spec.StopWords))
			for _, w := range spec.StopWords {
				an.stop[w] = struct{}{}
			}
		}
	case AnalyzerChar, AnalyzerCharWB:
	default:
		return nil, fmt.Errorf("vectorizer: unknown analyzer %q", spec.Analyzer)
	}

	return &TFIDF{
		an:       an,
		vocab:    spec.Vocabulary,
		idf:      spec.IDF,
		norm:     norm,
		useIDF:   spec.UseIDF,
		sublin:   spec.SublinearTF,
		binary:   spec.Binary,
		dim:      n,
		analyzer: spec.Analyzer,
	}, nil
}

// Dim returns the vocabulary size
func (t *TFIDF) Dim() int { return t.dim }

// Analyzer returns the configured analyzer name
func (t *TFIDF) Analyzer() Analyzer { return t.analyzer }

// Analyze exposes the term pipeline, for debugging artifacts
func (t *TFIDF) Analyze(doc string) []string { return t.an.analyze(doc) }

// Transform returns one weighted row per document
// Weighting order
// 1 count vocabulary terms, out of vocabulary terms are dropped
// 2 binary clamps counts to 1
// 3 sublinear_tf replaces tf with 1 + ln(tf)
// 4 use_idf multiplies by the column idf
// 5 norm scales the row to unit l1 or l2 length, zero rows stay zero
func (t *TFIDF) Transform(docs []string) ([]Vector, error) {
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = t.row(doc)
	}
	return out, nil
}

func (t *TFIDF) row(doc string) Vector {
	counts := make(map[int]float64)
	for _, term := range t.an.analyze(doc) {
		if col, ok := t.vocab[term]; ok {
			counts[col]++
		}
	}

	v := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
		Dim:     t.dim,
	}
	for col := range counts {
		v.Indices = append(v.Indices, col)
	}
	sort.Ints(v.Indices)

	for _, col := range v.Indices {
		tf := counts[col]
		if t.binary {
			tf = 1
		}
		if t.sublin {
			tf = 1 + math.Log(tf)
		}
		if t.useIDF {
			tf *= t.idf[col]
		}
		v.Values = append(v.Values, tf)
	}

	normalizeRow(v.Values, t.norm)
	return v
}

func normalizeRow(vals []float64, n Norm) {
	var s float64
	switch n {
	case NormL1:
		for _, x := range vals {
			s += math.Abs(x)
		}
	case NormL2:
		for _, x := range vals {
			s += x * x
		}
		s = math.Sqrt(s)
	default:
		return
	}
	if s == 0 {
		return
	}
	for i := range vals {
		vals[i] /= s
	}
}
