package vectorizer

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewSpec = `{
	"vocabulary": {"good": 0, "bad": 1, "movie": 2},
	"idf": [1.0, 2.0, 1.5]
}`

func mustDecode(t *testing.T, raw string) *TFIDF {
	t.Helper()
	v, err := DecodeTFIDF([]byte(raw))
	require.NoError(t, err)
	return v
}

func transformOne(t *testing.T, v Vectorizer, doc string) Vector {
	t.Helper()
	rows, err := v.Transform([]string{doc})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestTFIDF_Defaults(t *testing.T) {
	v := mustDecode(t, reviewSpec)
	assert.Equal(t, 3, v.Dim())
	assert.Equal(t, AnalyzerWord, v.Analyzer())

	row := transformOne(t, v, "Good good MOVIE!")
	assert.Equal(t, []int{0, 2}, row.Indices)
	assert.Equal(t, 3, row.Dim)
	// tf*idf = [2, 1.5], l2 length 2.5
	assert.InDeltaSlice(t, []float64{0.8, 0.6}, row.Values, 1e-12)
}

func TestTFIDF_Weighting(t *testing.T) {
	cases := []struct {
		name  string
		extra string
		want  []float64
	}{
		{"l1", `"norm": "l1"`, []float64{2 / 3.5, 1.5 / 3.5}},
		{"null norm", `"norm": null`, []float64{2, 1.5}},
		{"empty norm", `"norm": ""`, []float64{2, 1.5}},
		{"sublinear", `"norm": null, "sublinear_tf": true`, []float64{1 + math.Ln2, 1.5}},
		{"binary", `"norm": null, "binary": true`, []float64{1, 1.5}},
		{"no idf", `"norm": null, "use_idf": false`, []float64{2, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := `{"vocabulary": {"good": 0, "bad": 1, "movie": 2}, "idf": [1.0, 2.0, 1.5], ` + tc.extra + `}`
			row := transformOne(t, mustDecode(t, raw), "good movie good")
			assert.Equal(t, []int{0, 2}, row.Indices)
			assert.InDeltaSlice(t, tc.want, row.Values, 1e-12)
		})
	}
}

func TestTFIDF_OutOfVocabularyRowIsZero(t *testing.T) {
	row := transformOne(t, mustDecode(t, reviewSpec), "nothing known here")
	assert.Zero(t, row.NNZ())
	assert.Equal(t, 3, row.Dim)
}

func TestTFIDF_Ngrams(t *testing.T) {
	v := mustDecode(t, `{
		"vocabulary": {"not": 0, "good": 1, "not good": 2},
		"idf": [1, 1, 1],
		"ngram_range": [1, 2],
		"norm": null
	}`)
	assert.Equal(t, []string{"not", "good", "not good"}, v.Analyze("Not good"))
	row := transformOne(t, v, "not good")
	assert.Equal(t, []int{0, 1, 2}, row.Indices)
	assert.Equal(t, []float64{1, 1, 1}, row.Values)

	bi := mustDecode(t, `{"vocabulary": {"a b": 0}, "idf": [1], "ngram_range": [2, 3], "token_pattern": "\\w+"}`)
	assert.Equal(t, []string{"a b", "b c", "a b c"}, bi.Analyze("a b c"))
}

func TestTFIDF_StopWords(t *testing.T) {
	v := mustDecode(t, `{
		"vocabulary": {"the": 0, "movie": 1, "the movie": 2},
		"idf": [1, 1, 1],
		"ngram_range": [1, 2],
		"stop_words": ["the"]
	}`)
	// stop words go before n-grams are formed
	assert.Equal(t, []string{"movie"}, v.Analyze("The movie"))
}

func TestTFIDF_Tokenizer(t *testing.T) {
	v := mustDecode(t, `{"vocabulary": {"x": 0}, "idf": [1]}`)
	assert.Equal(t, []string{"naïve", "café", "ok", "日本語", "snake_case"}, v.Analyze("Naïve CAFÉ ok a 日本語 snake_case"))

	grp := mustDecode(t, `{"vocabulary": {"go": 0}, "idf": [1], "token_pattern": "#(\\w+)"}`)
	assert.Equal(t, []string{"go", "rust"}, grp.Analyze("#Go and #rust"))

	cased := mustDecode(t, `{"vocabulary": {"Go": 0}, "idf": [1], "lowercase": false}`)
	assert.Equal(t, []string{"Go", "go"}, cased.Analyze("Go go"))
}

func TestTFIDF_LowercaseUsesSpecialCasing(t *testing.T) {
	// final sigma and dotted capital I lower the way str.lower does
	v := mustDecode(t, `{"vocabulary": {"οδος": 0, "σας": 1}, "idf": [1, 1], "norm": null}`)
	assert.Equal(t, []string{"οδος", "stanbul", "σας"}, v.Analyze("ΟΔΟΣ İstanbul ΣΑΣ"))
	row := transformOne(t, v, "ΟΔΟΣ ΣΑΣ")
	assert.Equal(t, []int{0, 1}, row.Indices)
	assert.Equal(t, []float64{1, 1}, row.Values)

	ch := mustDecode(t, `{"vocabulary": {"i\u0307": 0}, "idf": [1], "analyzer": "char", "ngram_range": [2, 2]}`)
	assert.Equal(t, []string{"i\u0307"}, ch.Analyze("İ"))
	assert.Equal(t, []int{0}, transformOne(t, ch, "İ").Indices)
}

func TestTFIDF_StripAccents(t *testing.T) {
	v := mustDecode(t, `{"vocabulary": {"cafe": 0}, "idf": [1], "strip_accents": "unicode"}`)
	row := transformOne(t, v, "Café")
	assert.Equal(t, []int{0}, row.Indices)

	ascii := mustDecode(t, `{"vocabulary": {"naive": 0}, "idf": [1], "strip_accents": "ascii"}`)
	assert.Equal(t, []string{"naive"}, ascii.Analyze("naïve Ж"))
}

func TestTFIDF_CharAnalyzers(t *testing.T) {
	ch := mustDecode(t, `{"vocabulary": {"ab": 0}, "idf": [1], "analyzer": "char", "ngram_range": [1, 2]}`)
	assert.Equal(t, []string{"a", "b", " ", "c", "ab", "b ", " c"}, ch.Analyze("AB  c"))

	wb := mustDecode(t, `{"vocabulary": {"ab": 0}, "idf": [1], "analyzer": "char_wb", "ngram_range": [2, 3]}`)
	assert.Equal(t, []string{" a", "ab", "b ", " ab", "ab "}, wb.Analyze("ab"))

	// a word shorter than the window is emitted once, padded
	short := mustDecode(t, `{"vocabulary": {" a ": 0}, "idf": [1], "analyzer": "char_wb", "ngram_range": [2, 4]}`)
	assert.Equal(t, []string{" a", "a ", " a "}, short.Analyze("a"))
}

func TestDecodeCount(t *testing.T) {
	v, err := DecodeCount([]byte(`{"vocabulary": {"aa": 0, "bb": 1}}`))
	require.NoError(t, err)
	row := transformOne(t, v, "aa bb aa")
	assert.Equal(t, []float64{2, 1}, row.Values)
}

func TestDecodeTFIDF_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		msg  string
	}{
		{"malformed", `{"vocabulary": `, "parse spec"},
		{"empty vocabulary", `{"vocabulary": {}, "idf": []}`, "empty vocabulary"},
		{"column out of range", `{"vocabulary": {"a": 0, "b": 2}, "idf": [1, 1]}`, "out of range"},
		{"duplicate column", `{"vocabulary": {"a": 0, "b": 0}, "idf": [1, 1]}`, "more than one term"},
		{"idf length", `{"vocabulary": {"a": 0, "b": 1}, "idf": [1]}`, "idf has 1 weights for 2 terms"},
		{"ngram arity", `{"vocabulary": {"a": 0}, "idf": [1], "ngram_range": [1]}`, "two values"},
		{"ngram order", `{"vocabulary": {"a": 0}, "idf": [1], "ngram_range": [3, 2]}`, "invalid ngram_range"},
		{"ngram zero", `{"vocabulary": {"a": 0}, "idf": [1], "ngram_range": [0, 1]}`, "invalid ngram_range"},
		{"analyzer", `{"vocabulary": {"a": 0}, "idf": [1], "analyzer": "sentence"}`, "unknown analyzer"},
		{"norm", `{"vocabulary": {"a": 0}, "idf": [1], "norm": "max"}`, "unknown norm"},
		{"accents", `{"vocabulary": {"a": 0}, "idf": [1], "strip_accents": "latin"}`, "unknown strip_accents"},
		{"bad pattern", `{"vocabulary": {"a": 0}, "idf": [1], "token_pattern": "(?<=x)"}`, "token_pattern"},
		{"empty pattern", `{"vocabulary": {"a": 0}, "idf": [1], "token_pattern": ""}`, "empty token_pattern"},
		{"two groups", `{"vocabulary": {"a": 0}, "idf": [1], "token_pattern": "(a)(b)"}`, "more than one capturing group"},
		{"named stop list", `{"vocabulary": {"a": 0}, "idf": [1], "stop_words": "english"}`, "parse spec"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeTFIDF([]byte(tc.raw))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}

	spec := DefaultTFIDFSpec()
	spec.Vocabulary = map[string]int{"a": 0}
	spec.IDF = []float64{math.NaN()}
	_, err := New(spec)
	require.ErrorContains(t, err, "not finite")
}

func TestTFIDF_ConcurrentTransform(t *testing.T) {
	v := mustDecode(t, reviewSpec)
	docs := []string{"good movie", "bad bad movie", "good", "unrelated"}
	want, err := v.Transform(docs)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := v.Transform(docs)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
