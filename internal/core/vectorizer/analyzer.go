package vectorizer

import (
	"fmt"
	"regexp"
	"strings"

	"textclf/internal/core/normalize"
)

// DefaultTokenPattern selects tokens of two or more word runes
const DefaultTokenPattern = `(?u)\b\w\w+\b`

// unicodeWordTokens is DefaultTokenPattern with unicode word classes, which RE2
// does not apply to \w and \b. Maximal runs of word runes are exactly the matches
var unicodeWordTokens = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Analyzer names how a document is split into terms
type Analyzer string

const (
	AnalyzerWord   Analyzer = "word"
	AnalyzerChar   Analyzer = "char"
	AnalyzerCharWB Analyzer = "char_wb"
)

// analyzer is the compiled document -> terms pipeline
// Pipeline order
// 1 lowercase
// 2 strip accents
// 3 split into word tokens or character windows
// 4 drop stop words (word only)
// 5 emit n-grams in [minN, maxN]
type analyzer struct {
	kind      Analyzer
	lowercase bool
	accents   normalize.Accents
	tokens    *regexp.Regexp
	group     bool // tokens has one capture group that holds the token
	stop      map[string]struct{}
	minN      int
	maxN      int
}

func compileTokenPattern(p string) (*regexp.Regexp, bool, error) {
	if p == "" {
		return nil, false, fmt.Errorf("empty token_pattern")
	}
	if p == DefaultTokenPattern {
		return unicodeWordTokens, false, nil
	}
	re, err := regexp.Compile(strings.TrimPrefix(p, "(?u)"))
	if err != nil {
		return nil, false, fmt.Errorf("token_pattern %q: %w", p, err)
	}
	switch re.NumSubexp() {
	case 0:
		return re, false, nil
	case 1:
		return re, true, nil
	default:
		return nil, false, fmt.Errorf("token_pattern %q: more than one capturing group", p)
	}
}

func (a *analyzer) preprocess(doc string) string {
	if a.lowercase {
		doc = normalize.Lower(doc)
	}
	return normalize.StripAccents(doc, a.accents)
}

// analyze returns the terms of doc in emission order, repeats included
func (a *analyzer) analyze(doc string) []string {
	doc = a.preprocess(doc)
	switch a.kind {
	case AnalyzerChar:
		return charNgrams(normalize.CollapseSpace(doc), a.minN, a.maxN)
	case AnalyzerCharWB:
		return charWBNgrams(normalize.CollapseSpace(doc), a.minN, a.maxN)
	default:
		return wordNgrams(a.tokenize(doc), a.minN, a.maxN)
	}
}

func (a *analyzer) tokenize(doc string) []string {
	var toks []string
	if a.group {
		for _, m := range a.tokens.FindAllStringSubmatch(doc, -1) {
			toks = a.keep(toks, m[1])
		}
		return toks
	}
	for _, m := range a.tokens.FindAllString(doc, -1) {
		toks = a.keep(toks, m)
	}
	return toks
}

func (a *analyzer) keep(toks []string, t string) []string {
	if _, ok := a.stop[t]; ok {
		return toks
	}
	return append(toks, t)
}

// wordNgrams keeps unigrams first (when minN is 1) then longer n-grams
// joined by a single space
func wordNgrams(toks []string, minN, maxN int) []string {
	if maxN == 1 {
		return toks
	}
	var out []string
	if minN == 1 {
		out = append(out, toks...)
		minN++
	}
	n := len(toks)
	for k := minN; k <= maxN && k <= n; k++ {
		for i := 0; i+k <= n; i++ {
			out = append(out, strings.Join(toks[i:i+k], " "))
		}
	}
	return out
}

// charNgrams emits rune windows over the whole text, spaces included
func charNgrams(doc string, minN, maxN int) []string {
	rs := []rune(doc)
	n := len(rs)
	var out []string
	if minN == 1 {
		for _, r := range rs {
			out = append(out, string(r))
		}
		minN++
	}
	for k := minN; k <= maxN && k <= n; k++ {
		for i := 0; i+k <= n; i++ {
			out = append(out, string(rs[i:i+k]))
		}
	}
	return out
}

// charWBNgrams emits rune windows inside words padded with one space on each
// side. A word shorter than the window is emitted once, padded
func charWBNgrams(doc string, minN, maxN int) []string {
	var out []string
	for _, w := range normalize.Fields(doc) {
		rs := []rune(" " + w + " ")
		n := len(rs)
		for k := minN; k <= maxN; k++ {
			off := 0
			out = append(out, string(rs[off:min(off+k, n)]))
			for off+k < n {
				off++
				out = append(out, string(rs[off:off+k]))
			}
			if off == 0 {
				break
			}
		}
	}
	return out
}
