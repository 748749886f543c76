// Package normalize provides the text preprocessing steps shared by the vectorizers
// Accent stripping
// 1 Unicode     NFKD decomposition then drop combining marks
// 2 ASCII       NFKD decomposition then drop everything outside ASCII
// Case
// 3 Lower       full Unicode lowercasing with SpecialCasing, as str.lower does
// Whitespace
// 4 Collapse    runs of two or more whitespace runes become one ASCII space
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Accents selects an accent stripping mode
type Accents string

const (
	// AccentsNone leaves the text untouched
	AccentsNone Accents = ""
	// AccentsUnicode removes combining marks after NFKD, works on any script
	AccentsUnicode Accents = "unicode"
	// AccentsASCII keeps only the ASCII part of the NFKD form
	AccentsASCII Accents = "ascii"
)

// ParseAccents validates a mode name
func ParseAccents(s string) (Accents, bool) {
	switch a := Accents(s); a {
	case AccentsNone, AccentsUnicode, AccentsASCII:
		return a, true
	}
	return AccentsNone, false
}

// pools of fresh transformer chains, one per mode
var (
	unicodePool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKD,
				runes.Remove(runes.In(unicode.Mn)), // combining marks
			)
		},
	}
	asciiPool = sync.Pool{
		New: func() any {
			return transform.Chain(
				norm.NFKD,
				runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
			)
		},
	}
)

// casers are stateful, so each call takes its own from the pool
var lowerPool = sync.Pool{
	New: func() any { return cases.Lower(language.Und) },
}

// Lower lowercases s with the full Unicode mapping: a word-final capital sigma
// becomes ς and İ becomes i followed by U+0307
func Lower(s string) string {
	if isASCII(s) {
		return strings.ToLower(s)
	}
	c := lowerPool.Get().(cases.Caser)
	out := c.String(s)
	lowerPool.Put(c)
	return out
}

// StripAccents applies mode a to s
func StripAccents(s string, a Accents) string {
	switch a {
	case AccentsUnicode:
		return run(&unicodePool, s)
	case AccentsASCII:
		return run(&asciiPool, s)
	default:
		return s
	}
}

// run transforms s with a pooled chain then resets and returns it
func run(p *sync.Pool, s string) string {
	if s == "" {
		return s
	}
	// NFKD leaves pure ASCII alone so the chain can be skipped
	if isASCII(s) {
		return s
	}
	tr := p.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)
	if err != nil {
		return s
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// IsSpace reports whether r splits words, matching str.split semantics:
// unicode.IsSpace plus the ASCII information separators
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Fields splits s around runs of IsSpace runes
func Fields(s string) []string { return strings.FieldsFunc(s, IsSpace) }

// CollapseSpace replaces every run of two or more whitespace runes with a single
// ASCII space. A lone whitespace rune is kept as is, and the edges are not trimmed
func CollapseSpace(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	var (
		run   int  // length of the current whitespace run
		first rune // first rune of the run
	)
	flush := func() {
		switch {
		case run == 1:
			b.WriteRune(first)
		case run > 1:
			b.WriteByte(' ')
		}
		run = 0
	}
	for _, r := range s {
		if IsSpace(r) {
			if run == 0 {
				first = r
			}
			run++
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}
