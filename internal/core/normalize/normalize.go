// Package normalize folds transcript and keyword text into a comparable form
// Pipeline order
// 1 Sanitize control characters and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove combining marks and format characters
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // combining marks
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the folded form of s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = strings.ToLower(s)
	}

	return collapseSpaces(ns)
}

// CountTerms reports how many occurrences of terms appear in haystack after folding both sides
// empty terms are ignored
func (n *Normalizer) CountTerms(haystack string, terms []string) int {
	h := n.Normalize(haystack)
	if h == "" {
		return 0
	}
	total := 0
	for _, t := range terms {
		nt := n.Normalize(t)
		if nt == "" {
			continue
		}
		total += strings.Count(h, nt)
	}
	return total
}

// collapseSpaces converts whitespace runs (including newlines) to one ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
