// Package snowball provides the text analyzer used at index build and
// query time: Unicode tokenization, lowercasing, English stop-word
// removal, and snowball stemming.
package snowball

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"

	"github.com/docdex/docdex"
)

// Ensure Analyzer implements docdex.Analyzer at compile time.
var _ docdex.Analyzer = (*Analyzer)(nil)

// Analyzer is stateless and safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Tokens returns the analyzed terms of the text in order of appearance.
// Tokens keep letters, digits, underscores, and interior hyphens and
// dots, so identifiers like "learn_skeleton" and "dodiscover.Context"
// survive as single terms.
func (a *Analyzer) Tokens(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.'
	})

	var tokens []string
	for _, token := range raw {
		token = strings.Trim(token, "-.")
		if token == "" {
			continue
		}
		token = strings.ToLower(token)
		if _, ok := stopWords[token]; ok {
			continue
		}
		tokens = append(tokens, snowballeng.Stem(token, false))
	}
	return tokens
}

// stopWords are common English words that carry no search value.
var stopWords = map[string]struct{}{
	"a":     {},
	"an":    {},
	"and":   {},
	"are":   {},
	"as":    {},
	"at":    {},
	"be":    {},
	"but":   {},
	"by":    {},
	"for":   {},
	"from":  {},
	"has":   {},
	"have":  {},
	"if":    {},
	"in":    {},
	"into":  {},
	"is":    {},
	"it":    {},
	"its":   {},
	"no":    {},
	"not":   {},
	"of":    {},
	"on":    {},
	"or":    {},
	"such":  {},
	"that":  {},
	"the":   {},
	"their": {},
	"then":  {},
	"there": {},
	"these": {},
	"they":  {},
	"this":  {},
	"to":    {},
	"was":   {},
	"were":  {},
	"will":  {},
	"with":  {},
}
