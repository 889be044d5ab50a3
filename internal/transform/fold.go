// Package transform holds the pure field transformers used by the converters:
// unit conversion, free-text extraction, enumeration lookup, money and rating
// parsing. Nothing in this package performs I/O or keeps mutable state.
package transform

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold lowers case, strips diacritics and collapses inner whitespace so that
// "Cortante", "cortante " and "CORTANTE" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(folder.String(out)), " ")
}

// SplitList breaks a free-text list into trimmed tokens. Commas, semicolons,
// slashes and the conjunctions "and"/"y"/"or"/"o" all separate items.
func SplitList(s string) []string {
	s = strings.NewReplacer(";", ",", "/", ",", "\n", ",").Replace(s)
	var out []string
	for _, part := range strings.Split(s, ",") {
		for _, tok := range splitConjunctions(part) {
			tok = strings.Trim(tok, " .\t")
			if tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

func splitConjunctions(s string) []string {
	words := strings.Fields(s)
	var (
		out []string
		cur []string
	)
	for _, w := range words {
		switch strings.ToLower(w) {
		case "and", "y", "or", "o", "e":
			if len(cur) > 0 {
				out = append(out, strings.Join(cur, " "))
				cur = nil
			}
			continue
		}
		cur = append(cur, w)
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}

// firstWord returns the leading run of letters of s.
func firstWord(s string) string {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		return s
	}
	return s[:end]
}
