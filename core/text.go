package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combining diacritical marks block
var diacritics = runes.Predicate(func(r rune) bool { return r >= 0x0300 && r <= 0x036f })

// FoldAccents lowers s and strips its combining diacritics ("Maestría" -> "maestria").
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(diacritics))
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ReplaceAll(folded, "ñ", "n")
}

// NormalizeKey turns a spreadsheet header into its lookup key:
// trimmed, lowercased, accent-free, "ñ" folded to "n" and without any whitespace.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, FoldAccents(key))
}
