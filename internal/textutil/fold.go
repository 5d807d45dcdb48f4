package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldTitle strips combining marks and case-folds text so that labels typed
// with and without diacritics compare equal ("Maľovanie" == "malovanie").
func FoldTitle(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// Transformers carry state; build a fresh chain per call.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(strip, text)
	if err != nil {
		stripped = text
	}
	return cases.Fold().String(stripped)
}

// EqualFolded reports whether a and b are equal after FoldTitle.
func EqualFolded(a, b string) bool {
	return FoldTitle(a) == FoldTitle(b)
}
