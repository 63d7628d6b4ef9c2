// Package slug holds the string derivation helpers shared by the importer
// and the API layer: URL slug generation, SEO text truncation and the Paris
// arrondissement labels derived from postal codes.
package slug

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonWord     = regexp.MustCompile(`[^a-z0-9-]+`)
	whitespace  = regexp.MustCompile(`\s+`)
	multiHyphen = regexp.MustCompile(`-{2,}`)

	// NFD decomposition followed by removal of combining marks strips accents
	// (Café -> Cafe) before the ASCII-only pass.
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Make converts a display name into a URL-safe slug. Returns an empty string
// when nothing survives the folding; callers must substitute a fallback.
func Make(text string) string {
	folded, _, err := transform.String(accentFolder, text)
	if err != nil {
		folded = text
	}

	s := strings.ToLower(strings.TrimSpace(folded))
	s = whitespace.ReplaceAllString(s, "-")
	s = nonWord.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return s
}

// Truncate shortens text to maxLength characters, cutting on a word boundary
// and appending "..." when truncation happens. Meta descriptions use 160.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	const suffix = "..."
	cut := text[:maxLength-len(suffix)]

	// the byte cut may land inside a multibyte rune; back up to a boundary
	for len(cut) > 0 {
		if r, size := utf8.DecodeLastRuneInString(cut); r == utf8.RuneError && size <= 1 {
			cut = cut[:len(cut)-1]
			continue
		}
		break
	}

	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + suffix
}

// ArrondissementNumber extracts the arrondissement number from a Paris postal
// code ("75004" -> 4). Returns 0 when the code is not a 75xxx code.
func ArrondissementNumber(postalCode string) int {
	if len(postalCode) < 5 || !strings.HasPrefix(postalCode, "75") {
		return 0
	}
	n, err := strconv.Atoi(postalCode[3:5])
	if err != nil {
		return 0
	}
	return n
}

// ArrondissementLabel formats the arrondissement for display: "1er
// Arrondissement" for the first, "Nème Arrondissement" otherwise. Empty for
// non-Paris codes.
func ArrondissementLabel(postalCode string) string {
	n := ArrondissementNumber(postalCode)
	switch {
	case n == 0:
		return ""
	case n == 1:
		return "1er Arrondissement"
	default:
		return fmt.Sprintf("%dème Arrondissement", n)
	}
}

// PostalCodeForArrondissement rebuilds the canonical five character postal
// code from an arrondissement number (4 -> "75004").
func PostalCodeForArrondissement(n int) string {
	return fmt.Sprintf("750%02d", n)
}
