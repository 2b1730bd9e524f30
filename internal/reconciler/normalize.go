package reconciler

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalizeText folds a label into its matching form: NFKC, lower case,
// single spaces, no leading or trailing whitespace.
func normalizeText(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// related reports whether either string contains the other. It tolerates
// plural/singular and compound variants ("plates" vs "plate", "dinner plate"
// vs "plate").
func related(text, term string) bool {
	return strings.Contains(text, term) || strings.Contains(term, text)
}

// firstRelated returns the first term, in table order, related to text.
func firstRelated(text string, terms []string) (string, bool) {
	for _, term := range terms {
		if related(text, term) {
			return term, true
		}
	}
	return "", false
}

// cleanName removes noise words (whole words, case-insensitive) and
// capitalizes the first letter of what remains.
func cleanName(text string, noise []string) string {
	words := strings.Fields(text)
	kept := words[:0:0]
	for _, w := range words {
		if isNoise(w, noise) {
			continue
		}
		kept = append(kept, w)
	}
	return capitalize(strings.Join(kept, " "))
}

func isNoise(word string, noise []string) bool {
	for _, n := range noise {
		if strings.EqualFold(word, n) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// dedupKey is the form two names are compared in when deduplicating.
func dedupKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
