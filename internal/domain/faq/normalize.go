package faq

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// normalizeText is the only transformation applied before similarity scoring.
// Lowercasing uses full Unicode case mapping.
func normalizeText(s string) string {
	// a Caser is stateful and must not be shared between goroutines
	return cases.Lower(language.Und).String(strings.TrimFunc(s, isTrimSpace))
}

// isTrimSpace extends unicode.IsSpace with the ASCII file, group, record and
// unit separators, which are whitespace for trimming purposes.
func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// canonicalQuery folds punctuation and repeated whitespace so that trivially
// different phrasings share one stats bucket.
func canonicalQuery(q string) string {
	lowered := normalizeText(q)
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		// punctuation and whitespace both collapse to a single space
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// NormalizeQuestion applies the matcher's normalization. Two questions with the
// same normalized form can never both be matched.
func NormalizeQuestion(s string) string {
	return normalizeText(s)
}
