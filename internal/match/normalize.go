package match

import (
	"strings"
	"unicode"
)

// minTokenLength drops very short words before vectorization
const minTokenLength = 3

// stopwords are common English words excluded from the vocabulary and from
// match-reason overlap.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "was": true,
	"were": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "can": true,
	"shall": true, "not": true, "but": true, "then": true, "than": true,
	"this": true, "that": true, "these": true, "those": true, "with": true,
	"from": true, "into": true, "about": true, "out": true, "its": true,
	"what": true, "which": true, "who": true, "how": true, "when": true,
	"where": true, "why": true, "you": true, "your": true, "they": true,
	"them": true, "their": true, "our": true, "want": true, "using": true,
	"use": true, "all": true, "any": true, "some": true,
}

// Normalize lowercases text, replaces every rune that is not a letter,
// digit, or whitespace with a space, collapses whitespace runs, and trims.
// Empty or null-ish input returns "". Pure function, never errors.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it into tokens, dropping stop-words
// and tokens shorter than minTokenLength.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < minTokenLength || stopwords[f] {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
