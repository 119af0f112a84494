package diff

import (
	"regexp"
	"strings"
)

var (
	// Matches any whitespace run, including newlines and tabs.
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Matches sentence punctuation with any surrounding whitespace.
	punctuationRe = regexp.MustCompile(`\s*([.,:;])\s*`)
	// Matches parentheses and brackets with any surrounding whitespace.
	bracketRe = regexp.MustCompile(`\s*([()\[\]])\s*`)
	// Matches hyphens, en-dashes, and em-dashes with any surrounding whitespace.
	dashRe = regexp.MustCompile(`\s*[-—–]\s*`)
	// Matches straight and curly quote variants, single or double.
	quoteRe = regexp.MustCompile("[\"'‘’“”]")
)

// Normalize canonicalizes whitespace, punctuation spacing, dashes, and quotes
// so that two passages that differ only in formatting compare equal.
//
// The rules run in a fixed order because later rules assume earlier cleanup:
//  1. Collapse whitespace runs to a single space
//  2. Punctuation gets no space before, one space after
//  3. Strip whitespace adjacent to parentheses and brackets
//  4. Any dash variant becomes a bare em-dash
//  5. Any quote variant becomes a straight double quote
//  6. Re-collapse whitespace and trim
//
// Normalize is idempotent and never fails; empty input yields empty output.
func Normalize(text string) string {
	s := whitespaceRe.ReplaceAllString(text, " ")
	s = punctuationRe.ReplaceAllString(s, "$1 ")
	s = bracketRe.ReplaceAllString(s, "$1")
	s = dashRe.ReplaceAllString(s, "—")
	s = quoteRe.ReplaceAllString(s, `"`)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
