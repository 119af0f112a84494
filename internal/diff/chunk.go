// Package diff compares two versions of a legislative section's prose and
// reports which passages are unchanged, modified, added, or removed while
// ignoring whitespace, punctuation, and quoting differences that carry no
// legal meaning.
//
// Everything in this package is a pure function over strings. There is no
// shared state, so concurrent comparisons of independent section pairs need
// no synchronization.
package diff

import "strings"

// Chunk is a clause-level fragment of normalized text, the unit of
// comparison. Index is the chunk's position within its source sequence.
// Text is never empty or whitespace-only.
type Chunk struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Split breaks normalized text into an ordered chunk sequence on sentence
// and clause boundaries. The delimiters '.', ';', and ':' are consumed, each
// piece is trimmed, and empty pieces are dropped so indices stay dense.
// Text with no delimiters yields a single chunk; empty or whitespace-only
// text yields none.
func Split(text string) []Chunk {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == ';' || r == ':'
	})

	chunks := make([]Chunk, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		chunks = append(chunks, Chunk{Index: len(chunks), Text: part})
	}
	return chunks
}
