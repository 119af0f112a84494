package diff

import "github.com/sergi/go-diff/diffmatchpatch"

// Segment is one annotated chunk on one side of a rendered comparison.
type Segment struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
	// Words carries word-level detail for modified segments; nil otherwise.
	Words []WordSpan `json:"words,omitempty"`
}

// WordKind classifies a span within a word-level diff of a modified pair.
type WordKind int

// Word span classifications.
const (
	WordEqual WordKind = iota
	WordDeleted
	WordInserted
)

// String returns a human-readable label for the word kind.
func (k WordKind) String() string {
	switch k {
	case WordEqual:
		return "equal"
	case WordDeleted:
		return "deleted"
	case WordInserted:
		return "inserted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k WordKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// WordSpan is a run of text within a modified chunk pair, classified by how
// it changed between the two versions.
type WordSpan struct {
	Kind WordKind `json:"kind"`
	Text string   `json:"text"`
}

// Render turns an alignment into paired per-side segment lists. Left-side
// segments carry the left chunk text for Unchanged, Modified, and Removed
// entries; right-side segments carry the right chunk text for Unchanged,
// Modified, and Added entries. Entry order is preserved exactly, so repeated
// renders of the same alignment produce identical output.
//
// Modified segments additionally carry word-level spans. The spans are
// presentational detail only; they never influence classification, entry
// order, or stats.
func Render(entries []Entry) (left, right []Segment) {
	left = make([]Segment, 0, len(entries))
	right = make([]Segment, 0, len(entries))

	for _, e := range entries {
		var words []WordSpan
		if e.Op == OpModified {
			words = WordDiff(e.Left.Text, e.Right.Text)
		}

		if e.Left != nil {
			left = append(left, Segment{Op: e.Op, Text: e.Left.Text, Words: words})
		}
		if e.Right != nil {
			right = append(right, Segment{Op: e.Op, Text: e.Right.Text, Words: words})
		}
	}

	return left, right
}

// WordDiff computes a semantically cleaned character diff between two chunk
// texts, for highlighting what changed inside a modified pair.
func WordDiff(leftText, rightText string) []WordSpan {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(leftText, rightText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	spans := make([]WordSpan, 0, len(diffs))
	for _, d := range diffs {
		var kind WordKind
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			kind = WordEqual
		case diffmatchpatch.DiffDelete:
			kind = WordDeleted
		case diffmatchpatch.DiffInsert:
			kind = WordInserted
		}
		spans = append(spans, WordSpan{Kind: kind, Text: d.Text})
	}
	return spans
}
