package diff

import "math"

// Default thresholds for chunk matching. Both are exclusive: a pair scoring
// exactly at a threshold stays below it.
const (
	// DefaultMatchThreshold is the minimum similarity for two chunks to be
	// considered the same passage at all.
	DefaultMatchThreshold = 0.70
	// DefaultIdenticalThreshold is the minimum similarity for a matched pair
	// to be reported as unchanged rather than modified.
	DefaultIdenticalThreshold = 0.95
)

// Op classifies an alignment entry.
type Op int

// Alignment entry classifications.
const (
	OpUnchanged Op = iota
	OpModified
	OpRemoved
	OpAdded
)

// String returns a human-readable label for the op.
func (o Op) String() string {
	switch o {
	case OpUnchanged:
		return "unchanged"
	case OpModified:
		return "modified"
	case OpRemoved:
		return "removed"
	case OpAdded:
		return "added"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so ops serialize as their
// labels in JSON payloads.
func (o Op) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Entry is one classified outcome of an alignment. Left is set for
// Unchanged, Modified, and Removed entries; Right is set for Unchanged,
// Modified, and Added entries.
type Entry struct {
	Op    Op     `json:"op"`
	Left  *Chunk `json:"left,omitempty"`
	Right *Chunk `json:"right,omitempty"`
}

// Stats aggregates entry counts for a comparison.
//
// Unchanged counts both Unchanged and Modified entries: the displayed
// similarity metric treats a modified passage as surviving content, and the
// unchanged/modified distinction is presentational only.
type Stats struct {
	Added             int `json:"added"`
	Removed           int `json:"removed"`
	Unchanged         int `json:"unchanged"`
	SimilarityPercent int `json:"similarity_percent"`
}

// Result is the full outcome of comparing two raw texts.
type Result struct {
	LeftChunks  []Chunk `json:"left_chunks"`
	RightChunks []Chunk `json:"right_chunks"`
	Entries     []Entry `json:"entries"`
	Stats       Stats   `json:"stats"`
}

// Comparator aligns two chunk sequences using greedy best-match search.
// Thresholds are explicit values rather than process globals so tests can
// construct variants; production callers use New.
type Comparator struct {
	MatchThreshold     float64
	IdenticalThreshold float64
}

// New returns a comparator with the default thresholds.
func New() Comparator {
	return Comparator{
		MatchThreshold:     DefaultMatchThreshold,
		IdenticalThreshold: DefaultIdenticalThreshold,
	}
}

// Compare normalizes and chunks both texts, then aligns the sequences.
func (c Comparator) Compare(leftText, rightText string) Result {
	left := Split(Normalize(leftText))
	right := Split(Normalize(rightText))
	entries, stats := c.Align(left, right)
	return Result{
		LeftChunks:  left,
		RightChunks: right,
		Entries:     entries,
		Stats:       stats,
	}
}

// Align matches each left chunk against its best unclaimed right-side
// candidate above the match threshold, in left order. Matching is greedy and
// single-pass: once a right chunk is claimed it is never revisited, and ties
// keep the first candidate found. Right chunks that no left chunk claimed
// are appended as Added entries, in right order.
//
// Every left chunk lands in exactly one entry, as does every right chunk.
// The result is deliberately not a minimum-edit-distance alignment; callers
// wanting an optimal matcher should add one as a separate strategy rather
// than change this one, since output on ambiguous inputs would differ.
func (c Comparator) Align(left, right []Chunk) ([]Entry, Stats) {
	entries := make([]Entry, 0, len(left)+len(right))
	var stats Stats

	claimed := make([]bool, len(right))

	for i := range left {
		bestIdx := -1
		bestScore := 0.0

		for j := range right {
			if claimed[j] {
				continue
			}
			score := Similarity(left[i].Text, right[j].Text)
			if score > bestScore && score > c.MatchThreshold {
				bestScore = score
				bestIdx = j
			}
		}

		if bestIdx >= 0 {
			claimed[bestIdx] = true
			op := OpModified
			if bestScore > c.IdenticalThreshold {
				op = OpUnchanged
			}
			entries = append(entries, Entry{Op: op, Left: &left[i], Right: &right[bestIdx]})
			stats.Unchanged++
		} else {
			entries = append(entries, Entry{Op: OpRemoved, Left: &left[i]})
			stats.Removed++
		}
	}

	for j := range right {
		if !claimed[j] {
			entries = append(entries, Entry{Op: OpAdded, Right: &right[j]})
			stats.Added++
		}
	}

	stats.SimilarityPercent = similarityPercent(stats.Unchanged, len(left), len(right))
	return entries, stats
}

// similarityPercent derives the displayed percentage from surviving chunk
// count over the larger sequence length. Two empty sequences have no
// divergence to report, so the percentage is 100 by convention.
func similarityPercent(unchanged, leftLen, rightLen int) int {
	total := max(leftLen, rightLen)
	if total == 0 {
		return 100
	}
	return int(math.Round(float64(unchanged) / float64(total) * 100))
}
