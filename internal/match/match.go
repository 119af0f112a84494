// Package match pairs sections across two stages of a bill by title
// similarity. Pairings at or above the confidence gate become traces.
package match

import (
	"context"
	"regexp"
	"strings"

	"github.com/billtrace/billtrace-server/internal/diff"
	"github.com/billtrace/billtrace-server/internal/domain"
	"github.com/billtrace/billtrace-server/internal/search"
)

// DefaultThreshold is the minimum title similarity, in percent, for a
// pairing to count as a match. Section titles are stable across stages, so
// the gate sits high; body text is where the real drift happens.
const DefaultThreshold = 90.0

// DefaultCandidateLimit bounds how many search hits are scored per section
// when a candidate source is configured.
const DefaultCandidateLimit = 10

// CandidateSource narrows the sections worth scoring for a title. The
// search index implements this; without one the matcher scores every
// section of the target stage.
type CandidateSource interface {
	TitleCandidates(ctx context.Context, billID, stage, title string, limit int) ([]search.SearchHit, error)
}

// Match is one cross-stage pairing.
type Match struct {
	Left  *domain.Section
	Right *domain.Section
	Score float64 // Title similarity in percent
}

// Matcher pairs sections across stages.
type Matcher struct {
	Threshold      float64
	CandidateLimit int
	Candidates     CandidateSource // Optional
}

// New creates a Matcher with default settings.
func New() *Matcher {
	return &Matcher{
		Threshold:      DefaultThreshold,
		CandidateLimit: DefaultCandidateLimit,
	}
}

// NewWithCandidates creates a Matcher that consults a candidate source
// before scoring.
func NewWithCandidates(source CandidateSource) *Matcher {
	m := New()
	m.Candidates = source
	return m
}

// Run pairs left-stage sections against right-stage sections. Each section
// matches at most once: left sections are processed in bill order and a
// claimed right section is never offered to a later left section, even if
// it would score higher there.
func (m *Matcher) Run(ctx context.Context, left, right []*domain.Section) ([]Match, error) {
	byID := make(map[string]*domain.Section, len(right))
	for _, section := range right {
		byID[section.ID] = section
	}

	claimed := make(map[string]bool, len(right))
	var matches []Match

	for _, l := range left {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates := right
		if m.Candidates != nil && l.Title != "" {
			hits, err := m.Candidates.TitleCandidates(ctx, l.BillID, string(rightStage(right)), l.Title, m.CandidateLimit)
			if err != nil {
				return nil, err
			}
			candidates = candidates[:0:0]
			for _, hit := range hits {
				if section, ok := byID[hit.ID]; ok {
					candidates = append(candidates, section)
				}
			}
		}

		var best *domain.Section
		bestScore := 0.0
		for _, r := range candidates {
			if claimed[r.ID] {
				continue
			}
			score := TitleSimilarity(l.Title, r.Title)
			if score > bestScore && score >= m.Threshold {
				best = r
				bestScore = score
			}
		}

		if best != nil {
			claimed[best.ID] = true
			matches = append(matches, Match{Left: l, Right: best, Score: bestScore})
		}
	}

	return matches, nil
}

var titleCleanRe = regexp.MustCompile(`[^a-z0-9]+`)

// TitleSimilarity scores two section titles as a percentage. Casing and
// punctuation are stripped before scoring so "MILITARY PAY RAISE." and
// "Military pay raise" compare as identical.
func TitleSimilarity(a, b string) float64 {
	return diff.Similarity(cleanTitle(a), cleanTitle(b)) * 100
}

func cleanTitle(s string) string {
	return strings.TrimSpace(titleCleanRe.ReplaceAllString(strings.ToLower(s), " "))
}

// rightStage returns the stage of the target sections, or "" when none.
func rightStage(sections []*domain.Section) domain.Stage {
	if len(sections) == 0 {
		return ""
	}
	return sections[0].Stage
}
