package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query

	// Filters
	BillID string // Restrict to one bill (empty = all)
	Stage  string // Restrict to one stage (empty = all)

	// Pagination
	Limit  int
	Offset int

	// Options
	Highlight bool // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		Offset:    0,
		Highlight: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Heading    string            `json:"heading,omitempty"`
	Stage      string            `json:"stage,omitempty"`
	Number     int               `json:"number,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query over indexed sections.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("heading")
	}

	searchRequest.Fields = []string{"id", "title", "heading", "stage", "number"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if h, ok := hit.Fields["heading"].(string); ok {
			searchHit.Heading = h
		}
		if st, ok := hit.Fields["stage"].(string); ok {
			searchHit.Stage = st
		}
		if n, ok := hit.Fields["number"].(float64); ok {
			searchHit.Number = int(n)
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// TitleCandidates returns the best-scoring sections of one bill stage for a
// title query. The matcher uses this to narrow candidates before its own
// similarity gate; the limit stays small since only top matches are viable.
func (s *SearchIndex) TitleCandidates(ctx context.Context, billID, stage, title string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	result, err := s.Search(ctx, SearchParams{
		Query:  title,
		BillID: billID,
		Stage:  stage,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return result.Hits, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query. Titles are the primary target; headings catch
	// searches for raw header text, and body matches rank lowest.
	if params.Query != "" {
		textQueries := []query.Query{}

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		headingMatch := bleve.NewMatchQuery(params.Query)
		headingMatch.SetField("heading")
		headingMatch.SetBoost(1.5)
		textQueries = append(textQueries, headingMatch)

		bodyMatch := bleve.NewMatchQuery(params.Query)
		bodyMatch.SetField("body")
		bodyMatch.SetBoost(0.5)
		textQueries = append(textQueries, bodyMatch)

		// Fuzzy matching for typo tolerance on title
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Bill filter
	if params.BillID != "" {
		billQuery := bleve.NewTermQuery(params.BillID)
		billQuery.SetField("bill_id")
		queries = append(queries, billQuery)
	}

	// Stage filter
	if params.Stage != "" {
		stageQuery := bleve.NewTermQuery(params.Stage)
		stageQuery.SetField("stage")
		queries = append(queries, stageQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}
