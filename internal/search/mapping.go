package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for section documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on section titles with English stemming
//  2. Exact keyword matching for bill and stage filters
//  3. Numeric queries on section numbers
//  4. Term vectors on title for highlighting
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Title - primary search and match target
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Heading - raw header line, searchable
	headingFieldMapping := bleve.NewTextFieldMapping()
	headingFieldMapping.Analyzer = en.AnalyzerName
	headingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("heading", headingFieldMapping)

	// Body - searchable but not stored (too large)
	bodyFieldMapping := bleve.NewTextFieldMapping()
	bodyFieldMapping.Analyzer = en.AnalyzerName
	bodyFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("body", bodyFieldMapping)

	// Bill and stage - exact filters
	billFieldMapping := bleve.NewTextFieldMapping()
	billFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("bill_id", billFieldMapping)

	stageFieldMapping := bleve.NewTextFieldMapping()
	stageFieldMapping.Analyzer = keyword.Name
	stageFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("stage", stageFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Section number - for sorting results in bill order
	numberFieldMapping := bleve.NewNumericFieldMapping()
	numberFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("number", numberFieldMapping)

	// Timestamp - for sorting by recency
	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
