// Package search finds encounters whose free-text fields contain a query.
package search

import "github.com/arthur-debert/encounters/types"

// Searchable field names
const (
	FieldDescription = "description"
	FieldWhen        = "when"
)

// SearchOptions configures search behavior
type SearchOptions struct {
	// Query is the text to look for
	Query string

	// Fields restricts the search to these fields (FieldDescription, FieldWhen).
	// Empty searches both.
	Fields []string

	// Type restricts results to one encounter type. The zero value means all types.
	Type types.EncounterType

	// CaseSensitive controls whether search is case-sensitive
	CaseSensitive bool

	// ExactMatch requires the entire field to equal the query
	ExactMatch bool

	// EnableHighlight includes highlighted field text in results
	EnableHighlight bool

	// HighlightStartMarker and HighlightEndMarker wrap matches; both default to "**"
	HighlightStartMarker string
	HighlightEndMarker   string

	// MaxResults limits the number of results; zero or negative means no limit
	MaxResults int
}

// SearchResult is a matching encounter with its relevance
type SearchResult struct {
	Encounter types.Encounter

	// Score is the best field score, 0.0 to 1.0, higher is better
	Score float64

	// MatchedFields lists the fields that contained the query, in search order
	MatchedFields []string

	// Highlights maps field name to text with match markers (EnableHighlight only)
	Highlights map[string]string
}

// EncounterProvider supplies the encounters to search.
// storage.EncounterRepository satisfies it.
type EncounterProvider interface {
	FindAll() ([]types.Encounter, error)
	FindByType(encounterType types.EncounterType) ([]types.Encounter, error)
}
