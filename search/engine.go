package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/encounters/types"
)

// Engine searches encounters from a provider
type Engine struct {
	provider EncounterProvider
}

// NewEngine creates a new search engine with the given provider
func NewEngine(provider EncounterProvider) *Engine {
	return &Engine{
		provider: provider,
	}
}

// Search returns matching encounters ranked by score. Equal scores keep
// file order.
func (e *Engine) Search(options SearchOptions) ([]SearchResult, error) {
	if options.Query == "" {
		return []SearchResult{}, nil
	}

	fields := options.Fields
	if len(fields) == 0 {
		fields = []string{FieldDescription, FieldWhen}
	}
	for _, field := range fields {
		if field != FieldDescription && field != FieldWhen {
			return nil, fmt.Errorf("unknown search field %q", field)
		}
	}

	var encounters []types.Encounter
	var err error
	if options.Type.Valid() {
		encounters, err = e.provider.FindByType(options.Type)
	} else {
		encounters, err = e.provider.FindAll()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get encounters: %w", err)
	}

	results := []SearchResult{}
	for _, encounter := range encounters {
		if result := e.searchEncounter(encounter, fields, options); result != nil {
			results = append(results, *result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if options.MaxResults > 0 && len(results) > options.MaxResults {
		results = results[:options.MaxResults]
	}

	return results, nil
}

// searchEncounter returns a result if any field matches
func (e *Engine) searchEncounter(encounter types.Encounter, fields []string, options SearchOptions) *SearchResult {
	var result *SearchResult

	for _, field := range fields {
		text := fieldValue(encounter, field)
		positions := findMatches(text, options.Query, options)
		if len(positions) == 0 {
			continue
		}

		if result == nil {
			result = &SearchResult{Encounter: encounter}
			if options.EnableHighlight {
				result.Highlights = make(map[string]string)
			}
		}

		score := 1.0
		if !options.ExactMatch {
			score = calculateScore(text, options.Query, field, options.CaseSensitive)
		}
		result.Score = max(result.Score, score)
		result.MatchedFields = append(result.MatchedFields, field)

		if options.EnableHighlight {
			result.Highlights[field] = highlight(text, positions, len(options.Query), options)
		}
	}

	return result
}

func fieldValue(encounter types.Encounter, field string) string {
	if field == FieldWhen {
		return encounter.When
	}
	return encounter.Description
}

// calculateScore computes a relevance score for a substring match
func calculateScore(text, query, field string, caseSensitive bool) float64 {
	baseScore := 0.5

	// Description is the primary text
	if field == FieldDescription {
		baseScore = 0.7
	}

	if !caseSensitive {
		text = strings.ToLower(text)
		query = strings.ToLower(query)
	}

	if strings.HasPrefix(text, query) {
		baseScore += 0.2
	}

	if coverage := float64(len(query)) / float64(len(text)); coverage > 0.5 {
		baseScore += 0.1
	}

	return min(baseScore, 1.0)
}

// findMatches returns the byte offsets of non-overlapping matches of query in text
func findMatches(text, query string, options SearchOptions) []int {
	searchText := text
	searchQuery := query
	if !options.CaseSensitive {
		searchText = strings.ToLower(text)
		searchQuery = strings.ToLower(query)
	}

	if options.ExactMatch {
		if searchText == searchQuery {
			return []int{0}
		}
		return nil
	}

	var positions []int
	for offset := 0; offset <= len(searchText)-len(searchQuery); {
		i := strings.Index(searchText[offset:], searchQuery)
		if i < 0 {
			break
		}
		positions = append(positions, offset+i)
		offset += i + len(searchQuery)
	}
	return positions
}

// highlight wraps each match in markers. Offsets come from the lowered text,
// so when lowering changed the byte length the text is returned unmarked.
func highlight(text string, positions []int, queryLen int, options SearchOptions) string {
	if !options.CaseSensitive && len(strings.ToLower(text)) != len(text) {
		return text
	}
	if options.ExactMatch {
		queryLen = len(text)
	}

	startMarker := options.HighlightStartMarker
	endMarker := options.HighlightEndMarker
	if startMarker == "" {
		startMarker = "**"
	}
	if endMarker == "" {
		endMarker = "**"
	}

	var builder strings.Builder
	lastEnd := 0
	for _, start := range positions {
		end := start + queryLen
		builder.WriteString(text[lastEnd:start])
		builder.WriteString(startMarker)
		builder.WriteString(text[start:end])
		builder.WriteString(endMarker)
		lastEnd = end
	}
	builder.WriteString(text[lastEnd:])

	return builder.String()
}
