package db

import "github.com/mentorhub/mentorsearch/internal/domain/search/predicate"

// FilterQuery is the input for a conjunctive filter search over an FT index.
type FilterQuery struct {
	IndexName    string
	Predicates   predicate.Set
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
