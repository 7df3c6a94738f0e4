// Package search orchestrates the translation pipeline: raw text to
// candidate, candidate to normalized query, query to predicates, predicates
// to mentor records.
package search

import (
	"context"
	"fmt"

	"github.com/mentorhub/mentorsearch/internal/domain/mentor"
	"github.com/mentorhub/mentorsearch/internal/domain/query"
)

// DefaultResultLimit bounds the materialized result set.
const DefaultResultLimit = 20

// Service handles mentor search requests.
type Service struct {
	translator Translator
	repo       Repository
	limit      int
}

// New creates a search service.
func New(translator Translator, repo Repository) *Service {
	return &Service{translator: translator, repo: repo, limit: DefaultResultLimit}
}

// WithResultLimit overrides the result limit.
func (s *Service) WithResultLimit(n int) *Service {
	if n > 0 {
		s.limit = n
	}
	return s
}

// Search runs the full pipeline for a free-text request. Each stage fails
// fast; the store is never queried unless the full predicate set compiled.
func (s *Service) Search(ctx context.Context, rawText string) ([]mentor.Record, error) {
	candidate, err := s.translator.Translate(ctx, rawText)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	return s.SearchStructured(ctx, candidate)
}

// SearchStructured runs the pipeline from a candidate payload, skipping
// translation. Used by callers that already hold structured input.
func (s *Service) SearchStructured(ctx context.Context, candidate query.Candidate) ([]mentor.Record, error) {
	q, err := query.Normalize(candidate)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	preds, err := Compile(q)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.Search(ctx, preds, s.limit)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}
	return records, nil
}
