package search

import (
	"context"

	"github.com/mentorhub/mentorsearch/internal/domain/mentor"
	"github.com/mentorhub/mentorsearch/internal/domain/query"
	"github.com/mentorhub/mentorsearch/internal/domain/search/predicate"
)

// Translator converts free text into a candidate structured query.
type Translator interface {
	Translate(ctx context.Context, rawText string) (query.Candidate, error)
}

// Repository executes a compiled predicate set against the mentor store.
type Repository interface {
	Search(ctx context.Context, preds predicate.Set, limit int) ([]mentor.Record, error)
}
