// Package mentor persists and queries mentor records as indexed hashes.
package mentor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mentorhub/mentorsearch/internal/db"
	"github.com/mentorhub/mentorsearch/internal/domain"
	dommentor "github.com/mentorhub/mentorsearch/internal/domain/mentor"
	"github.com/mentorhub/mentorsearch/internal/domain/query"
	"github.com/mentorhub/mentorsearch/internal/domain/search/predicate"
)

// store is the consumer interface for mentor operations.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchFilter(ctx context.Context, q *db.FilterQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, q string) (int, error)
}

// Repo implements usecase/search.Repository and mentor ingestion.
type Repo struct {
	store  store
	prefix string
}

// New creates a mentor repository. prefix namespaces all keys and the index.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// EnsureIndex creates the FT index over mentor records if it does not exist.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}
	return r.createIndex(ctx)
}

// RebuildIndex drops the FT index if present and recreates it. Stored hashes
// survive the drop; the server reindexes them under the new definition.
func (r *Repo) RebuildIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		if err := r.store.DropIndex(ctx, r.indexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index: %w", err)
		}
	}
	return r.createIndex(ctx)
}

func (r *Repo) createIndex(ctx context.Context) error {
	def, err := db.NewIndex(r.indexName()).
		Prefix(r.keyPrefix()).
		Tag(dommentor.FieldProfession).
		Tag(dommentor.FieldCity).
		Tag(dommentor.FieldGender).
		Tag(dommentor.FieldOnline).
		TagWithOpts(dommentor.FieldLanguages, ",", false).
		Numeric(dommentor.FieldRating).
		Numeric(dommentor.FieldHourlyPrice).
		Numeric(dommentor.FieldAge).
		Numeric(dommentor.FieldExperience).
		Numeric(dommentor.FieldAvailability).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Upsert stores a mentor record as a hash under the repository prefix.
// The profession is canonicalized so "piano" and "Music" land on the same
// TAG value; TAG matching itself is case insensitive by default, so the
// canonical casing still matches the lowercased query predicates.
func (r *Repo) Upsert(ctx context.Context, rec dommentor.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validate mentor: %w", err)
	}
	rec.Profession = query.CanonicalSubject(rec.Profession)
	if err := r.store.HSet(ctx, r.key(rec.ID), buildHashFields(&rec)); err != nil {
		return fmt.Errorf("upsert mentor %s: %w", rec.ID, err)
	}
	return nil
}

// Get fetches a single mentor record by id.
func (r *Repo) Get(ctx context.Context, id string) (dommentor.Record, error) {
	fields, err := r.store.HGetAll(ctx, r.key(id))
	if err != nil {
		return dommentor.Record{}, fmt.Errorf("get mentor %s: %w", id, err)
	}
	if len(fields) == 0 {
		return dommentor.Record{}, db.ErrKeyNotFound
	}
	return parseHashFields(id, fields), nil
}

// Delete removes a mentor record. Deleting an unknown id is an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	ok, err := r.store.Exists(ctx, r.key(id))
	if err != nil {
		return fmt.Errorf("delete mentor %s: %w", id, err)
	}
	if !ok {
		return db.ErrKeyNotFound
	}
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete mentor %s: %w", id, err)
	}
	return nil
}

// List scans all mentor keys under the repository prefix and materializes
// the stored records. Entries removed between the scan and the fetch are
// skipped.
func (r *Repo) List(ctx context.Context) ([]dommentor.Record, error) {
	keys, err := r.store.Scan(ctx, r.keyPrefix()+"*")
	if err != nil {
		return nil, fmt.Errorf("%w: scan mentors: %w", domain.ErrStoreUnavailable, err)
	}

	records := make([]dommentor.Record, 0, len(keys))
	for _, key := range keys {
		fields, err := r.store.HGetAll(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s: %w", domain.ErrStoreUnavailable, key, err)
		}
		if len(fields) == 0 {
			continue
		}
		records = append(records, parseHashFields(strings.TrimPrefix(key, r.keyPrefix()), fields))
	}
	return records, nil
}

// Count returns the number of indexed mentor records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, classifyExecutionErr(err)
	}
	return n, nil
}

// Search applies the compiled predicate set as a single conjunctive query
// and materializes the matching records. An empty result is not an error.
func (r *Repo) Search(ctx context.Context, preds predicate.Set, limit int) ([]dommentor.Record, error) {
	q := &db.FilterQuery{
		IndexName:  r.indexName(),
		Predicates: preds,
		Limit:      limit,
	}

	sr, err := r.store.SearchFilter(ctx, q)
	if err != nil {
		return nil, classifyExecutionErr(err)
	}

	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	records := make([]dommentor.Record, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, r.keyPrefix())
		records = append(records, parseHashFields(id, entry.Fields))
	}
	return records, nil
}

// classifyExecutionErr maps store errors onto the execution taxonomy: a query
// the server rejected is an unsupported predicate combination; everything
// else is the store being unreachable.
func classifyExecutionErr(err error) error {
	if errors.Is(err, db.ErrQueryRejected) {
		return fmt.Errorf("%w: %w", domain.ErrUnsupportedPredicates, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func (r *Repo) indexName() string {
	return r.prefix + "mentors:idx"
}

func (r *Repo) keyPrefix() string {
	return r.prefix + "mentor:"
}

func (r *Repo) key(id string) string {
	return r.keyPrefix() + id
}
