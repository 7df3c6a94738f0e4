// Package mentorsearch is the embedded SDK for the mentor search pipeline:
// free-text requests are translated into structured queries, compiled into
// predicate sets, and executed against a Redis-backed mentor index.
package mentorsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/mentorhub/mentorsearch/internal/db/redis"
	"github.com/mentorhub/mentorsearch/internal/domain/mentor"
	mentorrepo "github.com/mentorhub/mentorsearch/internal/repository/mentor"
	openaiCompletion "github.com/mentorhub/mentorsearch/internal/transport/openai"
	searchuc "github.com/mentorhub/mentorsearch/internal/usecase/search"
	translateuc "github.com/mentorhub/mentorsearch/internal/usecase/translate"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "mentorsearch:"
)

// Mentor is a stored mentor record.
type Mentor = mentor.Record

// Completer sends a system instruction plus user text to a completion
// provider and returns the raw output.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client is the mentorsearch SDK entry point.
type Client struct {
	store     *dbRedis.Store
	repo      *mentorrepo.Repo
	searchSvc *searchuc.Service
}

// New creates a mentorsearch Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: defaultKeyPrefix,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("mentorsearch: database address required (use WithRedis)")
	}

	completer := cfg.completer
	if completer == nil {
		if cfg.completionModel == "" {
			return nil, errors.New("mentorsearch: completion provider required (use WithCompletion or WithCompleter)")
		}
		logger := cfg.logger
		if logger == nil {
			logger = zap.NewNop()
		}
		completer = openaiCompletion.NewCompleter(&openaiCompletion.Config{
			APIKey:   cfg.completionAPIKey,
			BaseURL:  cfg.completionBaseURL,
			Model:    cfg.completionModel,
			Provider: "sdk",
			Logger:   logger,
		})
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("mentorsearch: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("mentorsearch: database not ready: %w", err)
	}

	repo := mentorrepo.New(store, cfg.keyPrefix)
	if err := repo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("mentorsearch: ensure index: %w", err)
	}

	searchSvc := searchuc.New(translateuc.New(completer), repo)
	if cfg.resultLimit > 0 {
		searchSvc = searchSvc.WithResultLimit(cfg.resultLimit)
	}

	return &Client{
		store:     store,
		repo:      repo,
		searchSvc: searchSvc,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs the full pipeline for a free-text mentor request.
func (c *Client) Search(ctx context.Context, text string) ([]Mentor, error) {
	return c.searchSvc.Search(ctx, text)
}

// AddMentor stores or replaces a mentor record.
func (c *Client) AddMentor(ctx context.Context, m Mentor) error {
	return c.repo.Upsert(ctx, m)
}

// GetMentor fetches a mentor record by id.
func (c *Client) GetMentor(ctx context.Context, id string) (Mentor, error) {
	return c.repo.Get(ctx, id)
}

// DeleteMentor removes a mentor record.
func (c *Client) DeleteMentor(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

// ListMentors returns all stored mentor records.
func (c *Client) ListMentors(ctx context.Context) ([]Mentor, error) {
	return c.repo.List(ctx)
}

// CountMentors returns the number of indexed mentor records.
func (c *Client) CountMentors(ctx context.Context) (int, error) {
	return c.repo.Count(ctx)
}

// RebuildIndex drops and recreates the search index, reindexing all stored
// mentors under the current schema.
func (c *Client) RebuildIndex(ctx context.Context) error {
	return c.repo.RebuildIndex(ctx)
}
