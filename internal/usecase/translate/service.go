// Package translate converts a free-text mentor search request into a
// candidate structured query via the completion service.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mentorhub/mentorsearch/internal/domain"
	"github.com/mentorhub/mentorsearch/internal/domain/query"
	"github.com/mentorhub/mentorsearch/internal/metrics"
)

// Service translates raw text into candidate structured queries.
type Service struct {
	completer Completer
}

// New creates a translation service.
func New(completer Completer) *Service {
	return &Service{completer: completer}
}

// Translate sends the fixed instruction plus the user text to the completion
// service, extracts the embedded object payload, and parses it into a
// candidate query. No retries: provider failures are terminal per request.
func (s *Service) Translate(ctx context.Context, rawText string) (query.Candidate, error) {
	text, err := s.completer.Complete(ctx, systemInstruction, fmt.Sprintf(userTemplate, rawText))
	if err != nil {
		if !errors.Is(err, domain.ErrCompletionFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrCompletionFailure, err)
		}
		return query.Candidate{}, fmt.Errorf("complete: %w", err)
	}

	payload, err := extractPayload(text)
	if err != nil {
		metrics.TranslationPayloadFailuresTotal.WithLabelValues("no_payload").Inc()
		return query.Candidate{}, err
	}

	violation, err := validatePayload(payload)
	if err != nil || violation != "" {
		metrics.TranslationPayloadFailuresTotal.WithLabelValues("malformed").Inc()
		if err != nil {
			return query.Candidate{}, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
		}
		return query.Candidate{}, fmt.Errorf("%w: %s", domain.ErrMalformedPayload, violation)
	}

	var candidate query.Candidate
	if err := json.Unmarshal([]byte(payload), &candidate); err != nil {
		metrics.TranslationPayloadFailuresTotal.WithLabelValues("malformed").Inc()
		return query.Candidate{}, fmt.Errorf("%w: %w", domain.ErrMalformedPayload, err)
	}

	return candidate, nil
}

// extractPayload locates the object payload in the completion output. The
// provider is instructed to emit only the object; when it adds commentary, a
// bounded scan from the first '{' to the last '}' is used instead. Nested or
// multiple objects outside that span are not handled.
func extractPayload(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: %q", domain.ErrNoPayloadFound, truncate(text, 80))
	}
	return text[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
