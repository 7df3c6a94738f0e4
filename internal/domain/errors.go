package domain

import "errors"

var (
	// ErrNoPayloadFound signals that the completion output contained no object payload.
	ErrNoPayloadFound = errors.New("no payload found in completion output")
	// ErrMalformedPayload signals that the extracted payload did not parse or validate.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrCompletionFailure signals a completion provider failure.
	ErrCompletionFailure = errors.New("completion provider failure")

	// ErrMissingRequiredField signals an absent required query field.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidRange signals an inverted or negative age range.
	ErrInvalidRange = errors.New("invalid age range")

	// ErrMissingProfessionArea signals compilation without a profession area.
	ErrMissingProfessionArea = errors.New("profession area is required")

	// ErrStoreUnavailable signals a store connectivity or auth failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrUnsupportedPredicates signals that the store rejected the compiled query.
	ErrUnsupportedPredicates = errors.New("unsupported predicate combination")
)
