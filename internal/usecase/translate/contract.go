package translate

import "context"

// Completer is the opaque completion-service boundary: instruction and user
// text in, free-form text out. Providers are non-deterministic.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
