package mentorsearch

import "go.uber.org/zap"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs    []string
	password string

	keyPrefix   string
	resultLimit int

	completer Completer

	completionAPIKey  string
	completionBaseURL string
	completionModel   string

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix namespaces all mentor keys and the search index.
// Default: "mentorsearch:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithResultLimit bounds the number of mentors returned per search.
// Default: 20.
func WithResultLimit(n int) Option {
	return func(c *clientConfig) {
		c.resultLimit = n
	}
}

// WithCompleter sets a custom completion provider. Overrides WithCompletion.
func WithCompleter(completer Completer) Option {
	return func(c *clientConfig) {
		c.completer = completer
	}
}

// WithCompletion configures the built-in OpenAI-compatible completion
// provider. baseURL may be empty for the default OpenAI endpoint.
func WithCompletion(apiKey, baseURL, model string) Option {
	return func(c *clientConfig) {
		c.completionAPIKey = apiKey
		c.completionBaseURL = baseURL
		c.completionModel = model
	}
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
