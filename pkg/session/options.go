package session

import loggerpkg "github.com/minhyannv/chat-cli/pkg/logger"

// Option configures optional settings for Session.
type Option func(*sessionDeps)

type sessionDeps struct {
	systemPrompt string
	logger       loggerpkg.Logger
	verbose      bool
	id           string
}

// WithSystemPrompt replaces the default seed instruction.
func WithSystemPrompt(prompt string) Option {
	return func(d *sessionDeps) {
		d.systemPrompt = prompt
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *sessionDeps) {
		d.logger = l
	}
}

// WithVerbose enables debug logging.
func WithVerbose(verbose bool) Option {
	return func(d *sessionDeps) {
		d.verbose = verbose
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(d *sessionDeps) {
		d.id = id
	}
}
