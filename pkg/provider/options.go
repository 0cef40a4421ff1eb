package provider

import (
	"github.com/openai/openai-go/option"

	loggerpkg "github.com/minhyannv/chat-cli/pkg/logger"
)

// Option configures optional dependencies for OpenAI.
type Option func(*providerDeps)

type providerDeps struct {
	logger         loggerpkg.Logger
	requestOptions []option.RequestOption
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(d *providerDeps) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRequestOptions appends client options, applied after the config-derived ones.
func WithRequestOptions(opts ...option.RequestOption) Option {
	return func(d *providerDeps) {
		d.requestOptions = append(d.requestOptions, opts...)
	}
}
