package platform

import (
	"log/slog"

	"github.com/aretw0/strops/pkg/core"
)

// options holds the internal configuration for the strops service.
type options struct {
	logger    *slog.Logger
	normalize bool
	observer  core.Observer
}

// Option defines a functional option for configuring strops.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithNormalization enables Unicode NFC normalization of every input before
// it reaches an operation. Off by default, so input is used byte for byte.
func WithNormalization(enabled bool) Option {
	return func(o *options) {
		o.normalize = enabled
	}
}

// WithObserver registers a hook notified after every operation (e.g. metrics).
func WithObserver(obs core.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}
