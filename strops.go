package strops

import (
	"log/slog"

	"github.com/aretw0/strops/internal/platform"
	"github.com/aretw0/strops/pkg/core"
)

// --- Types ---

// Operation names a registered text operation.
type Operation = core.Operation

// Result is the outcome of applying an Operation to a text value.
type Result = core.Result

// Observer is notified after every Service call.
type Observer = core.Observer

// Service is the validated call boundary for the operations.
type Service = core.Service

const (
	OpReverse         = core.OpReverse
	OpCountVowels     = core.OpCountVowels
	OpCapitalizeWords = core.OpCapitalizeWords
)

// Common errors.
var (
	ErrInvalidArgument  = core.ErrInvalidArgument
	ErrUnknownOperation = core.ErrUnknownOperation
)

// --- Operations ---

// Reverse returns the characters of text in reverse order.
func Reverse(text string) string {
	return core.Reverse(text)
}

// CountVowels returns the number of a, e, i, o, u in text, ignoring case.
func CountVowels(text string) int {
	return core.CountVowels(text)
}

// CapitalizeWords upper-cases the first character of every word and joins
// the words with single spaces.
func CapitalizeWords(text string) string {
	return core.CapitalizeWords(text)
}

// Operations lists the registered operations.
func Operations() []Operation {
	return core.Operations()
}

// ParseOperation resolves an operation name or alias.
func ParseOperation(name string) (Operation, error) {
	return core.ParseOperation(name)
}

// --- Configuration ---

// Option defines a functional option for configuring strops.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithNormalization enables Unicode NFC normalization of inputs.
func WithNormalization(enabled bool) Option {
	return platform.WithNormalization(enabled)
}

// WithObserver registers a hook notified after every operation.
func WithObserver(obs Observer) Option {
	return platform.WithObserver(obs)
}

// --- Factory ---

// New creates a new strops Service.
func New(opts ...Option) *Service {
	return platform.New(opts...)
}
