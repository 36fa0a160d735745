package core

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

// Observer is notified after every Service call. It is how outer layers
// (e.g. metrics) hook into the boundary without the core depending on them.
type Observer interface {
	Observed(op Operation, err error)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(op Operation, err error)

// Observed implements Observer.
func (f ObserverFunc) Observed(op Operation, err error) { f(op, err) }

// Service is the call boundary for the text operations.
type Service struct {
	logger    *slog.Logger
	normalize func(string) string
	observer  Observer

	mu     sync.RWMutex
	calls  map[Operation]int
	errors int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithNormalizer sets a function applied to every input before validation.
func WithNormalizer(fn func(string) string) ServiceOption {
	return func(s *Service) {
		s.normalize = fn
	}
}

// WithObserver registers an Observer.
func WithObserver(o Observer) ServiceOption {
	return func(s *Service) {
		s.observer = o
	}
}

// NewService creates a new Service.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{calls: make(map[Operation]int)}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Run applies op to text.
func (s *Service) Run(ctx context.Context, op Operation, text string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if s.normalize != nil {
		text = s.normalize(text)
	}

	res, err := Apply(op, text)
	s.record(op, err)
	if err != nil {
		s.logger.Debug("operation rejected", "operation", op, "error", err)
		return Result{}, err
	}

	s.logger.Debug("operation applied", "operation", op, "input_bytes", len(text))
	return res, nil
}

// RunAll applies every registered operation to text, in Operations() order.
func (s *Service) RunAll(ctx context.Context, text string) ([]Result, error) {
	return s.RunEach(ctx, Operations(), text)
}

// RunEach applies ops to text in order and stops at the first error.
func (s *Service) RunEach(ctx context.Context, ops []Operation, text string) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		res, err := s.Run(ctx, op, text)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) record(op Operation, err error) {
	s.mu.Lock()
	s.calls[op]++
	if err != nil {
		s.errors++
	}
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.Observed(op, err)
	}
}
