package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Calls      map[Operation]int `json:"calls"`
	Errors     int               `json:"errors"`
	Normalized bool              `json:"normalized"`
	Observed   bool              `json:"observed"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	calls := make(map[Operation]int, len(s.calls))
	for op, n := range s.calls {
		calls[op] = n
	}

	return ServiceState{
		Calls:      calls,
		Errors:     s.errors,
		Normalized: s.normalize != nil,
		Observed:   s.observer != nil,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
