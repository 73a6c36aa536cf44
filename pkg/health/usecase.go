package health

import (
	"context"
	"fmt"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
	// Report runs every checker and returns "ok" or the error text per dependency.
	Report(ctx context.Context) map[string]string
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. With no checkers the service is
// always ready (in-memory mode).
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return fmt.Errorf("%s: %w", ch.Name(), err)
		}
	}
	return nil
}

func (s *service) Report(ctx context.Context) map[string]string {
	out := make(map[string]string, len(s.checkers))
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			out[ch.Name()] = err.Error()
			continue
		}
		out[ch.Name()] = "ok"
	}
	return out
}
