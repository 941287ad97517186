// Package supervisor runs the long-lived components of the service and tears all of
// them down on the first fatal error.
package supervisor

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	coreerr "github.com/aevon-lab/barad-dur/internal/core/errors"
)

// Supervisor owns one errgroup. Every error a component returns, or reports through
// Fail, is treated as fatal: the shared context is cancelled and Wait returns the
// first such error once every component has stopped.
type Supervisor struct {
	group *errgroup.Group
	ctx   context.Context

	cancel context.CancelCauseFunc

	mu    sync.Mutex
	first error
}

// New returns a Supervisor and the context its components must run under.
func New(parent context.Context) (*Supervisor, context.Context) {
	ctx, cancel := context.WithCancelCause(parent)
	group, gctx := errgroup.WithContext(ctx)
	s := &Supervisor{
		group:  group,
		ctx:    gctx,
		cancel: cancel,
	}
	return s, gctx
}

// Go starts fn as the named component.
func (s *Supervisor) Go(component string, fn func(ctx context.Context) error) {
	s.group.Go(func() error {
		slog.Debug("[Supervisor] Component started", "component", component)
		err := fn(s.ctx)
		if err != nil {
			s.Fail(component, err)
			return err
		}
		slog.Debug("[Supervisor] Component stopped", "component", component)
		return nil
	})
}

// Fail reports a fatal error raised outside a supervised goroutine, such as from
// an HTTP handler. Only the first error is kept.
func (s *Supervisor) Fail(component string, err error) {
	if err == nil {
		return
	}
	if !coreerr.IsFatal(err) {
		err = coreerr.Fatal(component, err)
	}

	s.mu.Lock()
	first := s.first == nil
	if first {
		s.first = err
	}
	s.mu.Unlock()

	if first {
		slog.Error("[Supervisor] Fatal error, stopping all components",
			"component", component,
			"error", err)
	}
	s.cancel(err)
}

// Wait blocks until every component has returned. It returns the first fatal error,
// or nil when the components stopped because the parent context was cancelled.
func (s *Supervisor) Wait() error {
	_ = s.group.Wait()
	s.cancel(nil)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.first
}
