package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	coreerr "github.com/aevon-lab/barad-dur/internal/core/errors"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

const schedulerComponent = "aggregator"

// ParseSchedule accepts a standard 5-field cron expression or a descriptor such as
// "@daily" or "@every 24h".
func ParseSchedule(spec string) (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// Scheduler runs Aggregator.CatchUp for one scope: once at start, then on every
// schedule tick. Aggregation failures are fatal.
type Scheduler struct {
	aggregator *Aggregator
	scope      storage.Scope
	spec       string
	schedule   cron.Schedule
	now        func() time.Time
}

func NewScheduler(aggregator *Aggregator, scope storage.Scope, spec string) (*Scheduler, error) {
	schedule, err := ParseSchedule(spec)
	if err != nil {
		return nil, err
	}
	return newScheduler(aggregator, scope, spec, schedule), nil
}

func newScheduler(aggregator *Aggregator, scope storage.Scope, spec string, schedule cron.Schedule) *Scheduler {
	return &Scheduler{
		aggregator: aggregator,
		scope:      scope,
		spec:       spec,
		schedule:   schedule,
		now:        time.Now,
	}
}

// Start runs until ctx is cancelled, returning nil, or until a pass fails, returning
// a FatalError.
func (s *Scheduler) Start(ctx context.Context) error {
	slog.Info("[Scheduler] Starting aggregation scheduler",
		"scope", s.scope,
		"schedule", s.spec)

	if err := s.tick(ctx); err != nil {
		return err
	}

	for {
		next := s.schedule.Next(s.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			if err := s.tick(ctx); err != nil {
				return err
			}
		case <-ctx.Done():
			timer.Stop()
			slog.Info("[Scheduler] Stopping (context cancelled)", "scope", s.scope)
			return nil
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) error {
	_, err := s.aggregator.CatchUp(ctx, s.scope)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		// Shutting down; the pass was cut short, not failed.
		return nil
	}
	return coreerr.Fatal(schedulerComponent, err)
}
