package aggregation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aevon-lab/barad-dur/internal/core/aggregation"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
	"github.com/aevon-lab/barad-dur/internal/metrics"
)

// Aggregator turns stored reports into daily rollups. Every pass recomputes a whole
// day from the report store, so running it again for the same day is harmless.
type Aggregator struct {
	reports storage.ReportStore
	rollups storage.RollupStore
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAggregator(reports storage.ReportStore, rollups storage.RollupStore, m *metrics.Metrics) *Aggregator {
	if reports == nil {
		panic("aggregation: report store must not be nil")
	}
	if rollups == nil {
		panic("aggregation: rollup store must not be nil")
	}
	return &Aggregator{
		reports: reports,
		rollups: rollups,
		metrics: m,
		now:     time.Now,
	}
}

// AggregateDay runs the global pass, then the per-context pass, for day.
func (a *Aggregator) AggregateDay(ctx context.Context, day time.Time) error {
	if err := a.RunGlobal(ctx, day); err != nil {
		return err
	}
	return a.RunByContext(ctx, day)
}

func (a *Aggregator) RunGlobal(ctx context.Context, day time.Time) error {
	return a.Run(ctx, storage.ScopeGlobal, day)
}

func (a *Aggregator) RunByContext(ctx context.Context, day time.Time) error {
	return a.Run(ctx, storage.ScopeContext, day)
}

// Run executes one pass for scope and day.
func (a *Aggregator) Run(ctx context.Context, scope storage.Scope, day time.Time) error {
	day = aggregation.DayOf(day)
	start := time.Now()

	var err error
	switch scope {
	case storage.ScopeGlobal:
		err = a.rollups.AggregateDay(ctx, day)
	case storage.ScopeContext:
		err = a.rollups.AggregateDayByContext(ctx, day)
	default:
		return fmt.Errorf("unknown aggregation scope %q", scope)
	}

	took := time.Since(start)
	a.metrics.RecordAggregation(string(scope), took, err)
	if err != nil {
		slog.Error("[Aggregator] Pass failed",
			"scope", scope,
			"day", aggregation.FormatDay(day),
			"error", err)
		return fmt.Errorf("aggregate %s %s: %w", scope, aggregation.FormatDay(day), err)
	}

	slog.Debug("[Aggregator] Pass complete",
		"scope", scope,
		"day", aggregation.FormatDay(day),
		"duration", took)
	return nil
}

// CatchUp aggregates every day from the last aggregated day of scope through today
// (UTC). The last aggregated day is always redone: reports that arrived after its
// final run are folded in once the day is over. On a first run it starts at the
// day of the oldest report that feeds scope, or today when there is none. Returns
// the number of days aggregated.
func (a *Aggregator) CatchUp(ctx context.Context, scope storage.Scope) (int, error) {
	from, err := a.catchUpStart(ctx, scope)
	if err != nil {
		return 0, err
	}

	days := aggregation.DaysBetween(from, a.now())
	for i, day := range days {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := a.Run(ctx, scope, day); err != nil {
			return i, err
		}
	}

	slog.Info("[Aggregator] Caught up",
		"scope", scope,
		"from", aggregation.FormatDay(from),
		"days", len(days))
	return len(days), nil
}

func (a *Aggregator) catchUpStart(ctx context.Context, scope storage.Scope) (time.Time, error) {
	latest, ok, err := a.rollups.LatestDay(ctx, scope)
	if err != nil {
		return time.Time{}, fmt.Errorf("catch up %s: %w", scope, err)
	}
	if ok {
		return latest, nil
	}

	earliest, ok, err := a.reports.EarliestReportDay(ctx, scope)
	if err != nil {
		return time.Time{}, fmt.Errorf("catch up %s: %w", scope, err)
	}
	if ok {
		return earliest, nil
	}
	return aggregation.DayOf(a.now()), nil
}
