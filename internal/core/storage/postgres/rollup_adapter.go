package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	"github.com/aevon-lab/barad-dur/internal/core/aggregation"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

// RollupAdapter implements storage.RollupStore using PostgreSQL.
// Each aggregation pass (daily upsert plus running totals) commits in a single
// transaction under a per-table advisory lock.
type RollupAdapter struct {
	db *sql.DB
}

// NewRollupAdapter creates a RollupAdapter sharing the given pool.
func NewRollupAdapter(db *sql.DB) *RollupAdapter {
	return &RollupAdapter{db: db}
}

// rollupPass describes one of the two rollup tables.
type rollupPass struct {
	name          string
	lockKey       int64
	upsert        string
	runningTotals string
}

var (
	globalPass = rollupPass{
		name:          "aggregated_stats",
		lockKey:       lockKeyAggregatedStats,
		upsert:        queryAggregateDay,
		runningTotals: queryRunningTotals,
	}
	contextPass = rollupPass{
		name:          "aggregated_stats_by_context",
		lockKey:       lockKeyAggregatedStatsByContext,
		upsert:        queryAggregateDayByContext,
		runningTotals: queryRunningTotalsByContext,
	}
)

// AggregateDay recomputes the global row of day from the reports of that day and
// refreshes the running totals of day and every later day.
func (a *RollupAdapter) AggregateDay(ctx context.Context, day time.Time) error {
	return a.run(ctx, globalPass, day)
}

// AggregateDayByContext is AggregateDay for the per-context table.
func (a *RollupAdapter) AggregateDayByContext(ctx context.Context, day time.Time) error {
	return a.run(ctx, contextPass, day)
}

func (a *RollupAdapter) run(ctx context.Context, pass rollupPass, day time.Time) error {
	start, end := aggregation.DayBounds(day)
	dayStr := aggregation.FormatDay(day)

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", pass.name, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, queryAdvisoryXactLock, pass.lockKey); err != nil {
		return fmt.Errorf("%s: acquire lock: %w", pass.name, err)
	}

	upserted, err := tx.ExecContext(ctx, pass.upsert, dayStr, start, end)
	if err != nil {
		return fmt.Errorf("%s: upsert %s: %w", pass.name, dayStr, err)
	}

	updated, err := tx.ExecContext(ctx, pass.runningTotals, dayStr)
	if err != nil {
		return fmt.Errorf("%s: running totals from %s: %w", pass.name, dayStr, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", pass.name, err)
	}

	rows, _ := upserted.RowsAffected()
	totals, _ := updated.RowsAffected()
	slog.Info("[RollupAdapter] Aggregated",
		"table", pass.name,
		"day", dayStr,
		"rows", rows,
		"totals_updated", totals)
	return nil
}

// LatestDay returns the most recent day stored in the scope's rollup table.
func (a *RollupAdapter) LatestDay(ctx context.Context, scope storage.Scope) (time.Time, bool, error) {
	query := queryLatestDay
	if scope == storage.ScopeContext {
		query = queryLatestDayByContext
	}

	var day sql.NullString
	if err := a.db.QueryRowContext(ctx, query).Scan(&day); err != nil {
		return time.Time{}, false, fmt.Errorf("read latest %s day: %w", scope, err)
	}
	return scanDay(day)
}

// GetAggregatedStats returns storage.ErrNotFound when the day has not been aggregated.
func (a *RollupAdapter) GetAggregatedStats(ctx context.Context, day time.Time) (*v1.AggregatedStats, error) {
	var stats v1.AggregatedStats
	dest := append([]interface{}{&stats.Day}, counterFields(&stats.Counters)...)
	dest = append(dest, &stats.DailyActiveHomeservers, &stats.TotalMessages, &stats.TotalE2EEMessages)

	err := a.db.QueryRowContext(ctx, queryGetAggregatedStats, aggregation.FormatDay(day)).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read aggregated stats: %w", err)
	}
	return &stats, nil
}

// GetAggregatedStatsByContext returns storage.ErrNotFound when the (day, context)
// pair has no row.
func (a *RollupAdapter) GetAggregatedStatsByContext(
	ctx context.Context,
	day time.Time,
	serverContext string,
) (*v1.AggregatedStatsByContext, error) {
	var stats v1.AggregatedStatsByContext
	dest := append([]interface{}{&stats.Day, &stats.ServerContext}, counterFields(&stats.Counters)...)
	dest = append(dest, &stats.DailyActiveHomeservers, &stats.TotalMessages, &stats.TotalE2EEMessages)

	err := a.db.QueryRowContext(ctx,
		queryGetAggregatedStatsByContext,
		aggregation.FormatDay(day),
		serverContext,
	).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read aggregated stats by context: %w", err)
	}
	return &stats, nil
}
