package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
)

// ErrNotFound is returned when a report or rollup row does not exist.
var ErrNotFound = errors.New("not found")

// Scope selects one of the two rollup tables.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeContext Scope = "context"
)

// ParseScope accepts "global" or "context".
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeGlobal, ScopeContext:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("unknown aggregation scope %q (want global or context)", s)
	}
}

// ReportStore is the append-only store of raw usage reports.
type ReportStore interface {
	// SaveReport inserts exactly one row and returns the id the store assigned.
	SaveReport(ctx context.Context, report *v1.Report) (int64, error)

	GetReport(ctx context.Context, id int64) (*v1.Report, error)

	// EarliestReportDay returns the UTC day of the oldest report that feeds scope:
	// any report for ScopeGlobal, only reports carrying a server context for
	// ScopeContext. ok is false when there is none.
	EarliestReportDay(ctx context.Context, scope Scope) (day time.Time, ok bool, err error)

	Ping(ctx context.Context) error
}

// RollupStore computes and serves the daily rollups.
//
// AggregateDay and AggregateDayByContext recompute one day from every stored report
// of that day and refresh the running totals of that day and all later days. Both
// phases are atomic: a reader never sees new daily counts with stale totals.
type RollupStore interface {
	AggregateDay(ctx context.Context, day time.Time) error
	AggregateDayByContext(ctx context.Context, day time.Time) error

	// LatestDay returns the most recent day present in the scope's rollup table.
	LatestDay(ctx context.Context, scope Scope) (day time.Time, ok bool, err error)

	GetAggregatedStats(ctx context.Context, day time.Time) (*v1.AggregatedStats, error)
	GetAggregatedStatsByContext(ctx context.Context, day time.Time, serverContext string) (*v1.AggregatedStatsByContext, error)
}
