// Package memory is an in-process implementation of the report and rollup stores.
// It applies the same dedup and running-total rules as the Postgres store and is
// used for development, demos and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	"github.com/aevon-lab/barad-dur/internal/core/aggregation"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

// Store implements storage.ReportStore and storage.RollupStore.
type Store struct {
	mu        sync.Mutex
	nextID    int64
	reports   []*v1.Report
	daily     map[string]*v1.AggregatedStats
	byContext map[string]map[string]*v1.AggregatedStatsByContext // day -> context -> row
}

var (
	_ storage.ReportStore = (*Store)(nil)
	_ storage.RollupStore = (*Store)(nil)
)

func New() *Store {
	return &Store{
		daily:     make(map[string]*v1.AggregatedStats),
		byContext: make(map[string]map[string]*v1.AggregatedStatsByContext),
	}
}

func (s *Store) SaveReport(ctx context.Context, report *v1.Report) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := *report
	stored.ID = s.nextID
	s.reports = append(s.reports, &stored)

	report.ID = stored.ID
	return stored.ID, nil
}

func (s *Store) GetReport(_ context.Context, id int64) (*v1.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reports {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) EarliestReportDay(_ context.Context, scope storage.Scope) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var earliest time.Time
	found := false
	for _, r := range s.reports {
		if r.LocalTimestamp == nil {
			continue
		}
		if scope == storage.ScopeContext && r.ServerContext == nil {
			continue
		}
		if !found || r.LocalTimestamp.Before(earliest) {
			earliest = *r.LocalTimestamp
			found = true
		}
	}
	if !found {
		return time.Time{}, false, nil
	}
	return aggregation.DayOf(earliest), true, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// AggregateDay rewrites the global row for day and refreshes the running totals.
// A day without reports still gets a row.
func (s *Store) AggregateDay(ctx context.Context, day time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := aggregation.FormatDay(day)
	s.daily[key] = &v1.AggregatedStats{
		Day:      key,
		Counters: aggregation.RollupDay(aggregation.OnDay(s.reports, day)),
	}

	rows := make([]*v1.AggregatedStats, 0, len(s.daily))
	for _, row := range s.daily {
		rows = append(rows, row)
	}
	aggregation.ApplyRunningTotals(rows)
	return nil
}

// AggregateDayByContext rewrites the per-context rows for day. Contexts with no
// reports on day get no row.
func (s *Store) AggregateDayByContext(ctx context.Context, day time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := aggregation.FormatDay(day)
	rows := s.byContext[key]
	if rows == nil {
		rows = make(map[string]*v1.AggregatedStatsByContext)
	}
	for serverContext, counters := range aggregation.RollupDayByContext(aggregation.OnDay(s.reports, day)) {
		rows[serverContext] = &v1.AggregatedStatsByContext{
			Day:           key,
			ServerContext: serverContext,
			Counters:      counters,
		}
	}
	if len(rows) > 0 {
		s.byContext[key] = rows
	}

	var all []*v1.AggregatedStatsByContext
	for _, perContext := range s.byContext {
		for _, row := range perContext {
			all = append(all, row)
		}
	}
	aggregation.ApplyRunningTotalsByContext(all)
	return nil
}

func (s *Store) LatestDay(_ context.Context, scope storage.Scope) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var days []string
	if scope == storage.ScopeContext {
		for day := range s.byContext {
			days = append(days, day)
		}
	} else {
		for day := range s.daily {
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return time.Time{}, false, nil
	}
	sort.Strings(days)

	latest, err := aggregation.ParseDay(days[len(days)-1])
	if err != nil {
		return time.Time{}, false, err
	}
	return latest, true, nil
}

func (s *Store) GetAggregatedStats(_ context.Context, day time.Time) (*v1.AggregatedStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.daily[aggregation.FormatDay(day)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *row
	cp.Counters = row.Counters.Clone()
	return &cp, nil
}

func (s *Store) GetAggregatedStatsByContext(
	_ context.Context,
	day time.Time,
	serverContext string,
) (*v1.AggregatedStatsByContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.byContext[aggregation.FormatDay(day)][serverContext]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *row
	cp.Counters = row.Counters.Clone()
	return &cp, nil
}
