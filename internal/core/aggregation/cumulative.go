package aggregation

import (
	"sort"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
)

// ApplyRunningTotals recomputes TotalMessages and TotalE2EEMessages as prefix sums
// over the full ordered history. rows is sorted by day in place.
// A NULL daily count contributes zero.
func ApplyRunningTotals(rows []*v1.AggregatedStats) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Day < rows[j].Day })

	var messages, e2ee int64
	for _, row := range rows {
		messages += valueOrZero(row.DailyMessages)
		e2ee += valueOrZero(row.DailyE2EEMessages)
		row.TotalMessages = messages
		row.TotalE2EEMessages = e2ee
	}
}

// ApplyRunningTotalsByContext is ApplyRunningTotals partitioned by server context:
// each context only accumulates its own days.
func ApplyRunningTotalsByContext(rows []*v1.AggregatedStatsByContext) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ServerContext != rows[j].ServerContext {
			return rows[i].ServerContext < rows[j].ServerContext
		}
		return rows[i].Day < rows[j].Day
	})

	type totals struct{ messages, e2ee int64 }
	running := make(map[string]totals)
	for _, row := range rows {
		t := running[row.ServerContext]
		t.messages += valueOrZero(row.DailyMessages)
		t.e2ee += valueOrZero(row.DailyE2EEMessages)
		running[row.ServerContext] = t

		row.TotalMessages = t.messages
		row.TotalE2EEMessages = t.e2ee
	}
}

func valueOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
