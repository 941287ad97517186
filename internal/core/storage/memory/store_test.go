package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

var day1 = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func push(t *testing.T, s *Store, homeserver, serverContext string, at time.Time, messages int64) int64 {
	t.Helper()

	r := &v1.Report{LocalTimestamp: &at, DailyMessages: &messages}
	if homeserver != "" {
		r.Homeserver = &homeserver
	}
	if serverContext != "" {
		r.ServerContext = &serverContext
	}
	id, err := s.SaveReport(context.Background(), r)
	require.NoError(t, err)
	return id
}

func TestStore_SaveAndGetReport(t *testing.T) {
	s := New()
	ctx := context.Background()

	id1 := push(t, s, "a.example", "", day1, 1)
	id2 := push(t, s, "a.example", "", day1, 1)
	require.Equal(t, int64(1), id1)
	require.Equal(t, int64(2), id2, "identical submissions are both kept")

	got, err := s.GetReport(ctx, id2)
	require.NoError(t, err)
	require.Equal(t, "a.example", *got.Homeserver)

	_, err = s.GetReport(ctx, 99)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_EarliestReportDay(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, ok, err := s.EarliestReportDay(ctx, storage.ScopeGlobal)
	require.NoError(t, err)
	require.False(t, ok)

	push(t, s, "a.example", "", day1.Add(26*time.Hour), 1)
	push(t, s, "a.example", "", day1.Add(3*time.Hour), 1)

	day, ok, err := s.EarliestReportDay(ctx, storage.ScopeGlobal)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, day1, day)

	_, ok, err = s.EarliestReportDay(ctx, storage.ScopeContext)
	require.NoError(t, err)
	require.False(t, ok, "no report carries a context")

	push(t, s, "b.example", "tenant-a", day1.AddDate(0, 0, 5), 1)

	day, ok, err = s.EarliestReportDay(ctx, storage.ScopeContext)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, day1.AddDate(0, 0, 5), day)
}

func TestStore_AggregateDay(t *testing.T) {
	s := New()
	ctx := context.Background()

	push(t, s, "a.example", "", day1.Add(1*time.Hour), 5)
	push(t, s, "a.example", "", day1.Add(2*time.Hour), 8)
	push(t, s, "b.example", "", day1.Add(1*time.Hour), 3)
	// Next day, must not leak into day1.
	push(t, s, "b.example", "", day1.Add(25*time.Hour), 100)

	require.NoError(t, s.AggregateDay(ctx, day1))

	stats, err := s.GetAggregatedStats(ctx, day1)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01", stats.Day)
	require.Equal(t, int64(11), *stats.DailyMessages)
	require.Equal(t, int64(2), stats.DailyActiveHomeservers)
	require.Equal(t, int64(11), stats.TotalMessages)

	// Idempotent.
	require.NoError(t, s.AggregateDay(ctx, day1))
	again, err := s.GetAggregatedStats(ctx, day1)
	require.NoError(t, err)
	require.Equal(t, stats, again)
}

func TestStore_AggregateDay_ZeroActivity(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.GetAggregatedStats(ctx, day1)
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.AggregateDay(ctx, day1))

	stats, err := s.GetAggregatedStats(ctx, day1)
	require.NoError(t, err)
	require.Zero(t, stats.DailyActiveHomeservers)
	require.Nil(t, stats.DailyMessages)
}

func TestStore_RunningTotalsRippleForward(t *testing.T) {
	s := New()
	ctx := context.Background()
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	push(t, s, "a.example", "", day1.Add(time.Hour), 10)
	push(t, s, "a.example", "", day2.Add(time.Hour), 20)
	push(t, s, "a.example", "", day3.Add(time.Hour), 30)

	for _, d := range []time.Time{day1, day2, day3} {
		require.NoError(t, s.AggregateDay(ctx, d))
	}

	stats, err := s.GetAggregatedStats(ctx, day3)
	require.NoError(t, err)
	require.Equal(t, int64(60), stats.TotalMessages)

	// A late report on day1 from another homeserver changes day1 and every later total.
	push(t, s, "b.example", "", day1.Add(23*time.Hour), 5)
	require.NoError(t, s.AggregateDay(ctx, day1))

	for d, want := range map[time.Time]int64{day1: 15, day2: 35, day3: 65} {
		stats, err := s.GetAggregatedStats(ctx, d)
		require.NoError(t, err)
		require.Equal(t, want, stats.TotalMessages, d.Format("2006-01-02"))
	}
}

func TestStore_AggregateDayByContext(t *testing.T) {
	s := New()
	ctx := context.Background()
	day2 := day1.AddDate(0, 0, 1)

	push(t, s, "a.example", "tenant-a", day1.Add(time.Hour), 5)
	push(t, s, "b.example", "tenant-b", day1.Add(time.Hour), 3)
	push(t, s, "c.example", "", day1.Add(time.Hour), 100)
	push(t, s, "a.example", "tenant-a", day2.Add(time.Hour), 7)

	require.NoError(t, s.AggregateDayByContext(ctx, day1))
	require.NoError(t, s.AggregateDayByContext(ctx, day2))

	a1, err := s.GetAggregatedStatsByContext(ctx, day1, "tenant-a")
	require.NoError(t, err)
	require.Equal(t, int64(5), *a1.DailyMessages)

	a2, err := s.GetAggregatedStatsByContext(ctx, day2, "tenant-a")
	require.NoError(t, err)
	require.Equal(t, int64(12), a2.TotalMessages)

	b1, err := s.GetAggregatedStatsByContext(ctx, day1, "tenant-b")
	require.NoError(t, err)
	require.Equal(t, int64(3), b1.TotalMessages)

	_, err = s.GetAggregatedStatsByContext(ctx, day2, "tenant-b")
	require.ErrorIs(t, err, storage.ErrNotFound)

	latest, ok, err := s.LatestDay(ctx, storage.ScopeContext)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, day2, latest)

	_, ok, err = s.LatestDay(ctx, storage.ScopeGlobal)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_ReadsReturnIndependentCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	push(t, s, "a.example", "tenant-a", day1.Add(time.Hour), 5)
	require.NoError(t, s.AggregateDay(ctx, day1))
	require.NoError(t, s.AggregateDayByContext(ctx, day1))

	global, err := s.GetAggregatedStats(ctx, day1)
	require.NoError(t, err)
	*global.DailyMessages = 999
	global.TotalMessages = 999

	byContext, err := s.GetAggregatedStatsByContext(ctx, day1, "tenant-a")
	require.NoError(t, err)
	*byContext.DailyMessages = 999

	global, err = s.GetAggregatedStats(ctx, day1)
	require.NoError(t, err)
	require.Equal(t, int64(5), *global.DailyMessages)
	require.Equal(t, int64(5), global.TotalMessages)

	byContext, err = s.GetAggregatedStatsByContext(ctx, day1, "tenant-a")
	require.NoError(t, err)
	require.Equal(t, int64(5), *byContext.DailyMessages)
}

func TestStore_ConcurrentAggregation(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		push(t, s, "a.example", "tenant-a", day1.AddDate(0, 0, i).Add(time.Hour), 1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		day := day1.AddDate(0, 0, i)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AggregateDay(ctx, day))
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, s.AggregateDayByContext(ctx, day))
		}()
	}
	wg.Wait()

	last := day1.AddDate(0, 0, 9)
	stats, err := s.GetAggregatedStats(ctx, last)
	require.NoError(t, err)
	require.Equal(t, int64(10), stats.TotalMessages)

	byContext, err := s.GetAggregatedStatsByContext(ctx, last, "tenant-a")
	require.NoError(t, err)
	require.Equal(t, int64(10), byContext.TotalMessages)
}
