package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/aevon-lab/barad-dur/internal/core/storage"
)

var testDay = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestRollupAdapter_AggregateDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRollupAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryAdvisoryXactLock)).
		WithArgs(lockKeyAggregatedStats).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(queryAggregateDay)).
		WithArgs("2024-03-01", testDay, testDay.Add(24*time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryRunningTotals)).
		WithArgs("2024-03-01").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	// Any time on the day selects the same bounds.
	err = adapter.AggregateDay(context.Background(), testDay.Add(17*time.Hour))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRollupAdapter_AggregateDayByContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRollupAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryAdvisoryXactLock)).
		WithArgs(lockKeyAggregatedStatsByContext).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(queryAggregateDayByContext)).
		WithArgs("2024-03-01", testDay, testDay.Add(24*time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(queryRunningTotalsByContext)).
		WithArgs("2024-03-01").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, adapter.AggregateDayByContext(context.Background(), testDay))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRollupAdapter_AggregateDayRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRollupAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryAdvisoryXactLock)).
		WithArgs(lockKeyAggregatedStats).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(queryAggregateDay)).
		WithArgs("2024-03-01", testDay, testDay.Add(24*time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(queryRunningTotals)).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err = adapter.AggregateDay(context.Background(), testDay)
	require.ErrorContains(t, err, "aggregated_stats: running totals from 2024-03-01")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRollupAdapter_GetAggregatedStats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRollupAdapter(db)

	values := counterValues(map[string]driver.Value{
		"daily_messages": int64(11),
		"total_users":    int64(250),
	})
	row := append([]driver.Value{"2024-03-01"}, values...)
	row = append(row, int64(2), int64(30), int64(4))

	columns := append([]string{"day"}, counterColumns...)
	columns = append(columns, "daily_active_homeservers", "total_messages", "total_e2ee_messages")

	mock.ExpectQuery(regexp.QuoteMeta(queryGetAggregatedStats)).
		WithArgs("2024-03-01").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row...))

	stats, err := adapter.GetAggregatedStats(context.Background(), testDay)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01", stats.Day)
	require.Equal(t, int64(11), *stats.DailyMessages)
	require.Equal(t, int64(250), *stats.TotalUsers)
	require.Nil(t, stats.DailyE2EEMessages)
	require.Equal(t, int64(2), stats.DailyActiveHomeservers)
	require.Equal(t, int64(30), stats.TotalMessages)
	require.Equal(t, int64(4), stats.TotalE2EEMessages)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRollupAdapter_GetAggregatedStatsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRollupAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetAggregatedStats)).
		WithArgs("2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"day"}))

	_, err = adapter.GetAggregatedStats(context.Background(), testDay)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRollupAdapter_GetAggregatedStatsByContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRollupAdapter(db)

	row := append([]driver.Value{"2024-03-01", "tenant-a"}, counterValues(map[string]driver.Value{
		"daily_messages": int64(5),
	})...)
	row = append(row, int64(1), int64(5), int64(0))

	columns := append([]string{"day", "server_context"}, counterColumns...)
	columns = append(columns, "daily_active_homeservers", "total_messages", "total_e2ee_messages")

	mock.ExpectQuery(regexp.QuoteMeta(queryGetAggregatedStatsByContext)).
		WithArgs("2024-03-01", "tenant-a").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row...))

	stats, err := adapter.GetAggregatedStatsByContext(context.Background(), testDay, "tenant-a")
	require.NoError(t, err)
	require.Equal(t, "tenant-a", stats.ServerContext)
	require.Equal(t, int64(5), *stats.DailyMessages)
	require.Equal(t, int64(1), stats.DailyActiveHomeservers)

	mock.ExpectQuery(regexp.QuoteMeta(queryGetAggregatedStatsByContext)).
		WithArgs("2024-03-01", "tenant-b").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = adapter.GetAggregatedStatsByContext(context.Background(), testDay, "tenant-b")
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRollupAdapter_LatestDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewRollupAdapter(db)

	mock.ExpectQuery(regexp.QuoteMeta(queryLatestDay)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow("2024-03-01"))
	mock.ExpectQuery(regexp.QuoteMeta(queryLatestDayByContext)).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	day, ok, err := adapter.LatestDay(context.Background(), storage.ScopeGlobal)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testDay, day)

	_, ok, err = adapter.LatestDay(context.Background(), storage.ScopeContext)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregateQueriesOverwriteEveryCounter(t *testing.T) {
	for _, query := range []string{queryAggregateDay, queryAggregateDayByContext} {
		for _, c := range counterColumns {
			require.Contains(t, query, "SUM("+c+")")
			require.Contains(t, query, c+" = EXCLUDED."+c)
		}
		require.Contains(t, query, "local_timestamp DESC, id DESC")
		require.NotContains(t, query, "+ EXCLUDED")
	}
}

func counterValues(values map[string]driver.Value) []driver.Value {
	out := make([]driver.Value, len(counterColumns))
	for i, c := range counterColumns {
		out[i] = values[c]
	}
	return out
}
