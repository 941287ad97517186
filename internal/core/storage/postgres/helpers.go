package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
	"github.com/aevon-lab/barad-dur/internal/core/aggregation"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// counterFields returns pointers to the counter fields in counterColumns order.
// Nil *int64 fields map to SQL NULL in both directions.
func counterFields(c *v1.Counters) []interface{} {
	return []interface{}{
		&c.TotalUsers,
		&c.TotalNonbridgedUsers,
		&c.TotalRoomCount,
		&c.DailyActiveUsers,
		&c.DailyActiveRooms,
		&c.DailyMessages,
		&c.DailySentMessages,
		&c.DailyActiveE2EERooms,
		&c.DailyE2EEMessages,
		&c.DailySentE2EEMessages,
		&c.MonthlyActiveUsers,
		&c.R30UsersAll,
		&c.R30UsersAndroid,
		&c.R30UsersIOS,
		&c.R30UsersElectron,
		&c.R30UsersWeb,
		&c.R30v2UsersAll,
		&c.R30v2UsersAndroid,
		&c.R30v2UsersIOS,
		&c.R30v2UsersElectron,
		&c.R30v2UsersWeb,
		&c.DailyUserTypeNative,
		&c.DailyUserTypeBridged,
		&c.DailyUserTypeGuest,
	}
}

// reportFields returns pointers to every persisted report field in reportColumns order.
func reportFields(r *v1.Report) []interface{} {
	fields := []interface{}{
		&r.Homeserver,
		&r.LocalTimestamp,
		&r.RemoteTimestamp,
		&r.RemoteAddr,
		&r.ForwardedFor,
		&r.UserAgent,
		&r.ServerContext,
		&r.UptimeSeconds,
		&r.TotalUsers,
		&r.TotalNonbridgedUsers,
		&r.TotalRoomCount,
		&r.DailyActiveUsers,
		&r.DailyActiveRooms,
		&r.DailyMessages,
		&r.DailySentMessages,
		&r.DailyActiveE2EERooms,
		&r.DailyE2EEMessages,
		&r.DailySentE2EEMessages,
		&r.MonthlyActiveUsers,
		&r.R30UsersAll,
		&r.R30UsersAndroid,
		&r.R30UsersIOS,
		&r.R30UsersElectron,
		&r.R30UsersWeb,
		&r.R30v2UsersAll,
		&r.R30v2UsersAndroid,
		&r.R30v2UsersIOS,
		&r.R30v2UsersElectron,
		&r.R30v2UsersWeb,
		&r.DailyUserTypeNative,
		&r.DailyUserTypeBridged,
		&r.DailyUserTypeGuest,
		&r.CPUAverage,
		&r.MemoryRSS,
		&r.CacheFactor,
		&r.EventCacheSize,
		&r.PythonVersion,
		&r.DatabaseEngine,
		&r.DatabaseServerVersion,
		&r.LogLevel,
	}
	if len(fields) != len(reportColumns) {
		panic(fmt.Sprintf("postgres: %d report fields for %d columns", len(fields), len(reportColumns)))
	}
	return fields
}

// reportArgs returns the insert arguments for a report. Nil pointers are sent as NULL.
func reportArgs(r *v1.Report) []interface{} {
	fields := reportFields(r)
	args := make([]interface{}, len(fields))
	for i, f := range fields {
		switch p := f.(type) {
		case **string:
			args[i] = *p
		case **int64:
			args[i] = *p
		case **time.Time:
			args[i] = *p
		case *decimal.NullDecimal:
			args[i] = *p
		default:
			panic(fmt.Sprintf("postgres: unsupported report field type %T", f))
		}
	}
	return args
}

func scanReport(row scanner) (*v1.Report, error) {
	var r v1.Report
	dest := append([]interface{}{&r.ID}, reportFields(&r)...)
	if err := row.Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to scan report row: %w", err)
	}
	normalizeTimes(&r)
	return &r, nil
}

// normalizeTimes converts scanned timestamps to UTC.
func normalizeTimes(r *v1.Report) {
	if r.LocalTimestamp != nil {
		t := r.LocalTimestamp.UTC()
		r.LocalTimestamp = &t
	}
	if r.RemoteTimestamp != nil {
		t := r.RemoteTimestamp.UTC()
		r.RemoteTimestamp = &t
	}
}

func scanDay(s sql.NullString) (time.Time, bool, error) {
	if !s.Valid {
		return time.Time{}, false, nil
	}
	day, err := aggregation.ParseDay(s.String)
	if err != nil {
		return time.Time{}, false, err
	}
	return day, true, nil
}
