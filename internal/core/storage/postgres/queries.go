package postgres

import (
	"fmt"
	"strings"
)

// counterColumns are the summed columns shared by reports and both rollup tables,
// in the order of v1.Counters.
var counterColumns = []string{
	"total_users",
	"total_nonbridged_users",
	"total_room_count",
	"daily_active_users",
	"daily_active_rooms",
	"daily_messages",
	"daily_sent_messages",
	"daily_active_e2ee_rooms",
	"daily_e2ee_messages",
	"daily_sent_e2ee_messages",
	"monthly_active_users",
	"r30_users_all",
	"r30_users_android",
	"r30_users_ios",
	"r30_users_electron",
	"r30_users_web",
	"r30v2_users_all",
	"r30v2_users_android",
	"r30v2_users_ios",
	"r30v2_users_electron",
	"r30v2_users_web",
	"daily_user_type_native",
	"daily_user_type_bridged",
	"daily_user_type_guest",
}

// reportColumns is every reports column except id, in the order of reportArgs.
var reportColumns = concat(
	[]string{
		"homeserver",
		"local_timestamp",
		"remote_timestamp",
		"remote_addr",
		"forwarded_for",
		"user_agent",
		"server_context",
		"uptime_seconds",
	},
	counterColumns,
	[]string{
		"cpu_average",
		"memory_rss",
		"cache_factor",
		"event_cache_size",
		"python_version",
		"database_engine",
		"database_server_version",
		"log_level",
	},
)

// Advisory lock keys, one per rollup table. Held for the duration of an aggregation
// transaction so runs against the same table execute one at a time.
const (
	lockKeyAggregatedStats          int64 = 0x6264720001
	lockKeyAggregatedStatsByContext int64 = 0x6264720002
)

const queryAdvisoryXactLock = `SELECT pg_advisory_xact_lock($1)`

const queryReportsTableExists = `
	SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_name = 'reports'
	)
`

var (
	// querySaveReport inserts one report and returns the id the database assigned.
	querySaveReport = fmt.Sprintf(`
		INSERT INTO reports (%s)
		VALUES (%s)
		RETURNING id
	`, strings.Join(reportColumns, ", "), placeholders(1, len(reportColumns)))

	queryGetReport = fmt.Sprintf(`
		SELECT id, %s
		FROM reports
		WHERE id = $1
	`, strings.Join(reportColumns, ", "))
)

const (
	queryEarliestReportDay = `
		SELECT to_char(MIN(local_timestamp) AT TIME ZONE 'UTC', 'YYYY-MM-DD')
		FROM reports
	`

	queryEarliestContextReportDay = `
		SELECT to_char(MIN(local_timestamp) AT TIME ZONE 'UTC', 'YYYY-MM-DD')
		FROM reports
		WHERE server_context IS NOT NULL
	`
)

var (
	// queryAggregateDay rolls up the latest report per homeserver on one day. It has
	// no GROUP BY, so a day without reports still produces a row of NULL sums and
	// zero homeservers. DISTINCT ON treats NULL homeservers as one group.
	// $1 day, $2 start, $3 end.
	queryAggregateDay = fmt.Sprintf(`
		INSERT INTO aggregated_stats (day, %s, daily_active_homeservers)
		SELECT $1::DATE, %s, COUNT(homeserver)
		FROM (
			SELECT DISTINCT ON (homeserver) *
			FROM reports
			WHERE local_timestamp >= $2 AND local_timestamp < $3
			ORDER BY homeserver, local_timestamp DESC, id DESC
		) latest
		ON CONFLICT (day) DO UPDATE SET
			%s,
			daily_active_homeservers = EXCLUDED.daily_active_homeservers
	`, strings.Join(counterColumns, ", "), sums(counterColumns), overwrite(counterColumns))

	// queryAggregateDayByContext is queryAggregateDay keyed by (server_context, homeserver)
	// and grouped per context. Reports without a context are skipped.
	queryAggregateDayByContext = fmt.Sprintf(`
		INSERT INTO aggregated_stats_by_context (day, server_context, %s, daily_active_homeservers)
		SELECT $1::DATE, server_context, %s, COUNT(homeserver)
		FROM (
			SELECT DISTINCT ON (server_context, homeserver) *
			FROM reports
			WHERE local_timestamp >= $2 AND local_timestamp < $3
			  AND server_context IS NOT NULL
			ORDER BY server_context, homeserver, local_timestamp DESC, id DESC
		) latest
		GROUP BY server_context
		ON CONFLICT (day, server_context) DO UPDATE SET
			%s,
			daily_active_homeservers = EXCLUDED.daily_active_homeservers
	`, strings.Join(counterColumns, ", "), sums(counterColumns), overwrite(counterColumns))
)

const (
	// queryRunningTotals recomputes the cumulative columns of every row from $1 on.
	queryRunningTotals = `
		UPDATE aggregated_stats AS s
		SET total_messages = t.total_messages,
			total_e2ee_messages = t.total_e2ee_messages
		FROM (
			SELECT day,
				SUM(COALESCE(daily_messages, 0)) OVER (ORDER BY day) AS total_messages,
				SUM(COALESCE(daily_e2ee_messages, 0)) OVER (ORDER BY day) AS total_e2ee_messages
			FROM aggregated_stats
		) t
		WHERE s.day = t.day
		  AND s.day >= $1::DATE
	`

	queryRunningTotalsByContext = `
		UPDATE aggregated_stats_by_context AS s
		SET total_messages = t.total_messages,
			total_e2ee_messages = t.total_e2ee_messages
		FROM (
			SELECT day, server_context,
				SUM(COALESCE(daily_messages, 0)) OVER (PARTITION BY server_context ORDER BY day) AS total_messages,
				SUM(COALESCE(daily_e2ee_messages, 0)) OVER (PARTITION BY server_context ORDER BY day) AS total_e2ee_messages
			FROM aggregated_stats_by_context
		) t
		WHERE s.day = t.day
		  AND s.server_context = t.server_context
		  AND s.day >= $1::DATE
	`

	queryLatestDay          = `SELECT to_char(MAX(day), 'YYYY-MM-DD') FROM aggregated_stats`
	queryLatestDayByContext = `SELECT to_char(MAX(day), 'YYYY-MM-DD') FROM aggregated_stats_by_context`
)

var (
	queryGetAggregatedStats = fmt.Sprintf(`
		SELECT to_char(day, 'YYYY-MM-DD'), %s, daily_active_homeservers, total_messages, total_e2ee_messages
		FROM aggregated_stats
		WHERE day = $1::DATE
	`, strings.Join(counterColumns, ", "))

	queryGetAggregatedStatsByContext = fmt.Sprintf(`
		SELECT to_char(day, 'YYYY-MM-DD'), server_context, %s, daily_active_homeservers, total_messages, total_e2ee_messages
		FROM aggregated_stats_by_context
		WHERE day = $1::DATE AND server_context = $2
	`, strings.Join(counterColumns, ", "))
)

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// placeholders renders "$from, $from+1, ..." for n parameters.
func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ps, ", ")
}

func sums(columns []string) string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = "SUM(" + c + ")"
	}
	return strings.Join(out, ", ")
}

// overwrite renders the ON CONFLICT assignments. Rollups replace the stored values,
// they never add to them.
func overwrite(columns []string) string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c + " = EXCLUDED." + c
	}
	return strings.Join(out, ",\n\t\t\t")
}
