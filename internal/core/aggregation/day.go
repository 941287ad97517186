package aggregation

import (
	"fmt"
	"time"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
)

// DayLayout is the ISO calendar-date format used in URLs, JSON and the CLI.
const DayLayout = "2006-01-02"

// ParseDay parses an ISO calendar date ("2024-03-01") into UTC midnight.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("day must not be empty")
	}
	d, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// DayOf truncates a timestamp to the UTC calendar day it falls on.
// Example: DayOf(2024-03-01T23:59:59+02:00) → 2024-03-01T00:00:00Z
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDay renders a day as YYYY-MM-DD.
func FormatDay(day time.Time) string {
	return DayOf(day).Format(DayLayout)
}

// DayBounds returns the half-open [start, end) UTC range covered by day.
func DayBounds(day time.Time) (start, end time.Time) {
	start = DayOf(day)
	return start, start.AddDate(0, 0, 1)
}

// DaysBetween lists every day from `from` through `to`, inclusive. Returns nil when
// `to` is before `from`.
func DaysBetween(from, to time.Time) []time.Time {
	from, to = DayOf(from), DayOf(to)
	if to.Before(from) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// OnDay selects the reports whose LocalTimestamp falls on day (UTC).
func OnDay(reports []*v1.Report, day time.Time) []*v1.Report {
	start, end := DayBounds(day)
	var out []*v1.Report
	for _, r := range reports {
		ts := localTime(r)
		if !ts.Before(start) && ts.Before(end) {
			out = append(out, r)
		}
	}
	return out
}

func localTime(r *v1.Report) time.Time {
	if r.LocalTimestamp == nil {
		return time.Time{}
	}
	return *r.LocalTimestamp
}
