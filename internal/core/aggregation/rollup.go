package aggregation

import (
	"sort"

	v1 "github.com/aevon-lab/barad-dur/internal/api/v1"
)

// homeserverKey groups reports for deduplication. A nil homeserver is its own group:
// all reports without a homeserver collapse into one, like NULLs under DISTINCT ON.
type homeserverKey struct {
	context    string
	homeserver string
	anonymous  bool
}

// LatestPerHomeserver keeps, for every homeserver, only the report with the greatest
// LocalTimestamp. Ties are broken by the greater ID (later insert wins).
// The caller is expected to pass the reports of a single day.
func LatestPerHomeserver(reports []*v1.Report) []*v1.Report {
	return latestBy(reports, func(r *v1.Report) (homeserverKey, bool) {
		return keyFor("", r), true
	})
}

// LatestPerContextHomeserver is LatestPerHomeserver keyed by (server_context, homeserver).
// Reports without a server context are dropped.
func LatestPerContextHomeserver(reports []*v1.Report) []*v1.Report {
	return latestBy(reports, func(r *v1.Report) (homeserverKey, bool) {
		if r.ServerContext == nil {
			return homeserverKey{}, false
		}
		return keyFor(*r.ServerContext, r), true
	})
}

func keyFor(serverContext string, r *v1.Report) homeserverKey {
	if r.Homeserver == nil {
		return homeserverKey{context: serverContext, anonymous: true}
	}
	return homeserverKey{context: serverContext, homeserver: *r.Homeserver}
}

func latestBy(reports []*v1.Report, key func(*v1.Report) (homeserverKey, bool)) []*v1.Report {
	latest := make(map[homeserverKey]*v1.Report)
	for _, r := range reports {
		k, ok := key(r)
		if !ok {
			continue
		}
		if cur, seen := latest[k]; !seen || newer(r, cur) {
			latest[k] = r
		}
	}

	out := make([]*v1.Report, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func newer(a, b *v1.Report) bool {
	ta, tb := localTime(a), localTime(b)
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return a.ID > b.ID
}

// Summarize sums every counter over already-deduplicated reports and counts the
// distinct homeservers among them.
func Summarize(latest []*v1.Report) v1.Counters {
	var c v1.Counters
	homeservers := make(map[string]struct{})
	for _, r := range latest {
		addReport(&c, r)
		if r.Homeserver != nil {
			homeservers[*r.Homeserver] = struct{}{}
		}
	}
	c.DailyActiveHomeservers = int64(len(homeservers))
	return c
}

// RollupDay deduplicates one day's reports and sums them.
func RollupDay(reports []*v1.Report) v1.Counters {
	return Summarize(LatestPerHomeserver(reports))
}

// RollupDayByContext deduplicates one day's reports per (context, homeserver) and sums
// them per context. Reports without a context never appear in the result.
func RollupDayByContext(reports []*v1.Report) map[string]v1.Counters {
	byContext := make(map[string][]*v1.Report)
	for _, r := range LatestPerContextHomeserver(reports) {
		byContext[*r.ServerContext] = append(byContext[*r.ServerContext], r)
	}

	out := make(map[string]v1.Counters, len(byContext))
	for serverContext, latest := range byContext {
		out[serverContext] = Summarize(latest)
	}
	return out
}

func addReport(c *v1.Counters, r *v1.Report) {
	sum(&c.TotalUsers, r.TotalUsers)
	sum(&c.TotalNonbridgedUsers, r.TotalNonbridgedUsers)
	sum(&c.TotalRoomCount, r.TotalRoomCount)
	sum(&c.DailyActiveUsers, r.DailyActiveUsers)
	sum(&c.DailyActiveRooms, r.DailyActiveRooms)
	sum(&c.DailyMessages, r.DailyMessages)
	sum(&c.DailySentMessages, r.DailySentMessages)
	sum(&c.DailyActiveE2EERooms, r.DailyActiveE2EERooms)
	sum(&c.DailyE2EEMessages, r.DailyE2EEMessages)
	sum(&c.DailySentE2EEMessages, r.DailySentE2EEMessages)
	sum(&c.MonthlyActiveUsers, r.MonthlyActiveUsers)
	sum(&c.R30UsersAll, r.R30UsersAll)
	sum(&c.R30UsersAndroid, r.R30UsersAndroid)
	sum(&c.R30UsersIOS, r.R30UsersIOS)
	sum(&c.R30UsersElectron, r.R30UsersElectron)
	sum(&c.R30UsersWeb, r.R30UsersWeb)
	sum(&c.R30v2UsersAll, r.R30v2UsersAll)
	sum(&c.R30v2UsersAndroid, r.R30v2UsersAndroid)
	sum(&c.R30v2UsersIOS, r.R30v2UsersIOS)
	sum(&c.R30v2UsersElectron, r.R30v2UsersElectron)
	sum(&c.R30v2UsersWeb, r.R30v2UsersWeb)
	sum(&c.DailyUserTypeNative, r.DailyUserTypeNative)
	sum(&c.DailyUserTypeBridged, r.DailyUserTypeBridged)
	sum(&c.DailyUserTypeGuest, r.DailyUserTypeGuest)
}

// sum folds v into *dst with SQL SUM semantics: NULL inputs are skipped and the
// result stays NULL until a non-NULL value arrives.
func sum(dst **int64, v *int64) {
	if v == nil {
		return
	}
	if *dst == nil {
		n := *v
		*dst = &n
		return
	}
	**dst += *v
}
