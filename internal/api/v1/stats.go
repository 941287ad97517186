package v1

// Counters holds the summed fields shared by both rollup shapes.
// A nil counter means no contributing report carried that field (SQL SUM over NULLs).
type Counters struct {
	TotalUsers            *int64 `json:"total_users"`
	TotalNonbridgedUsers  *int64 `json:"total_nonbridged_users"`
	TotalRoomCount        *int64 `json:"total_room_count"`
	DailyActiveUsers      *int64 `json:"daily_active_users"`
	DailyActiveRooms      *int64 `json:"daily_active_rooms"`
	DailyMessages         *int64 `json:"daily_messages"`
	DailySentMessages     *int64 `json:"daily_sent_messages"`
	DailyActiveE2EERooms  *int64 `json:"daily_active_e2ee_rooms"`
	DailyE2EEMessages     *int64 `json:"daily_e2ee_messages"`
	DailySentE2EEMessages *int64 `json:"daily_sent_e2ee_messages"`
	MonthlyActiveUsers    *int64 `json:"monthly_active_users"`

	R30UsersAll      *int64 `json:"r30_users_all"`
	R30UsersAndroid  *int64 `json:"r30_users_android"`
	R30UsersIOS      *int64 `json:"r30_users_ios"`
	R30UsersElectron *int64 `json:"r30_users_electron"`
	R30UsersWeb      *int64 `json:"r30_users_web"`

	R30v2UsersAll      *int64 `json:"r30v2_users_all"`
	R30v2UsersAndroid  *int64 `json:"r30v2_users_android"`
	R30v2UsersIOS      *int64 `json:"r30v2_users_ios"`
	R30v2UsersElectron *int64 `json:"r30v2_users_electron"`
	R30v2UsersWeb      *int64 `json:"r30v2_users_web"`

	DailyUserTypeNative  *int64 `json:"daily_user_type_native"`
	DailyUserTypeBridged *int64 `json:"daily_user_type_bridged"`
	DailyUserTypeGuest   *int64 `json:"daily_user_type_guest"`

	// DailyActiveHomeservers is the number of distinct homeservers that contributed.
	DailyActiveHomeservers int64 `json:"daily_active_homeservers"`

	// TotalMessages and TotalE2EEMessages are running sums of DailyMessages and
	// DailyE2EEMessages over every day up to and including this one.
	TotalMessages     int64 `json:"total_messages"`
	TotalE2EEMessages int64 `json:"total_e2ee_messages"`
}

// Clone returns a copy of c that shares no counter pointers with it.
func (c Counters) Clone() Counters {
	out := c
	for _, field := range out.nullable() {
		if *field != nil {
			v := **field
			*field = &v
		}
	}
	return out
}

func (c *Counters) nullable() []**int64 {
	return []**int64{
		&c.TotalUsers, &c.TotalNonbridgedUsers, &c.TotalRoomCount,
		&c.DailyActiveUsers, &c.DailyActiveRooms, &c.DailyMessages, &c.DailySentMessages,
		&c.DailyActiveE2EERooms, &c.DailyE2EEMessages, &c.DailySentE2EEMessages,
		&c.MonthlyActiveUsers,
		&c.R30UsersAll, &c.R30UsersAndroid, &c.R30UsersIOS, &c.R30UsersElectron, &c.R30UsersWeb,
		&c.R30v2UsersAll, &c.R30v2UsersAndroid, &c.R30v2UsersIOS, &c.R30v2UsersElectron, &c.R30v2UsersWeb,
		&c.DailyUserTypeNative, &c.DailyUserTypeBridged, &c.DailyUserTypeGuest,
	}
}

// AggregatedStats is the global rollup for one calendar day (UTC).
type AggregatedStats struct {
	Day string `json:"day"` // YYYY-MM-DD
	Counters
}

// AggregatedStatsByContext is the rollup for one (day, server_context) pair.
// Cumulative totals are partitioned per context.
type AggregatedStatsByContext struct {
	Day           string `json:"day"`
	ServerContext string `json:"server_context"`
	Counters
}
