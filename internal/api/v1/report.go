package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Report is one usage-statistics submission from a homeserver.
// It separates the "Envelope" (attributes stamped by the ingest boundary) from the
// client-reported counters. Every client field is optional: homeserver versions vary
// and any field may be absent.
type Report struct {
	// --- System Attributes (The Envelope) ---

	// ID is assigned by the report store at insert time and is the only stable handle
	// for later lookup. Never accepted from clients.
	ID int64 `json:"-"`

	// LocalTimestamp is when the report was received. Set by the ingest boundary,
	// never by the client, and never changed once set.
	LocalTimestamp *time.Time `json:"-"`

	// RemoteTimestamp is the client-reported submission time. Decoded from the
	// client's "timestamp" field (unix seconds).
	RemoteTimestamp *time.Time `json:"-"`

	// RemoteAddr, ForwardedFor and UserAgent are copied from the transport by the
	// ingest boundary.
	RemoteAddr   *string `json:"-"`
	ForwardedFor *string `json:"-"`
	UserAgent    *string `json:"-"`

	// --- Client Payload ---

	// Homeserver identifies the reporting instance. Malformed clients may omit it.
	Homeserver *string `json:"homeserver"`

	// ServerContext is an optional tenant-grouping label. Reports without it are
	// excluded from the per-context rollups.
	ServerContext *string `json:"server_context"`

	UptimeSeconds         *int64 `json:"uptime_seconds"`
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

	CPUAverage     *int64              `json:"cpu_average"`
	MemoryRSS      *int64              `json:"memory_rss"`
	CacheFactor    decimal.NullDecimal `json:"cache_factor"`
	EventCacheSize *int64              `json:"event_cache_size"`

	DailyUserTypeNative  *int64 `json:"daily_user_type_native"`
	DailyUserTypeBridged *int64 `json:"daily_user_type_bridged"`
	DailyUserTypeGuest   *int64 `json:"daily_user_type_guest"`

	PythonVersion         *string `json:"python_version"`
	DatabaseEngine        *string `json:"database_engine"`
	DatabaseServerVersion *string `json:"database_server_version"`
	LogLevel              *string `json:"log_level"`
}

// UnmarshalJSON decodes a client payload. The client's "timestamp" (unix seconds)
// becomes RemoteTimestamp; envelope fields are left untouched.
func (r *Report) UnmarshalJSON(data []byte) error {
	type payload Report
	aux := struct {
		*payload
		Timestamp *json.Number `json:"timestamp"`
	}{payload: (*payload)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Timestamp != nil {
		secs, err := aux.Timestamp.Int64()
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", aux.Timestamp.String(), err)
		}
		ts := time.Unix(secs, 0).UTC()
		r.RemoteTimestamp = &ts
	}
	return nil
}

// MarshalJSON encodes the client payload shape, so a marshalled report can be pushed
// again. Envelope fields are not part of the payload.
func (r Report) MarshalJSON() ([]byte, error) {
	type payload Report
	aux := struct {
		payload
		Timestamp *int64 `json:"timestamp,omitempty"`
	}{payload: payload(r)}

	if r.RemoteTimestamp != nil {
		secs := r.RemoteTimestamp.Unix()
		aux.Timestamp = &secs
	}
	return json.Marshal(aux)
}
