package model

import "time"

// SourceLibreLinkUp tags every reading produced by this integration.
const SourceLibreLinkUp = "LibreLinkUp"

// GlucoseReading is a normalized glucose sample. LifeCount is the number of
// whole minutes between the matched sensor's activation and the reading, and
// is the primary ordering/identity key; for logbook entries, where graph
// timing is unavailable, it is a running index continuing the graph batch.
type GlucoseReading struct {
	ID         string       `db:"id" json:"id"`
	Source     string       `db:"source" json:"source"`
	ValueMgDl  int          `db:"value_mgdl" json:"valueMgDl"`
	LifeCount  int64        `db:"life_count" json:"lifeCount"`
	MeasuredAt time.Time    `db:"measured_at" json:"measuredAt"`
	Color      GlucoseColor `db:"color" json:"color"`
	Trend      TrendArrow   `db:"trend_arrow" json:"trend"`
	TrendMsg   string       `db:"trend_message" json:"trendMessage,omitempty"`
	IsHigh     bool         `db:"is_high" json:"isHigh"`
	IsLow      bool         `db:"is_low" json:"isLow"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
}

// AlarmEvent is a normalized logbook alarm. EventID is the epoch second of
// the alarm timestamp; two alarms within the same second collide, which is an
// accepted limitation of the upstream data.
type AlarmEvent struct {
	EventID     int64     `db:"event_id" json:"eventId"`
	Kind        AlarmKind `db:"kind" json:"kind"`
	TriggeredAt time.Time `db:"triggered_at" json:"triggeredAt"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
