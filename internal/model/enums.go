package model

// GlucoseColor is the four-level severity classification assigned by the
// LibreLinkUp service per reading.
type GlucoseColor int

const (
	ColorGreen  GlucoseColor = 1
	ColorYellow GlucoseColor = 2
	ColorOrange GlucoseColor = 3
	ColorRed    GlucoseColor = 4
)

// TrendArrow is the service-supplied directional indicator, passed through
// unmodified.
type TrendArrow int

const (
	TrendFallingQuickly TrendArrow = 1
	TrendFalling        TrendArrow = 2
	TrendSteady         TrendArrow = 3
	TrendRising         TrendArrow = 4
	TrendRisingQuickly  TrendArrow = 5
)

// AlarmKind classifies a logbook alarm event.
type AlarmKind string

const (
	AlarmLow  AlarmKind = "low"
	AlarmHigh AlarmKind = "high"
)

// Wire record type discriminator used by graph and logbook entries.
const (
	RecordTypeGraphSample   = 0
	RecordTypeLogbookSample = 1
	RecordTypeAlarm         = 2
	RecordTypeHybrid        = 3
)

// Sensor product-type codes as reported by the service.
const (
	SensorFamilyFirstGen = 3
	SensorFamilyCurrent  = 4
)
