package linkup

import (
	"fmt"
	"time"

	"github.com/openclaw/libresync/internal/model"
)

// wireTimeLayout matches the service's M/d/yyyy h:mm:ss a timestamps.
const wireTimeLayout = "1/2/2006 3:04:05 PM"

// ActivationUnknown is the activation reference used when no active sensor
// matches the locally tracked serial. Life counts computed against it span
// decades of minutes and mean "sensor age unknown", not a real duration.
var ActivationUnknown = time.Unix(0, 0).UTC()

func parseWireTime(value string) (time.Time, error) {
	return time.Parse(wireTimeLayout, value)
}

// lifeCount returns whole minutes between activation and the reading. The
// service timestamps its 5-minute cadence with an occasional one-minute
// drift; a remainder of exactly 1 is rounded back down so life counts stay
// multiples of 5.
func lifeCount(measuredAt, activation time.Time) int64 {
	minutes := int64(measuredAt.Sub(activation) / time.Minute)
	if minutes%5 == 1 {
		minutes--
	}
	return minutes
}

// normalizeMeasurement converts a raw wire record into a glucose reading
// anchored on the given activation reference. A timestamp that fails to
// parse fails the record; callers skip it and continue the batch.
func normalizeMeasurement(raw rawMeasurement, activation time.Time) (model.GlucoseReading, error) {
	measuredAt, err := parseWireTime(raw.Timestamp)
	if err != nil {
		return model.GlucoseReading{}, fmt.Errorf("parse measurement timestamp: %w", err)
	}

	value := raw.ValueInMgPerDl
	if value == 0 && raw.GlucoseUnits == 1 {
		value = int(raw.Value)
	}

	return model.GlucoseReading{
		Source:     model.SourceLibreLinkUp,
		ValueMgDl:  value,
		LifeCount:  lifeCount(measuredAt, activation),
		MeasuredAt: measuredAt,
		Color:      model.GlucoseColor(raw.MeasurementColor),
		Trend:      model.TrendArrow(raw.TrendArrow),
		TrendMsg:   raw.TrendMessage,
		IsHigh:     raw.IsHigh,
		IsLow:      raw.IsLow,
	}, nil
}
