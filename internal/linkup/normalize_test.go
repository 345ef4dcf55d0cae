package linkup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/libresync/internal/model"
)

func wireTime(t time.Time) string {
	return t.Format(wireTimeLayout)
}

func TestLifeCount(t *testing.T) {
	activation := time.Unix(1700000000, 0).UTC()

	t.Run("no correction when remainder is not one minute", func(t *testing.T) {
		// 7 minutes 1 second elapsed: raw minutes = 7, 7 mod 5 = 2
		reading := activation.Add(421 * time.Second)
		assert.Equal(t, int64(7), lifeCount(reading, activation))
	})

	t.Run("one-minute drift is rounded back to the cadence", func(t *testing.T) {
		// 6 minutes elapsed: 6 mod 5 = 1, corrected to 5
		reading := activation.Add(360 * time.Second)
		assert.Equal(t, int64(5), lifeCount(reading, activation))
	})

	t.Run("corrected counts are multiples of five on the sampling cadence", func(t *testing.T) {
		for cycle := int64(0); cycle < 24; cycle++ {
			onCadence := activation.Add(time.Duration(cycle*5) * time.Minute)
			drifted := onCadence.Add(time.Minute)

			assert.Equal(t, cycle*5, lifeCount(onCadence, activation))
			assert.Equal(t, cycle*5, lifeCount(drifted, activation))
			assert.Zero(t, lifeCount(drifted, activation)%5)
		}
	})

	t.Run("other remainders pass through unmodified", func(t *testing.T) {
		for _, extra := range []time.Duration{2, 3, 4} {
			reading := activation.Add(10*time.Minute + extra*time.Minute)
			assert.Equal(t, int64(10+extra), lifeCount(reading, activation))
		}
	})

	t.Run("unknown activation yields decades of minutes", func(t *testing.T) {
		reading := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
		count := lifeCount(reading, ActivationUnknown)
		// Anything past ten years of minutes signals "sensor age unknown".
		assert.Greater(t, count, int64(10*365*24*60))
	})
}

func TestNormalizeMeasurement(t *testing.T) {
	activation := time.Unix(1700000000, 0).UTC()
	measuredAt := activation.Add(421 * time.Second)

	raw := rawMeasurement{
		Timestamp:        wireTime(measuredAt),
		Type:             model.RecordTypeGraphSample,
		ValueInMgPerDl:   104,
		MeasurementColor: int(model.ColorGreen),
		TrendArrow:       int(model.TrendSteady),
		TrendMessage:     "steady",
	}

	t.Run("produces a normalized reading", func(t *testing.T) {
		reading, err := normalizeMeasurement(raw, activation)
		require.NoError(t, err)

		assert.Equal(t, model.SourceLibreLinkUp, reading.Source)
		assert.Equal(t, 104, reading.ValueMgDl)
		assert.Equal(t, int64(7), reading.LifeCount)
		assert.True(t, reading.MeasuredAt.Equal(measuredAt))
		assert.Equal(t, model.ColorGreen, reading.Color)
		assert.Equal(t, model.TrendSteady, reading.Trend)
		assert.Equal(t, "steady", reading.TrendMsg)
	})

	t.Run("falls back to the unit-flagged value field", func(t *testing.T) {
		fallback := raw
		fallback.ValueInMgPerDl = 0
		fallback.GlucoseUnits = 1
		fallback.Value = 93

		reading, err := normalizeMeasurement(fallback, activation)
		require.NoError(t, err)
		assert.Equal(t, 93, reading.ValueMgDl)
	})

	t.Run("fails the record on an unparsable timestamp", func(t *testing.T) {
		bad := raw
		bad.Timestamp = "2026-08-25T12:00:00Z"
		_, err := normalizeMeasurement(bad, activation)
		assert.Error(t, err)
	})

	t.Run("fails the record on a missing timestamp", func(t *testing.T) {
		bad := raw
		bad.Timestamp = ""
		_, err := normalizeMeasurement(bad, activation)
		assert.Error(t, err)
	})

	t.Run("high and low flags pass through", func(t *testing.T) {
		flagged := raw
		flagged.IsHigh = true
		reading, err := normalizeMeasurement(flagged, activation)
		require.NoError(t, err)
		assert.True(t, reading.IsHigh)
		assert.False(t, reading.IsLow)
	})
}
