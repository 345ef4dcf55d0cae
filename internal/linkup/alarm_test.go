package linkup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/libresync/internal/model"
)

func intPtr(v int) *int { return &v }

func TestDecodeAlarm(t *testing.T) {
	triggeredAt := time.Date(2026, 8, 25, 3, 15, 42, 0, time.UTC)

	t.Run("alarmType 0 decodes as low", func(t *testing.T) {
		alarm, err := decodeAlarm(rawMeasurement{
			Timestamp: wireTime(triggeredAt),
			Type:      model.RecordTypeAlarm,
			AlarmType: intPtr(0),
		})
		require.NoError(t, err)

		assert.Equal(t, model.AlarmLow, alarm.Kind)
		assert.Equal(t, triggeredAt.Unix(), alarm.EventID)
		assert.True(t, alarm.TriggeredAt.Equal(triggeredAt))
	})

	t.Run("alarmType 1 decodes as high", func(t *testing.T) {
		alarm, err := decodeAlarm(rawMeasurement{
			Timestamp: wireTime(triggeredAt),
			Type:      model.RecordTypeAlarm,
			AlarmType: intPtr(1),
		})
		require.NoError(t, err)
		assert.Equal(t, model.AlarmHigh, alarm.Kind)
	})

	t.Run("unknown alarmType fails the record", func(t *testing.T) {
		_, err := decodeAlarm(rawMeasurement{
			Timestamp: wireTime(triggeredAt),
			AlarmType: intPtr(7),
		})
		assert.Error(t, err)
	})

	t.Run("missing alarmType fails the record", func(t *testing.T) {
		_, err := decodeAlarm(rawMeasurement{Timestamp: wireTime(triggeredAt)})
		assert.Error(t, err)
	})

	t.Run("unparsable timestamp fails the record", func(t *testing.T) {
		_, err := decodeAlarm(rawMeasurement{Timestamp: "yesterday", AlarmType: intPtr(0)})
		assert.Error(t, err)
	})
}
