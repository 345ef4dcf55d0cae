package linkup

import (
	"errors"
	"fmt"

	"github.com/openclaw/libresync/internal/model"
)

// decodeAlarm converts a type 2 logbook record into an alarm event. The
// service defines alarmType 0 (low) and 1 (high) only; anything else fails
// the record. The event ID is the epoch second of the alarm timestamp.
func decodeAlarm(raw rawMeasurement) (model.AlarmEvent, error) {
	triggeredAt, err := parseWireTime(raw.Timestamp)
	if err != nil {
		return model.AlarmEvent{}, fmt.Errorf("parse alarm timestamp: %w", err)
	}

	if raw.AlarmType == nil {
		return model.AlarmEvent{}, errors.New("alarm record has no alarmType")
	}

	var kind model.AlarmKind
	switch *raw.AlarmType {
	case 0:
		kind = model.AlarmLow
	case 1:
		kind = model.AlarmHigh
	default:
		return model.AlarmEvent{}, fmt.Errorf("unknown alarmType %d", *raw.AlarmType)
	}

	return model.AlarmEvent{
		EventID:     triggeredAt.Unix(),
		Kind:        kind,
		TriggeredAt: triggeredAt,
	}, nil
}
