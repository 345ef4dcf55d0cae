package linkup

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	apperrors "github.com/openclaw/libresync/internal/errors"
	"github.com/openclaw/libresync/internal/model"
)

// fetchLogbook pulls the extended-history endpoint with the token rotated by
// the preceding graph response. Logbook entries carry no reliable timing
// relative to activation, so measurements get a running index continuing
// from startIndex instead of a computed life count. Hybrid (type 3) records
// carry an embedded alarmType but are emitted as measurements only.
func (c *Client) fetchLogbook(ctx context.Context, rotatedToken, patientID string, startIndex int64) ([]model.GlucoseReading, []model.AlarmEvent, []byte, error) {
	raw, err := c.getConnections(ctx, rotatedToken, patientID, "logbook")
	if err != nil {
		return nil, nil, nil, err
	}

	var parsed logbookResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, nil, nil, apperrors.NoConnection(err)
	}

	var readings []model.GlucoseReading
	var alarms []model.AlarmEvent
	index := startIndex

	for _, entry := range parsed.Data {
		var record rawMeasurement
		if err := json.Unmarshal(entry, &record); err != nil {
			log.Debug().Err(err).Msg("skipping undecodable logbook entry")
			continue
		}

		switch record.Type {
		case model.RecordTypeLogbookSample, model.RecordTypeHybrid:
			reading, err := normalizeMeasurement(record, ActivationUnknown)
			if err != nil {
				log.Debug().Err(err).Msg("skipping logbook measurement")
				continue
			}
			index++
			reading.LifeCount = index
			readings = append(readings, reading)
		case model.RecordTypeAlarm:
			alarm, err := decodeAlarm(record)
			if err != nil {
				log.Debug().Err(err).Msg("skipping logbook alarm")
				continue
			}
			alarms = append(alarms, alarm)
		default:
			log.Debug().Int("type", record.Type).Msg("skipping logbook entry of unknown type")
		}
	}

	return readings, alarms, raw, nil
}
