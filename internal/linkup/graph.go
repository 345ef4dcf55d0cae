package linkup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/openclaw/libresync/internal/errors"
	"github.com/openclaw/libresync/internal/model"
)

// FetchResult aggregates one graph pull and its optional logbook sub-fetch.
type FetchResult struct {
	History        []model.GlucoseReading
	LogbookHistory []model.GlucoseReading
	Alarms         []model.AlarmEvent
	RawGraph       []byte
	RawLogbook     []byte
	// Sensor is the reconciled (or newly adopted) local sensor identity,
	// nil when none is tracked and nothing was adopted.
	Sensor *model.Sensor
}

// FetchGraph pulls the primary graph payload for the session's patient,
// reconciles the active-sensor list against the local sensor, normalizes
// every decodable record in service order (current measurement last) and,
// when enabled and a rotated token is present, pulls the logbook. A logbook
// failure is logged and never discards graph results.
func (c *Client) FetchGraph(ctx context.Context, session model.SessionState, sensor *model.Sensor) (*FetchResult, error) {
	raw, err := c.getConnections(ctx, session.Ticket.Token, session.PatientID, "graph")
	if err != nil {
		return nil, err
	}

	var parsed graphResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.NoConnection(err)
	}
	if parsed.Data == nil || parsed.Data.Connection == nil {
		return nil, apperrors.JSONDecoding("graph response is missing data.connection")
	}

	activation, sensor := reconcileSensors(parsed.Data.ActiveSensors, sensor, c.adopt, time.Now().UTC())

	result := &FetchResult{RawGraph: raw, Sensor: sensor}

	attempted := 0
	for _, entry := range parsed.Data.GraphData {
		attempted++
		if reading, ok := decodeReading(entry, activation); ok {
			result.History = append(result.History, reading)
		}
	}
	if len(parsed.Data.Connection.GlucoseMeasurement) > 0 {
		attempted++
		if reading, ok := decodeReading(parsed.Data.Connection.GlucoseMeasurement, activation); ok {
			result.History = append(result.History, reading)
		}
	}

	log.Debug().
		Int("history", len(result.History)).
		Int("dropped", attempted-len(result.History)).
		Msg("graph payload normalized")

	if c.scrapeLogbook && parsed.Ticket.Token != "" {
		var start int64
		if n := len(result.History); n > 0 {
			start = result.History[n-1].LifeCount
		}
		readings, alarms, rawLogbook, err := c.fetchLogbook(ctx, parsed.Ticket.Token, session.PatientID, start)
		if err != nil {
			log.Warn().Err(err).Msg("logbook fetch failed; keeping graph results")
		} else {
			result.LogbookHistory = readings
			result.Alarms = alarms
			result.RawLogbook = rawLogbook
		}
	}

	return result, nil
}

// decodeReading decodes and normalizes one raw list entry. Structural
// failures are logged and skipped; the batch continues.
func decodeReading(entry json.RawMessage, activation time.Time) (model.GlucoseReading, bool) {
	var raw rawMeasurement
	if err := json.Unmarshal(entry, &raw); err != nil {
		log.Debug().Err(err).Msg("skipping undecodable measurement record")
		return model.GlucoseReading{}, false
	}

	reading, err := normalizeMeasurement(raw, activation)
	if err != nil {
		log.Debug().Err(err).Msg("skipping measurement record")
		return model.GlucoseReading{}, false
	}

	return reading, true
}
