package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/openclaw/libresync/internal/errors"
	"github.com/openclaw/libresync/internal/linkup"
	"github.com/openclaw/libresync/internal/model"
	"github.com/openclaw/libresync/internal/redis"
	"github.com/openclaw/libresync/internal/repository"
	"github.com/openclaw/libresync/internal/store"
)

// LinkUpClient is the slice of the cloud client the sync flow needs.
type LinkUpClient interface {
	Authenticate(ctx context.Context, creds model.Credentials) (model.SessionState, []byte, error)
	FetchGraph(ctx context.Context, session model.SessionState, sensor *model.Sensor) (*linkup.FetchResult, error)
}

// Publisher fans the latest reading out to live consumers.
type Publisher interface {
	PublishReading(ctx context.Context, channel string, payload []byte) error
}

type SyncSummary struct {
	RunID       string                `json:"runId"`
	PatientID   string                `json:"patientId"`
	LoggedIn    bool                  `json:"loggedIn"`
	NewReadings int64                 `json:"newReadings"`
	NewAlarms   int64                 `json:"newAlarms"`
	Latest      *model.GlucoseReading `json:"latest,omitempty"`
}

type SyncService struct {
	client      LinkUpClient
	creds       model.Credentials
	settings    store.SettingsStore
	readingRepo repository.ReadingRepository
	alarmRepo   repository.AlarmRepository
	sensorRepo  repository.SensorRepository
	publisher   Publisher
}

func NewSyncService(
	client LinkUpClient,
	creds model.Credentials,
	settings store.SettingsStore,
	readingRepo repository.ReadingRepository,
	alarmRepo repository.AlarmRepository,
	sensorRepo repository.SensorRepository,
	publisher Publisher,
) *SyncService {
	return &SyncService{
		client:      client,
		creds:       creds,
		settings:    settings,
		readingRepo: readingRepo,
		alarmRepo:   alarmRepo,
		sensorRepo:  sensorRepo,
		publisher:   publisher,
	}
}

// Sync runs one full pull: re-authenticate if the stored ticket is empty or
// expired, fetch graph (and logbook when rotated), persist the normalized
// results and publish the latest reading. Failures propagate without retry;
// the poll job simply invokes the whole flow again next tick.
func (s *SyncService) Sync(ctx context.Context) (*SyncSummary, error) {
	summary := &SyncSummary{RunID: uuid.NewString()}

	session, err := store.LoadSession(ctx, s.settings)
	if err != nil {
		return nil, apperrors.Internal("failed to load session").WithCause(err)
	}

	if !session.Authenticated(time.Now()) {
		session, _, err = s.client.Authenticate(ctx, s.creds)
		if err != nil {
			return nil, err
		}
		if err := store.SaveSession(ctx, s.settings, session); err != nil {
			return nil, apperrors.Internal("failed to persist session").WithCause(err)
		}
		summary.LoggedIn = true
	}
	summary.PatientID = session.PatientID

	sensor, err := s.sensorRepo.FindCurrent(ctx)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	result, err := s.client.FetchGraph(ctx, session, sensor)
	if err != nil {
		// A structurally broken response usually means a stale or revoked
		// token; drop it so the next run logs in again.
		if apperrors.GetCode(err) == apperrors.ErrCodeJSONDecoding {
			if clearErr := store.ClearSession(ctx, s.settings); clearErr != nil {
				log.Error().Err(clearErr).Msg("failed to clear stale session")
			}
		}
		return nil, err
	}

	if result.Sensor != nil {
		if err := s.sensorRepo.Upsert(ctx, *result.Sensor); err != nil {
			log.Error().Err(err).Msg("failed to persist sensor identity")
		}
	}

	readings := make([]model.GlucoseReading, 0, len(result.History)+len(result.LogbookHistory))
	readings = append(readings, result.History...)
	readings = append(readings, result.LogbookHistory...)

	summary.NewReadings, err = s.readingRepo.InsertBatch(ctx, readings)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	summary.NewAlarms, err = s.alarmRepo.InsertBatch(ctx, result.Alarms)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	if n := len(result.History); n > 0 {
		latest := result.History[n-1]
		summary.Latest = &latest

		if s.publisher != nil {
			payload, _ := json.Marshal(latest)
			channel := redis.ReadingChannel(session.PatientID)
			if err := s.publisher.PublishReading(ctx, channel, payload); err != nil {
				log.Warn().Err(err).Msg("failed to publish latest reading")
			}
		}
	}

	log.Info().
		Str("runId", summary.RunID).
		Bool("loggedIn", summary.LoggedIn).
		Int64("newReadings", summary.NewReadings).
		Int64("newAlarms", summary.NewAlarms).
		Msg("sync completed")

	return summary, nil
}
