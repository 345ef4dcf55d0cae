package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/openclaw/libresync/internal/errors"
	"github.com/openclaw/libresync/internal/repository"
	"github.com/openclaw/libresync/internal/service"
)

const (
	defaultListWindow = 24 * time.Hour
	defaultListLimit  = 288 // one day of 5-minute samples
	maxListLimit      = 2880
)

// Syncer triggers an on-demand sync pass.
type Syncer interface {
	Sync(ctx context.Context) (*service.SyncSummary, error)
}

type ReadingsHandler struct {
	readingRepo repository.ReadingRepository
	alarmRepo   repository.AlarmRepository
	sensorRepo  repository.SensorRepository
	syncer      Syncer
}

func NewReadingsHandler(
	readingRepo repository.ReadingRepository,
	alarmRepo repository.AlarmRepository,
	sensorRepo repository.SensorRepository,
	syncer Syncer,
) *ReadingsHandler {
	return &ReadingsHandler{
		readingRepo: readingRepo,
		alarmRepo:   alarmRepo,
		sensorRepo:  sensorRepo,
		syncer:      syncer,
	}
}

func (h *ReadingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/readings/latest", h.Latest)
	r.Get("/readings", h.ListReadings)
	r.Get("/alarms", h.ListAlarms)
	r.Get("/sensor", h.CurrentSensor)
	r.Post("/sync", h.TriggerSync)
	return r
}

func (h *ReadingsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	reading, err := h.readingRepo.FindLatest(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load latest reading")
		writeError(w, apperrors.Database(err))
		return
	}
	if reading == nil {
		writeError(w, apperrors.NotFound("Reading"))
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (h *ReadingsHandler) ListReadings(w http.ResponseWriter, r *http.Request) {
	since, limit, err := listParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	readings, dbErr := h.readingRepo.ListSince(r.Context(), since, limit)
	if dbErr != nil {
		log.Error().Err(dbErr).Msg("failed to list readings")
		writeError(w, apperrors.Database(dbErr))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"readings": readings})
}

func (h *ReadingsHandler) ListAlarms(w http.ResponseWriter, r *http.Request) {
	since, limit, err := listParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	alarms, dbErr := h.alarmRepo.ListSince(r.Context(), since, limit)
	if dbErr != nil {
		log.Error().Err(dbErr).Msg("failed to list alarms")
		writeError(w, apperrors.Database(dbErr))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alarms": alarms})
}

func (h *ReadingsHandler) CurrentSensor(w http.ResponseWriter, r *http.Request) {
	sensor, err := h.sensorRepo.FindCurrent(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load sensor")
		writeError(w, apperrors.Database(err))
		return
	}
	if sensor == nil {
		writeError(w, apperrors.NotFound("Sensor"))
		return
	}
	writeJSON(w, http.StatusOK, sensor)
}

func (h *ReadingsHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	summary, err := h.syncer.Sync(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("on-demand sync failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func listParams(r *http.Request) (time.Time, int, error) {
	since := time.Now().Add(-defaultListWindow)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, 0, apperrors.InvalidInput("since", "must be RFC3339")
		}
		since = parsed
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return time.Time{}, 0, apperrors.InvalidInput("limit", "must be a positive integer")
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return since, limit, nil
}
