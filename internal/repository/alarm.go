package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openclaw/libresync/internal/model"
)

type AlarmRepository interface {
	InsertBatch(ctx context.Context, alarms []model.AlarmEvent) (int64, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]model.AlarmEvent, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) AlarmRepository
}

type alarmDB interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type alarmRepo struct {
	db alarmDB
}

func NewAlarmRepository(db *sqlx.DB) AlarmRepository {
	return &alarmRepo{db: db}
}

func (r *alarmRepo) WithTx(tx *sqlx.Tx) AlarmRepository {
	return &alarmRepo{db: tx}
}

// InsertBatch stores alarms keyed by their epoch-second event id; replays of
// the same alarm are no-ops.
func (r *alarmRepo) InsertBatch(ctx context.Context, alarms []model.AlarmEvent) (int64, error) {
	var inserted int64
	for _, alarm := range alarms {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO alarm_events (event_id, kind, triggered_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id) DO NOTHING
		`, alarm.EventID, alarm.Kind, alarm.TriggeredAt)
		if err != nil {
			return inserted, err
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += n
		}
	}
	return inserted, nil
}

func (r *alarmRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]model.AlarmEvent, error) {
	alarms := []model.AlarmEvent{}
	err := r.db.SelectContext(ctx, &alarms, `
		SELECT * FROM alarm_events
		WHERE triggered_at > $1
		ORDER BY triggered_at ASC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, err
	}
	return alarms, nil
}
