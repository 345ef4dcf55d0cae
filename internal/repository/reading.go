package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openclaw/libresync/internal/model"
)

type ReadingRepository interface {
	InsertBatch(ctx context.Context, readings []model.GlucoseReading) (int64, error)
	FindLatest(ctx context.Context) (*model.GlucoseReading, error)
	ListSince(ctx context.Context, since time.Time, limit int) ([]model.GlucoseReading, error)
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) ReadingRepository
}

// readingDB is an interface satisfied by both *sqlx.DB and *sqlx.Tx
type readingDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type readingRepo struct {
	db readingDB
}

func NewReadingRepository(db *sqlx.DB) ReadingRepository {
	return &readingRepo{db: db}
}

func (r *readingRepo) WithTx(tx *sqlx.Tx) ReadingRepository {
	return &readingRepo{db: tx}
}

// InsertBatch stores readings, deduplicating on the life-count identity.
// Returns the number of rows actually inserted.
func (r *readingRepo) InsertBatch(ctx context.Context, readings []model.GlucoseReading) (int64, error) {
	var inserted int64
	for _, reading := range readings {
		result, err := r.db.ExecContext(ctx, `
			INSERT INTO glucose_readings
				(id, source, value_mgdl, life_count, measured_at, color, trend_arrow, trend_message, is_high, is_low)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (source, life_count, measured_at) DO NOTHING
		`, uuid.NewString(), reading.Source, reading.ValueMgDl, reading.LifeCount, reading.MeasuredAt,
			reading.Color, reading.Trend, reading.TrendMsg, reading.IsHigh, reading.IsLow)
		if err != nil {
			return inserted, err
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += n
		}
	}
	return inserted, nil
}

func (r *readingRepo) FindLatest(ctx context.Context) (*model.GlucoseReading, error) {
	var reading model.GlucoseReading
	err := r.db.GetContext(ctx, &reading, `
		SELECT * FROM glucose_readings ORDER BY measured_at DESC LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

func (r *readingRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]model.GlucoseReading, error) {
	readings := []model.GlucoseReading{}
	err := r.db.SelectContext(ctx, &readings, `
		SELECT * FROM glucose_readings
		WHERE measured_at > $1
		ORDER BY measured_at ASC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, err
	}
	return readings, nil
}
