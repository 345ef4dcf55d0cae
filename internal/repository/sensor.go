package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/openclaw/libresync/internal/model"
)

type SensorRepository interface {
	// FindCurrent returns the most recently reconciled sensor, nil if none.
	FindCurrent(ctx context.Context) (*model.Sensor, error)
	FindBySerial(ctx context.Context, serial string) (*model.Sensor, error)
	// Upsert creates or refreshes a sensor identity keyed by serial.
	Upsert(ctx context.Context, sensor model.Sensor) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) SensorRepository
}

type sensorDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type sensorRepo struct {
	db sensorDB
}

func NewSensorRepository(db *sqlx.DB) SensorRepository {
	return &sensorRepo{db: db}
}

func (r *sensorRepo) WithTx(tx *sqlx.Tx) SensorRepository {
	return &sensorRepo{db: tx}
}

func (r *sensorRepo) FindCurrent(ctx context.Context) (*model.Sensor, error) {
	var sensor model.Sensor
	err := r.db.GetContext(ctx, &sensor, `
		SELECT * FROM sensors ORDER BY updated_at DESC LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sensor, nil
}

func (r *sensorRepo) FindBySerial(ctx context.Context, serial string) (*model.Sensor, error) {
	var sensor model.Sensor
	err := r.db.GetContext(ctx, &sensor, `
		SELECT * FROM sensors WHERE serial = $1
	`, serial)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sensor, nil
}

func (r *sensorRepo) Upsert(ctx context.Context, sensor model.Sensor) error {
	id := sensor.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sensors (id, serial, product_type, activated_at, age_minutes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (serial) DO UPDATE SET
			product_type = EXCLUDED.product_type,
			activated_at = EXCLUDED.activated_at,
			age_minutes = EXCLUDED.age_minutes,
			updated_at = now()
	`, id, sensor.Serial, sensor.ProductType, sensor.ActivatedAt, sensor.AgeMinutes)
	return err
}
