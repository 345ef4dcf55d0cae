// Package store holds the string-keyed settings store that persists the
// LibreLinkUp session (patient id, token, token expiry) between runs.
package store

import (
	"context"
	"errors"
	"strconv"

	goredis "github.com/redis/go-redis/v9"

	"github.com/openclaw/libresync/internal/model"
	"github.com/openclaw/libresync/internal/redis"
)

// Keys used by the session persistence helpers.
const (
	KeyPatientID           = "patientId"
	KeyToken               = "token"
	KeyTokenExpirationDate = "tokenExpirationDate"
)

// SettingsStore is a plain string-keyed get/set store. A missing key reads
// as the empty string, not an error.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type RedisSettings struct {
	client *redis.Client
	prefix string
}

func NewRedisSettings(client *redis.Client) *RedisSettings {
	return &RedisSettings{client: client, prefix: "settings:"}
}

func (s *RedisSettings) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *RedisSettings) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// LoadSession reads the persisted session state. Absent keys yield an
// unauthenticated session rather than an error.
func LoadSession(ctx context.Context, settings SettingsStore) (model.SessionState, error) {
	patientID, err := settings.Get(ctx, KeyPatientID)
	if err != nil {
		return model.SessionState{}, err
	}
	token, err := settings.Get(ctx, KeyToken)
	if err != nil {
		return model.SessionState{}, err
	}
	expiresRaw, err := settings.Get(ctx, KeyTokenExpirationDate)
	if err != nil {
		return model.SessionState{}, err
	}

	expires, _ := strconv.ParseInt(expiresRaw, 10, 64)
	return model.SessionState{
		PatientID: patientID,
		Ticket:    model.AuthTicket{Token: token, Expires: expires},
	}, nil
}

// SaveSession persists the session state after a successful login.
func SaveSession(ctx context.Context, settings SettingsStore, session model.SessionState) error {
	if err := settings.Set(ctx, KeyPatientID, session.PatientID); err != nil {
		return err
	}
	if err := settings.Set(ctx, KeyToken, session.Ticket.Token); err != nil {
		return err
	}
	return settings.Set(ctx, KeyTokenExpirationDate, strconv.FormatInt(session.Ticket.Expires, 10))
}

// ClearSession drops the persisted token so the next sync re-authenticates.
func ClearSession(ctx context.Context, settings SettingsStore) error {
	if err := settings.Set(ctx, KeyToken, ""); err != nil {
		return err
	}
	return settings.Set(ctx, KeyTokenExpirationDate, "0")
}
