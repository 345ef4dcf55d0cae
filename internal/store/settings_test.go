package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/libresync/internal/model"
)

type memorySettings struct {
	values map[string]string
}

func newMemorySettings() *memorySettings {
	return &memorySettings{values: make(map[string]string)}
}

func (m *memorySettings) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memorySettings) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	settings := newMemorySettings()

	session := model.SessionState{
		PatientID: "patient-123",
		Ticket: model.AuthTicket{
			Token:   "session-token",
			Expires: time.Now().Add(time.Hour).Unix(),
		},
	}

	require.NoError(t, SaveSession(ctx, settings, session))

	loaded, err := LoadSession(ctx, settings)
	require.NoError(t, err)

	assert.Equal(t, session.PatientID, loaded.PatientID)
	assert.Equal(t, session.Ticket.Token, loaded.Ticket.Token)
	assert.Equal(t, session.Ticket.Expires, loaded.Ticket.Expires)
	assert.True(t, loaded.Authenticated(time.Now()))
}

func TestLoadSessionEmptyStore(t *testing.T) {
	loaded, err := LoadSession(context.Background(), newMemorySettings())
	require.NoError(t, err)

	assert.Empty(t, loaded.PatientID)
	assert.False(t, loaded.Authenticated(time.Now()))
}

func TestClearSession(t *testing.T) {
	ctx := context.Background()
	settings := newMemorySettings()

	session := model.SessionState{
		PatientID: "patient-123",
		Ticket:    model.AuthTicket{Token: "session-token", Expires: time.Now().Add(time.Hour).Unix()},
	}
	require.NoError(t, SaveSession(ctx, settings, session))
	require.NoError(t, ClearSession(ctx, settings))

	loaded, err := LoadSession(ctx, settings)
	require.NoError(t, err)

	// Patient id survives; only the ticket is dropped.
	assert.Equal(t, "patient-123", loaded.PatientID)
	assert.False(t, loaded.Authenticated(time.Now()))
}
