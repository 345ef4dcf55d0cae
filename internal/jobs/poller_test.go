package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/openclaw/libresync/internal/service"
)

type countingSyncer struct {
	calls atomic.Int64
	err   error
}

func (s *countingSyncer) Sync(ctx context.Context) (*service.SyncSummary, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &service.SyncSummary{}, nil
}

func TestPollJob(t *testing.T) {
	t.Run("creates job with correct interval", func(t *testing.T) {
		job := NewPollJob(nil, time.Minute)

		assert.NotNil(t, job)
		assert.Equal(t, time.Minute, job.interval)
	})

	t.Run("polls immediately on start", func(t *testing.T) {
		syncer := &countingSyncer{}
		job := NewPollJob(syncer, time.Hour)

		job.Start()
		time.Sleep(20 * time.Millisecond)
		job.Stop()

		assert.Equal(t, int64(1), syncer.calls.Load())
	})

	t.Run("keeps polling after a failure", func(t *testing.T) {
		syncer := &countingSyncer{err: context.DeadlineExceeded}
		job := NewPollJob(syncer, 20*time.Millisecond)

		job.Start()
		time.Sleep(70 * time.Millisecond)
		job.Stop()

		assert.GreaterOrEqual(t, syncer.calls.Load(), int64(2))
	})

	t.Run("stops cleanly", func(t *testing.T) {
		syncer := &countingSyncer{}
		job := NewPollJob(syncer, 10*time.Millisecond)

		job.Start()
		time.Sleep(35 * time.Millisecond)
		job.Stop()

		calls := syncer.calls.Load()
		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, calls, syncer.calls.Load())
	})
}
