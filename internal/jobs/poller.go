package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openclaw/libresync/internal/config"
	"github.com/openclaw/libresync/internal/service"
)

// Syncer runs one sync pass against the cloud service.
type Syncer interface {
	Sync(ctx context.Context) (*service.SyncSummary, error)
}

// PollJob invokes the sync flow on a fixed interval. There is no backoff:
// the whole flow (re-authenticate, re-fetch) is simply re-invoked next tick
// after any failure.
type PollJob struct {
	syncer   Syncer
	interval time.Duration
	done     chan struct{}
}

func NewPollJob(syncer Syncer, interval time.Duration) *PollJob {
	return &PollJob{
		syncer:   syncer,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *PollJob) Start() {
	go j.run()
	log.Info().Dur("interval", j.interval).Msg("poll job started")
}

func (j *PollJob) Stop() {
	close(j.done)
	log.Info().Msg("poll job stopped")
}

func (j *PollJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.poll()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.poll()
		}
	}
}

func (j *PollJob) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), config.SyncRunTimeout)
	defer cancel()

	if _, err := j.syncer.Sync(ctx); err != nil {
		log.Error().Err(err).Msg("sync failed")
	}
}
