package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"boardcam/api/internal/gallery"
)

// Janitor prunes exclusion-store entries for visitors idle beyond the
// configured TTL. Exclusion sets are process-lifetime state; without the
// janitor every visitor ever seen would be held until restart.
type Janitor struct {
	cron  *cron.Cron
	store *gallery.ExclusionStore
	idle  time.Duration
	log   zerolog.Logger
}

func NewJanitor(store *gallery.ExclusionStore, idle time.Duration, log zerolog.Logger) *Janitor {
	return &Janitor{
		cron:  cron.New(cron.WithSeconds()),
		store: store,
		idle:  idle,
		log:   log,
	}
}

func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("0 0 * * * *", j.prune); err != nil { // hourly
		return err
	}
	j.cron.Start()
	return nil
}

// Stop halts the schedule and waits briefly for a running prune to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (j *Janitor) prune() {
	removed := j.store.Prune(j.idle)
	if removed > 0 {
		j.log.Info().Int("visitors", removed).Msg("pruned idle exclusion entries")
	}
}
