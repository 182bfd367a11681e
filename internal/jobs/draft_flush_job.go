package jobs

import (
	"context"
	"log/slog"
	"time"

	"fieldservice/internal/core/application/autosave"

	"github.com/robfig/cron/v3"
)

// staleAge is how long a dirty draft may sit unflushed before the job picks
// it up. Comfortably above the debounce quiet period, so the job only ever
// sees drafts whose timer flush failed.
const staleAge = 30 * time.Second

// DraftFlushJob is the safety net behind the auto-save debounce.
// Runs every 15 seconds and writes any dirty draft whose timer flush did not
// go through, so an edit can survive a transient database outage.
type DraftFlushJob struct {
	scheduler *autosave.Scheduler
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDraftFlushJob creates a new job flushing stale drafts through the
// auto-save scheduler.
func NewDraftFlushJob(scheduler *autosave.Scheduler, logger *slog.Logger) *DraftFlushJob {
	return &DraftFlushJob{
		scheduler: scheduler,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "draft_flush_job"),
	}
}

// Start begins the draft flush job on its 15 second schedule.
func (j *DraftFlushJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()
		j.scheduler.FlushStale(ctx, staleAge)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft flush job started (running every 15 seconds)")
	return nil
}

// Stop stops the draft flush job.
func (j *DraftFlushJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Draft flush job stopped")
}
