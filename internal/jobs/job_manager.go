package jobs

import (
	"fmt"
	"log/slog"

	"fieldservice/internal/core/application/autosave"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	draftFlushJob *DraftFlushJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(scheduler *autosave.Scheduler, logger *slog.Logger) *JobManager {
	return &JobManager{
		draftFlushJob: NewDraftFlushJob(scheduler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.draftFlushJob.Start(); err != nil {
		return fmt.Errorf("failed to start draft flush job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.draftFlushJob.Stop()
}
