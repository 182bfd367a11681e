// Package jobs provides scheduled background tasks for the field service
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required around order execution.
//
// # Available Jobs
//
// 1. DraftFlushJob - Runs every 15 seconds and persists dirty execution
// drafts whose debounced auto-save did not go through.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(scheduler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Flush failures are logged and left dirty; the next run retries them.
package jobs
