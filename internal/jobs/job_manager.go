package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
}

// NewJobManager creates a job manager. Jobs start in the given order and stop in
// reverse.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts all scheduled jobs.
// If one fails, the jobs already started are stopped and the error is returned.
func (jm *JobManager) StartAll() error {
	for idx, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d (%T): %w", idx, job, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops all started jobs gracefully.
func (jm *JobManager) StopAll() {
	for idx := len(jm.started) - 1; idx >= 0; idx-- {
		jm.started[idx].Stop()
	}
	jm.started = nil
}
