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
type JobManager struct {
	jobs    []Job
	started []Job
}

// NewJobManager creates a job manager for the given jobs. They start in order and
// stop in reverse order.
func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts every job. If one fails, the jobs already started are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
		jm.started = append(jm.started, job)
	}
	return nil
}

// StopAll stops all started jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
