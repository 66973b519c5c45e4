package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/questgen-flow/backend/internal/domain"
)

// ErrJobNotFound is returned for lookups of unknown job identifiers.
var ErrJobNotFound = fmt.Errorf("job not found")

// jobEntry pairs a job record with its internal task handle. The done
// channel closes exactly once, when the job reaches a terminal status.
type jobEntry struct {
	job  domain.Job
	done chan struct{}
}

// JobRegistry is the process-wide map from job identifier to job state.
// The orchestrator is the single writer per job; status queries take
// snapshot copies so terminal and in-flight jobs can be read freely.
// Jobs are never deleted within the process lifetime.
type JobRegistry struct {
	mu   sync.RWMutex
	jobs map[string]*jobEntry
}

// NewJobRegistry creates an empty registry.
func NewJobRegistry() *JobRegistry {
	return &JobRegistry{jobs: make(map[string]*jobEntry)}
}

// Create registers a new pending job under the given identifier.
func (r *JobRegistry) Create(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[id] = &jobEntry{
		job: domain.Job{
			ID:        id,
			Status:    domain.JobStatusPending,
			Step:      domain.StepSplit,
			Logs:      []string{},
			Topics:    []string{},
			StartedAt: time.Now(),
		},
		done: make(chan struct{}),
	}
}

// Snapshot returns a deep copy of the job state, safe to read while the
// orchestrator keeps mutating the original.
func (r *JobRegistry) Snapshot(id string) (domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.jobs[id]
	if !ok {
		return domain.Job{}, ErrJobNotFound
	}

	job := entry.job
	job.Logs = append([]string(nil), entry.job.Logs...)
	job.Topics = append([]string(nil), entry.job.Topics...)
	job.Questions = make([]domain.Question, len(entry.job.Questions))
	for i, q := range entry.job.Questions {
		options := make(map[string]string, len(q.Options))
		for k, v := range q.Options {
			options[k] = v
		}
		q.Options = options
		job.Questions[i] = q
	}
	return job, nil
}

// Update transitions job status/progress/step and appends a log entry.
// Terminal states are absorbing: updates after completion or error are
// dropped. Progress never decreases while a job is in progress.
func (r *JobRegistry) Update(id string, status domain.JobStatus, progress, step int, logMessage string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.jobs[id]
	if !ok || entry.job.Status.Terminal() {
		return
	}

	if progress < entry.job.Progress {
		progress = entry.job.Progress
	}
	entry.job.Status = status
	entry.job.Progress = progress
	entry.job.Step = step
	entry.job.Logs = append(entry.job.Logs, logMessage)

	if status.Terminal() {
		close(entry.done)
	}
}

// AppendLog appends a log entry without touching status or progress. Used
// by worker callbacks running concurrently with the coordinator.
func (r *JobRegistry) AppendLog(id, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.jobs[id]; ok && !entry.job.Status.Terminal() {
		entry.job.Logs = append(entry.job.Logs, message)
	}
}

// SetQuestions stores the finalized question list and derived topics.
func (r *JobRegistry) SetQuestions(id string, questions []domain.Question, topics []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.jobs[id]; ok && !entry.job.Status.Terminal() {
		entry.job.Questions = questions
		entry.job.Topics = topics
	}
}

// SetExcelFile records the export artifact key for a job.
func (r *JobRegistry) SetExcelFile(id, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.jobs[id]; ok && !entry.job.Status.Terminal() {
		entry.job.ExcelFile = key
	}
}

// Fail moves the job to the error state with a descriptive message. The
// logs accumulated up to the failure point are kept for diagnosis.
func (r *JobRegistry) Fail(id, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.jobs[id]
	if !ok || entry.job.Status.Terminal() {
		return
	}

	entry.job.Status = domain.JobStatusError
	entry.job.Error = message
	entry.job.Logs = append(entry.job.Logs, message)
	close(entry.done)
}

// Done returns a channel closed when the job reaches a terminal state.
// This is the internal task handle for the background pipeline run.
func (r *JobRegistry) Done(id string) (<-chan struct{}, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return entry.done, nil
}
