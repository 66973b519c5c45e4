package domain

import "time"

// JobStatus represents the status of a generation job.
// Values include JobStatusPending, JobStatusInProgress, JobStatusCompleted, and JobStatusError.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusError      JobStatus = "error"
)

// Terminal reports whether the status is absorbing (completed or error).
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

// Pipeline step markers exposed through the status endpoint.
const (
	StepSplit     = 1 // text splitting and initial generation
	StepBatchFill = 2 // batch fill loop toward the target count
	StepTranslate = 3 // explanation translation
	StepFinalize  = 4 // alignment, balancing, export
)

// Job represents one end-to-end question generation request and its
// evolving state. The orchestrator is the only writer while the job is
// active; once the status is terminal the record is read-only.
type Job struct {
	ID        string     `json:"id"`
	Status    JobStatus  `json:"status"`
	Progress  int        `json:"progress"`
	Step      int        `json:"step"`
	Logs      []string   `json:"logs"`
	Questions []Question `json:"questions"`
	Topics    []string   `json:"topics"`
	StartedAt time.Time  `json:"started_at"`
	Error     string     `json:"error,omitempty"`
	ExcelFile string     `json:"excel_file,omitempty"`
}

// ETA returns the estimated remaining seconds, extrapolated linearly from
// elapsed time and the current progress fraction. It is zero for terminal
// jobs and for jobs that have not reported progress yet.
func (j *Job) ETA(now time.Time) int {
	if j.Status != JobStatusInProgress || j.Progress <= 0 {
		return 0
	}
	elapsed := now.Sub(j.StartedAt).Seconds()
	fraction := float64(j.Progress) / 100
	return int(elapsed / fraction * (1 - fraction))
}
