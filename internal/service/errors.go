package service

import "fmt"

// FailureKind classifies unrecoverable pipeline failures. Translation and
// export problems are recovered in place and never carry one of these.
type FailureKind string

const (
	// FailureGeneration means the generation service produced no usable
	// content for the job.
	FailureGeneration FailureKind = "generation"

	// FailureConvergence means the fill loop exhausted its bound on
	// consecutive non-productive iterations without reaching the target.
	FailureConvergence FailureKind = "convergence"

	// FailureInternal covers unexpected faults recovered from the
	// pipeline goroutine.
	FailureInternal FailureKind = "internal"
)

// PipelineError is the explicit error result of a pipeline run. The
// orchestrator returns it instead of aborting through panics; only the
// goroutine wrapper converts it into terminal job state.
type PipelineError struct {
	Kind    FailureKind
	Message string
}

func (e *PipelineError) Error() string {
	return e.Message
}

func pipelineErrorf(kind FailureKind, format string, args ...interface{}) *PipelineError {
	return &PipelineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
