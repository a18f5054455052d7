package task

// Status represents the status reported by the platform in a submit result
// or an embedded task output
type Status string

const (
	// StatusSuccess indicates the task finished successfully
	StatusSuccess Status = "success"

	// StatusComplete indicates the task finished successfully (legacy alias
	// still emitted by some backend task families)
	StatusComplete Status = "complete"

	// StatusProcessing indicates the task was accepted and is running
	// asynchronously
	StatusProcessing Status = "processing"

	// StatusError indicates the task was rejected or failed
	StatusError Status = "error"

	// StatusSkipped indicates the backend declined to run the task
	StatusSkipped Status = "skipped"

	// StatusWarning indicates the backend declined the task with a warning
	StatusWarning Status = "warning"
)

// IsSuccess checks whether the status is one of the synchronous success
// statuses
func (s Status) IsSuccess() bool {
	return s == StatusSuccess || s == StatusComplete
}

// IsRejection checks whether the status is one of the submission rejection
// statuses
func (s Status) IsRejection() bool {
	return s == StatusError || s == StatusSkipped || s == StatusWarning
}

// ContextStatus represents the lifecycle state of a polled context
type ContextStatus string

const (
	// ContextProcessing indicates the job is still running
	ContextProcessing ContextStatus = "processing"

	// ContextCompleted indicates the job finished; the embedded result must
	// still be checked for a domain-level error
	ContextCompleted ContextStatus = "completed"

	// ContextFailed indicates the job failed
	ContextFailed ContextStatus = "failed"
)

// IsTerminal checks whether the context has reached a terminal state
func (s ContextStatus) IsTerminal() bool {
	return s == ContextCompleted || s == ContextFailed
}
