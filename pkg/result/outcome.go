package result

import (
	"github.com/outreachlabs/agent-task-sdk-go/pkg/task"
)

// State represents the client-visible state of a task run
type State string

const (
	// StateIdle indicates no run is in flight
	StateIdle State = "idle"

	// StateProcessing indicates a run is in flight
	StateProcessing State = "processing"

	// StateSucceeded indicates the run finished with a usable result
	StateSucceeded State = "succeeded"

	// StateFailed indicates the run finished without a usable result
	StateFailed State = "failed"
)

// FailureKind classifies a failed outcome
type FailureKind string

const (
	// FailureRejected indicates the backend declined the job at submission
	FailureRejected FailureKind = "rejected"

	// FailureTransport indicates a network or HTTP failure
	FailureTransport FailureKind = "transport"

	// FailureDomain indicates the job ran and reported failure
	FailureDomain FailureKind = "domain"

	// FailureExpired indicates the polled context no longer exists
	FailureExpired FailureKind = "expired"

	// FailureTimeout indicates the attempt budget was exhausted while the
	// job was still processing; the job may still be running server-side
	FailureTimeout FailureKind = "timeout"
)

// Outcome is the client-visible result of a whole task run. Each invocation
// produces a fresh outcome value; outcomes are never shared across runs.
type Outcome struct {
	// State is the current state of the run
	State State

	// Result is the task output, set once the run succeeds
	Result *task.Output

	// Reason is a human-readable failure reason, set once the run fails
	Reason string

	// Kind classifies the failure, set once the run fails
	Kind FailureKind
}

// Idle creates an idle outcome
func Idle() Outcome {
	return Outcome{State: StateIdle}
}

// Processing creates an in-flight outcome
func Processing() Outcome {
	return Outcome{State: StateProcessing}
}

// Success creates a succeeded outcome carrying the task output
func Success(output *task.Output) Outcome {
	return Outcome{State: StateSucceeded, Result: output}
}

// Failure creates a failed outcome with a classification and reason
func Failure(kind FailureKind, reason string) Outcome {
	return Outcome{State: StateFailed, Kind: kind, Reason: reason}
}

// IsTerminal checks whether the outcome is terminal
func (o Outcome) IsTerminal() bool {
	return o.State == StateSucceeded || o.State == StateFailed
}

// Succeeded checks whether the run finished with a usable result
func (o Outcome) Succeeded() bool {
	return o.State == StateSucceeded
}

// Failed checks whether the run finished without a usable result
func (o Outcome) Failed() bool {
	return o.State == StateFailed
}

// TimedOut checks whether the run failed by exhausting its attempt budget
func (o Outcome) TimedOut() bool {
	return o.State == StateFailed && o.Kind == FailureTimeout
}
