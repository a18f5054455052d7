package runner

import (
	"time"

	"github.com/outreachlabs/agent-task-sdk-go/pkg/result"
)

// RunOptions configures a run
type RunOptions struct {
	// Params are job-specific parameters passed to the backend
	Params map[string]interface{}

	// UserID identifies the submitting user
	UserID string

	// Interval is the delay between polls; defaults to DefaultInterval
	Interval time.Duration

	// MaxAttempts bounds the number of polls; defaults to DefaultMaxAttempts.
	// Together with Interval it forms the wall-clock timeout budget.
	MaxAttempts int

	// Client overrides the runner's default task client
	Client TaskClient

	// Slot is the outcome slot the run writes to; a private slot is created
	// when none is provided
	Slot *result.Slot

	// Hooks are lifecycle hooks for the run
	Hooks RunHooks

	// TracingDisabled indicates whether tracing is disabled
	TracingDisabled bool
}
