package runner

import (
	"context"

	"github.com/outreachlabs/agent-task-sdk-go/pkg/result"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/task"
)

// RunHooks defines lifecycle hooks for a run
type RunHooks interface {
	// OnRunStart is called when the run starts, before submission
	OnRunStart(ctx context.Context, taskName string, params map[string]interface{}) error

	// OnSubmitted is called after the submission response has been classified
	OnSubmitted(ctx context.Context, taskName string, submitted *task.SubmitResult) error

	// OnPoll is called after each poll response has been observed
	OnPoll(ctx context.Context, taskName string, attempt int, polled *task.Context) error

	// OnStateChange is called on every accepted outcome transition
	OnStateChange(ctx context.Context, taskName string, outcome result.Outcome) error

	// OnRunEnd is called when the run reaches a terminal outcome
	OnRunEnd(ctx context.Context, taskName string, outcome result.Outcome) error
}

// DefaultRunHooks provides a default implementation of RunHooks
type DefaultRunHooks struct{}

// OnRunStart is called when the run starts
func (h *DefaultRunHooks) OnRunStart(ctx context.Context, taskName string, params map[string]interface{}) error {
	return nil
}

// OnSubmitted is called after the submission response has been classified
func (h *DefaultRunHooks) OnSubmitted(ctx context.Context, taskName string, submitted *task.SubmitResult) error {
	return nil
}

// OnPoll is called after each poll response has been observed
func (h *DefaultRunHooks) OnPoll(ctx context.Context, taskName string, attempt int, polled *task.Context) error {
	return nil
}

// OnStateChange is called on every accepted outcome transition
func (h *DefaultRunHooks) OnStateChange(ctx context.Context, taskName string, outcome result.Outcome) error {
	return nil
}

// OnRunEnd is called when the run reaches a terminal outcome
func (h *DefaultRunHooks) OnRunEnd(ctx context.Context, taskName string, outcome result.Outcome) error {
	return nil
}
