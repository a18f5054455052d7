package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/outreachlabs/agent-task-sdk-go/pkg/api"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/result"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/task"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/tracing"
)

const (
	// DefaultInterval is the default delay between polls
	DefaultInterval = 5 * time.Second

	// DefaultMaxAttempts is the default maximum number of polls
	DefaultMaxAttempts = 60
)

// ErrSuperseded indicates the run was abandoned because its slot was reset
// or taken over by a newer invocation while a poll was pending
var ErrSuperseded = errors.New("run superseded by a newer invocation")

// TaskClient submits jobs and fetches their polled contexts. *api.Client
// implements it.
type TaskClient interface {
	Submit(ctx context.Context, req task.Request) (*task.SubmitResult, error)
	Context(ctx context.Context, contextID string) (*task.Context, error)
}

// Runner drives fire-and-poll task runs
type Runner struct {
	// Default configuration
	defaultClient      TaskClient
	defaultInterval    time.Duration
	defaultMaxAttempts int

	// Internal state
	mu sync.RWMutex
}

// NewRunner creates a new runner with default configuration
func NewRunner() *Runner {
	return &Runner{
		defaultInterval:    DefaultInterval,
		defaultMaxAttempts: DefaultMaxAttempts,
	}
}

// WithDefaultClient sets the default task client
func (r *Runner) WithDefaultClient(client TaskClient) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultClient = client
	return r
}

// WithDefaultInterval sets the default poll interval
func (r *Runner) WithDefaultInterval(interval time.Duration) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultInterval = interval
	return r
}

// WithDefaultMaxAttempts sets the default poll attempt budget
func (r *Runner) WithDefaultMaxAttempts(maxAttempts int) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultMaxAttempts = maxAttempts
	return r
}

// Run submits a task and drives it to a terminal outcome. Exactly one
// submission call is issued, followed by a bounded sequence of polls when the
// backend accepts the job asynchronously.
//
// Every protocol, transport, domain, or timeout failure is reported as a
// Failed outcome carrying a reason and a failure kind; the returned error is
// non-nil only when the run itself could not proceed (no client configured,
// caller context cancelled, slot superseded, hook error).
func (r *Runner) Run(ctx context.Context, taskName string, opts *RunOptions) (*result.Outcome, error) {
	// Apply default options if not provided
	if opts == nil {
		opts = &RunOptions{}
	}

	r.mu.RLock()
	client := opts.Client
	if client == nil {
		client = r.defaultClient
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = r.defaultInterval
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = r.defaultMaxAttempts
	}
	r.mu.RUnlock()

	if client == nil {
		return nil, errors.New("no task client available")
	}

	hooks := opts.Hooks
	if hooks == nil {
		hooks = &DefaultRunHooks{}
	}
	slot := opts.Slot
	if slot == nil {
		slot = result.NewSlot()
	}

	// Set up tracing if not disabled
	if !opts.TracingDisabled {
		tracer, err := tracing.TraceForTask(taskName)
		if err != nil {
			// Trace to the global tracer instead
			tracing.Error(ctx, taskName, fmt.Errorf("failed to create tracer: %w", err))
		} else {
			ctx = tracing.WithTracer(ctx, tracer)
			defer func() {
				_ = tracer.Flush()
				_ = tracer.Close()
			}()
		}
	}

	// Move to processing before the network call so observers see the run as
	// in flight during request latency
	tok := slot.Begin()
	if err := hooks.OnRunStart(ctx, taskName, opts.Params); err != nil {
		return nil, fmt.Errorf("run start hook error: %w", err)
	}
	if err := hooks.OnStateChange(ctx, taskName, slot.Get()); err != nil {
		return nil, fmt.Errorf("state change hook error: %w", err)
	}

	tracing.TaskSubmit(ctx, taskName, opts.Params)
	submitted, err := client.Submit(ctx, task.Request{
		Task:   taskName,
		UserID: opts.UserID,
		Params: opts.Params,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("context cancelled during submission: %w", ctx.Err())
		}
		tracing.Error(ctx, taskName, err)
		return r.finish(ctx, taskName, "", slot, tok, hooks,
			result.Failure(result.FailureTransport, fmt.Sprintf("task submission failed: %v", err)))
	}
	if err := hooks.OnSubmitted(ctx, taskName, submitted); err != nil {
		return nil, fmt.Errorf("submitted hook error: %w", err)
	}

	// Classify the immediate response
	switch {
	case submitted.Status.IsSuccess():
		// The call finished synchronously; the data payload is the result
		output := submitted.Output()
		tracing.TaskComplete(ctx, taskName, "", submitted.Message)
		return r.finish(ctx, taskName, "", slot, tok, hooks, result.Success(output))

	case submitted.Status == task.StatusProcessing:
		contextID, err := submitted.ContextID()
		if err != nil {
			// A processing response without a context id is a protocol
			// violation; never enter polling
			tracing.Error(ctx, taskName, err)
			reason := submitted.Message
			if reason == "" {
				reason = err.Error()
			}
			return r.finish(ctx, taskName, "", slot, tok, hooks,
				result.Failure(result.FailureRejected, reason))
		}
		tracing.TaskAccepted(ctx, taskName, contextID)
		return r.poll(ctx, taskName, contextID, client, slot, tok, hooks, interval, maxAttempts)

	default:
		reason := submitted.Message
		if reason == "" {
			reason = fmt.Sprintf("task rejected with status %q", submitted.Status)
		}
		return r.finish(ctx, taskName, "", slot, tok, hooks,
			result.Failure(result.FailureRejected, reason))
	}
}

// RunAsync starts the run in a goroutine and returns the slot observing it.
// Callers subscribe to the slot for state transitions and may Reset it to
// abandon the run.
func (r *Runner) RunAsync(ctx context.Context, taskName string, opts *RunOptions) (*result.Slot, error) {
	if opts == nil {
		opts = &RunOptions{}
	}

	r.mu.RLock()
	client := opts.Client
	if client == nil {
		client = r.defaultClient
	}
	r.mu.RUnlock()
	if client == nil {
		return nil, errors.New("no task client available")
	}

	if opts.Slot == nil {
		opts.Slot = result.NewSlot()
	}
	go func() {
		// Terminal outcomes land in the slot; the remaining errors are
		// cancellation and supersession, which leave the slot to its owner
		_, _ = r.Run(ctx, taskName, opts)
	}()
	return opts.Slot, nil
}

// poll repeatedly fetches the task context until it reaches a terminal state,
// a hard error, or the attempt budget runs out. Polls are strictly
// sequential: the next poll is only scheduled after the previous response
// has been observed.
func (r *Runner) poll(ctx context.Context, taskName, contextID string, client TaskClient, slot *result.Slot, tok result.Token, hooks RunHooks, interval time.Duration, maxAttempts int) (*result.Outcome, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled while polling: %w", ctx.Err())
		case <-time.After(interval):
		}

		// A reset or newer invocation suppresses any scheduled poll
		if !slot.Current(tok) {
			return nil, ErrSuperseded
		}

		polled, err := client.Context(ctx, contextID)
		if err != nil {
			if errors.Is(err, api.ErrContextNotFound) {
				return r.finish(ctx, taskName, contextID, slot, tok, hooks,
					result.Failure(result.FailureExpired, "context expired or not found"))
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("context cancelled while polling: %w", ctx.Err())
			}
			// Transport errors while polling are not swallowed as retries
			tracing.Error(ctx, taskName, err)
			return r.finish(ctx, taskName, contextID, slot, tok, hooks,
				result.Failure(result.FailureTransport, fmt.Sprintf("polling failed: %v", err)))
		}

		tracing.PollAttempt(ctx, taskName, contextID, attempt, string(polled.Data.Status))
		if err := hooks.OnPoll(ctx, taskName, attempt, polled); err != nil {
			return nil, fmt.Errorf("poll hook error: %w", err)
		}

		switch polled.Data.Status {
		case task.ContextProcessing:
			// The one state that schedules another iteration

		case task.ContextCompleted:
			output := polled.Data.Result
			// The envelope can be completed while the embedded result still
			// signals a domain-level error; both levels are checked
			if output.Errored() {
				reason := output.Message
				if reason == "" {
					reason = "task failed"
				}
				return r.finish(ctx, taskName, contextID, slot, tok, hooks,
					result.Failure(result.FailureDomain, reason))
			}
			tracing.TaskComplete(ctx, taskName, contextID, messageOf(output))
			return r.finish(ctx, taskName, contextID, slot, tok, hooks, result.Success(output))

		case task.ContextFailed:
			reason := "task failed"
			if polled.Data.Result != nil && polled.Data.Result.Message != "" {
				reason = polled.Data.Result.Message
			}
			return r.finish(ctx, taskName, contextID, slot, tok, hooks,
				result.Failure(result.FailureDomain, reason))

		default:
			return r.finish(ctx, taskName, contextID, slot, tok, hooks,
				result.Failure(result.FailureDomain, fmt.Sprintf("unexpected context status %q", polled.Data.Status)))
		}
	}

	// Budget exhausted while still processing; distinct from a backend
	// failure so callers can report the job may still be running
	return r.finish(ctx, taskName, contextID, slot, tok, hooks,
		result.Failure(result.FailureTimeout,
			fmt.Sprintf("task did not finish within %d attempts; it may still be running", maxAttempts)))
}

// finish records the terminal outcome. The slot write is dropped when the
// invocation has been superseded, but the outcome is still returned to the
// caller that owns this run.
func (r *Runner) finish(ctx context.Context, taskName, contextID string, slot *result.Slot, tok result.Token, hooks RunHooks, o result.Outcome) (*result.Outcome, error) {
	if o.Failed() {
		tracing.TaskFailed(ctx, taskName, contextID, string(o.Kind), o.Reason)
	}
	if slot.Set(tok, o) {
		if err := hooks.OnStateChange(ctx, taskName, o); err != nil {
			return nil, fmt.Errorf("state change hook error: %w", err)
		}
	}
	if err := hooks.OnRunEnd(ctx, taskName, o); err != nil {
		return nil, fmt.Errorf("run end hook error: %w", err)
	}
	return &o, nil
}

func messageOf(o *task.Output) string {
	if o == nil {
		return ""
	}
	return o.Message
}
