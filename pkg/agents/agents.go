// Package agents carries the platform's agent presets. Each preset
// reproduces one of the console's original call sites (scout runner,
// strategist runner, lead-gen actions, the generic watch hook), all driven
// through the one runner instead of a per-caller poll loop.
package agents

import (
	"context"
	"time"

	"github.com/outreachlabs/agent-task-sdk-go/pkg/result"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/runner"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/task"
)

// Definition is a named agent task with its polling configuration
type Definition struct {
	// Task is the backend task identifier
	Task string

	// Interval is the delay between polls
	Interval time.Duration

	// MaxAttempts bounds the number of polls
	MaxAttempts int
}

// Platform agent presets
var (
	// Scout discovers anchor opportunities for a campaign
	Scout = Definition{Task: "scout_anchors", Interval: 5 * time.Second, MaxAttempts: 120}

	// Strategist builds a campaign plan
	Strategist = Definition{Task: "strategist_plan", Interval: 5 * time.Second, MaxAttempts: 60}

	// LeadGen generates lead actions
	LeadGen = Definition{Task: "leadgen_actions", Interval: 5 * time.Second, MaxAttempts: 90}
)

// DisplayName returns a label for the agent suitable for UI presentation
func (d Definition) DisplayName() string {
	return task.DisplayName(d.Task)
}

// Run drives the agent task to a terminal outcome through the runner,
// overlaying the preset's polling configuration onto the options
func (d Definition) Run(ctx context.Context, r *runner.Runner, opts *runner.RunOptions) (*result.Outcome, error) {
	if opts == nil {
		opts = &runner.RunOptions{}
	}
	if opts.Interval <= 0 {
		opts.Interval = d.Interval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = d.MaxAttempts
	}
	return r.Run(ctx, d.Task, opts)
}

// RunAsync starts the agent task in the background and returns the slot
// observing it
func (d Definition) RunAsync(ctx context.Context, r *runner.Runner, opts *runner.RunOptions) (*result.Slot, error) {
	if opts == nil {
		opts = &runner.RunOptions{}
	}
	if opts.Interval <= 0 {
		opts.Interval = d.Interval
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = d.MaxAttempts
	}
	return r.RunAsync(ctx, d.Task, opts)
}

// Watch runs an arbitrary task with the generic hook's tighter polling
// configuration (2s interval, 60 attempts)
func Watch(ctx context.Context, r *runner.Runner, taskName string, opts *runner.RunOptions) (*result.Outcome, error) {
	d := Definition{Task: taskName, Interval: 2 * time.Second, MaxAttempts: 60}
	return d.Run(ctx, r, opts)
}
