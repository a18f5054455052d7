package agents_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outreachlabs/agent-task-sdk-go/pkg/agents"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/runner"
	"github.com/outreachlabs/agent-task-sdk-go/pkg/task"
)

// captureClient records what was submitted and finishes every task at once
type captureClient struct {
	mu       sync.Mutex
	lastTask string
}

func (c *captureClient) Submit(ctx context.Context, req task.Request) (*task.SubmitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastTask = req.Task
	return &task.SubmitResult{
		Status: task.StatusSuccess,
		Data:   json.RawMessage(`{}`),
	}, nil
}

func (c *captureClient) Context(ctx context.Context, contextID string) (*task.Context, error) {
	return &task.Context{ContextID: contextID}, nil
}

func TestPresets(t *testing.T) {
	assert.Equal(t, "scout_anchors", agents.Scout.Task)
	assert.Equal(t, 5*time.Second, agents.Scout.Interval)
	assert.Equal(t, 120, agents.Scout.MaxAttempts)

	assert.Equal(t, "strategist_plan", agents.Strategist.Task)
	assert.Equal(t, 60, agents.Strategist.MaxAttempts)

	assert.Equal(t, "leadgen_actions", agents.LeadGen.Task)
	assert.Equal(t, 90, agents.LeadGen.MaxAttempts)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Scout Anchors", agents.Scout.DisplayName())
	assert.Equal(t, "Strategist Plan", agents.Strategist.DisplayName())
}

func TestDefinitionRun(t *testing.T) {
	t.Run("SubmitsPresetTask", func(t *testing.T) {
		client := &captureClient{}
		r := runner.NewRunner().WithDefaultClient(client)

		outcome, err := agents.Strategist.Run(context.Background(), r, &runner.RunOptions{TracingDisabled: true})
		require.NoError(t, err)
		assert.True(t, outcome.Succeeded())
		assert.Equal(t, "strategist_plan", client.lastTask)
	})

	t.Run("CallerOverridesWin", func(t *testing.T) {
		client := &captureClient{}
		r := runner.NewRunner().WithDefaultClient(client)

		opts := &runner.RunOptions{
			Interval:        time.Millisecond,
			MaxAttempts:     2,
			TracingDisabled: true,
		}
		_, err := agents.Scout.Run(context.Background(), r, opts)
		require.NoError(t, err)
		assert.Equal(t, time.Millisecond, opts.Interval)
		assert.Equal(t, 2, opts.MaxAttempts)
	})

	t.Run("PresetFillsOptions", func(t *testing.T) {
		client := &captureClient{}
		r := runner.NewRunner().WithDefaultClient(client)

		opts := &runner.RunOptions{TracingDisabled: true}
		_, err := agents.LeadGen.Run(context.Background(), r, opts)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, opts.Interval)
		assert.Equal(t, 90, opts.MaxAttempts)
	})
}

func TestWatch(t *testing.T) {
	client := &captureClient{}
	r := runner.NewRunner().WithDefaultClient(client)

	outcome, err := agents.Watch(context.Background(), r, "export_report", &runner.RunOptions{TracingDisabled: true})
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, "export_report", client.lastTask)
}
