package tracing

import (
	"context"
	"time"
)

// TaskSubmit records a task submission event
func TaskSubmit(ctx context.Context, taskName string, params map[string]interface{}) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeTaskSubmit,
		TaskName:  taskName,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"params": params,
		},
	})
}

// TaskAccepted records the backend accepting a task for asynchronous execution
func TaskAccepted(ctx context.Context, taskName string, contextID string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeTaskAccepted,
		TaskName:  taskName,
		ContextID: contextID,
		Timestamp: time.Now(),
	})
}

// PollAttempt records one poll of a task context
func PollAttempt(ctx context.Context, taskName string, contextID string, attempt int, status string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypePollAttempt,
		TaskName:  taskName,
		ContextID: contextID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"attempt": attempt,
			"status":  status,
		},
	})
}

// TaskComplete records a task finishing with a usable result
func TaskComplete(ctx context.Context, taskName string, contextID string, message string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeTaskComplete,
		TaskName:  taskName,
		ContextID: contextID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"message": message,
		},
	})
}

// TaskFailed records a task finishing without a usable result
func TaskFailed(ctx context.Context, taskName string, contextID string, kind string, reason string) {
	RecordEventContext(ctx, Event{
		Type:      EventTypeTaskFailed,
		TaskName:  taskName,
		ContextID: contextID,
		Timestamp: time.Now(),
		Details: map[string]interface{}{
			"kind":   kind,
			"reason": reason,
		},
	})
}

// Error records a transport or client error
func Error(ctx context.Context, taskName string, err error) {
	event := Event{
		Type:      EventTypeError,
		TaskName:  taskName,
		Timestamp: time.Now(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	RecordEventContext(ctx, event)
}
