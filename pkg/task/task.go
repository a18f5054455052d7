package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Request is a job submission sent to the run endpoint
type Request struct {
	// Task is the identifier of the job type, interpreted by the backend
	Task string `json:"task"`

	// UserID identifies the submitting user
	UserID string `json:"user_id"`

	// Params are job-specific parameters
	Params map[string]interface{} `json:"params"`
}

// SubmitResult is the immediate response to a job submission
type SubmitResult struct {
	// Status classifies the submission outcome
	Status Status `json:"status"`

	// Data is the result payload; for asynchronous tasks it carries the
	// context id
	Data json.RawMessage `json:"data,omitempty"`

	// Message is human-readable text, present especially on non-success
	// statuses
	Message string `json:"message,omitempty"`
}

// ContextID extracts the context id from an asynchronous submit result.
// A processing result without a context id is a protocol violation.
func (r *SubmitResult) ContextID() (string, error) {
	if r.Status != StatusProcessing {
		return "", fmt.Errorf("submit result is %q, not processing", r.Status)
	}
	var payload struct {
		ContextID string `json:"context_id"`
	}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &payload); err != nil {
			return "", fmt.Errorf("failed to decode submit result data: %w", err)
		}
	}
	if payload.ContextID == "" {
		return "", fmt.Errorf("processing response is missing context_id")
	}
	return payload.ContextID, nil
}

// Output extracts the embedded output of a synchronously finished submission
func (r *SubmitResult) Output() *Output {
	return &Output{
		Status:  r.Status,
		Data:    r.Data,
		Message: r.Message,
	}
}

// Context is the polled resource representing an in-flight or finished
// asynchronous job
type Context struct {
	// ContextID addresses this context on the polling endpoint
	ContextID string `json:"context_id"`

	// ProjectID identifies the owning project
	ProjectID string `json:"project_id"`

	// UserID identifies the owning user
	UserID string `json:"user_id"`

	// CreatedAt is the time the context was created
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt bounds how long the context remains queryable
	ExpiresAt time.Time `json:"expires_at"`

	// Data carries the job lifecycle state and, once terminal, the result
	Data ContextData `json:"data"`
}

// ContextData is the lifecycle portion of a polled context
type ContextData struct {
	// Status is the authoritative job lifecycle state
	Status ContextStatus `json:"status"`

	// Result is present once Status is terminal
	Result *Output `json:"result,omitempty"`
}

// Output is a task result as produced by the backend, embedded either in a
// synchronous submit result or in a completed context
type Output struct {
	// Status is the domain-level status of the result
	Status Status `json:"status"`

	// Data is the job-specific result payload
	Data json.RawMessage `json:"data,omitempty"`

	// Message is human-readable text about the result
	Message string `json:"message,omitempty"`

	// Timestamp is the backend-reported completion time
	Timestamp string `json:"timestamp,omitempty"`
}

// Errored checks whether the output signals a domain-level error. A context
// can report completed at the envelope level while the embedded output still
// carries an error status; callers must check both.
func (o *Output) Errored() bool {
	return o != nil && o.Status == StatusError
}

// Decode unmarshals the output payload into v
func (o *Output) Decode(v interface{}) error {
	if len(o.Data) == 0 {
		return fmt.Errorf("output has no data")
	}
	if err := json.Unmarshal(o.Data, v); err != nil {
		return fmt.Errorf("failed to decode output data: %w", err)
	}
	return nil
}

var titleCaser = cases.Title(language.English)

// DisplayName converts a task identifier into a label suitable for UI
// presentation, e.g. "scout_anchors" -> "Scout Anchors"
func DisplayName(taskName string) string {
	return titleCaser.String(strings.ReplaceAll(taskName, "_", " "))
}
