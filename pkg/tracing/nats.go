package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the default NATS subject for task lifecycle events
const DefaultSubject = "agents.task.events"

// NATSTracer publishes trace events to a NATS subject so dashboards and
// other services can observe job progress. The connection is owned by the
// caller; Close does not close it.
type NATSTracer struct {
	nc      *nats.Conn
	subject string
}

// NewNATSTracer creates a tracer publishing to the default subject
func NewNATSTracer(nc *nats.Conn) *NATSTracer {
	return &NATSTracer{
		nc:      nc,
		subject: DefaultSubject,
	}
}

// WithSubject sets the subject events are published to
func (t *NATSTracer) WithSubject(subject string) *NATSTracer {
	t.subject = subject
	return t
}

// RecordEvent publishes an event to the subject
func (t *NATSTracer) RecordEvent(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal event: %v\n", err)
		return
	}

	if err := t.nc.Publish(t.subject, data); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to publish event: %v\n", err)
	}
}

// Flush flushes the connection's outgoing buffer
func (t *NATSTracer) Flush() error {
	return t.nc.Flush()
}

// Close is a no-op; the connection belongs to the caller
func (t *NATSTracer) Close() error {
	return nil
}
