package taskwheel

import (
	"context"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// Event type constants, following the CloudEvents reverse-domain naming
// convention.
const (
	EventTypeTaskAdded      = "com.taskwheel.task.added"
	EventTypeTaskRemoved    = "com.taskwheel.task.removed"
	EventTypeTaskExhausted  = "com.taskwheel.task.exhausted"
	EventTypeInstanceFired  = "com.taskwheel.instance.fired"
	EventTypeInstanceDone   = "com.taskwheel.instance.done"
	EventTypeInstanceFailed = "com.taskwheel.instance.failed"
	EventTypeInstanceCancel = "com.taskwheel.instance.cancelled"
	EventTypeSchedulerStart = "com.taskwheel.scheduler.started"
	EventTypeSchedulerStop  = "com.taskwheel.scheduler.stopped"
)

// eventSource is the CloudEvents source attribute stamped on every emitted
// event. It identifies the scheduler instance, not a particular task.
const eventSource = "github.com/taskwheel/taskwheel"

// EventEmitter is the optional observer hook a Scheduler forwards lifecycle
// events to. A nil emitter means events are silently dropped.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event cloudevents.Event) error
}

// newCloudEvent builds a CloudEvents 1.0 event with a generated id and the
// package's fixed source.
func newCloudEvent(eventType string, data any) cloudevents.Event {
	event := cloudevents.NewEvent()
	event.SetID(generateEventID())
	event.SetSource(eventSource)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)
	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}
	return event
}

// generateEventID mints a time-ordered UUIDv7, falling back to v4 if the
// v7 generator ever errors (it only does so on an exhausted entropy pool).
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// emitEvent is a nil-safe helper: every internal call site uses it instead
// of checking s.eventEmitter itself.
func (s *Scheduler) emitEvent(ctx context.Context, eventType string, data any) {
	if s.eventEmitter == nil {
		return
	}
	evt := newCloudEvent(eventType, data)
	if err := s.eventEmitter.EmitEvent(ctx, evt); err != nil {
		s.logger.Debug("event emission failed", "type", eventType, "error", err)
	}
}
