package taskwheel

import (
	"context"
	"errors"
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloudEventStampsTypeSourceAndID(t *testing.T) {
	evt := newCloudEvent(EventTypeTaskAdded, map[string]any{"task_id": uint64(1)})

	assert.Equal(t, EventTypeTaskAdded, evt.Type())
	assert.Equal(t, eventSource, evt.Source())
	assert.NotEmpty(t, evt.ID())
	assert.Equal(t, cloudevents.VersionV1, evt.SpecVersion())
}

func TestNewCloudEventOmitsDataWhenNil(t *testing.T) {
	evt := newCloudEvent(EventTypeSchedulerStart, nil)
	assert.Empty(t, evt.Data())
}

func TestGenerateEventIDIsUnique(t *testing.T) {
	a := generateEventID()
	b := generateEventID()
	assert.NotEqual(t, a, b)
}

type captureEmitter struct {
	events []cloudevents.Event
	err    error
}

func (e *captureEmitter) EmitEvent(ctx context.Context, event cloudevents.Event) error {
	e.events = append(e.events, event)
	return e.err
}

func TestSchedulerEmitEventIsNilSafe(t *testing.T) {
	s := &Scheduler{logger: nopLogger{}}
	// No emitter configured: must not panic.
	s.emitEvent(context.Background(), EventTypeTaskAdded, nil)
}

func TestSchedulerEmitEventForwardsToEmitter(t *testing.T) {
	emitter := &captureEmitter{}
	s := &Scheduler{logger: nopLogger{}, eventEmitter: emitter}

	s.emitEvent(context.Background(), EventTypeTaskRemoved, map[string]any{"task_id": uint64(5)})

	require.Len(t, emitter.events, 1)
	assert.Equal(t, EventTypeTaskRemoved, emitter.events[0].Type())
}

func TestSchedulerEmitEventSwallowsEmitterError(t *testing.T) {
	emitter := &captureEmitter{err: errors.New("boom")}
	s := &Scheduler{logger: nopLogger{}, eventEmitter: emitter}

	assert.NotPanics(t, func() {
		s.emitEvent(context.Background(), EventTypeTaskAdded, nil)
	})
}
