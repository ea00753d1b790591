package taskwheel

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/taskwheel/taskwheel/pipeline"
)

// TaskID uniquely identifies a Task.
type TaskID uint64

// RecordID uniquely identifies one firing (Instance) of a Task, monotonic
// per task id.
type RecordID uint64

// InstanceHandle represents one executing firing of a Task. It is owned by
// the Handle Registry after creation and destroyed on completion or
// cancellation.
type InstanceHandle interface {
	TaskID() TaskID
	RecordID() RecordID
	Deadline() (time.Time, bool)
	// Cancel requests best-effort termination. It is idempotent: calling
	// it more than once has no additional effect.
	Cancel() error
}

// bodyHandle is the narrow capability the three concrete body shapes
// (sync, async, pipeline) implement. instanceHandle wraps one of these
// together with the task/record ids and deadline the Ticker assigns at
// firing time, so the body constructors themselves stay ignorant of those
// identifiers.
type bodyHandle interface {
	Cancel() error
}

// workBodyFactory produces one bodyHandle per firing. onDone is invoked
// exactly once, when the underlying work finishes for any reason (success,
// error, panic, or cancellation), so the Event Handler can release the
// instance.
type workBodyFactory func(ctx context.Context, onDone func(err error)) (bodyHandle, error)

type instanceHandle struct {
	taskID      TaskID
	recordID    RecordID
	deadline    time.Time
	hasDeadline bool
	body        bodyHandle
	canceled    atomic.Bool
}

func (h *instanceHandle) TaskID() TaskID     { return h.taskID }
func (h *instanceHandle) RecordID() RecordID { return h.recordID }

func (h *instanceHandle) Deadline() (time.Time, bool) {
	return h.deadline, h.hasDeadline
}

func (h *instanceHandle) Cancel() error {
	if !h.canceled.CompareAndSwap(false, true) {
		return nil
	}
	return h.body.Cancel()
}

// syncBody represents a synchronous closure that has already run to
// completion by the time the factory returns. It carries no cancellation
// capability: there is nothing left to cancel.
type syncBody struct{}

func (*syncBody) Cancel() error { return nil }

// NewSyncBody adapts a plain synchronous closure into a workBodyFactory.
// The closure runs on the caller's goroutine (the Ticker) before the
// factory returns. A panic inside fn is recovered here rather than left to
// unwind into the Ticker loop, so one bad closure can't drop its task off
// the wheel by skipping the re-insertion that follows firing.
func NewSyncBody(fn func(context.Context) error) workBodyFactory {
	return func(ctx context.Context, onDone func(err error)) (bodyHandle, error) {
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("taskwheel: sync body panic: %v", r)
				}
			}()
			return fn(ctx)
		}()
		onDone(err)
		return &syncBody{}, nil
	}
}

// asyncBody represents a spawned goroutine whose cancellation capability is
// a context.CancelFunc.
type asyncBody struct {
	cancel context.CancelFunc
}

func (b *asyncBody) Cancel() error {
	b.cancel()
	return nil
}

// NewAsyncBody adapts an asynchronous closure, spawned onto its own
// goroutine with a cancelable context, into a workBodyFactory. A panic
// inside fn is recovered and reported through onDone instead of
// terminating the scheduler.
func NewAsyncBody(fn func(context.Context) error) workBodyFactory {
	return func(ctx context.Context, onDone func(err error)) (bodyHandle, error) {
		runCtx, cancel := context.WithCancel(ctx)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					onDone(fmt.Errorf("taskwheel: async body panic: %v", r))
				}
			}()
			onDone(fn(runCtx))
		}()
		return &asyncBody{cancel: cancel}, nil
	}
}

// pipelineBody wraps a spawned process pipeline.
type pipelineBody struct {
	instance *pipeline.Instance
}

func (b *pipelineBody) Cancel() error {
	return b.instance.Cancel()
}

// newPipelineFactory adapts a parsed pipeline into a workBodyFactory. The
// pipeline is parsed once, at task-build time (so a malformed expression
// surfaces as a submission-time error rather than only appearing the first
// time the task fires), and spawned fresh on every firing.
func newPipelineFactory(p *pipeline.Pipeline) workBodyFactory {
	return func(ctx context.Context, onDone func(err error)) (bodyHandle, error) {
		inst, err := p.Spawn(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrSpawnFailure, err)
		}
		go func() {
			onDone(inst.Wait())
		}()
		return &pipelineBody{instance: inst}, nil
	}
}
