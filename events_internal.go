package taskwheel

import "time"

// The internal event table the Event Handler consumes. Each concrete type
// corresponds to one row of §4.5's event table, plus two Go-specific
// additions. instanceDoneEvent: the spec's Instance Handle lifecycle says a
// handle is "destroyed when the work body completes", which requires
// something to tell the Handle Registry that completion happened. The
// body constructors' onDone callback produces this event. reinsertTaskEvent
// is described at its declaration below.
type (
	addTaskEvent struct {
		task Task
	}

	removeTaskEvent struct {
		taskID TaskID
	}

	cancelTaskEvent struct {
		taskID   TaskID
		recordID RecordID
		// result, when non-nil, receives the outcome so CancelTask's
		// direct caller can observe ErrCancelNotFound synchronously, per
		// the spec's error table ("reported only to direct callers, not
		// logged"). Recycler-originated cancels leave this nil: a cancel
		// against an instance that already completed is a benign no-op.
		result chan<- error
	}

	cancelAllByTaskEvent struct {
		taskID TaskID
	}

	appendTaskHandleEvent struct {
		taskID TaskID
		handle InstanceHandle
	}

	instanceDoneEvent struct {
		taskID   TaskID
		recordID RecordID
		err      error
	}

	// reinsertTaskEvent carries a recurring task's re-placement back
	// through the Event Handler. The Ticker determines the next firing
	// time but must not call placeTask itself: wheel-slot migration
	// (wheel.place) and wheel-slot removal (wheel.removeFrom) would then
	// run on two different goroutines against the same taskNode's
	// prev/next/slotIdx fields with nothing serializing the two, a data
	// race that could also leave the node linked in a slot with no
	// TaskMark pointing at it, or vice versa. Routing re-insertion through
	// this event keeps every wheel mutation on the Event Handler
	// goroutine.
	reinsertTaskEvent struct {
		node     *taskNode
		execTime time.Time
	}

	stopTimerEvent struct{}
)
