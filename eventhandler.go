package taskwheel

import (
	"context"
)

// eventHandler is the Event Handler (C5): the single consumer of the
// event queue, and the only goroutine allowed to mutate the wheel and the
// Handle Registry.
type eventHandler struct {
	h        *header
	reg      *registry
	queue    *eventQueue
	recycler *recycler
	logger   Logger
	emit     func(ctx context.Context, eventType string, data any)
}

func newEventHandler(h *header, reg *registry, queue *eventQueue, rc *recycler, logger Logger, emit func(context.Context, string, any)) *eventHandler {
	return &eventHandler{h: h, reg: reg, queue: queue, recycler: rc, logger: logger, emit: emit}
}

func (e *eventHandler) run() {
	for {
		item, ok := e.queue.pop()
		if !ok {
			return
		}
		if e.dispatch(item) {
			return
		}
	}
}

// dispatch handles one event and reports whether the handler should stop.
func (e *eventHandler) dispatch(item any) (stop bool) {
	switch evt := item.(type) {
	case addTaskEvent:
		e.handleAddTask(evt)
	case removeTaskEvent:
		e.handleRemoveTask(evt)
	case cancelTaskEvent:
		e.handleCancelTask(evt)
	case cancelAllByTaskEvent:
		e.reg.cancelAll(evt.taskID)
	case appendTaskHandleEvent:
		e.handleAppendTaskHandle(evt)
	case instanceDoneEvent:
		e.handleInstanceDone(evt)
	case reinsertTaskEvent:
		e.handleReinsertTask(evt)
	case stopTimerEvent:
		e.h.stop()
		return true
	default:
		e.logger.Warn("event handler received unknown event type")
	}
	return false
}

func (e *eventHandler) handleAddTask(evt addTaskEvent) {
	task := evt.task
	now := e.h.currentTime()
	nextExec, ok := task.Schedule.Next(now)
	if !ok {
		e.logger.Warn("task has no firings to schedule", "taskID", task.ID)
		return
	}

	taskCopy := task
	node := &taskNode{task: &taskCopy}
	placeTask(e.h, node, nextExec)

	e.emit(context.Background(), EventTypeTaskAdded, map[string]any{"task_id": uint64(task.ID)})
}

func (e *eventHandler) handleRemoveTask(evt removeTaskEvent) {
	node, ok := e.h.marks.get(evt.taskID)
	if !ok {
		return // idempotent on unknown id
	}
	// Marked before unlinking so a reinsertTaskEvent already queued for
	// this node (pushed by a firing that started before this removal) is
	// a no-op instead of resurrecting the task.
	node.removed = true
	e.h.wheel.removeFrom(node)
	e.h.marks.delete(evt.taskID)
	e.emit(context.Background(), EventTypeTaskRemoved, map[string]any{"task_id": uint64(evt.taskID)})
}

// handleReinsertTask re-places a recurring task's node after it fires.
// Skipped if the node was removed in the meantime: RemoveTask and
// re-insertion both run on this goroutine, so whichever event arrives
// first wins deterministically instead of racing.
func (e *eventHandler) handleReinsertTask(evt reinsertTaskEvent) {
	if evt.node.removed {
		return
	}
	placeTask(e.h, evt.node, evt.execTime)
}

func (e *eventHandler) handleCancelTask(evt cancelTaskEvent) {
	err := e.reg.cancelOne(evt.taskID, evt.recordID)
	if evt.result != nil {
		evt.result <- err
	}
	if err != nil {
		return
	}
	e.emit(context.Background(), EventTypeInstanceCancel, map[string]any{
		"task_id": uint64(evt.taskID), "record_id": uint64(evt.recordID),
	})
}

func (e *eventHandler) handleAppendTaskHandle(evt appendTaskHandleEvent) {
	if e.reg.insert(evt.handle) {
		// A synchronous work body ran to completion and reported onDone
		// before this event was processed (instanceDoneEvent overtook
		// appendTaskHandleEvent in the queue); insert recognized that and
		// is now a no-op, so there's nothing left to track or emit.
		return
	}
	e.emit(context.Background(), EventTypeInstanceFired, map[string]any{
		"task_id": uint64(evt.taskID),
	})

	if deadline, ok := evt.handle.Deadline(); ok {
		select {
		case e.recycler.ingest <- recycleUnit{deadline: deadline, taskID: evt.taskID, recordID: evt.handle.RecordID()}:
		default:
			// The recycler's ingest channel has a generous buffer; if it's
			// ever full the deadline is effectively unenforceable for this
			// instance. Log rather than block the Event Handler.
			e.logger.Warn("recycler ingest full, dropping deadline", "taskID", evt.taskID, "recordID", evt.handle.RecordID())
		}
	}
}

func (e *eventHandler) handleInstanceDone(evt instanceDoneEvent) {
	// The node's atomic live counter is decremented via the task mark so
	// the Ticker's parallelism check reflects completion immediately.
	if node, ok := e.h.marks.get(evt.taskID); ok {
		node.live.Add(-1)
	}

	e.reg.release(evt.taskID, evt.recordID)

	if evt.err != nil {
		e.emit(context.Background(), EventTypeInstanceFailed, map[string]any{
			"task_id": uint64(evt.taskID), "record_id": uint64(evt.recordID), "error": evt.err.Error(),
		})
	} else {
		e.emit(context.Background(), EventTypeInstanceDone, map[string]any{
			"task_id": uint64(evt.taskID), "record_id": uint64(evt.recordID),
		})
	}
}
