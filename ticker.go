package taskwheel

import (
	"context"
	"time"
)

// wheelTicker drives the wheel forward one slot per tick (C4). It owns no
// lock of its own: slot visitation locks only the slot being visited, and
// the parallelism cap is enforced via each node's atomic live counter
// rather than a direct registry read.
type wheelTicker struct {
	h           *header
	queue       *eventQueue
	interval    time.Duration
	stopCh      <-chan struct{}
	logger      Logger
	onExhausted func(TaskID)
}

func newWheelTicker(h *header, queue *eventQueue, interval time.Duration, stopCh <-chan struct{}, logger Logger, onExhausted func(TaskID)) *wheelTicker {
	return &wheelTicker{h: h, queue: queue, interval: interval, stopCh: stopCh, logger: logger, onExhausted: onExhausted}
}

func (t *wheelTicker) run() {
	clock := time.NewTicker(t.interval)
	defer clock.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case now := <-clock.C:
			t.tick(now)
		}
	}
}

func (t *wheelTicker) tick(now time.Time) {
	idx := t.h.advance(t.h.wheel.size(), now)
	s := t.h.wheel.at(idx)
	fireSet := s.visit()
	for _, node := range fireSet {
		t.fire(node, now)
	}
}

// fire invokes a task's work body (unless the parallelism cap is already
// saturated) and, if the task is still recurring, hands re-insertion off
// to the Event Handler.
func (t *wheelTicker) fire(node *taskNode, now time.Time) {
	task := node.task

	if int(node.live.Load()) < int(task.MaxParallel) {
		recordID := node.nextRecord
		node.nextRecord++

		var deadline time.Time
		hasDeadline := task.MaxRunningTime > 0
		if hasDeadline {
			deadline = now.Add(task.MaxRunningTime)
		}

		handle := &instanceHandle{
			taskID:      task.ID,
			recordID:    recordID,
			deadline:    deadline,
			hasDeadline: hasDeadline,
		}

		// live is incremented before the factory runs, not after, so that
		// a synchronous body — which can run to completion and report its
		// own onDone before this call even returns — is already accounted
		// for live when that completion is processed.
		node.live.Add(1)
		body, err := task.factory(context.Background(), func(err error) {
			_ = t.queue.push(instanceDoneEvent{taskID: task.ID, recordID: recordID, err: err})
		})
		if err != nil {
			node.live.Add(-1)
			t.logger.Error("work body failed to start", "taskID", task.ID, "recordID", recordID, "error", err)
		} else {
			handle.body = body
			_ = t.queue.push(appendTaskHandleEvent{taskID: task.ID, handle: handle})
		}
	}

	nextExec, ok := task.Schedule.Next(now)
	if !ok {
		t.h.marks.delete(task.ID)
		if t.onExhausted != nil {
			t.onExhausted(task.ID)
		}
		return
	}
	// placeTask is not called directly here: it writes node.slotIdx/
	// prev/next, and a concurrent RemoveTask reads node.slotIdx via
	// wheel.removeFrom on the Event Handler goroutine with nothing
	// serializing the two. Routing re-insertion through that same
	// goroutine via an event keeps all wheel-linkage mutation single
	// threaded.
	_ = t.queue.push(reinsertTaskEvent{node: node, execTime: nextExec})
}
