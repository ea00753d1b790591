package taskwheel

import "time"

// placeTask computes the target slot and cylinder count for execTime and
// inserts the node into the wheel, recording its TaskMark. This is the one
// re-insertion routine shared by handleAddTask (first placement) and
// handleReinsertTask (re-insertion of a recurring task after it fires) —
// both need the identical formula from §4.4, so both call through here
// instead of duplicating it.
//
// delta and timeSeed are measured in slots, one per second, matching the
// spec's fixed one-tick-per-second wheel. Config.TickInterval is exposed
// as a general knob, but this formula does not scale with it: running the
// wheel at a non-1s tick interval warps schedule timing proportionally,
// since a recurrence expressed in wall-clock seconds would then advance a
// different number of slots per real second than intended.
func placeTask(h *header, node *taskNode, execTime time.Time) {
	w := h.wheel.size()
	now := h.currentTime()
	secondHand := h.currentSlot()

	// delta is seconds until execTime. If execTime has already passed
	// (the scheduler fell behind), fall back to a per-task spread instead
	// of piling every overdue task into the very next tick.
	delta := execTime.Unix() - now.Unix()
	if delta < 0 {
		delta = int64(uint64(node.task.ID) % uint64(w))
	}

	timeSeed := uint64(delta) + secondHand
	targetSlot := int(timeSeed % uint64(w))
	node.cylinder = timeSeed / uint64(w)

	h.wheel.place(targetSlot, node)
	h.marks.set(node.task.ID, node)
}
