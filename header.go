package taskwheel

import (
	"sync/atomic"
	"time"
)

// header is the block of concurrent state every other component reads or
// advances. It carries no strong references back to its owners, so no
// reference cycle exists between the Scheduler and its subsystems.
type header struct {
	wheel  *wheel
	marks  *taskMarks
	// secondHand is the wheel's current slot index, 0..wheelSlots-1.
	secondHand atomic.Uint64
	// globalTime is the unix-seconds timestamp captured at the last tick.
	// Only the Ticker writes it.
	globalTime atomic.Int64
	// motivation clears to signal every loop (Ticker, Event Handler,
	// Recycler) to terminate.
	motivation atomic.Bool
}

func newHeader(slots int) *header {
	h := &header{
		wheel: newWheel(slots),
		marks: newTaskMarks(),
	}
	h.globalTime.Store(time.Now().Unix())
	h.motivation.Store(true)
	return h
}

// currentSlot returns the wheel's current second-hand position.
func (h *header) currentSlot() uint64 {
	return h.secondHand.Load()
}

// currentTime returns the timestamp captured at the last tick.
func (h *header) currentTime() time.Time {
	return time.Unix(h.globalTime.Load(), 0)
}

// active reports whether the scheduler's loops should keep running.
func (h *header) active() bool {
	return h.motivation.Load()
}

// stop clears motivation, signalling every loop to exit at its next
// suspension point.
func (h *header) stop() {
	h.motivation.Store(false)
}

// advance is called once per tick by the Ticker: it bumps the second hand
// modulo the wheel size and refreshes the captured wall-clock time,
// returning the new second-hand position.
func (h *header) advance(slots int, now time.Time) uint64 {
	next := (h.secondHand.Load() + 1) % uint64(slots)
	h.secondHand.Store(next)
	h.globalTime.Store(now.Unix())
	return next
}
