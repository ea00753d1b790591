package taskwheel

import (
	"sync"
	"sync/atomic"
)

// taskNode is one task's placement inside a wheel slot: an intrusive
// doubly-linked list entry, grounded on the hierarchical-timer-wheel idiom
// of keeping the linkage inside the element itself so removal-by-mark is
// O(1) instead of a slice scan.
type taskNode struct {
	task     *Task
	cylinder uint64
	slotIdx  int
	prev     *taskNode
	next     *taskNode

	// nextRecord allocates monotonic record ids for this task's firings.
	// Only the Ticker goroutine touches it (each firing happens while the
	// node is off the wheel, so there is no concurrent access).
	nextRecord RecordID

	// live mirrors this task's live-instance count from the Handle
	// Registry (which is otherwise only touched by the Event Handler
	// goroutine) so the Ticker can enforce the parallelism cap without
	// taking a dependency on the registry's internals.
	live atomic.Int32

	// removed is set once RemoveTask has processed this node, so a
	// reinsertTaskEvent already in flight from a firing that started
	// before the removal doesn't resurrect it on the wheel. Touched only
	// by the Event Handler goroutine, the sole mutator of wheel linkage.
	removed bool
}

// slot is an ordered collection of tasks sharing a wheel index.
type slot struct {
	mu   sync.Mutex
	head *taskNode
	tail *taskNode
}

func (s *slot) pushBack(n *taskNode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.prev, n.next = s.tail, nil
	if s.tail != nil {
		s.tail.next = n
	} else {
		s.head = n
	}
	s.tail = n
}

// removeLocked detaches n from whichever slot list it's currently linked into.
// Caller must hold the lock for the slot n actually belongs to.
func (s *slot) removeLocked(n *taskNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else if s.head == n {
		s.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else if s.tail == n {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// visit partitions the slot's contents into a fire set (cylinder == 0,
// removed from the slot) and a wait set (cylinder > 0, decremented and
// left in place), per the tick algorithm in §4.4.
func (s *slot) visit() []*taskNode {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fireSet []*taskNode
	n := s.head
	for n != nil {
		next := n.next
		if n.cylinder == 0 {
			s.removeLocked(n)
			fireSet = append(fireSet, n)
		} else {
			n.cylinder--
		}
		n = next
	}
	return fireSet
}

// wheel is a fixed ring of W slots. Slot entries are never deleted from
// the ring itself, only drained and refilled.
type wheel struct {
	slots []*slot
}

func newWheel(w int) *wheel {
	slots := make([]*slot, w)
	for i := range slots {
		slots[i] = &slot{}
	}
	return &wheel{slots: slots}
}

func (w *wheel) size() int { return len(w.slots) }

func (w *wheel) at(i uint64) *slot {
	return w.slots[int(i)%len(w.slots)]
}

// place inserts n into slot idx and records its slot index for later
// removal.
func (w *wheel) place(idx int, n *taskNode) {
	n.slotIdx = idx
	w.slots[idx].pushBack(n)
}

// removeFrom detaches n from the slot it was last placed in.
func (w *wheel) removeFrom(n *taskNode) {
	s := w.slots[n.slotIdx]
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(n)
}

// taskMarks is the per-task-id record of current slot placement (C1's
// Task Mark map), used to locate a task node for removal without scanning
// the wheel.
type taskMarks struct {
	mu sync.RWMutex
	m  map[TaskID]*taskNode
}

func newTaskMarks() *taskMarks {
	return &taskMarks{m: make(map[TaskID]*taskNode)}
}

func (tm *taskMarks) set(id TaskID, n *taskNode) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.m[id] = n
}

func (tm *taskMarks) get(id TaskID) (*taskNode, bool) {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	n, ok := tm.m[id]
	return n, ok
}

func (tm *taskMarks) delete(id TaskID) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	delete(tm.m, id)
}
