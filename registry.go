package taskwheel

// registry is the Handle Registry (C2): a mapping task id -> live instance
// handles, in registration order. It is touched only from the Event
// Handler goroutine, so it needs no internal locking of its own.
type registry struct {
	byTask map[TaskID][]InstanceHandle

	// earlyDone holds (task id, record id) pairs whose completion was
	// observed before their insertion arrived. A synchronous work body
	// runs to completion inside the Ticker's call to its factory, so its
	// instanceDoneEvent can reach the Event Handler before the
	// appendTaskHandleEvent for the same firing; without this, insert
	// would register a handle nothing will ever release again.
	earlyDone map[recordKey]struct{}
}

type recordKey struct {
	taskID   TaskID
	recordID RecordID
}

func newRegistry() *registry {
	return &registry{
		byTask:    make(map[TaskID][]InstanceHandle),
		earlyDone: make(map[recordKey]struct{}),
	}
}

// insert adds h to the registry and reports false, unless its completion
// was already observed, in which case it consumes that record and reports
// true so the caller skips treating the firing as still live.
func (r *registry) insert(h InstanceHandle) (alreadyDone bool) {
	key := recordKey{h.TaskID(), h.RecordID()}
	if _, ok := r.earlyDone[key]; ok {
		delete(r.earlyDone, key)
		return true
	}
	r.byTask[h.TaskID()] = append(r.byTask[h.TaskID()], h)
	return false
}

// cancelOne locates the handle matching (taskID, recordID) and invokes its
// cancellation capability. It does not remove the entry: removal happens
// when the body's completion is observed (release), keeping a single path
// for the registry invariant "present iff not yet known to have
// finished". InstanceHandle.Cancel itself is idempotent, so a cancel racing a
// completion is harmless.
func (r *registry) cancelOne(taskID TaskID, recordID RecordID) error {
	for _, h := range r.byTask[taskID] {
		if h.RecordID() == recordID {
			return h.Cancel()
		}
	}
	return ErrCancelNotFound
}

// cancelAll cancels every live instance of taskID without removing the
// task itself from the wheel.
func (r *registry) cancelAll(taskID TaskID) {
	for _, h := range r.byTask[taskID] {
		_ = h.Cancel()
	}
}

// release removes the entry for (taskID, recordID), called once its body
// reports completion. If no matching entry is present, the completion
// arrived before its insertion; release records that fact so the later
// insert is a no-op instead of registering a handle that will never be
// released again.
func (r *registry) release(taskID TaskID, recordID RecordID) {
	handles := r.byTask[taskID]
	for i, h := range handles {
		if h.RecordID() == recordID {
			r.byTask[taskID] = append(handles[:i], handles[i+1:]...)
			if len(r.byTask[taskID]) == 0 {
				delete(r.byTask, taskID)
			}
			return
		}
	}
	r.earlyDone[recordKey{taskID, recordID}] = struct{}{}
}
