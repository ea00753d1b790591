package taskwheel

import (
	"container/heap"
	"time"
)

// recycleUnit is one pending deadline, owned by the recycler between
// observation and dispatch.
type recycleUnit struct {
	deadline time.Time
	taskID   TaskID
	recordID RecordID
}

// recycleHeap is a container/heap min-heap ordered by deadline.
type recycleHeap []recycleUnit

func (h recycleHeap) Len() int            { return len(h) }
func (h recycleHeap) Less(i, j int) bool  { return h[i].deadline.Before(h[j].deadline) }
func (h recycleHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *recycleHeap) Push(x any)         { *h = append(*h, x.(recycleUnit)) }
func (h *recycleHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// recycler is the Deadline Recycler (C3): a single-consumer worker that
// ingests recycle units and sweeps expired ones into cancel events. The
// ingestor and sweeper are composed as a single goroutine selecting
// between the ingest channel and a deadline timer — Go's select is a
// direct expression of the spec's "first-of" composition, so there is no
// need for two separate goroutines contending over the heap.
type recycler struct {
	ingest chan recycleUnit
	queue  *eventQueue
	stopCh <-chan struct{}
	heap   recycleHeap
}

func newRecycler(queue *eventQueue, stopCh <-chan struct{}) *recycler {
	return &recycler{
		ingest: make(chan recycleUnit, 64),
		queue:  queue,
		stopCh: stopCh,
	}
}

func (rc *recycler) run() {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var timerC <-chan time.Time
		if len(rc.heap) > 0 {
			d := time.Until(rc.heap[0].deadline)
			if d < 0 {
				d = 0
			}
			if timer == nil {
				timer = time.NewTimer(d)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(d)
			}
			timerC = timer.C
		}

		select {
		case <-rc.stopCh:
			return
		case u := <-rc.ingest:
			heap.Push(&rc.heap, u)
		case <-timerC:
			now := time.Now()
			for len(rc.heap) > 0 && !rc.heap[0].deadline.After(now) {
				u := heap.Pop(&rc.heap).(recycleUnit)
				// A benign no-op if the instance already completed: the
				// Registry will report ErrCancelNotFound, which the Event
				// Handler swallows for recycler-originated cancels.
				_ = rc.queue.push(cancelTaskEvent{taskID: u.taskID, recordID: u.recordID})
			}
		}
	}
}
