// Package taskwheel is a cyclic task scheduler with sub-second latency,
// built around a timing wheel, an event loop, a handle registry, and a
// deadline recycler. Work bodies may be synchronous closures, asynchronous
// futures, or external process pipelines; recurrence is driven by
// pre-parsed cron-style schedules from the recurrence subpackage.
package taskwheel

import (
	"context"
	"sync"
)

// Scheduler is the Front Door (C6): the user-facing API. Every operation
// serializes to a single non-blocking event enqueue; construction spins up
// the Ticker, Event Handler and Recycler as long-lived goroutines.
type Scheduler struct {
	cfg          Config
	logger       Logger
	eventEmitter EventEmitter

	header   *header
	registry *registry
	queue    *eventQueue
	recycler *recycler
	ticker   *wheelTicker
	handler  *eventHandler

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	liveMu    sync.Mutex
	liveTasks map[TaskID]struct{}
}

// New constructs a Scheduler and starts its worker goroutines: the Ticker,
// the Event Handler, and the Deadline Recycler.
func New(opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		cfg:       DefaultConfig(),
		logger:    nopLogger{},
		liveTasks: make(map[TaskID]struct{}),
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	s.header = newHeader(s.cfg.WheelSlots)
	s.registry = newRegistry()
	s.queue = newEventQueue(s.cfg.EventQueueHint)
	s.recycler = newRecycler(s.queue, s.stopCh)
	s.ticker = newWheelTicker(s.header, s.queue, s.cfg.TickInterval, s.stopCh, s.logger, s.onTaskExhausted)
	s.handler = newEventHandler(s.header, s.registry, s.queue, s.recycler, s.logger, s.emitEvent)

	s.wg.Add(3)
	go func() { defer s.wg.Done(); s.runGuarded("ticker", s.ticker.run) }()
	go func() { defer s.wg.Done(); s.runGuarded("event handler", s.handler.run) }()
	go func() { defer s.wg.Done(); s.runGuarded("recycler", s.recycler.run) }()

	s.emitEvent(context.Background(), EventTypeSchedulerStart, nil)
	return s, nil
}

// runGuarded recovers a panic in one of the scheduler's long-lived loops,
// logs it, and restarts the loop exactly once, matching the spec's "worker
// panics are caught and respawned" fatal-condition handling.
func (s *Scheduler) runGuarded(name string, fn func()) {
	restarted := false
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("worker panicked", "worker", name, "panic", r)
				}
			}()
			fn()
		}()

		select {
		case <-s.stopCh:
			return
		default:
		}
		if restarted {
			s.logger.Error("worker panicked twice, giving up", "worker", name)
			return
		}
		restarted = true
	}
}

func (s *Scheduler) onTaskExhausted(id TaskID) {
	s.liveMu.Lock()
	delete(s.liveTasks, id)
	s.liveMu.Unlock()
	s.emitEvent(context.Background(), EventTypeTaskExhausted, map[string]any{"task_id": uint64(id)})
}

// AddTask registers a new task. It fails with ErrDuplicateTaskID if id is
// already live, and with ErrScheduleClosed once the scheduler has stopped.
func (s *Scheduler) AddTask(task Task) error {
	s.liveMu.Lock()
	if _, exists := s.liveTasks[task.ID]; exists {
		s.liveMu.Unlock()
		return ErrDuplicateTaskID
	}
	s.liveTasks[task.ID] = struct{}{}
	s.liveMu.Unlock()

	if err := s.queue.push(addTaskEvent{task: task}); err != nil {
		s.liveMu.Lock()
		delete(s.liveTasks, task.ID)
		s.liveMu.Unlock()
		return err
	}
	return nil
}

// RemoveTask removes a task from the wheel. It does not cancel any
// in-flight instances. Idempotent on an unknown id.
func (s *Scheduler) RemoveTask(id TaskID) error {
	s.liveMu.Lock()
	delete(s.liveTasks, id)
	s.liveMu.Unlock()
	return s.queue.push(removeTaskEvent{taskID: id})
}

// CancelTask cancels one instance by (task id, record id). It returns
// ErrCancelNotFound if no such instance is live; that error is reported
// only to this caller, never logged.
func (s *Scheduler) CancelTask(id TaskID, record RecordID) error {
	result := make(chan error, 1)
	if err := s.queue.push(cancelTaskEvent{taskID: id, recordID: record, result: result}); err != nil {
		return err
	}
	return <-result
}

// CancelAllByTask cancels every live instance of a task without removing
// the task itself from the wheel.
func (s *Scheduler) CancelAllByTask(id TaskID) error {
	return s.queue.push(cancelAllByTaskEvent{taskID: id})
}

// Stop halts future firings and the scheduler's internal loops, the
// Deadline Recycler included. In-flight instances continue until they
// complete; their deadlines are no longer enforced once Stop has run. Stop
// does not wait for them. Stop is idempotent.
func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		_ = s.queue.push(stopTimerEvent{})
		close(s.stopCh)
		s.queue.close()
		s.wg.Wait()
		s.emitEvent(context.Background(), EventTypeSchedulerStop, nil)
	})
	return nil
}
