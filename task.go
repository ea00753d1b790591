package taskwheel

import (
	"context"
	"fmt"
	"time"

	"github.com/taskwheel/taskwheel/pipeline"
	"github.com/taskwheel/taskwheel/recurrence"
)

// Task is a template for recurring work: a recurrence, optional per-
// instance deadline and parallelism cap, and a work-body constructor. A
// Task is present in exactly one wheel slot between firings and nowhere
// when it isn't scheduled; the scheduler enforces that invariant, not the
// Task value itself.
type Task struct {
	ID TaskID

	// Schedule produces the task's successive firing timestamps. Its
	// exhaustion (Next returning ok == false) is what makes a count-down
	// task eventually disappear from the wheel.
	Schedule recurrence.Schedule

	// MaxRunningTime bounds how long one firing's instance may run before
	// the Deadline Recycler cancels it. Zero means no deadline.
	MaxRunningTime time.Duration

	// MaxParallel is the maximum number of this task's instances allowed
	// to be live at once. Must be >= 1.
	MaxParallel uint8

	factory workBodyFactory
}

// TaskBuilder assembles a Task fluently, mirroring the scheduler's own
// functional-options construction idiom.
type TaskBuilder struct {
	task Task
	err  error
}

// NewTask starts building a Task with the given id. id must be non-zero.
func NewTask(id TaskID) *TaskBuilder {
	return &TaskBuilder{task: Task{ID: id, MaxParallel: 1}}
}

// Recurring sets the task's recurrence schedule directly.
func (b *TaskBuilder) Recurring(s recurrence.Schedule) *TaskBuilder {
	b.task.Schedule = s
	return b
}

// MaxRunningTime sets the per-instance deadline.
func (b *TaskBuilder) MaxRunningTime(d time.Duration) *TaskBuilder {
	b.task.MaxRunningTime = d
	return b
}

// MaxParallel sets the maximum-parallel-runnable count.
func (b *TaskBuilder) MaxParallel(n uint8) *TaskBuilder {
	b.task.MaxParallel = n
	return b
}

// SyncBody sets a synchronous closure as the task's work body.
func (b *TaskBuilder) SyncBody(fn func(context.Context) error) *TaskBuilder {
	b.task.factory = NewSyncBody(fn)
	return b
}

// AsyncBody sets an asynchronous closure, spawned on its own goroutine
// each firing, as the task's work body.
func (b *TaskBuilder) AsyncBody(fn func(context.Context) error) *TaskBuilder {
	b.task.factory = NewAsyncBody(fn)
	return b
}

// PipelineBody parses expr as a process-pipeline grammar string and sets
// it as the task's work body. Parse failures are recorded and surfaced
// from Build, rather than at every firing.
func (b *TaskBuilder) PipelineBody(expr string) *TaskBuilder {
	parsed, err := pipeline.Parse(expr)
	if err != nil {
		b.err = fmt.Errorf("%w: %s", ErrMalformedPipeline, err)
		return b
	}
	b.task.factory = newPipelineFactory(parsed)
	return b
}

// Build validates and returns the assembled Task.
func (b *TaskBuilder) Build() (Task, error) {
	if b.err != nil {
		return Task{}, b.err
	}
	if b.task.ID == 0 {
		return Task{}, ErrInvalidTaskID
	}
	if b.task.Schedule == nil {
		return Task{}, fmt.Errorf("%w: a task requires a recurrence", ErrMalformedRecurrence)
	}
	if b.task.factory == nil {
		return Task{}, ErrNoWorkBody
	}
	if b.task.MaxParallel == 0 {
		b.task.MaxParallel = 1
	}
	return b.task, nil
}
