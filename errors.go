package taskwheel

import "errors"

// Sentinel errors returned by the Front Door and its collaborators.
var (
	// ErrScheduleClosed is returned once the scheduler has been stopped and
	// an operation tries to enqueue another event.
	ErrScheduleClosed = errors.New("taskwheel: scheduler is closed")

	// ErrDuplicateTaskID is returned by AddTask when the id is already live.
	ErrDuplicateTaskID = errors.New("taskwheel: task id already registered")

	// ErrMalformedRecurrence is returned by TaskBuilder.Build when no
	// recurrence schedule was set. Expression parse failures are reported
	// by the recurrence package as recurrence.ErrInvalidExpression and are
	// not converted to this error.
	ErrMalformedRecurrence = errors.New("taskwheel: malformed recurrence expression")

	// ErrMalformedPipeline is returned when a process-pipeline string fails
	// to parse.
	ErrMalformedPipeline = errors.New("taskwheel: malformed pipeline expression")

	// ErrSpawnFailure is returned when a process-pipeline stage fails to
	// start.
	ErrSpawnFailure = errors.New("taskwheel: failed to spawn pipeline stage")

	// ErrCancelNotFound is returned by CancelTask when no handle matches the
	// given (task id, record id) pair. It is reported only to direct
	// callers, never logged, per the spec's error table.
	ErrCancelNotFound = errors.New("taskwheel: no matching instance for cancellation")

	// ErrNoWorkBody is returned by TaskBuilder.Build when no body was set.
	ErrNoWorkBody = errors.New("taskwheel: task builder requires a work body")

	// ErrInvalidTaskID is returned by TaskBuilder.Build when the task id is
	// the zero value.
	ErrInvalidTaskID = errors.New("taskwheel: task id must be non-zero")
)
