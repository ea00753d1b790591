package pipeline

import "errors"

// ErrInvalidPipeline is returned when a pipeline string fails to parse.
// The taskwheel package wraps this with its own ErrMalformedPipeline
// sentinel at the public API boundary.
var ErrInvalidPipeline = errors.New("pipeline: invalid pipeline expression")

// ErrSpawnFailure is returned when a stage fails to start or its
// redirect file cannot be opened.
var ErrSpawnFailure = errors.New("pipeline: failed to spawn stage")
