package taskwheel

// Option configures a Scheduler at construction, mirroring the functional-
// options idiom used for tasks (TaskBuilder).
type Option func(*Scheduler)

// WithConfig overrides the scheduler's Config.
func WithConfig(cfg Config) Option {
	return func(s *Scheduler) { s.cfg = cfg }
}

// WithLogger sets the Logger implementation.
func WithLogger(logger Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventEmitter sets an optional observer for lifecycle events.
func WithEventEmitter(emitter EventEmitter) Option {
	return func(s *Scheduler) { s.eventEmitter = emitter }
}
