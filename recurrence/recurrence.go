package recurrence

import "time"

// Repeated parses expr into an infinite Schedule: every call to Next keeps
// producing timestamps until the underlying cron expression itself stops
// matching (which, for an unbounded field set, is effectively never).
func Repeated(expr string) (Schedule, error) {
	return ParseCron(expr)
}

// countdownSchedule wraps another Schedule and stops after `remaining`
// further successful Next calls.
type countdownSchedule struct {
	inner     Schedule
	remaining int
}

func (s *countdownSchedule) Next(after time.Time) (time.Time, bool) {
	if s.remaining <= 0 {
		return time.Time{}, false
	}
	next, ok := s.inner.Next(after)
	if !ok {
		s.remaining = 0
		return time.Time{}, false
	}
	s.remaining--
	return next, true
}

// CountDown parses expr and limits it to the first n firings; the (n+1)th
// call to Next reports the schedule exhausted.
func CountDown(n int, expr string) (Schedule, error) {
	inner, err := ParseCron(expr)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return &countdownSchedule{inner: inner, remaining: 0}, nil
	}
	return &countdownSchedule{inner: inner, remaining: n}, nil
}
