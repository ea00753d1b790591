package recurrence

import "errors"

// ErrInvalidExpression is returned when a recurrence expression cannot be
// parsed. The taskwheel package accepts only already-parsed Schedules, so
// this error reaches callers of ParseCron, Repeated, CountDown and the sugar
// functions directly; taskwheel does not wrap it.
var ErrInvalidExpression = errors.New("recurrence: invalid expression")
