// Package recurrence turns cron-style recurrence expressions into the
// Schedule iterator the scheduling core consumes. Cron-expression parsing
// itself is delegated to robfig/cron; this package adds the seventh
// (year) field, the Repeated/CountDown framing, and the symbolic sugar
// named in the task builder surface.
package recurrence

import "time"

// Schedule produces successive scheduled timestamps. Next returns the
// first timestamp strictly after `after`, and whether the schedule has any
// more firings left to give. Once ok is false, all further calls must also
// return ok == false — a Schedule never becomes un-exhausted.
type Schedule interface {
	Next(after time.Time) (next time.Time, ok bool)
}
