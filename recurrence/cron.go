package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// sixFieldParser parses second, minute, hour, day-of-month, month and
// day-of-week — the six fields robfig/cron natively supports. The seventh
// field, year, has no native support there and is layered on top by
// cronSchedule below.
var sixFieldParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// maxYearSkips bounds how many candidate timestamps cronSchedule.Next will
// reject for a non-matching year before giving up and reporting the
// schedule exhausted. It guards against a year field that can never match
// (e.g. a year already in the past) spinning forever.
const maxYearSkips = 4000

// yearField is the parsed form of the recurrence expression's seventh
// field. It supports a subset of the other six fields' vocabulary: "*", a
// single year, a comma list, and ranges. Step values ("/n") are not
// supported.
type yearField struct {
	wildcard bool
	years    map[int]bool
}

func parseYearField(raw string) (yearField, error) {
	raw = strings.TrimSpace(raw)
	if raw == "*" || raw == "" {
		return yearField{wildcard: true}, nil
	}

	years := make(map[int]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if lo, hi, isRange := strings.Cut(part, "-"); isRange {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return yearField{}, fmt.Errorf("%w: bad year range %q: %s", ErrInvalidExpression, part, err)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return yearField{}, fmt.Errorf("%w: bad year range %q: %s", ErrInvalidExpression, part, err)
			}
			if end < start {
				return yearField{}, fmt.Errorf("%w: bad year range %q: end before start", ErrInvalidExpression, part)
			}
			for y := start; y <= end; y++ {
				years[y] = true
			}
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return yearField{}, fmt.Errorf("%w: bad year %q: %s", ErrInvalidExpression, part, err)
		}
		years[y] = true
	}
	return yearField{years: years}, nil
}

func (f yearField) match(year int) bool {
	if f.wildcard {
		return true
	}
	return f.years[year]
}

// cronSchedule adapts a six-field robfig/cron schedule plus a year filter
// into a recurrence.Schedule.
type cronSchedule struct {
	inner cron.Schedule
	year  yearField
}

func (s *cronSchedule) Next(after time.Time) (time.Time, bool) {
	t := after
	for i := 0; i < maxYearSkips; i++ {
		t = s.inner.Next(t)
		if t.IsZero() {
			return time.Time{}, false
		}
		if s.year.match(t.Year()) {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseCron parses a seven-field recurrence expression (second, minute,
// hour, day-of-month, month, day-of-week, year) into a Schedule. The first
// six fields use standard cron syntax; the year field additionally accepts
// "*", a single year, a comma list, or ranges.
func ParseCron(expr string) (Schedule, error) {
	fields := strings.Fields(expr)
	if len(fields) != 7 {
		return nil, fmt.Errorf("%w: expected 7 fields (sec min hour dom month dow year), got %d in %q",
			ErrInvalidExpression, len(fields), expr)
	}

	inner, err := sixFieldParser.Parse(strings.Join(fields[:6], " "))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExpression, err)
	}

	year, err := parseYearField(fields[6])
	if err != nil {
		return nil, err
	}

	return &cronSchedule{inner: inner, year: year}, nil
}
