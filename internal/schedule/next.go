package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRule is returned for malformed recurrence rules: unknown
// type, interval below one, or occurrence math that fails to advance.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// nextOccurrence computes the earliest due date strictly after cursor.
// Anchored rules (weekday, day-of-month) produce the anchored date in
// the cursor's own period when it is still ahead of the cursor, which is
// what makes a never-run template materialize its start date first.
func nextOccurrence(tpl *Template, cursor time.Time) (time.Time, error) {
	switch tpl.Recurrence {
	case RecurrenceDaily:
		return cursor.AddDate(0, 0, tpl.Interval), nil

	case RecurrenceWeekly:
		if tpl.Weekday == nil {
			return cursor.AddDate(0, 0, 7*tpl.Interval), nil
		}
		next := rollToWeekday(cursor, *tpl.Weekday)
		if !next.After(cursor) {
			next = next.AddDate(0, 0, 7*tpl.Interval)
		}
		return next, nil

	case RecurrenceMonthly:
		return nextAnchoredMonth(tpl, cursor, tpl.Interval), nil

	case RecurrenceYearly:
		return nextAnchoredMonth(tpl, cursor, 12*tpl.Interval), nil

	default:
		return time.Time{}, fmt.Errorf("%w: recurrence %d", ErrInvalidRule, tpl.Recurrence)
	}
}

// rollToWeekday returns the earliest date on the given weekday that is
// not before t.
func rollToWeekday(t time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}

// nextAnchoredMonth finds the next anchored day-of-month occurrence. The
// anchor defaults to the start date's day. A cursor on or past its own
// month's anchor jumps the full interval of months; the anchored day is
// capped at the target month's actual length (day 31 in a 30-day month
// becomes day 30).
func nextAnchoredMonth(tpl *Template, cursor time.Time, months int) time.Time {
	day := tpl.StartDate.Day()
	if tpl.DayOfMonth != nil {
		day = *tpl.DayOfMonth
	}

	next := clampedDate(cursor.Year(), cursor.Month(), day, cursor.Location())
	if !next.After(cursor) {
		next = clampedDate(cursor.Year(), cursor.Month()+time.Month(months), day, cursor.Location())
	}
	return next
}

// clampedDate builds a date with the day capped at the month's length.
// The month may be out of range; time.Date normalizes it first.
func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// dateOnly truncates to midnight so wall-clock time never affects
// due-date comparisons.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
