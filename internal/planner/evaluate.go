package planner

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the DD/MM/YYYY layout used across prompts, schedule rows and
// history entries.
const DateLayout = "02/01/2006"

// FormatDate renders t in the schedule's DD/MM/YYYY form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// EvaluateDue returns the subset of tasks that are due at now, in input order.
//
// A task is due when all of the following hold:
//   - it is not marked completed in status,
//   - its date equals now's date (same-day only, no advance reminders),
//   - its time is within one minute of now, or has already passed today.
//
// An overdue task stays due for the rest of its day until completed. Tasks
// with a malformed time are never due. Task times and now are compared as
// minute-of-day wall-clock values in now's zone; no conversion is applied.
func EvaluateDue(now time.Time, tasks []TaskRecord, status StatusMap) []TaskRecord {
	nowDate := FormatDate(now)
	nowMin := now.Hour()*60 + now.Minute()

	var due []TaskRecord
	for _, t := range tasks {
		if status.Done(t.Key()) {
			continue
		}
		if t.Date != nowDate {
			continue
		}

		taskMin, err := minuteOfDay(t.Time)
		if err != nil {
			continue
		}

		diff := nowMin - taskMin
		if diff < 0 {
			diff = -diff
		}
		if diff <= 1 || taskMin < nowMin {
			due = append(due, t)
		}
	}
	return due
}

// minuteOfDay parses an HH:MM clock string into minutes since midnight.
func minuteOfDay(clock string) (int, error) {
	h, m, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	hour, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}
