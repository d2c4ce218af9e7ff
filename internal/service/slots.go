package service

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/booking-service/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// clockOf normalizes a time to its clock component at minute granularity on
// the zero date, so values scanned from TIME columns and values parsed from
// requests compare cleanly.
func clockOf(t time.Time) time.Time {
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func sameClock(a, b time.Time) bool {
	return clockOf(a).Equal(clockOf(b))
}

// withinShift reports whether slot lies inside the shift window. The upper
// bound is end minus one minute: a slot at end-1m is allowed, one at end is not.
func withinShift(shift *domain.Shift, slot time.Time) bool {
	start := clockOf(shift.StartTime)
	end := clockOf(shift.EndTime)
	candidate := clockOf(slot)
	return !candidate.Before(start) && !candidate.After(end.Add(-time.Minute))
}

// generateSlots produces candidate slot starts from start (inclusive) up to
// end (exclusive) at the given interval.
func generateSlots(start, end time.Time, interval time.Duration) []time.Time {
	slots := []time.Time{}
	limit := clockOf(end)
	for current := clockOf(start); current.Before(limit); current = current.Add(interval) {
		slots = append(slots, current)
	}
	return slots
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
