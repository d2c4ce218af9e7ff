package domain

import "time"

// Shift is a contiguous working window for one staff member on one date.
// At most one shift exists per (staff, date).
type Shift struct {
	ID        string
	StaffID   string
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
