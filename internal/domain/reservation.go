package domain

import "time"

// ReservationStatus enumerates reservation lifecycle states.
type ReservationStatus string

const (
	ReservationStatusBooked    ReservationStatus = "BOOKED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// ValidReservationStatus reports whether the value is a known status.
func ValidReservationStatus(s ReservationStatus) bool {
	return s == ReservationStatusBooked || s == ReservationStatusCancelled
}

// Reservation is a booking of a single 30-minute slot. TimeSlot is the start
// of the slot at minute granularity; Date carries the calendar day. Cancelled
// reservations are kept, never deleted.
type Reservation struct {
	ID         string
	CustomerID string
	StaffID    *string
	Date       time.Time
	TimeSlot   time.Time
	Menu       string
	Status     ReservationStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
