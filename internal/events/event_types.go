package events

import (
	"time"

	"github.com/spec-kit/booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReservationCreated   EventType = "reservation_created"
	EventReservationUpdated   EventType = "reservation_updated"
	EventReservationCancelled EventType = "reservation_cancelled"
	EventShiftAssigned        EventType = "shift_assigned"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role   domain.Role `json:"role"`
	UserID string      `json:"user_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID            string      `json:"id"`
	Type          EventType   `json:"type"`
	ReservationID string      `json:"reservation_id,omitempty"`
	Actor         Actor       `json:"actor"`
	Timestamp     time.Time   `json:"timestamp"`
	Payload       interface{} `json:"payload"`
}

// ReservationCreatedPayload payload.
type ReservationCreatedPayload struct {
	StaffID  *string `json:"staff_id,omitempty"`
	Date     string  `json:"date"`
	TimeSlot string  `json:"time_slot"`
	Menu     string  `json:"menu,omitempty"`
}

// ReservationUpdatedPayload payload.
type ReservationUpdatedPayload struct {
	OldDate     string `json:"old_date"`
	OldTimeSlot string `json:"old_time_slot"`
	NewDate     string `json:"new_date"`
	NewTimeSlot string `json:"new_time_slot"`
	Menu        string `json:"menu,omitempty"`
}

// ReservationCancelledPayload payload.
type ReservationCancelledPayload struct {
	StaffID  *string `json:"staff_id,omitempty"`
	Date     string  `json:"date"`
	TimeSlot string  `json:"time_slot"`
}

// ShiftAssignedPayload payload.
type ShiftAssignedPayload struct {
	StaffID   string `json:"staff_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
