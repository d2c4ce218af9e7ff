package dto

import (
	"time"

	"github.com/spec-kit/booking-service/internal/domain"
)

// CreateReservationRequest books a slot. Date is 2006-01-02, TimeSlot 15:04.
type CreateReservationRequest struct {
	StaffID  string `json:"staff_id"`
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Menu     string `json:"menu"`
}

// UpdateReservationRequest moves a reservation to a new slot.
type UpdateReservationRequest struct {
	Date     string `json:"date"`
	TimeSlot string `json:"time_slot"`
	Menu     string `json:"menu"`
}

// ReservationResponse is the wire shape of a reservation.
type ReservationResponse struct {
	ID         string                   `json:"id"`
	CustomerID string                   `json:"customer_id"`
	StaffID    *string                  `json:"staff_id,omitempty"`
	Date       string                   `json:"date"`
	TimeSlot   string                   `json:"time_slot"`
	Menu       string                   `json:"menu,omitempty"`
	Status     domain.ReservationStatus `json:"status"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

// AvailabilityResponse lists free slot starts for a staff member and date.
type AvailabilityResponse struct {
	StaffID string   `json:"staff_id"`
	Date    string   `json:"date"`
	Slots   []string `json:"slots"`
}

// ReportResponse maps a group key (menu label or staff name) to a count.
type ReportResponse struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Counts map[string]int64 `json:"counts"`
}
