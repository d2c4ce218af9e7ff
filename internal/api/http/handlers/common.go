package handlers

import (
	"time"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/domain"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func parseDate(field, val string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field+" must be a date (2006-01-02)", map[string]any{field: val})
	}
	return parsed, nil
}

func parseClock(field, val string) (time.Time, error) {
	parsed, err := time.Parse(clockLayout, val)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(field+" must be a clock time (15:04)", map[string]any{field: val})
	}
	return parsed, nil
}

func parseDateRange(fromVal, toVal string) (time.Time, time.Time, error) {
	from, err := parseDate("from", fromVal)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate("to", toVal)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, apperrors.NewValidationError("to must not precede from", nil)
	}
	return from, to, nil
}

func reservationResponse(reservation *domain.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:         reservation.ID,
		CustomerID: reservation.CustomerID,
		StaffID:    reservation.StaffID,
		Date:       reservation.Date.Format(dateLayout),
		TimeSlot:   reservation.TimeSlot.Format(clockLayout),
		Menu:       reservation.Menu,
		Status:     reservation.Status,
		CreatedAt:  reservation.CreatedAt,
		UpdatedAt:  reservation.UpdatedAt,
	}
}

func reservationResponses(reservations []domain.Reservation) []dto.ReservationResponse {
	items := make([]dto.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		items = append(items, reservationResponse(&reservations[i]))
	}
	return items
}

func shiftResponse(shift *domain.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		ID:        shift.ID,
		StaffID:   shift.StaffID,
		Date:      shift.Date.Format(dateLayout),
		StartTime: shift.StartTime.Format(clockLayout),
		EndTime:   shift.EndTime.Format(clockLayout),
	}
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
