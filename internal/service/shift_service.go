package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/events"
	"github.com/spec-kit/booking-service/internal/repository"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

// ShiftService manages staff working windows.
type ShiftService struct {
	users      repository.UserRepository
	shifts     repository.ShiftRepository
	dispatcher events.Dispatcher
}

// NewShiftService constructs the service.
func NewShiftService(userRepo repository.UserRepository, shiftRepo repository.ShiftRepository, dispatcher events.Dispatcher) *ShiftService {
	return &ShiftService{users: userRepo, shifts: shiftRepo, dispatcher: dispatcher}
}

// Assign creates or replaces the shift for (staff, date). One shift per staff
// per day; assigning again overwrites the window.
func (s *ShiftService) Assign(ctx context.Context, staffID string, date, start, end time.Time) (*domain.Shift, error) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, err
	}
	if staff.Role != domain.RoleStaff {
		return nil, apperrors.NewValidationError("user is not a staff member", map[string]any{"staff_id": staffID})
	}
	if !clockOf(start).Before(clockOf(end)) {
		return nil, apperrors.NewValidationError("shift start must be before end", nil)
	}

	shift := &domain.Shift{
		StaffID:   staff.ID,
		Date:      date,
		StartTime: clockOf(start),
		EndTime:   clockOf(end),
	}
	if err := s.shifts.Upsert(ctx, shift); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventShiftAssigned,
			Timestamp: time.Now(),
			Payload: events.ShiftAssignedPayload{
				StaffID:   shift.StaffID,
				Date:      date.Format(dateLayout),
				StartTime: shift.StartTime.Format(clockLayout),
				EndTime:   shift.EndTime.Format(clockLayout),
			},
		})
	}
	return shift, nil
}

// ListForStaff returns the staff member's shifts ordered by date then start.
func (s *ShiftService) ListForStaff(ctx context.Context, staffID string) ([]domain.Shift, error) {
	if _, err := s.users.GetByID(ctx, staffID); err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, err
	}
	return s.shifts.ListByStaff(ctx, staffID)
}

// ListInRange returns all shifts in the inclusive date range.
func (s *ShiftService) ListInRange(ctx context.Context, start, end time.Time) ([]domain.Shift, error) {
	return s.shifts.ListInDateRange(ctx, start, end)
}
