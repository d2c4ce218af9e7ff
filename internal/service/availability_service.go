package service

import (
	"context"
	"time"

	"github.com/spec-kit/booking-service/internal/cache"
	"github.com/spec-kit/booking-service/internal/repository"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

// AvailabilityService derives free time slots from shifts minus reservations.
type AvailabilityService struct {
	users        repository.UserRepository
	shifts       repository.ShiftRepository
	reservations repository.ReservationRepository
	slotCache    *cache.SlotCache
	interval     time.Duration
}

// AvailabilityDependencies bundles collaborators for the availability service.
type AvailabilityDependencies struct {
	UserRepo        repository.UserRepository
	ShiftRepo       repository.ShiftRepository
	ReservationRepo repository.ReservationRepository
	SlotCache       *cache.SlotCache
	SlotInterval    time.Duration
}

// NewAvailabilityService constructs the service.
func NewAvailabilityService(deps AvailabilityDependencies) *AvailabilityService {
	interval := deps.SlotInterval
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &AvailabilityService{
		users:        deps.UserRepo,
		shifts:       deps.ShiftRepo,
		reservations: deps.ReservationRepo,
		slotCache:    deps.SlotCache,
		interval:     interval,
	}
}

// AvailableSlots returns the free slot starts for the staff member on the
// given date, ascending. No shift means no availability. Reservations of any
// status occupy their slot, cancelled ones included.
func (s *AvailabilityService) AvailableSlots(ctx context.Context, staffID string, date time.Time) ([]time.Time, error) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, err
	}

	if cached, ok := s.slotCache.Get(ctx, staff.ID, date); ok {
		return cached, nil
	}

	shift, err := s.shifts.GetByStaffAndDate(ctx, staff.ID, date)
	if err != nil {
		if isNoRows(err) {
			return []time.Time{}, nil
		}
		return nil, err
	}

	candidates := generateSlots(shift.StartTime, shift.EndTime, s.interval)

	booked, err := s.reservations.ListByStaffAndDateRange(ctx, staff.ID, date, date)
	if err != nil {
		return nil, err
	}

	available := make([]time.Time, 0, len(candidates))
	for _, candidate := range candidates {
		occupied := false
		for _, reservation := range booked {
			if sameClock(reservation.TimeSlot, candidate) {
				occupied = true
				break
			}
		}
		if !occupied {
			available = append(available, candidate)
		}
	}

	s.slotCache.Set(ctx, staff.ID, date, available)
	return available, nil
}
