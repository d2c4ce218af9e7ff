package service

import (
	"context"
	"time"

	"github.com/spec-kit/booking-service/internal/repository"
)

// MenuKeyUnspecified groups reservations booked without a menu label.
const MenuKeyUnspecified = "unspecified"

// ReportingService aggregates reservations over date ranges. Status is not
// filtered: cancelled reservations count in every aggregate.
type ReportingService struct {
	reservations repository.ReservationRepository
	users        repository.UserRepository
}

// NewReportingService constructs the service.
func NewReportingService(reservationRepo repository.ReservationRepository, userRepo repository.UserRepository) *ReportingService {
	return &ReportingService{reservations: reservationRepo, users: userRepo}
}

// CountByMenu returns reservation counts per menu label in the inclusive
// range. Empty menus group under MenuKeyUnspecified.
func (s *ReportingService) CountByMenu(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	reservations, err := s.reservations.ListInDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, reservation := range reservations {
		key := reservation.Menu
		if key == "" {
			key = MenuKeyUnspecified
		}
		counts[key]++
	}
	return counts, nil
}

// CountByStaff returns reservation counts per staff display name in the
// inclusive range. Unassigned reservations are skipped, as are dangling
// staff references.
func (s *ReportingService) CountByStaff(ctx context.Context, start, end time.Time) (map[string]int64, error) {
	reservations, err := s.reservations.ListInDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	counts := make(map[string]int64)
	for _, reservation := range reservations {
		if reservation.StaffID == nil {
			continue
		}
		name, ok := names[*reservation.StaffID]
		if !ok {
			staff, err := s.users.GetByID(ctx, *reservation.StaffID)
			if err != nil {
				if isNoRows(err) {
					continue
				}
				return nil, err
			}
			name = staff.Name
			names[*reservation.StaffID] = name
		}
		counts[name]++
	}
	return counts, nil
}
