package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/booking-service/internal/cache"
	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/events"
	"github.com/spec-kit/booking-service/internal/repository"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

// BookingService coordinates reservation workflows.
type BookingService struct {
	users        repository.UserRepository
	shifts       repository.ShiftRepository
	reservations repository.ReservationRepository
	dispatcher   events.Dispatcher
	slotCache    *cache.SlotCache
}

// BookingDependencies bundles collaborators for the booking service.
type BookingDependencies struct {
	UserRepo        repository.UserRepository
	ShiftRepo       repository.ShiftRepository
	ReservationRepo repository.ReservationRepository
	Dispatcher      events.Dispatcher
	SlotCache       *cache.SlotCache
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		users:        deps.UserRepo,
		shifts:       deps.ShiftRepo,
		reservations: deps.ReservationRepo,
		dispatcher:   deps.Dispatcher,
		slotCache:    deps.SlotCache,
	}
}

// Create books a slot for a customer with the given staff member. The slot
// must lie inside the staff member's shift and must not already be taken;
// shift containment is checked before the conflict lookup.
func (s *BookingService) Create(ctx context.Context, customer *domain.User, staffID string, date, slot time.Time, menu string) (*domain.Reservation, error) {
	staff, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, err
	}

	available, err := s.staffAvailable(ctx, staff.ID, date, slot)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, apperrors.NewUnavailable("staff is not available at this time", nil)
	}

	// A cancelled reservation at the same slot still blocks it; status is
	// deliberately absent from this lookup.
	if _, err := s.reservations.GetExact(ctx, date, slot, &staff.ID); err == nil {
		return nil, apperrors.NewConflict("this time slot is already booked", nil)
	} else if !isNoRows(err) {
		return nil, err
	}

	staffRef := staff.ID
	reservation := &domain.Reservation{
		CustomerID: customer.ID,
		StaffID:    &staffRef,
		Date:       date,
		TimeSlot:   clockOf(slot),
		Menu:       menu,
		Status:     domain.ReservationStatusBooked,
	}
	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.slotCache.Invalidate(ctx, staff.ID, date)
	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationCreated,
		ReservationID: reservation.ID,
		Actor:         actorOf(customer),
		Payload: events.ReservationCreatedPayload{
			StaffID:  reservation.StaffID,
			Date:     date.Format(dateLayout),
			TimeSlot: reservation.TimeSlot.Format(clockLayout),
			Menu:     menu,
		},
	})
	return reservation, nil
}

// Update moves a reservation to a new date, slot and menu. Customer and staff
// assignment are not changed. The conflict check runs before the shift check.
func (s *BookingService) Update(ctx context.Context, actor *domain.User, reservationID string, newDate, newSlot time.Time, newMenu string) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": reservationID})
		}
		return nil, err
	}

	if existing, err := s.reservations.GetExact(ctx, newDate, newSlot, reservation.StaffID); err == nil {
		if existing.ID != reservation.ID {
			return nil, apperrors.NewConflict("this new time slot is already booked", nil)
		}
	} else if !isNoRows(err) {
		return nil, err
	}

	available := false
	if reservation.StaffID != nil {
		available, err = s.staffAvailable(ctx, *reservation.StaffID, newDate, newSlot)
		if err != nil {
			return nil, err
		}
	}
	if !available {
		return nil, apperrors.NewUnavailable("staff is not available at this new time", nil)
	}

	oldDate, oldSlot := reservation.Date, reservation.TimeSlot
	reservation.Date = newDate
	reservation.TimeSlot = clockOf(newSlot)
	reservation.Menu = newMenu
	if err := s.reservations.Update(ctx, reservation); err != nil {
		return nil, apperrors.MapError(err)
	}

	if reservation.StaffID != nil {
		s.slotCache.Invalidate(ctx, *reservation.StaffID, oldDate)
		s.slotCache.Invalidate(ctx, *reservation.StaffID, newDate)
	}
	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationUpdated,
		ReservationID: reservation.ID,
		Actor:         actorOf(actor),
		Payload: events.ReservationUpdatedPayload{
			OldDate:     oldDate.Format(dateLayout),
			OldTimeSlot: oldSlot.Format(clockLayout),
			NewDate:     newDate.Format(dateLayout),
			NewTimeSlot: reservation.TimeSlot.Format(clockLayout),
			Menu:        newMenu,
		},
	})
	return reservation, nil
}

// Cancel marks the reservation CANCELLED. The record is kept and the slot
// stays occupied. Cancelling an already cancelled reservation succeeds.
func (s *BookingService) Cancel(ctx context.Context, actor *domain.User, reservationID string) error {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if isNoRows(err) {
			return apperrors.NewNotFound("reservation", map[string]any{"reservation_id": reservationID})
		}
		return err
	}

	reservation.Status = domain.ReservationStatusCancelled
	if err := s.reservations.Update(ctx, reservation); err != nil {
		return apperrors.MapError(err)
	}

	if reservation.StaffID != nil {
		s.slotCache.Invalidate(ctx, *reservation.StaffID, reservation.Date)
	}
	s.publishEvent(ctx, events.Event{
		Type:          events.EventReservationCancelled,
		ReservationID: reservation.ID,
		Actor:         actorOf(actor),
		Payload: events.ReservationCancelledPayload{
			StaffID:  reservation.StaffID,
			Date:     reservation.Date.Format(dateLayout),
			TimeSlot: reservation.TimeSlot.Format(clockLayout),
		},
	})
	return nil
}

// GetByID fetches a single reservation.
func (s *BookingService) GetByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	reservation, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("reservation", map[string]any{"reservation_id": reservationID})
		}
		return nil, err
	}
	return reservation, nil
}

// ListForCustomer returns the customer's reservations, most recent first.
func (s *BookingService) ListForCustomer(ctx context.Context, customerID string) ([]domain.Reservation, error) {
	return s.reservations.ListByCustomer(ctx, customerID)
}

// ListAll returns every reservation on record.
func (s *BookingService) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	return s.reservations.ListAll(ctx)
}

// ListInRange returns reservations in the inclusive date range.
func (s *BookingService) ListInRange(ctx context.Context, start, end time.Time) ([]domain.Reservation, error) {
	return s.reservations.ListInDateRange(ctx, start, end)
}

// ListStaff returns all users holding the STAFF role.
func (s *BookingService) ListStaff(ctx context.Context) ([]domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleStaff)
}

func (s *BookingService) staffAvailable(ctx context.Context, staffID string, date, slot time.Time) (bool, error) {
	shift, err := s.shifts.GetByStaffAndDate(ctx, staffID, date)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return withinShift(shift, slot), nil
}

func (s *BookingService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorOf(user *domain.User) events.Actor {
	if user == nil {
		return events.Actor{}
	}
	return events.Actor{Role: user.Role, UserID: user.ID}
}
