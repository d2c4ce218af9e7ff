package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/auth"
	"github.com/spec-kit/booking-service/internal/domain"
	"github.com/spec-kit/booking-service/internal/service"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

// ReservationsHandler manages reservation endpoints.
type ReservationsHandler struct {
	bookings *service.BookingService
}

// NewReservationsHandler constructs handler.
func NewReservationsHandler(bookingService *service.BookingService) *ReservationsHandler {
	return &ReservationsHandler{bookings: bookingService}
}

// Create POST /reservations.
func (h *ReservationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	var req dto.CreateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.StaffID == "" || req.Date == "" || req.TimeSlot == "" {
		return apperrors.NewValidationError("staff_id, date, time_slot required", nil)
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	slot, err := parseClock("time_slot", req.TimeSlot)
	if err != nil {
		return err
	}

	reservation, err := h.bookings.Create(c.Context(), principal.User, req.StaffID, date, slot, strings.TrimSpace(req.Menu))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": reservationResponse(reservation)})
}

// ListMine GET /reservations.
func (h *ReservationsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("customer required")
	}
	reservations, err := h.bookings.ListForCustomer(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationResponses(reservations)})
}

// Get GET /reservations/:id.
func (h *ReservationsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	reservation, err := h.bookings.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if !canAccessReservation(principal.User, reservation) {
		return apperrors.NewForbidden("access denied")
	}
	return c.JSON(fiber.Map{"data": reservationResponse(reservation)})
}

// Update PATCH /reservations/:id.
func (h *ReservationsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateReservationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Date == "" || req.TimeSlot == "" {
		return apperrors.NewValidationError("date, time_slot required", nil)
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	slot, err := parseClock("time_slot", req.TimeSlot)
	if err != nil {
		return err
	}

	existing, err := h.bookings.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if !canAccessReservation(principal.User, existing) {
		return apperrors.NewForbidden("access denied")
	}

	reservation, err := h.bookings.Update(c.Context(), principal.User, existing.ID, date, slot, strings.TrimSpace(req.Menu))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationResponse(reservation)})
}

// Cancel POST /reservations/:id/cancel.
func (h *ReservationsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	existing, err := h.bookings.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if !canAccessReservation(principal.User, existing) {
		return apperrors.NewForbidden("access denied")
	}
	if err := h.bookings.Cancel(c.Context(), principal.User, existing.ID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListAll GET /admin/reservations. With from/to query params the listing is
// restricted to the inclusive date range.
func (h *ReservationsHandler) ListAll(c *fiber.Ctx) error {
	fromVal, toVal := c.Query("from"), c.Query("to")
	if fromVal == "" && toVal == "" {
		reservations, err := h.bookings.ListAll(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": reservationResponses(reservations)})
	}
	from, to, err := parseDateRange(fromVal, toVal)
	if err != nil {
		return err
	}
	reservations, err := h.bookings.ListInRange(c.Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reservationResponses(reservations)})
}

// ListStaff GET /staff.
func (h *ReservationsHandler) ListStaff(c *fiber.Ctx) error {
	staff, err := h.bookings.ListStaff(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(staff))
	for i := range staff {
		items = append(items, userResponse(&staff[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func canAccessReservation(user *domain.User, reservation *domain.Reservation) bool {
	if user.Role == domain.RoleAdmin || user.Role == domain.RoleStaff {
		return true
	}
	return reservation.CustomerID == user.ID
}
