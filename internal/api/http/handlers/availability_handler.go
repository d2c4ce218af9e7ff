package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/service"
	apperrors "github.com/spec-kit/booking-service/pkg/util"
)

// AvailabilityHandler exposes free slot lookups.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availabilityService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availabilityService}
}

// Get GET /availability?staff_id=&date=.
func (h *AvailabilityHandler) Get(c *fiber.Ctx) error {
	staffID := c.Query("staff_id")
	if staffID == "" {
		return apperrors.NewValidationError("staff_id required", nil)
	}
	date, err := parseDate("date", c.Query("date"))
	if err != nil {
		return err
	}

	slots, err := h.availability.AvailableSlots(c.Context(), staffID, date)
	if err != nil {
		return err
	}
	encoded := make([]string, 0, len(slots))
	for _, slot := range slots {
		encoded = append(encoded, slot.Format(clockLayout))
	}
	return c.JSON(fiber.Map{"data": dto.AvailabilityResponse{
		StaffID: staffID,
		Date:    date.Format(dateLayout),
		Slots:   encoded,
	}})
}
