package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/dto"
	"github.com/spec-kit/booking-service/internal/service"
)

// ReportsHandler exposes aggregate statistics.
type ReportsHandler struct {
	reporting *service.ReportingService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportingService *service.ReportingService) *ReportsHandler {
	return &ReportsHandler{reporting: reportingService}
}

// CountByMenu GET /admin/reports/menu?from=&to=.
func (h *ReportsHandler) CountByMenu(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}
	counts, err := h.reporting.CountByMenu(c.Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportResponse{
		From:   from.Format(dateLayout),
		To:     to.Format(dateLayout),
		Counts: counts,
	}})
}

// CountByStaff GET /admin/reports/staff?from=&to=.
func (h *ReportsHandler) CountByStaff(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}
	counts, err := h.reporting.CountByStaff(c.Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ReportResponse{
		From:   from.Format(dateLayout),
		To:     to.Format(dateLayout),
		Counts: counts,
	}})
}
