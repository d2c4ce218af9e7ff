package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/http/handlers"
	"github.com/spec-kit/booking-service/internal/auth"
	"github.com/spec-kit/booking-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Reservations   *handlers.ReservationsHandler
	Availability   *handlers.AvailabilityHandler
	Shifts         *handlers.ShiftsHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole())
	authed.Get("/availability", cfg.Availability.Get)
	authed.Get("/staff", cfg.Reservations.ListStaff)
	authed.Get("/staff/:id/shifts", cfg.Shifts.ListForStaff)

	reservations := authed.Group("/reservations")
	reservations.Post("", auth.RequireRole(domain.RoleCustomer), cfg.Reservations.Create)
	reservations.Get("", auth.RequireRole(domain.RoleCustomer), cfg.Reservations.ListMine)
	reservations.Get("/:id", cfg.Reservations.Get)
	reservations.Patch("/:id", cfg.Reservations.Update)
	reservations.Post("/:id/cancel", cfg.Reservations.Cancel)

	admin := authed.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/reservations", cfg.Reservations.ListAll)
	admin.Put("/staff/:id/shift", cfg.Shifts.Assign)
	admin.Get("/shifts", cfg.Shifts.ListInRange)
	admin.Get("/reports/menu", cfg.Reports.CountByMenu)
	admin.Get("/reports/staff", cfg.Reports.CountByStaff)
}
