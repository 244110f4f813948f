package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"employeeapi/internal/repository"
	"employeeapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, pinger repository.Pinger, svc service.EmployeeService, log *slog.Logger) {
	app.Get("/health", HealthCheck(pinger))
	app.Get("/healthz", LivenessProbe())

	employees := app.Group("/api/employees")
	employees.Post("/", CreateEmployee(svc, log))
	employees.Get("/", ListEmployees(svc, log))
	employees.Get("/:id", GetEmployee(svc, log))
	employees.Put("/:id", UpdateEmployee(svc, log))
	employees.Delete("/:id", DeleteEmployee(svc, log))
}
