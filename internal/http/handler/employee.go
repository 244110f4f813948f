package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"employeeapi/internal/model"
	"employeeapi/internal/service"
)

// DeletedMessage is the body returned by a successful delete.
const DeletedMessage = "Employee deleted successfully , deleted"

// employeeRequest is the body accepted by create and update. IDs are never read from it.
type employeeRequest struct {
	Name       string `json:"name" example:"Alice"`
	Email      string `json:"email" example:"a@x.com"`
	Department string `json:"department" example:"Eng"`
}

func (r employeeRequest) toModel() model.Employee {
	return model.Employee{
		Name:       r.Name,
		Email:      r.Email,
		Department: r.Department,
	}
}

// parseID reads the :id route parameter. Only positive integers are valid.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseBody(c *fiber.Ctx) (employeeRequest, bool) {
	var req employeeRequest
	if err := c.BodyParser(&req); err != nil {
		return req, false
	}
	return req, true
}

// CreateEmployee stores a new employee.
//
// @Summary      Create employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        employee  body      employeeRequest  true  "Employee fields"
// @Success      200       {object}  model.Employee
// @Failure      400       {object}  errorPayload
// @Failure      500       {object}  errorPayload
// @Router       /api/employees [post]
func CreateEmployee(svc service.EmployeeService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok := parseBody(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		emp, err := svc.Create(c.UserContext(), req.toModel())
		if err != nil {
			return internalError(c, log, "create employee", err)
		}
		return c.JSON(emp)
	}
}

// ListEmployees returns every employee ordered by ID.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Success      200  {array}   model.Employee
// @Failure      500  {object}  errorPayload
// @Router       /api/employees [get]
func ListEmployees(svc service.EmployeeService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return internalError(c, log, "list employees", err)
		}
		return c.JSON(items)
	}
}

// GetEmployee returns a single employee.
//
// @Summary      Get employee
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  model.Employee
// @Failure      400  {object}  errorPayload
// @Failure      404  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /api/employees/{id} [get]
func GetEmployee(svc service.EmployeeService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		emp, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "employee not found")
			}
			return internalError(c, log, "get employee", err)
		}
		return c.JSON(emp)
	}
}

// UpdateEmployee overwrites name, email and department of an existing employee.
//
// @Summary      Update employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id        path      int              true  "Employee ID"
// @Param        employee  body      employeeRequest  true  "Employee fields"
// @Success      200       {object}  model.Employee
// @Failure      400       {object}  errorPayload
// @Failure      404       {object}  errorPayload
// @Failure      500       {object}  errorPayload
// @Router       /api/employees/{id} [put]
func UpdateEmployee(svc service.EmployeeService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		req, ok := parseBody(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		emp, err := svc.Update(c.UserContext(), id, req.toModel())
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "employee not found")
			}
			return internalError(c, log, "update employee", err)
		}
		return c.JSON(emp)
	}
}

// DeleteEmployee removes an employee. Deleting a missing ID still succeeds.
//
// @Summary      Delete employee
// @Tags         employees
// @Produce      plain
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {string}  string  "Employee deleted successfully , deleted"
// @Failure      400  {object}  errorPayload
// @Failure      500  {object}  errorPayload
// @Router       /api/employees/{id} [delete]
func DeleteEmployee(svc service.EmployeeService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return internalError(c, log, "delete employee", err)
		}
		c.Type("txt", "utf-8")
		return c.SendString(DeletedMessage)
	}
}
