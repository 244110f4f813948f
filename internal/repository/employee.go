package repository

import (
	"context"
	"errors"

	"employeeapi/internal/model"
)

// ErrNotFound is returned by backends when no employee matches the requested ID.
var ErrNotFound = errors.New("employee not found")

// EmployeeRepository is the persistence boundary for employees.
// Implementations contain no business logic.
type EmployeeRepository interface {
	// Save inserts the employee when ID is zero and assigns a new ID.
	// A non-zero ID overwrites the stored record; ErrNotFound if it no longer exists.
	// Returns the stored employee.
	Save(ctx context.Context, emp *model.Employee) (*model.Employee, error)

	// FindAll returns every stored employee ordered by ID ascending.
	FindAll(ctx context.Context) ([]model.Employee, error)

	// FindByID returns the employee with the given ID or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Employee, error)

	// DeleteByID removes an employee. It returns nil if the record was deleted or did not exist.
	DeleteByID(ctx context.Context, id int64) error
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
