package service

import (
	"context"
	"errors"
	"fmt"

	"employeeapi/internal/model"
	"employeeapi/internal/repository"
)

// ErrNotFound is returned when the requested employee does not exist.
var ErrNotFound = errors.New("employee not found")

// EmployeeService defines the use cases for the employee resource.
type EmployeeService interface {
	// Create stores a new employee. Any ID on the input is ignored.
	Create(ctx context.Context, emp model.Employee) (*model.Employee, error)

	// List returns all employees ordered by ID.
	List(ctx context.Context) ([]model.Employee, error)

	// Get returns a single employee by its ID.
	Get(ctx context.Context, id int64) (*model.Employee, error)

	// Update replaces name, email and department of an existing employee with the values in changes.
	Update(ctx context.Context, id int64, changes model.Employee) (*model.Employee, error)

	// Delete removes an employee by ID without checking that it exists first.
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	repo repository.EmployeeRepository
}

// NewEmployeeService constructs a new EmployeeService.
func NewEmployeeService(repo repository.EmployeeRepository) EmployeeService {
	return &employeeService{repo: repo}
}

func (s *employeeService) Create(ctx context.Context, emp model.Employee) (*model.Employee, error) {
	emp.ID = 0
	stored, err := s.repo.Save(ctx, &emp)
	if err != nil {
		return nil, fmt.Errorf("save employee: %w", err)
	}
	return stored, nil
}

func (s *employeeService) List(ctx context.Context) ([]model.Employee, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if items == nil {
		items = []model.Employee{}
	}
	return items, nil
}

func (s *employeeService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find employee %d: %w", id, err)
	}
	return emp, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, changes model.Employee) (*model.Employee, error) {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	emp.Apply(changes)

	stored, err := s.repo.Save(ctx, emp)
	if err != nil {
		// The row can disappear between the lookup and the write.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("save employee %d: %w", id, err)
	}
	return stored, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	return nil
}
