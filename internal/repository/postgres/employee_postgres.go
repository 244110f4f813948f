package postgres

import (
	"context"
	"database/sql"
	"errors"

	"employeeapi/internal/model"
	"employeeapi/internal/repository"
)

// EmployeePostgres is a PostgreSQL implementation of repository.EmployeeRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type EmployeePostgres struct {
	db *sql.DB
}

// NewEmployeePostgres creates a new EmployeePostgres repository.
func NewEmployeePostgres(db *sql.DB) *EmployeePostgres {
	return &EmployeePostgres{db: db}
}

var (
	_ repository.EmployeeRepository = (*EmployeePostgres)(nil)
	_ repository.Pinger             = (*EmployeePostgres)(nil)
)

// Save inserts a new row when emp.ID is zero, otherwise updates the existing row.
func (r *EmployeePostgres) Save(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	if emp.ID == 0 {
		return r.insert(ctx, emp)
	}
	return r.update(ctx, emp)
}

func (r *EmployeePostgres) insert(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	const q = `
		INSERT INTO employees (name, email, department)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, department
	`
	row := r.db.QueryRowContext(ctx, q, emp.Name, emp.Email, emp.Department)
	var out model.Employee
	if err := row.Scan(&out.ID, &out.Name, &out.Email, &out.Department); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *EmployeePostgres) update(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	const q = `
		UPDATE employees
		SET name = $2, email = $3, department = $4
		WHERE id = $1
		RETURNING id, name, email, department
	`
	row := r.db.QueryRowContext(ctx, q, emp.ID, emp.Name, emp.Email, emp.Department)
	var out model.Employee
	if err := row.Scan(&out.ID, &out.Name, &out.Email, &out.Department); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// FindAll returns all employees ordered by id.
func (r *EmployeePostgres) FindAll(ctx context.Context) ([]model.Employee, error) {
	const q = `
		SELECT id, name, email, department
		FROM employees
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Employee, 0)
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Department); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single employee by its ID.
func (r *EmployeePostgres) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	const q = `
		SELECT id, name, email, department
		FROM employees
		WHERE id = $1
	`
	var e model.Employee
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&e.ID, &e.Name, &e.Email, &e.Department); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// DeleteByID removes an employee by ID. It does not return an error if the row does not exist.
func (r *EmployeePostgres) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM employees WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return err
	}
	return nil
}

// Ping checks database connectivity.
func (r *EmployeePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
