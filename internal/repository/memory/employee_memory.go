package memory

import (
	"context"
	"sort"
	"sync"

	"employeeapi/internal/model"
	"employeeapi/internal/repository"
)

// EmployeeMemory is an in-memory implementation of repository.EmployeeRepository.
// It is safe for concurrent use. IDs start at 1 and are never reused.
type EmployeeMemory struct {
	mu     sync.RWMutex
	byID   map[int64]model.Employee
	lastID int64
}

var (
	_ repository.EmployeeRepository = (*EmployeeMemory)(nil)
	_ repository.Pinger             = (*EmployeeMemory)(nil)
)

func NewEmployeeMemory() *EmployeeMemory {
	return &EmployeeMemory{
		byID: make(map[int64]model.Employee),
	}
}

func (r *EmployeeMemory) Save(ctx context.Context, emp *model.Employee) (*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := *emp
	if out.ID == 0 {
		r.lastID++
		out.ID = r.lastID
	} else if _, ok := r.byID[out.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.byID[out.ID] = out
	return &out, nil
}

func (r *EmployeeMemory) FindAll(ctx context.Context) ([]model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Employee, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EmployeeMemory) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}

func (r *EmployeeMemory) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

// Ping always succeeds; there is nothing to reach.
func (r *EmployeeMemory) Ping(context.Context) error {
	return nil
}
