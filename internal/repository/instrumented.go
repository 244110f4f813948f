package repository

import (
	"context"
	"errors"
	"time"

	"employeeapi/internal/metrics"
	"employeeapi/internal/model"
)

// Instrumented wraps an EmployeeRepository and records per-operation latency and failures.
type Instrumented struct {
	next    EmployeeRepository
	metrics *metrics.Metrics
}

var _ EmployeeRepository = (*Instrumented)(nil)

// NewInstrumented decorates next with metrics collection.
func NewInstrumented(next EmployeeRepository, m *metrics.Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (r *Instrumented) observe(op string, start time.Time, err error) {
	r.metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, ErrNotFound) {
		r.metrics.StoreOperationErrors.WithLabelValues(op).Inc()
	}
}

func (r *Instrumented) Save(ctx context.Context, emp *model.Employee) (out *model.Employee, err error) {
	defer func(start time.Time) { r.observe("save", start, err) }(time.Now())
	return r.next.Save(ctx, emp)
}

func (r *Instrumented) FindAll(ctx context.Context) (out []model.Employee, err error) {
	defer func(start time.Time) { r.observe("find_all", start, err) }(time.Now())
	return r.next.FindAll(ctx)
}

func (r *Instrumented) FindByID(ctx context.Context, id int64) (out *model.Employee, err error) {
	defer func(start time.Time) { r.observe("find_by_id", start, err) }(time.Now())
	return r.next.FindByID(ctx, id)
}

func (r *Instrumented) DeleteByID(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { r.observe("delete_by_id", start, err) }(time.Now())
	return r.next.DeleteByID(ctx, id)
}

// Ping forwards to the wrapped backend when it supports health checks.
func (r *Instrumented) Ping(ctx context.Context) error {
	if p, ok := r.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
