package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employeeapi/internal/metrics"
	"employeeapi/internal/model"
	"employeeapi/internal/repository"
	repoMocks "employeeapi/internal/repository/mocks"
)

func newInstrumented(t *testing.T, next repository.EmployeeRepository) (*repository.Instrumented, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return repository.NewInstrumented(next, m), m
}

func TestInstrumented_RecordsDurations(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockEmployeeRepository)
	repo, m := newInstrumented(t, mRepo)

	emp := &model.Employee{Name: "Alice"}
	mRepo.On("Save", ctx, emp).Return(&model.Employee{ID: 1, Name: "Alice"}, nil).Once()
	mRepo.On("FindAll", ctx).Return([]model.Employee{{ID: 1}}, nil).Once()
	mRepo.On("FindByID", ctx, int64(1)).Return(&model.Employee{ID: 1}, nil).Once()
	mRepo.On("DeleteByID", ctx, int64(1)).Return(nil).Once()

	saved, err := repo.Save(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByID(ctx, 1))

	assert.Equal(t, 4, testutil.CollectAndCount(m.StoreOperationDuration))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.StoreOperationErrors.WithLabelValues("save")))
	mRepo.AssertExpectations(t)
}

func TestInstrumented_CountsFailuresButNotMisses(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockEmployeeRepository)
	repo, m := newInstrumented(t, mRepo)

	mRepo.On("FindByID", ctx, int64(404)).Return(nil, repository.ErrNotFound).Once()
	mRepo.On("FindByID", ctx, int64(500)).Return(nil, errors.New("db fail")).Once()

	_, err := repo.FindByID(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindByID(ctx, 500)
	assert.EqualError(t, err, "db fail")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperationErrors.WithLabelValues("find_by_id")))
	mRepo.AssertExpectations(t)
}

func TestInstrumented_Ping(t *testing.T) {
	ctx := context.Background()

	t.Run("backend without pinger", func(t *testing.T) {
		repo, _ := newInstrumented(t, new(repoMocks.MockEmployeeRepository))
		assert.NoError(t, repo.Ping(ctx))
	})

	t.Run("backend with pinger", func(t *testing.T) {
		mRepo := new(repoMocks.MockPingableRepository)
		mRepo.On("Ping", ctx).Return(errors.New("unreachable")).Once()
		repo, _ := newInstrumented(t, mRepo)

		assert.EqualError(t, repo.Ping(ctx), "unreachable")
		mRepo.AssertExpectations(t)
	})
}
