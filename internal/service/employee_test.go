package service

import (
	"context"
	"errors"
	"testing"

	"employeeapi/internal/model"
	"employeeapi/internal/repository"
	"employeeapi/internal/repository/memory"
	repoMocks "employeeapi/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		input      model.Employee
		setupMocks func(mRepo *repoMocks.MockEmployeeRepository)
		want       *model.Employee
		wantErrMsg string
	}{
		{
			name:  "happy path",
			input: model.Employee{Name: "Alice", Email: "a@x.com", Department: "Eng"},
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("Save", ctx, &model.Employee{Name: "Alice", Email: "a@x.com", Department: "Eng"}).
					Return(&model.Employee{ID: 1, Name: "Alice", Email: "a@x.com", Department: "Eng"}, nil)
			},
			want: &model.Employee{ID: 1, Name: "Alice", Email: "a@x.com", Department: "Eng"},
		},
		{
			name:  "client supplied id is ignored",
			input: model.Employee{ID: 42, Name: "Bob"},
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("Save", ctx, mock.MatchedBy(func(e *model.Employee) bool {
					return e.ID == 0 && e.Name == "Bob"
				})).Return(&model.Employee{ID: 2, Name: "Bob"}, nil)
			},
			want: &model.Employee{ID: 2, Name: "Bob"},
		},
		{
			name:  "repository error",
			input: model.Employee{Name: "Carol"},
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("Save", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErrMsg: "save employee: db fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockEmployeeRepository)
			svc := NewEmployeeService(mRepo)
			tt.setupMocks(mRepo)

			got, err := svc.Create(ctx, tt.input)

			if tt.wantErrMsg != "" {
				assert.EqualError(t, err, tt.wantErrMsg)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockEmployeeRepository)
		want       []model.Employee
		wantErr    bool
	}{
		{
			name: "happy path",
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindAll", ctx).Return([]model.Employee{{ID: 1}, {ID: 2}}, nil)
			},
			want: []model.Employee{{ID: 1}, {ID: 2}},
		},
		{
			name: "nil from backend becomes empty slice",
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindAll", ctx).Return(nil, nil)
			},
			want: []model.Employee{},
		},
		{
			name: "repository error",
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindAll", ctx).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockEmployeeRepository)
			svc := NewEmployeeService(mRepo)
			tt.setupMocks(mRepo)

			got, err := svc.List(ctx)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestEmployeeService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		setupMocks func(mRepo *repoMocks.MockEmployeeRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   1,
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindByID", ctx, int64(1)).Return(&model.Employee{ID: 1}, nil)
			},
		},
		{
			name: "not found",
			id:   9999,
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindByID", ctx, int64(9999)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "generic repository error",
			id:   3,
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindByID", ctx, int64(3)).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("find employee 3: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockEmployeeRepository)
			svc := NewEmployeeService(mRepo)
			tt.setupMocks(mRepo)

			emp, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, ErrNotFound)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
					assert.NotErrorIs(t, err, ErrNotFound)
				}
				assert.Nil(t, emp)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, emp.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         int64
		changes    model.Employee
		setupMocks func(mRepo *repoMocks.MockEmployeeRepository)
		want       *model.Employee
		wantErr    error
	}{
		{
			name:    "overwrites all three fields and keeps id",
			id:      5,
			changes: model.Employee{ID: 77, Name: "Alice", Email: "", Department: "Research"},
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindByID", ctx, int64(5)).
					Return(&model.Employee{ID: 5, Name: "Alice", Email: "a@x.com", Department: "Eng"}, nil)
				mRepo.On("Save", ctx, &model.Employee{ID: 5, Name: "Alice", Email: "", Department: "Research"}).
					Return(&model.Employee{ID: 5, Name: "Alice", Email: "", Department: "Research"}, nil)
			},
			want: &model.Employee{ID: 5, Name: "Alice", Email: "", Department: "Research"},
		},
		{
			name: "not found on lookup",
			id:   9,
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "deleted before save",
			id:   6,
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindByID", ctx, int64(6)).Return(&model.Employee{ID: 6}, nil)
				mRepo.On("Save", ctx, mock.Anything).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "save error",
			id:   7,
			setupMocks: func(mRepo *repoMocks.MockEmployeeRepository) {
				mRepo.On("FindByID", ctx, int64(7)).Return(&model.Employee{ID: 7}, nil)
				mRepo.On("Save", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("save employee 7: db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockEmployeeRepository)
			svc := NewEmployeeService(mRepo)
			tt.setupMocks(mRepo)

			got, err := svc.Update(ctx, tt.id, tt.changes)

			if tt.wantErr != nil {
				if errors.Is(tt.wantErr, ErrNotFound) {
					assert.ErrorIs(t, err, ErrNotFound)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("no existence check", func(t *testing.T) {
		mRepo := new(repoMocks.MockEmployeeRepository)
		mRepo.On("DeleteByID", ctx, int64(9999)).Return(nil)

		assert.NoError(t, NewEmployeeService(mRepo).Delete(ctx, 9999))
		mRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockEmployeeRepository)
		mRepo.On("DeleteByID", ctx, int64(1)).Return(errors.New("db fail"))

		err := NewEmployeeService(mRepo).Delete(ctx, 1)
		assert.EqualError(t, err, "delete employee 1: db fail")
		mRepo.AssertExpectations(t)
	})
}

// End-to-end behaviour of the use cases over the in-memory backend.
func TestEmployeeService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(memory.NewEmployeeMemory())

	alice, err := svc.Create(ctx, model.Employee{Name: "Alice", Email: "a@x.com", Department: "Eng"})
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, "a@x.com", alice.Email)
	assert.Equal(t, "Eng", alice.Department)

	bob, err := svc.Create(ctx, model.Employee{Name: "Bob", Email: "b@x.com", Department: "Ops"})
	require.NoError(t, err)
	assert.NotEqual(t, alice.ID, bob.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Employee{*alice, *bob}, all)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(ctx, alice.ID, model.Employee{Department: "Research"})
	require.NoError(t, err)
	assert.Equal(t, model.Employee{ID: alice.ID, Department: "Research"}, *updated)

	require.NoError(t, svc.Delete(ctx, alice.ID))
	_, err = svc.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, svc.Delete(ctx, 9999))
}
