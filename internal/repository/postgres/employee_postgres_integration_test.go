//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"employeeapi/internal/model"
	"employeeapi/internal/repository"
)

func newContainerRepo(t *testing.T) *EmployeePostgres {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("employees"),
		tcpostgres.WithUsername("employees"),
		tcpostgres.WithPassword("employees"),
		tcpostgres.BasicWaitStrategies(),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "../../../migrations"))

	return NewEmployeePostgres(db)
}

func TestEmployeePostgres_Integration(t *testing.T) {
	repo := newContainerRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Ping(ctx))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)

	alice, err := repo.Save(ctx, &model.Employee{Name: "Alice", Email: "a@x.com", Department: "Eng"})
	require.NoError(t, err)
	bob, err := repo.Save(ctx, &model.Employee{Name: "Bob", Email: "b@x.com", Department: "Ops"})
	require.NoError(t, err)
	assert.Greater(t, bob.ID, alice.ID)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Employee{*alice, *bob}, all)

	alice.Department = "Sales"
	updated, err := repo.Save(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, "Sales", updated.Department)

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, repo.DeleteByID(ctx, alice.ID))
	require.NoError(t, repo.DeleteByID(ctx, alice.ID))

	_, err = repo.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.Save(ctx, &model.Employee{ID: alice.ID, Name: "ghost"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
