package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/securetask/internal/domain/entity"
	"github.com/oksasatya/securetask/internal/domain/repository"
)

const (
	selectOwnedTask = `(?s)SELECT .+\s+FROM tasks t\s+WHERE t\.id = \$1 AND t\.owner_id = \$2`
	updateOwnedTask = `(?s)UPDATE tasks\s+SET title = \$1, description = \$2, status = \$3, updated_at = now\(\)\s+WHERE id = \$4 AND owner_id = \$5\s+RETURNING updated_at`
	deleteOwnedTask = `DELETE FROM tasks WHERE id = \$1 AND owner_id = \$2`
	listOwnerTasks  = `(?s)SELECT .+\s+FROM tasks t\s+WHERE t\.owner_id = \$1\s+ORDER BY`
)

var taskCols = []string{"id", "title", "description", "status", "owner_id", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestTaskRepository_GetOwned(t *testing.T) {
	mock := newMock(t)
	repo := NewTaskRepository(mock)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectOwnedTask).
		WithArgs("t-1", "owner-a").
		WillReturnRows(pgxmock.NewRows(taskCols).AddRow("t-1", "Write report", "", "pending", "owner-a", ts, ts))

	got, err := repo.GetOwned(context.Background(), "t-1", "owner-a")
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, "owner-a", got.OwnerID)
}

func TestTaskRepository_GetOwnedByOtherOwnerIsNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewTaskRepository(mock)

	mock.ExpectQuery(selectOwnedTask).
		WithArgs("t-1", "owner-b").
		WillReturnRows(pgxmock.NewRows(taskCols))

	_, err := repo.GetOwned(context.Background(), "t-1", "owner-b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_UpdateOwned(t *testing.T) {
	ts := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("owner matches", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(updateOwnedTask).
			WithArgs("New", "d", "done", "t-1", "owner-a").
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(ts))

		task := &entity.Task{ID: "t-1", OwnerID: "owner-a", Title: "New", Description: "d", Status: "done"}
		require.NoError(t, NewTaskRepository(mock).UpdateOwned(context.Background(), task))
		assert.Equal(t, ts, task.UpdatedAt)
	})

	t.Run("no row for owner", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(updateOwnedTask).
			WithArgs("hijack", "", "done", "t-1", "owner-b").
			WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))

		task := &entity.Task{ID: "t-1", OwnerID: "owner-b", Title: "hijack", Status: "done"}
		err := NewTaskRepository(mock).UpdateOwned(context.Background(), task)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTaskRepository_DeleteOwned(t *testing.T) {
	tests := []struct {
		name    string
		result  pgconn.CommandTag
		err     error
		wantErr error
	}{
		{name: "deleted", result: pgxmock.NewResult("DELETE", 1)},
		{name: "zero rows", result: pgxmock.NewResult("DELETE", 0), wantErr: repository.ErrNotFound},
		{name: "malformed id", err: &pgconn.PgError{Code: invalidTextRepresent}, wantErr: repository.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := newMock(t)
			exp := mock.ExpectExec(deleteOwnedTask).WithArgs("t-1", "owner-a")
			if tc.err != nil {
				exp.WillReturnError(tc.err)
			} else {
				exp.WillReturnResult(tc.result)
			}

			err := NewTaskRepository(mock).DeleteOwned(context.Background(), "t-1", "owner-a")
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestTaskRepository_ListByOwner(t *testing.T) {
	mock := newMock(t)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(listOwnerTasks).
		WithArgs("owner-a").
		WillReturnRows(pgxmock.NewRows(taskCols).
			AddRow("t-2", "b", "", "pending", "owner-a", ts, ts).
			AddRow("t-1", "a", "", "done", "owner-a", ts, ts))

	got, err := NewTaskRepository(mock).ListByOwner(context.Background(), "owner-a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t-2", got[0].ID)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO users \(name, email, password_hash, role\)`).
		WithArgs("Ann", "ann@x.com", "hash", "user").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := NewUserRepository(mock).Create(context.Background(), &entity.User{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash", Role: entity.RoleUser})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("nobody@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}))

	_, err := NewUserRepository(mock).GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
