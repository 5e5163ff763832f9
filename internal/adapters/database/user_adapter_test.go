package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightbnb/backend/internal/domain/entities"
	apperrors "github.com/lightbnb/backend/pkg/errors"
)

var userRowColumns = []string{"id", "name", "email", "password"}

func TestUserAdapter_GetByEmail(t *testing.T) {
	t.Run("returns the matching user", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewUserAdapter(client, nil)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE .*"email" = \$1`).
			WithArgs("tristanjacobs@gmail.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(1, "Devin Sanders", "tristanjacobs@gmail.com", "$2a$10$hash"))

		user, err := adapter.GetByEmail(context.Background(), "tristanjacobs@gmail.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "Devin Sanders", user.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns nil without error when no row matches", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewUserAdapter(client, nil)

		mock.ExpectQuery(`FROM "users"`).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := adapter.GetByEmail(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates store failures", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewUserAdapter(client, nil)

		cause := errors.New("connection reset by peer")
		mock.ExpectQuery(`FROM "users"`).WillReturnError(cause)

		user, err := adapter.GetByEmail(context.Background(), "a@b.c")
		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
		assert.ErrorIs(t, err, cause)
	})
}

func TestUserAdapter_GetByID(t *testing.T) {
	t.Run("returns the matching user", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewUserAdapter(client, nil)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE .*"id" = \$1`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(42, "Elizabeth Jones", "ejones@example.com", "$2a$10$hash"))

		user, err := adapter.GetByID(context.Background(), 42)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "ejones@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id is nil without error", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewUserAdapter(client, nil)

		mock.ExpectQuery(`SELECT .+ FROM "users" WHERE .*"id" = \$1`).
			WithArgs(int64(9999)).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		user, err := adapter.GetByID(context.Background(), 9999)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserAdapter_Create(t *testing.T) {
	newUser := entities.NewUser{Name: "Kira", Email: "kira@example.com", Password: "$2a$10$hash"}

	t.Run("returns the inserted row", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewUserAdapter(client, nil)

		mock.ExpectQuery(`INSERT INTO "users" .+ RETURNING`).
			WithArgs("kira@example.com", "Kira", "$2a$10$hash").
			WillReturnRows(sqlmock.NewRows(userRowColumns).
				AddRow(11, "Kira", "kira@example.com", "$2a$10$hash"))

		user, err := adapter.Create(context.Background(), newUser)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, int64(11), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a conflict, not a silent no-op", func(t *testing.T) {
		client, mock := setupMockClient(t)
		adapter := NewUserAdapter(client, nil)

		mock.ExpectQuery(`INSERT INTO "users"`).
			WillReturnError(&pq.Error{
				Code:       "23505",
				Message:    `duplicate key value violates unique constraint "users_email_key"`,
				Constraint: "users_email_key",
			})

		user, err := adapter.Create(context.Background(), newUser)
		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))

		var pqErr *pq.Error
		require.ErrorAs(t, err, &pqErr)
		assert.Equal(t, "users_email_key", pqErr.Constraint)
	})
}

func TestStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"unique violation", &pq.Error{Code: "23505"}, apperrors.ErrorTypeConflict},
		{"foreign key violation", &pq.Error{Code: "23503"}, apperrors.ErrorTypeValidation},
		{"not null violation", &pq.Error{Code: "23502"}, apperrors.ErrorTypeValidation},
		{"check violation", &pq.Error{Code: "23514"}, apperrors.ErrorTypeValidation},
		{"syntax error", &pq.Error{Code: "42601"}, apperrors.ErrorTypeInternal},
		{"non-driver error", errors.New("i/o timeout"), apperrors.ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := storeError("statement failed", tt.err)
			assert.True(t, apperrors.IsType(err, tt.want), "got %v", err)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
