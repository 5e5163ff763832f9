package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/lightbnb/backend/internal/domain/entities"
	"github.com/lightbnb/backend/internal/domain/repositories"
	"github.com/lightbnb/backend/internal/infrastructure/clients/postgres"
	"github.com/lightbnb/backend/internal/infrastructure/observability"
	apperrors "github.com/lightbnb/backend/pkg/errors"
)

var userColumns = []interface{}{"id", "name", "email", "password"}

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	instrumentation
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.UserRepository {
	return &UserAdapter{
		client:          client,
		instrumentation: instrumentation{metrics: metrics},
	}
}

// Create inserts a user. A duplicate email surfaces as a conflict error.
func (a *UserAdapter) Create(ctx context.Context, user entities.NewUser) (*entities.User, error) {
	query, args, err := dialect.Insert("users").
		Rows(goqu.Record{
			"name":     user.Name,
			"email":    user.Email,
			"password": user.Password,
		}).
		Returning(userColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user insert query", err)
	}

	return a.getOne(ctx, "users.create", "failed to create user", query, args)
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	return a.getByField(ctx, "users.get_by_id", "id", id)
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getByField(ctx, "users.get_by_email", "email", email)
}

func (a *UserAdapter) getByField(ctx context.Context, operation, field string, value interface{}) (*entities.User, error) {
	query, args, err := dialect.From("users").
		Select(userColumns...).
		Where(goqu.Ex{field: value}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	return a.getOne(ctx, operation, "failed to get user", query, args)
}

// getOne runs a single-row statement; no row yields a nil user.
func (a *UserAdapter) getOne(ctx context.Context, operation, message, query string, args []interface{}) (*entities.User, error) {
	var found *entities.User
	err := a.observe(ctx, operation, func(ctx context.Context) error {
		user := &entities.User{}
		if err := a.client.DB().GetContext(ctx, user, query, args...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return storeError(message, err)
		}
		found = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}
