package repositories

import (
	"context"

	"github.com/lightbnb/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations.
// Lookups return a nil user and a nil error when no row matches.
type UserRepository interface {
	// Create inserts a user and returns the stored row
	Create(ctx context.Context, user entities.NewUser) (*entities.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*entities.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}
