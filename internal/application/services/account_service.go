package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lightbnb/backend/internal/domain/entities"
	"github.com/lightbnb/backend/internal/domain/repositories"
	"github.com/lightbnb/backend/internal/infrastructure/observability"
	apperrors "github.com/lightbnb/backend/pkg/errors"
)

// AccountService handles sign-up and login on top of the user store.
type AccountService struct {
	users repositories.UserRepository
	cost  int
}

// NewAccountService creates a new account service.
func NewAccountService(users repositories.UserRepository) *AccountService {
	return &AccountService{users: users, cost: bcrypt.DefaultCost}
}

// Register hashes the password and stores a new user. An email that is
// already taken comes back as a conflict error from the store.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user, err := s.users.Create(ctx, entities.NewUser{
		Name:     name,
		Email:    email,
		Password: string(hash),
	})
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int64("user_id", user.ID).
		Msg("user registered")

	return user, nil
}

// Authenticate returns the user whose email and password match.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	return user, nil
}
