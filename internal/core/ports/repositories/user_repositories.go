package repositories

import (
	"context"

	"github.com/finvault/finvault_backend/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate if the
	// email is already registered.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
