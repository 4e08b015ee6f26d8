package services

import (
	"context"
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/finvault/finvault_backend/internal/dto"
)

// UserSvcFacade defines user registration and credential verification.
type UserSvcFacade interface {
	// Register creates a new user and seeds their default account and account
	// types. Seeding failures are logged, never propagated.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies the given credentials and returns the user.
	Authenticate(ctx context.Context, email string, password string) (*domain.User, error)

	// GetUserByID retrieves a user by their unique identifier.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken issues a signed JWT for the user and returns it with
	// its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
