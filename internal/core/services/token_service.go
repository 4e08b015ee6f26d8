package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
	portssvc "github.com/finvault/finvault_backend/internal/core/ports/services"
	"github.com/finvault/finvault_backend/internal/utils"
)

type tokenService struct {
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewTokenService creates a new TokenService.
func NewTokenService(jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.TokenSvcFacade {
	return &tokenService{
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken issues a signed JWT for the user.
func (s *tokenService) GenerateAccessToken(_ context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.jwtExpiry)
	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}
