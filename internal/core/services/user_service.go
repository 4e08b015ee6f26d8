package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finvault/finvault_backend/internal/apperrors"
	"github.com/finvault/finvault_backend/internal/core/domain"
	portsrepo "github.com/finvault/finvault_backend/internal/core/ports/repositories"
	portssvc "github.com/finvault/finvault_backend/internal/core/ports/services"
	"github.com/finvault/finvault_backend/internal/dto"
	"github.com/finvault/finvault_backend/internal/middleware"
	"github.com/finvault/finvault_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidCredentials is returned when email or password do not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// defaultSeedAccountName is the account every new user starts with.
const defaultSeedAccountName = "Cash"

// defaultSeedAccountTypes are created for every new user so the client has a
// usable palette before its first sync.
var defaultSeedAccountTypes = []struct {
	Label string
	Theme domain.AccountTypeTheme
}{
	{Label: "Cash", Theme: domain.ThemeGreen},
	{Label: "Card", Theme: domain.ThemeBlue},
	{Label: "Savings", Theme: domain.ThemePurple},
}

type userService struct {
	userRepo        portsrepo.UserRepository
	accountRepo     portsrepo.AccountWriter
	accountTypeRepo portsrepo.AccountTypeRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, accountRepo portsrepo.AccountWriter, accountTypeRepo portsrepo.AccountTypeRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		accountTypeRepo: accountTypeRepo,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a user and seeds their starter account and account types.
// Seeding failures are logged and swallowed: the registration itself stands.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "registration",
			LastUpdatedAt: now,
			LastUpdatedBy: "registration",
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Registration attempt for existing email", slog.String("email", req.Email))
		} else {
			logger.Error("Failed to save user", slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.seedDefaults(ctx, user.UserID, now)

	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Authenticate verifies the email and password pair.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(401, "invalid email or password", ErrInvalidCredentials)
		}
		logger.Error("Failed to look up user by email", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewAppError(401, "invalid email or password", ErrInvalidCredentials)
	}

	return user, nil
}

// GetUserByID fetches a user by id.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// seedDefaults creates the starter account and account types for a fresh user.
func (s *userService) seedDefaults(ctx context.Context, userID string, now time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    userID,
		Name:      defaultSeedAccountName,
		Type:      defaultSeedAccountName,
		Balance:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Warn("Failed to seed default account", slog.String("error", err.Error()), slog.String("user_id", userID))
	}

	for _, seed := range defaultSeedAccountTypes {
		accountType := domain.AccountType{
			AccountTypeID: uuid.NewString(),
			UserID:        userID,
			Label:         seed.Label,
			Theme:         seed.Theme,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountTypeRepo.SaveAccountType(ctx, accountType); err != nil {
			logger.Warn("Failed to seed default account type", slog.String("error", err.Error()), slog.String("label", seed.Label))
		}
	}
}
