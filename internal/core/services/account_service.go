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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService manages accounts and account type labels. Balance is never
// written here: it starts at zero and moves only through the transaction
// mutation protocols.
type accountService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	accountTypeRepo portsrepo.AccountTypeRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, accountTypeRepo portsrepo.AccountTypeRepository) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     accountRepo,
		accountTypeRepo: accountTypeRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:  uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Type:       req.Type,
		Balance:    decimal.Zero,
		Color:      req.Color,
		CardNumber: req.CardNumber,
		CardHolder: req.CardHolder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
	return &account, nil
}

// GetAccountByID retrieves a specific account owned by the user.
func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves all accounts owned by the user.
func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates an account's display metadata.
func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for update", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Type != nil {
		account.Type = *req.Type
		updated = true
	}
	if req.Color != nil {
		account.Color = *req.Color
		updated = true
	}
	if req.CardNumber != nil {
		account.CardNumber = *req.CardNumber
		updated = true
	}
	if req.CardHolder != nil {
		account.CardHolder = *req.CardHolder
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccountDetails(ctx, *account); err != nil {
		logger.Error("Failed to update account details", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes the account and every transaction referencing it. No
// balance reversal is needed because the account itself is gone, and other
// accounts' balances already reflect only their own transactions.
func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	removed, err := s.accountRepo.DeleteAccountCascade(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return 0, err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID), slog.Int64("cascaded_transactions", removed))
	return removed, nil
}

// CleanupDuplicateAccounts keeps the oldest account per duplicate name group
// and deletes every later duplicate, cascading their transactions. This is a
// lossy repair operation for duplicate default accounts created upstream:
// transactions on removed duplicates are discarded, not merged.
func (s *accountService) CleanupDuplicateAccounts(ctx context.Context, userID string) (*dto.CleanupResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to list accounts for cleanup", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts for cleanup: %w", err)
	}

	// Accounts arrive ordered by name, then created_at ascending, so the first
	// member of each name group is the one to keep.
	removed := 0
	affected := []string{}
	var keptName string
	for i, acc := range accounts {
		if i == 0 || acc.Name != keptName {
			keptName = acc.Name
			continue
		}
		if _, err := s.accountRepo.DeleteAccountCascade(ctx, userID, acc.AccountID); err != nil {
			logger.Error("Failed to delete duplicate account", slog.String("error", err.Error()), slog.String("account_id", acc.AccountID), slog.String("name", acc.Name))
			return nil, fmt.Errorf("failed to delete duplicate account %s: %w", acc.AccountID, err)
		}
		removed++
		if len(affected) == 0 || affected[len(affected)-1] != acc.Name {
			affected = append(affected, acc.Name)
		}
		logger.Info("Duplicate account removed", slog.String("account_id", acc.AccountID), slog.String("name", acc.Name))
	}

	return &dto.CleanupResponse{RemovedAccounts: removed, AffectedNames: affected}, nil
}

// CreateAccountType persists a new classification label for the user.
func (s *accountService) CreateAccountType(ctx context.Context, userID string, req dto.CreateAccountTypeRequest) (*domain.AccountType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	theme := req.Theme
	if theme == "" {
		theme = domain.ThemeDefault
	}

	now := time.Now().UTC()
	accountType := domain.AccountType{
		AccountTypeID: uuid.NewString(),
		UserID:        userID,
		Label:         req.Label,
		Theme:         theme,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountTypeRepo.SaveAccountType(ctx, accountType); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to save account type", slog.String("error", err.Error()), slog.String("label", req.Label))
		}
		return nil, err
	}

	logger.Info("Account type created", slog.String("account_type_id", accountType.AccountTypeID), slog.String("label", accountType.Label))
	return &accountType, nil
}

// ListAccountTypes retrieves the user's classification labels.
func (s *accountService) ListAccountTypes(ctx context.Context, userID string) ([]domain.AccountType, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountTypes, err := s.accountTypeRepo.ListAccountTypes(ctx, userID)
	if err != nil {
		logger.Error("Failed to list account types", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list account types: %w", err)
	}
	if accountTypes == nil {
		return []domain.AccountType{}, nil
	}
	return accountTypes, nil
}

// DeleteAccountType removes a classification label owned by the user.
func (s *accountService) DeleteAccountType(ctx context.Context, userID string, accountTypeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountTypeRepo.DeleteAccountType(ctx, userID, accountTypeID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account type", slog.String("error", err.Error()), slog.String("account_type_id", accountTypeID))
		}
		return err
	}

	logger.Info("Account type deleted", slog.String("account_type_id", accountTypeID))
	return nil
}
