package services

import (
	"context"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/finvault/finvault_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account owned by the user.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts owned by the user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero balance.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an account's display metadata.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account and cascades to its transactions.
	// Returns the number of cascaded transaction removals.
	DeleteAccount(ctx context.Context, userID string, accountID string) (int64, error)
}

// AccountMaintenanceSvc defines repair operations over the user's account set.
type AccountMaintenanceSvc interface {
	// CleanupDuplicateAccounts keeps the oldest account per duplicate name
	// group and deletes every later duplicate, cascading their transactions.
	CleanupDuplicateAccounts(ctx context.Context, userID string) (*dto.CleanupResponse, error)
}

// AccountTypeSvc defines operations for account type labels.
type AccountTypeSvc interface {
	// CreateAccountType persists a new classification label for the user.
	CreateAccountType(ctx context.Context, userID string, req dto.CreateAccountTypeRequest) (*domain.AccountType, error)

	// ListAccountTypes retrieves the user's classification labels.
	ListAccountTypes(ctx context.Context, userID string) ([]domain.AccountType, error)

	// DeleteAccountType removes a classification label owned by the user.
	DeleteAccountType(ctx context.Context, userID string, accountTypeID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountMaintenanceSvc
	AccountTypeSvc
}
