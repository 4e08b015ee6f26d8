package repositories

import (
	"context"

	"github.com/finvault/finvault_backend/internal/core/domain"
)

// AccountTypeRepository defines persistence operations for account type labels.
type AccountTypeRepository interface {
	// SaveAccountType persists a new account type. Returns apperrors.ErrConflict
	// if the label already exists for the owner.
	SaveAccountType(ctx context.Context, accountType domain.AccountType) error

	// FindAccountTypeByLabel retrieves an account type by its label under the owner.
	FindAccountTypeByLabel(ctx context.Context, userID string, label string) (*domain.AccountType, error)

	// ListAccountTypes retrieves all account types owned by the user, ordered by label.
	ListAccountTypes(ctx context.Context, userID string) ([]domain.AccountType, error)

	// DeleteAccountType removes an account type owned by the user.
	DeleteAccountType(ctx context.Context, userID string, accountTypeID string) error
}
