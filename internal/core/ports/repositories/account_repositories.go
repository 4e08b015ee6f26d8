package repositories

import (
	"context"
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data. Every lookup is
// scoped to the owning user.
type AccountReader interface {
	// FindAccountByID retrieves a specific account owned by the given user.
	FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves an account by exact name match under the owner.
	FindAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error)

	// FindAccountByClientRef retrieves an account by its stable client-generated reference.
	FindAccountByClientRef(ctx context.Context, userID string, clientRef string) (*domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by the user, ordered by
	// name and then creation time ascending (duplicate cleanup relies on this order).
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountDetails updates an account's display metadata. It never
	// touches the balance column; balance moves only through delta increments.
	UpdateAccountDetails(ctx context.Context, account domain.Account) error

	// DeleteAccountCascade removes the account and then every transaction
	// referencing it within a single store transaction. Returns the number of
	// cascaded transaction removals.
	DeleteAccountCascade(ctx context.Context, userID string, accountID string) (int64, error)
}

// AccountBalanceSupport defines the atomic balance adjustment primitives.
// Every single-account balance mutation goes through these as a delta
// increment against the store, never as read-current-then-write-absolute.
type AccountBalanceSupport interface {
	// ApplyBalanceDelta atomically increments the account balance by delta
	// within the given transaction and returns the resulting balance.
	ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, userID string, accountID string, delta decimal.Decimal, updatedBy string, now time.Time) (decimal.Decimal, error)

	// ApplyBalanceDeltas applies one aggregated atomic increment per account
	// within the given transaction (batched; one write per distinct account).
	ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, userID string, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
