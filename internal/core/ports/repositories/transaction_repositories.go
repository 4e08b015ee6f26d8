package repositories

import (
	"context"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data, all scoped to
// the owning user.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction owned by the given user.
	FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByIDs retrieves the subset of the given ids that exist
	// under the owner, in one scan.
	FindTransactionsByIDs(ctx context.Context, userID string, transactionIDs []string) ([]domain.Transaction, error)

	// FindAllTransactions retrieves every transaction owned by the user.
	FindAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)

	// ListTransactions retrieves transactions ordered by date descending,
	// optionally filtered by account, with token pagination.
	ListTransactions(ctx context.Context, userID string, accountID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines the balance-coupled mutation protocols. Each method
// runs as a single store transaction: the balance delta increments and the
// transaction row writes commit or roll back together.
type TransactionWriter interface {
	// SaveTransaction atomically increments the owning account's balance by
	// delta, snapshots the resulting balance into the transaction's BalanceAt,
	// and inserts the row. Returns the persisted transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) (*domain.Transaction, error)

	// UpdateTransaction applies the given per-account balance deltas (the
	// reversal of the old effect and the forward application of the new one,
	// already netted per account by the caller), snapshots the target
	// account's resulting balance into BalanceAt, and updates the row.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error)

	// DeleteTransaction applies the reversal delta to the owning account and
	// removes the row. A missing account is tolerated: the row is still
	// removed without a balance adjustment.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, reversalDelta decimal.Decimal) error

	// DeleteTransactionsByIDs applies one aggregated increment per affected
	// account, then removes all matching rows in one bulk removal. Returns the
	// number of removed rows.
	DeleteTransactionsByIDs(ctx context.Context, userID string, transactionIDs []string, balanceChanges map[string]decimal.Decimal) (int64, error)

	// SaveTransferPair applies the source and target adjustments as two atomic
	// increments and inserts both halves of the pair, snapshotting each
	// BalanceAt from its account's post-adjustment balance.
	SaveTransferPair(ctx context.Context, outgoing domain.Transaction, incoming domain.Transaction) (*domain.Transaction, *domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}

// BalanceDeltas is a convenience alias used when services hand aggregated
// per-account deltas to the repository layer.
type BalanceDeltas = map[string]decimal.Decimal
