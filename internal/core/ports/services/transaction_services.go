package services

import (
	"context"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/finvault/finvault_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction owned by the user.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of the user's transactions,
	// newest first, optionally filtered by account.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines the balance-coupled mutation operations.
type TransactionWriterSvc interface {
	// CreateTransaction records a new transaction and applies its effect to
	// the owning account's balance.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction reverses the old effect, applies the field updates and
	// re-applies the new effect, possibly against a different account.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction reverses a transaction's effect and removes it.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error

	// DeleteTransactions removes the listed transactions with one aggregated
	// balance adjustment per affected account. Returns the removed count.
	DeleteTransactions(ctx context.Context, userID string, transactionIDs []string) (int64, error)

	// DeleteAllTransactions removes every transaction owned by the user.
	// Returns the removed count.
	DeleteAllTransactions(ctx context.Context, userID string) (int64, error)

	// Transfer moves a positive amount between two distinct accounts owned by
	// the user, producing a linked expense/income transaction pair.
	Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*domain.Transaction, *domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
