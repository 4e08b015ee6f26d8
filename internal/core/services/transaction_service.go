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
	"github.com/finvault/finvault_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrSameAccountTransfer is returned when a transfer names the same account
	// as both source and target.
	ErrSameAccountTransfer = errors.New("transfer source and target accounts must differ")

	// ErrNonPositiveAmount is returned when a transaction amount is zero or negative.
	ErrNonPositiveAmount = errors.New("amount must be positive")
)

// transactionService implements the balance-coupled mutation protocols. It
// computes per-account signed deltas and hands them to the repository layer,
// which applies them as atomic increments alongside the row writes.
type transactionService struct {
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a new transaction against an account owned by the
// user and applies its signed effect to the account balance exactly once.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	// Ownership check up front; the repository's atomic increment re-checks it.
	if _, err := s.accountRepo.FindAccountByID(ctx, userID, req.AccountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to resolve account for transaction create", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		}
		return nil, err
	}

	delta, err := accounting.SignedAmount(req.Type, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		AccountID:     req.AccountID,
		Amount:        req.Amount,
		Type:          req.Type,
		Category:      req.Category,
		Description:   req.Description,
		Date:          req.Date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
		// BalanceAt is snapshotted by the repository from the post-increment balance.
	}

	persisted, err := s.txnRepo.SaveTransaction(ctx, txn, delta)
	if err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}

	logger.Info("Transaction created", slog.String("transaction_id", persisted.TransactionID), slog.String("account_id", persisted.AccountID))
	return persisted, nil
}

// UpdateTransaction reverses the existing transaction's effect, applies the
// requested field changes and re-applies the new effect against the target
// account. When the account is unchanged, the reversal and forward deltas net
// into a single increment against that account so the adjustment happens as
// one atomic statement.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for update", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	reversal, err := accounting.ReversalAmount(existing.Type, existing.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute reversal delta: %w", err)
	}

	updated := *existing
	if req.AccountID != nil {
		updated.AccountID = *req.AccountID
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.Type != nil {
		updated.Type = *req.Type
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Date != nil {
		updated.Date = *req.Date
	}

	if updated.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	// Resolve the target account when the transaction moves.
	if updated.AccountID != existing.AccountID {
		if _, err := s.accountRepo.FindAccountByID(ctx, userID, updated.AccountID); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				logger.Error("Failed to resolve target account for transaction update", slog.String("error", err.Error()), slog.String("account_id", updated.AccountID))
			}
			return nil, err
		}
	}

	forward, err := accounting.SignedAmount(updated.Type, updated.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	balanceChanges := portsrepo.BalanceDeltas{}
	balanceChanges[existing.AccountID] = balanceChanges[existing.AccountID].Add(reversal)
	balanceChanges[updated.AccountID] = balanceChanges[updated.AccountID].Add(forward)

	now := time.Now().UTC()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = userID

	persisted, err := s.txnRepo.UpdateTransaction(ctx, updated, balanceChanges)
	if err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, err
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID), slog.String("account_id", persisted.AccountID))
	return persisted, nil
}

// DeleteTransaction reverses a transaction's effect on its account and removes
// the record. If the account no longer exists the record is still removed
// without an adjustment.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction for delete", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return err
	}

	reversal, err := accounting.ReversalAmount(txn.Type, txn.Amount)
	if err != nil {
		return fmt.Errorf("failed to compute reversal delta: %w", err)
	}

	if err := s.txnRepo.DeleteTransaction(ctx, *txn, reversal); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return err
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID), slog.String("account_id", txn.AccountID))
	return nil
}

// DeleteTransactions removes the listed transactions. The net balance effect
// equals deleting them one at a time, but account writes are bounded by the
// number of distinct accounts touched.
func (s *transactionService) DeleteTransactions(ctx context.Context, userID string, transactionIDs []string) (int64, error) {
	if len(transactionIDs) == 0 {
		return 0, fmt.Errorf("%w: transaction id list must not be empty", apperrors.ErrValidation)
	}

	txns, err := s.txnRepo.FindTransactionsByIDs(ctx, userID, transactionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch transactions for bulk delete: %w", err)
	}
	return s.deleteBatch(ctx, userID, txns)
}

// DeleteAllTransactions removes every transaction owned by the user.
func (s *transactionService) DeleteAllTransactions(ctx context.Context, userID string) (int64, error) {
	txns, err := s.txnRepo.FindAllTransactions(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch transactions for delete-all: %w", err)
	}
	return s.deleteBatch(ctx, userID, txns)
}

func (s *transactionService) deleteBatch(ctx context.Context, userID string, txns []domain.Transaction) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(txns) == 0 {
		return 0, nil
	}

	balanceChanges, err := accounting.AggregateReversalDeltas(txns)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate reversal deltas: %w", err)
	}

	ids := make([]string, len(txns))
	for i, txn := range txns {
		ids[i] = txn.TransactionID
	}

	removed, err := s.txnRepo.DeleteTransactionsByIDs(ctx, userID, ids, balanceChanges)
	if err != nil {
		logger.Error("Failed to bulk delete transactions", slog.String("error", err.Error()), slog.Int("count", len(ids)))
		return 0, err
	}

	logger.Info("Transactions bulk deleted", slog.Int64("removed", removed), slog.Int("accounts_affected", len(balanceChanges)))
	return removed, nil
}

// Transfer moves amount between two distinct accounts owned by the user,
// producing an expense on the source and an income on the target that share a
// transfer group id.
func (s *transactionService) Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*domain.Transaction, *domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromAccountID == req.ToAccountID {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrSameAccountTransfer)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
	}

	source, err := s.accountRepo.FindAccountByID(ctx, userID, req.FromAccountID)
	if err != nil {
		return nil, nil, err
	}
	target, err := s.accountRepo.FindAccountByID(ctx, userID, req.ToAccountID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	outDescription := fmt.Sprintf("Transfer to %s", target.Name)
	inDescription := fmt.Sprintf("Transfer from %s", source.Name)
	if req.Description != nil && *req.Description != "" {
		outDescription = *req.Description
		inDescription = *req.Description
	}

	groupID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	outgoing := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       source.AccountID,
		Amount:          req.Amount,
		Type:            domain.Expense,
		Category:        domain.TransferCategory,
		Description:     outDescription,
		Date:            date,
		TransferGroupID: &groupID,
		AuditFields:     audit,
	}
	incoming := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       target.AccountID,
		Amount:          req.Amount,
		Type:            domain.Income,
		Category:        domain.TransferCategory,
		Description:     inDescription,
		Date:            date,
		TransferGroupID: &groupID,
		AuditFields:     audit,
	}

	out, in, err := s.txnRepo.SaveTransferPair(ctx, outgoing, incoming)
	if err != nil {
		logger.Error("Failed to save transfer pair", slog.String("error", err.Error()), slog.String("from", source.AccountID), slog.String("to", target.AccountID))
		return nil, nil, err
	}

	logger.Info("Transfer completed", slog.String("transfer_group_id", groupID), slog.String("from", source.AccountID), slog.String("to", target.AccountID))
	return out, in, nil
}

// GetTransactionByID retrieves a specific transaction owned by the user.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a page of the user's transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, userID, params.AccountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}
