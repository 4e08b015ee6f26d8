package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finvault/finvault_backend/internal/apperrors"
	"github.com/finvault/finvault_backend/internal/core/domain"
	portsrepo "github.com/finvault/finvault_backend/internal/core/ports/repositories"
	"github.com/finvault/finvault_backend/internal/middleware"
	"github.com/finvault/finvault_backend/internal/models"
	"github.com/finvault/finvault_backend/internal/utils/accounting"
	"github.com/finvault/finvault_backend/internal/utils/mapping"
	"github.com/finvault/finvault_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, account_id, amount, type, category, description, date, balance_at, transfer_group_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// The account repository supplies the atomic balance increment primitives that
// every mutation here pairs with its row write.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// scanTransaction scans one transaction row in the transactionColumns order.
func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var modelTxn models.Transaction
	var description sql.NullString
	var transferGroupID sql.NullString

	err := row.Scan(
		&modelTxn.TransactionID,
		&modelTxn.UserID,
		&modelTxn.AccountID,
		&modelTxn.Amount,
		&modelTxn.Type,
		&modelTxn.Category,
		&description,
		&modelTxn.Date,
		&modelTxn.BalanceAt,
		&transferGroupID,
		&modelTxn.CreatedAt,
		&modelTxn.CreatedBy,
		&modelTxn.LastUpdatedAt,
		&modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}

	if description.Valid {
		modelTxn.Description = description.String
	}
	if transferGroupID.Valid {
		modelTxn.TransferGroupID = &transferGroupID.String
	}
	return modelTxn, nil
}

// insertTransaction inserts one transaction row within the given transaction.
func insertTransaction(ctx context.Context, tx pgx.Tx, modelTxn models.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.AccountID,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.Category,
		modelTxn.Description,
		modelTxn.Date,
		modelTxn.BalanceAt,
		modelTxn.TransferGroupID,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

// SaveTransaction increments the owning account's balance by delta, snapshots
// the resulting balance into the transaction, and inserts the row. Both writes
// share one store transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	balance, err := r.accountRepo.ApplyBalanceDelta(ctx, tx, txn.UserID, txn.AccountID, delta, txn.LastUpdatedBy, txn.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	txn.BalanceAt = balance

	if err := insertTransaction(ctx, tx, mapping.ToModelTransaction(txn)); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// UpdateTransaction applies the caller-netted per-account deltas and rewrites
// the row. The target account's delta runs first so its post-adjustment
// balance can be snapshotted into the row; remaining accounts (the reversal on
// a prior account when the transaction moved) go through the batch path.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	targetDelta := balanceChanges[txn.AccountID]
	balance, err := r.accountRepo.ApplyBalanceDelta(ctx, tx, txn.UserID, txn.AccountID, targetDelta, txn.LastUpdatedBy, txn.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	txn.BalanceAt = balance

	others := make(map[string]decimal.Decimal, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if accountID != txn.AccountID {
			others[accountID] = delta
		}
	}
	if err := r.accountRepo.ApplyBalanceDeltas(ctx, tx, txn.UserID, others, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return nil, err
	}

	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $3, amount = $4, type = $5, category = $6, description = $7, date = $8, balance_at = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1 AND user_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.UserID,
		modelTxn.AccountID,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.Category,
		modelTxn.Description,
		modelTxn.Date,
		modelTxn.BalanceAt,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// DeleteTransaction reverses the transaction's effect on its account and
// removes the row. A missing account is tolerated so orphaned rows can still
// be cleared.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, reversalDelta decimal.Decimal) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = r.accountRepo.ApplyBalanceDelta(ctx, tx, txn.UserID, txn.AccountID, reversalDelta, txn.UserID, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Warn("Account missing during transaction delete, removing row without balance adjustment",
			slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	}

	query := `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	cmdTag, err := tx.Exec(ctx, query, txn.TransactionID, txn.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// DeleteTransactionsByIDs applies one aggregated increment per affected
// account and removes all matching rows in one statement.
func (r *PgxTransactionRepository) DeleteTransactionsByIDs(ctx context.Context, userID string, transactionIDs []string, balanceChanges map[string]decimal.Decimal) (int64, error) {
	if len(transactionIDs) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.ApplyBalanceDeltas(ctx, tx, userID, balanceChanges, userID, time.Now().UTC()); err != nil {
		return 0, err
	}

	query := `DELETE FROM transactions WHERE user_id = $1 AND transaction_id = ANY($2);`
	cmdTag, err := tx.Exec(ctx, query, userID, transactionIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete transactions: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

// SaveTransferPair applies the source and target adjustments as two atomic
// increments and inserts both halves inside one store transaction, so a
// failure on either side leaves no dangling half.
func (r *PgxTransactionRepository) SaveTransferPair(ctx context.Context, outgoing domain.Transaction, incoming domain.Transaction) (*domain.Transaction, *domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	for _, half := range []*domain.Transaction{&outgoing, &incoming} {
		delta, err := accounting.SignedAmount(half.Type, half.Amount)
		if err != nil {
			return nil, nil, err
		}
		balance, err := r.accountRepo.ApplyBalanceDelta(ctx, tx, half.UserID, half.AccountID, delta, half.LastUpdatedBy, half.LastUpdatedAt)
		if err != nil {
			return nil, nil, err
		}
		half.BalanceAt = balance

		if err := insertTransaction(ctx, tx, mapping.ToModelTransaction(*half)); err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &outgoing, &incoming, nil
}

// FindTransactionByID retrieves a transaction by its ID, scoped to the owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2;
	`
	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// FindTransactionsByIDs retrieves the subset of the given ids that exist under
// the owner.
func (r *PgxTransactionRepository) FindTransactionsByIDs(ctx context.Context, userID string, transactionIDs []string) ([]domain.Transaction, error) {
	if len(transactionIDs) == 0 {
		return []domain.Transaction{}, nil
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_id = ANY($2);
	`
	return r.queryTransactions(ctx, query, userID, transactionIDs)
}

// FindAllTransactions retrieves every transaction owned by the user.
func (r *PgxTransactionRepository) FindAllTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1;
	`
	return r.queryTransactions(ctx, query, userID)
}

// ListTransactions retrieves a page of transactions ordered by date and then
// creation time descending, using keyset pagination over (date, created_at).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, accountID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
	`
	args := []any{userID}

	if accountID != nil && *accountID != "" {
		args = append(args, *accountID)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		date, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, date, createdAt)
		query += fmt.Sprintf(" AND (date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d", len(args))

	transactions, err := r.queryTransactions(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var newNextToken *string
	if len(transactions) > limit {
		transactions = transactions[:limit]
		last := transactions[len(transactions)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}
	return transactions, newNextToken, nil
}

// queryTransactions runs a multi-row transaction query and maps the results.
func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		modelTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		modelTxns = append(modelTxns, modelTxn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}
