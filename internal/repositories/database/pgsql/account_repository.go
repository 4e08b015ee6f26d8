package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finvault/finvault_backend/internal/apperrors"
	"github.com/finvault/finvault_backend/internal/core/domain"
	portsrepo "github.com/finvault/finvault_backend/internal/core/ports/repositories"
	"github.com/finvault/finvault_backend/internal/models"
	"github.com/finvault/finvault_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, name, type, balance, color, card_number, card_holder, client_ref, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// scanAccount scans one account row in the accountColumns order.
func scanAccount(row pgx.Row) (models.Account, error) {
	var modelAcc models.Account
	var clientRef sql.NullString

	err := row.Scan(
		&modelAcc.AccountID,
		&modelAcc.UserID,
		&modelAcc.Name,
		&modelAcc.Type,
		&modelAcc.Balance,
		&modelAcc.Color,
		&modelAcc.CardNumber,
		&modelAcc.CardHolder,
		&clientRef,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}

	if clientRef.Valid {
		modelAcc.ClientRef = clientRef.String
	}
	return modelAcc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	var clientRef sql.NullString
	if modelAcc.ClientRef != "" {
		clientRef = sql.NullString{String: modelAcc.ClientRef, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.Name,
		modelAcc.Type,
		modelAcc.Balance,
		modelAcc.Color,
		modelAcc.CardNumber,
		modelAcc.CardHolder,
		clientRef,
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, scoped to the owner.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND user_id = $2;
	`
	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByName retrieves the oldest account with an exact name match.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND name = $2
		ORDER BY created_at ASC
		LIMIT 1;
	`
	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", name, err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// FindAccountByClientRef retrieves an account by its client-generated reference.
func (r *PgxAccountRepository) FindAccountByClientRef(ctx context.Context, userID string, clientRef string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1 AND client_ref = $2;
	`
	modelAcc, err := scanAccount(r.Pool.QueryRow(ctx, query, userID, clientRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by client ref: %w", err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// ListAccountsByUser retrieves all accounts for a user, ordered by name and
// then creation time. Duplicate cleanup depends on this ordering.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY name ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelAccs := []models.Account{}
	for rows.Next() {
		modelAcc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		modelAccs = append(modelAccs, modelAcc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return mapping.ToDomainAccountSlice(modelAccs), nil
}

// UpdateAccountDetails updates an account's display metadata. The balance
// column is deliberately absent from the SET list; balances move only through
// ApplyBalanceDelta and ApplyBalanceDeltas.
func (r *PgxAccountRepository) UpdateAccountDetails(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $3, type = $4, color = $5, card_number = $6, card_holder = $7, last_updated_at = $8, last_updated_by = $9
		WHERE account_id = $1 AND user_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.UserID,
		modelAcc.Name,
		modelAcc.Type,
		modelAcc.Color,
		modelAcc.CardNumber,
		modelAcc.CardHolder,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", modelAcc.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccountCascade removes the account and every transaction referencing
// it within one store transaction, so a failure part way leaves both intact.
// Returns the number of cascaded transaction removals.
func (r *PgxAccountRepository) DeleteAccountCascade(ctx context.Context, userID string, accountID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	accountQuery := `DELETE FROM accounts WHERE account_id = $1 AND user_id = $2;`
	cmdTag, err := tx.Exec(ctx, accountQuery, accountID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrNotFound
	}

	txnQuery := `DELETE FROM transactions WHERE account_id = $1 AND user_id = $2;`
	txnTag, err := tx.Exec(ctx, txnQuery, accountID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete transactions for account %s: %w", accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return txnTag.RowsAffected(), nil
}

// ApplyBalanceDelta increments the account balance atomically and returns the
// resulting balance. The increment happens inside the store so concurrent
// adjustments never clobber each other.
func (r *PgxAccountRepository) ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, userID string, accountID string, delta decimal.Decimal, updatedBy string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND user_id = $2
		RETURNING balance;
	`
	var balance decimal.Decimal
	err := tx.QueryRow(ctx, query, accountID, userID, delta, now, updatedBy).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to apply balance delta to account %s: %w", accountID, err)
	}
	return balance, nil
}

// ApplyBalanceDeltas applies one aggregated increment per account as a batch
// within the given transaction.
func (r *PgxAccountRepository) ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, userID string, balanceChanges map[string]decimal.Decimal, updatedBy string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND user_id = $2;
	`
	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, accountID, userID, delta, now, updatedBy)
		accountIDs = append(accountIDs, accountID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
