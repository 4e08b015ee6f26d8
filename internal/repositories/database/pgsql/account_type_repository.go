package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finvault/finvault_backend/internal/apperrors"
	"github.com/finvault/finvault_backend/internal/core/domain"
	portsrepo "github.com/finvault/finvault_backend/internal/core/ports/repositories"
	"github.com/finvault/finvault_backend/internal/models"
	"github.com/finvault/finvault_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountTypeColumns = `account_type_id, user_id, label, theme, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountTypeRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountTypeRepository creates a new repository for account type data.
func newPgxAccountTypeRepository(pool *pgxpool.Pool) portsrepo.AccountTypeRepository {
	return &PgxAccountTypeRepository{pool: pool}
}

// Ensure PgxAccountTypeRepository implements portsrepo.AccountTypeRepository
var _ portsrepo.AccountTypeRepository = (*PgxAccountTypeRepository)(nil)

// SaveAccountType inserts a new account type. A duplicate label under the same
// owner surfaces as apperrors.ErrConflict.
func (r *PgxAccountTypeRepository) SaveAccountType(ctx context.Context, accountType domain.AccountType) error {
	modelAT := mapping.ToModelAccountType(accountType)

	query := `
		INSERT INTO account_types (` + accountTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		modelAT.AccountTypeID,
		modelAT.UserID,
		modelAT.Label,
		modelAT.Theme,
		modelAT.CreatedAt,
		modelAT.CreatedBy,
		modelAT.LastUpdatedAt,
		modelAT.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account type label %q already exists", apperrors.ErrConflict, modelAT.Label)
		}
		return fmt.Errorf("failed to save account type %s: %w", modelAT.AccountTypeID, err)
	}
	return nil
}

// FindAccountTypeByLabel retrieves an account type by its label under the owner.
func (r *PgxAccountTypeRepository) FindAccountTypeByLabel(ctx context.Context, userID string, label string) (*domain.AccountType, error) {
	query := `
		SELECT ` + accountTypeColumns + `
		FROM account_types
		WHERE user_id = $1 AND label = $2;
	`
	var modelAT models.AccountType
	err := r.pool.QueryRow(ctx, query, userID, label).Scan(
		&modelAT.AccountTypeID,
		&modelAT.UserID,
		&modelAT.Label,
		&modelAT.Theme,
		&modelAT.CreatedAt,
		&modelAT.CreatedBy,
		&modelAT.LastUpdatedAt,
		&modelAT.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account type by label %q: %w", label, err)
	}

	domainAT := mapping.ToDomainAccountType(modelAT)
	return &domainAT, nil
}

// ListAccountTypes retrieves all account types owned by the user.
func (r *PgxAccountTypeRepository) ListAccountTypes(ctx context.Context, userID string) ([]domain.AccountType, error) {
	query := `
		SELECT ` + accountTypeColumns + `
		FROM account_types
		WHERE user_id = $1
		ORDER BY label ASC;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account types for user %s: %w", userID, err)
	}
	defer rows.Close()

	accountTypes := []domain.AccountType{}
	for rows.Next() {
		var modelAT models.AccountType
		err := rows.Scan(
			&modelAT.AccountTypeID,
			&modelAT.UserID,
			&modelAT.Label,
			&modelAT.Theme,
			&modelAT.CreatedAt,
			&modelAT.CreatedBy,
			&modelAT.LastUpdatedAt,
			&modelAT.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account type row: %w", err)
		}
		accountTypes = append(accountTypes, mapping.ToDomainAccountType(modelAT))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account type rows: %w", err)
	}

	return accountTypes, nil
}

// DeleteAccountType removes an account type owned by the user.
func (r *PgxAccountTypeRepository) DeleteAccountType(ctx context.Context, userID string, accountTypeID string) error {
	query := `DELETE FROM account_types WHERE account_type_id = $1 AND user_id = $2;`
	cmdTag, err := r.pool.Exec(ctx, query, accountTypeID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account type %s: %w", accountTypeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
