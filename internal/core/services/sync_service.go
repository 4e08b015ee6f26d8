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

// syncService reconciles batches of locally-originated records into the store.
type syncService struct {
	accountRepo     portsrepo.AccountRepositoryFacade
	accountTypeRepo portsrepo.AccountTypeRepository
	txnRepo         portsrepo.TransactionWriter
}

// NewSyncService creates a new SyncService.
func NewSyncService(accountRepo portsrepo.AccountRepositoryFacade, accountTypeRepo portsrepo.AccountTypeRepository, txnRepo portsrepo.TransactionWriter) portssvc.SyncSvcFacade {
	return &syncService{
		accountRepo:     accountRepo,
		accountTypeRepo: accountTypeRepo,
		txnRepo:         txnRepo,
	}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// Sync reconciles the batch. Account types are idempotent by label. Accounts
// are matched by stable client reference first, then by exact name; unmatched
// ones are created. Transactions resolve their account through the local-id
// mapping; unresolved references are dropped, not errors.
func (s *syncService) Sync(ctx context.Context, userID string, req dto.SyncRequest) (*dto.SyncResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	s.importAccountTypes(ctx, userID, req.AccountTypes, now)

	idMapping, accountsMapped, err := s.reconcileAccounts(ctx, userID, req.Accounts, now)
	if err != nil {
		return nil, err
	}

	inserted := 0
	for _, syncTxn := range req.Transactions {
		accountID, ok := idMapping[syncTxn.AccountLocalID]
		if !ok {
			// Unresolvable account reference; the transaction is dropped.
			logger.Debug("Dropping sync transaction with unresolved account reference", slog.String("account_local_id", syncTxn.AccountLocalID))
			continue
		}

		delta, err := accounting.SignedAmount(syncTxn.Type, syncTxn.Amount)
		if err != nil {
			logger.Warn("Skipping sync transaction with invalid type", slog.String("error", err.Error()))
			continue
		}

		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			AccountID:     accountID,
			Amount:        syncTxn.Amount,
			Type:          syncTxn.Type,
			Category:      syncTxn.Category,
			Description:   syncTxn.Description,
			Date:          syncTxn.Date,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}

		if _, err := s.txnRepo.SaveTransaction(ctx, txn, delta); err != nil {
			logger.Error("Failed to insert sync transaction", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to insert sync transaction: %w", err)
		}
		inserted++
	}

	logger.Info("Sync completed", slog.Int("accounts_mapped", accountsMapped), slog.Int("transactions_inserted", inserted))
	return &dto.SyncResponse{AccountsMapped: accountsMapped, TransactionsInserted: inserted}, nil
}

// importAccountTypes inserts account types whose label does not yet exist.
// Failures here are swallowed: they must not abort the encompassing sync.
func (s *syncService) importAccountTypes(ctx context.Context, userID string, accountTypes []dto.SyncAccountType, now time.Time) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, at := range accountTypes {
		if _, err := s.accountTypeRepo.FindAccountTypeByLabel(ctx, userID, at.Label); err == nil {
			continue // Label already exists for this owner.
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Failed to look up account type during sync", slog.String("error", err.Error()), slog.String("label", at.Label))
			continue
		}

		theme := at.Theme
		if theme == "" {
			theme = domain.ThemeDefault
		}
		accountType := domain.AccountType{
			AccountTypeID: uuid.NewString(),
			UserID:        userID,
			Label:         at.Label,
			Theme:         theme,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountTypeRepo.SaveAccountType(ctx, accountType); err != nil {
			logger.Warn("Failed to import account type during sync", slog.String("error", err.Error()), slog.String("label", at.Label))
		}
	}
}

// reconcileAccounts resolves each sync account to a store account and returns
// the client-local id to store id mapping.
func (s *syncService) reconcileAccounts(ctx context.Context, userID string, accounts []dto.SyncAccount, now time.Time) (map[string]string, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	idMapping := make(map[string]string, len(accounts))
	mapped := 0
	for _, syncAcc := range accounts {
		existing, err := s.resolveAccount(ctx, userID, syncAcc)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, fmt.Errorf("failed to resolve sync account %q: %w", syncAcc.Name, err)
		}

		if existing != nil {
			idMapping[syncAcc.LocalID] = existing.AccountID
			mapped++
			continue
		}

		account := domain.Account{
			AccountID:  uuid.NewString(),
			UserID:     userID,
			Name:       syncAcc.Name,
			Type:       syncAcc.Type,
			Balance:    decimal.Zero,
			Color:      syncAcc.Color,
			CardNumber: syncAcc.CardNumber,
			CardHolder: syncAcc.CardHolder,
			ClientRef:  syncAcc.ClientRef,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return nil, 0, fmt.Errorf("failed to create sync account %q: %w", syncAcc.Name, err)
		}
		logger.Info("Sync created account", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
		idMapping[syncAcc.LocalID] = account.AccountID
		mapped++
	}

	return idMapping, mapped, nil
}

// resolveAccount matches a sync account to an existing store account by stable
// client reference first, then by exact name. Matching by name alone is
// fragile under renames; the client reference exists to make repeated syncs
// converge on the same record.
func (s *syncService) resolveAccount(ctx context.Context, userID string, syncAcc dto.SyncAccount) (*domain.Account, error) {
	if syncAcc.ClientRef != "" {
		account, err := s.accountRepo.FindAccountByClientRef(ctx, userID, syncAcc.ClientRef)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return s.accountRepo.FindAccountByName(ctx, userID, syncAcc.Name)
}
