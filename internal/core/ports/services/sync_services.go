package services

import (
	"context"

	"github.com/finvault/finvault_backend/internal/dto"
)

// SyncSvcFacade reconciles batches of locally-originated records into the store.
type SyncSvcFacade interface {
	// Sync reconciles account types (idempotent by label), accounts (by stable
	// client reference, falling back to exact name) and transactions (account
	// references resolved through the local-id mapping; unresolved ones are
	// silently dropped).
	Sync(ctx context.Context, userID string, req dto.SyncRequest) (*dto.SyncResponse, error)
}
