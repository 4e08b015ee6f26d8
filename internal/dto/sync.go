package dto

import (
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SyncAccount is a locally-originated account carried in a sync batch.
// LocalID is the client-local identifier used by transactions in the same
// batch; ClientRef is the stable identifier used for reconciliation across
// repeated syncs.
type SyncAccount struct {
	LocalID    string `json:"localID" binding:"required"`
	ClientRef  string `json:"clientRef"`
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type"`
	Color      string `json:"color"`
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
}

// SyncTransaction is a locally-originated transaction carried in a sync batch.
// AccountLocalID references a SyncAccount.LocalID from the same batch.
type SyncTransaction struct {
	AccountLocalID string                 `json:"accountLocalID" binding:"required"`
	Amount         decimal.Decimal        `json:"amount" binding:"required"`
	Type           domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Category       string                 `json:"category" binding:"required"`
	Description    string                 `json:"description"`
	Date           time.Time              `json:"date" binding:"required"`
}

// SyncAccountType is an account-type definition carried in a sync batch.
type SyncAccountType struct {
	Label string                  `json:"label" binding:"required"`
	Theme domain.AccountTypeTheme `json:"theme"`
}

// SyncRequest is a batch of locally-originated records to reconcile into the store.
type SyncRequest struct {
	Accounts     []SyncAccount     `json:"accounts"`
	Transactions []SyncTransaction `json:"transactions"`
	AccountTypes []SyncAccountType `json:"accountTypes"`
}

// SyncResponse reports how the batch was reconciled.
type SyncResponse struct {
	AccountsMapped       int `json:"accountsMapped"`
	TransactionsInserted int `json:"transactionsInserted"`
}
