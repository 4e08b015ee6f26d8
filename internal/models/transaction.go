package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for DB storage.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction is the database representation of a single monetary event.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	Type            TransactionType `db:"type"`
	Category        string          `db:"category"`
	Description     string          `db:"description"` // Nullable
	Date            time.Time       `db:"date"`
	BalanceAt       decimal.Decimal `db:"balance_at"`
	TransferGroupID *string         `db:"transfer_group_id"` // Nullable
	AuditFields
}
