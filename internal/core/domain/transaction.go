package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or removes from its account.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// TransferCategory is the category assigned to both halves of a transfer pair.
const TransferCategory = "Transfer"

// Transaction represents a single signed monetary event against exactly one account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary key (UUID)
	UserID          string          `json:"userID"`        // Owning user
	AccountID       string          `json:"accountID"`     // FK -> Account.accountID
	Amount          decimal.Decimal `json:"amount"`        // Always positive; sign is derived from Type
	Type            TransactionType `json:"type"`          // income or expense
	Category        string          `json:"category"`
	Description     string          `json:"description"` // Optional
	Date            time.Time       `json:"date"`
	BalanceAt       decimal.Decimal `json:"balanceAt"`       // Account balance snapshot taken right after this transaction's effect applied
	TransferGroupID *string         `json:"transferGroupID"` // Shared by both halves of a transfer pair, nil otherwise
	AuditFields
}

// SignedAmount returns the transaction's contribution to its account balance:
// +Amount for income, -Amount for expense.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsTransferHalf reports whether this transaction is one side of a transfer pair.
func (t Transaction) IsTransferHalf() bool {
	return t.TransferGroupID != nil && *t.TransferGroupID != ""
}
