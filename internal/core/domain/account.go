package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a cash vault owned by a single user.
// Balance is the authoritative running total: the signed sum of all transactions
// referencing this account (+amount for income, -amount for expense).
type Account struct {
	AccountID   string          `json:"accountID"` // Primary key (UUID)
	UserID      string          `json:"userID"`    // Owning user; every read/write is scoped by this
	Name        string          `json:"name"`
	Type        string          `json:"type"` // Free-form classification label (matches an AccountType label)
	Balance     decimal.Decimal `json:"balance"`
	Color       string          `json:"color"`      // Display metadata
	CardNumber  string          `json:"cardNumber"` // Display metadata, optional
	CardHolder  string          `json:"cardHolder"` // Display metadata, optional
	ClientRef   string          `json:"clientRef"`  // Stable client-generated identifier for sync reconciliation, optional
	AuditFields                 // Embed CreatedAt, CreatedBy, etc.
}
