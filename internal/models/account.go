package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database representation of a user's cash vault.
type Account struct {
	AccountID   string          `db:"account_id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	Type        string          `db:"type"`
	Balance     decimal.Decimal `db:"balance"` // Persisted running total
	Color       string          `db:"color"`
	CardNumber  string          `db:"card_number"` // Nullable
	CardHolder  string          `db:"card_holder"` // Nullable
	ClientRef   string          `db:"client_ref"`  // Nullable
	AuditFields                 // Embed common audit fields
}
