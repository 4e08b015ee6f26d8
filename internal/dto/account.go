package dto

import (
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Balance always starts at zero; it only moves through transaction mutations.
type CreateAccountRequest struct {
	Name       string `json:"name" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Color      string `json:"color"`
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
}

// UpdateAccountRequest defines the display metadata allowed for updating an
// account. Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name       *string `json:"name"`
	Type       *string `json:"type"`
	Color      *string `json:"color"`
	CardNumber *string `json:"cardNumber"`
	CardHolder *string `json:"cardHolder"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Color         string          `json:"color"`
	CardNumber    string          `json:"cardNumber,omitempty"`
	CardHolder    string          `json:"cardHolder,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Type:          acc.Type,
		Balance:       acc.Balance,
		Color:         acc.Color,
		CardNumber:    acc.CardNumber,
		CardHolder:    acc.CardHolder,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// DeleteAccountResponse reports the result of a cascade account deletion.
type DeleteAccountResponse struct {
	RemovedTransactions int64 `json:"removedTransactions"`
}

// CleanupResponse reports the result of a duplicate-account cleanup pass.
type CleanupResponse struct {
	RemovedAccounts int      `json:"removedAccounts"`
	AffectedNames   []string `json:"affectedNames"`
}
