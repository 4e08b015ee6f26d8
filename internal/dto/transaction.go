package dto

import (
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a new transaction.
type CreateTransactionRequest struct {
	AccountID   string                 `json:"accountID" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Category    string                 `json:"category" binding:"required"`
	Description string                 `json:"description"`
	Date        time.Time              `json:"date" binding:"required"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateTransactionRequest struct {
	AccountID   *string                 `json:"accountID"` // Optional: re-target to another account
	Amount      *decimal.Decimal        `json:"amount"`
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=income expense"`
	Category    *string                 `json:"category"`
	Description *string                 `json:"description"`
	Date        *time.Time              `json:"date"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	Amount          decimal.Decimal        `json:"amount"`
	Type            domain.TransactionType `json:"type"`
	Category        string                 `json:"category"`
	Description     string                 `json:"description"`
	Date            time.Time              `json:"date"`
	BalanceAt       decimal.Decimal        `json:"balanceAt"`
	TransferGroupID *string                `json:"transferGroupID,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		Type:            txn.Type,
		Category:        txn.Category,
		Description:     txn.Description,
		Date:            txn.Date,
		BalanceAt:       txn.BalanceAt,
		TransferGroupID: txn.TransferGroupID,
		CreatedAt:       txn.CreatedAt,
		LastUpdatedAt:   txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// BulkDeleteTransactionsRequest carries the explicit id list for a bulk delete.
type BulkDeleteTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1"`
}

// DeleteTransactionsResponse reports how many records were removed.
type DeleteTransactionsResponse struct {
	RemovedCount int64 `json:"removedCount"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	AccountID *string `form:"accountID"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
