package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest defines the data needed to move funds between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          *time.Time      `json:"date"`
	Description   *string         `json:"description"`
}

// TransferResponse returns both halves of the transfer pair.
type TransferResponse struct {
	Outgoing TransactionResponse `json:"outgoing"`
	Incoming TransactionResponse `json:"incoming"`
}
