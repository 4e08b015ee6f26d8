package domain_test

import (
	"testing"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string {
	return &s
}

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        decimal.Decimal
	}{
		{
			name: "income contributes positively",
			transaction: domain.Transaction{
				Type:   domain.Income,
				Amount: decimal.NewFromFloat(150.75),
			},
			want: decimal.NewFromFloat(150.75),
		},
		{
			name: "expense contributes negatively",
			transaction: domain.Transaction{
				Type:   domain.Expense,
				Amount: decimal.NewFromFloat(99.99),
			},
			want: decimal.NewFromFloat(-99.99),
		},
		{
			name: "zero amount stays zero",
			transaction: domain.Transaction{
				Type:   domain.Expense,
				Amount: decimal.Zero,
			},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.SignedAmount()
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestTransaction_IsTransferHalf(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        bool
	}{
		{
			name:        "plain transaction",
			transaction: domain.Transaction{TransferGroupID: nil},
			want:        false,
		},
		{
			name:        "transfer half with group id",
			transaction: domain.Transaction{TransferGroupID: stringPtr("group-123")},
			want:        true,
		},
		{
			name:        "empty group id counts as plain",
			transaction: domain.Transaction{TransferGroupID: stringPtr("")},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.transaction.IsTransferHalf())
		})
	}
}
