package accounting

import (
	"testing"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name    string
		txnType domain.TransactionType
		amount  decimal.Decimal
		want    decimal.Decimal
		wantErr bool
	}{
		{
			name:    "income is positive",
			txnType: domain.Income,
			amount:  decimal.NewFromFloat(100.50),
			want:    decimal.NewFromFloat(100.50),
		},
		{
			name:    "expense is negative",
			txnType: domain.Expense,
			amount:  decimal.NewFromFloat(42.25),
			want:    decimal.NewFromFloat(-42.25),
		},
		{
			name:    "unknown type is rejected",
			txnType: domain.TransactionType("debit"),
			amount:  decimal.NewFromInt(10),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SignedAmount(tt.txnType, tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestReversalAmount(t *testing.T) {
	reversal, err := ReversalAmount(domain.Income, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, reversal.Equal(decimal.NewFromInt(-100)), "income reversal should be negative")

	reversal, err = ReversalAmount(domain.Expense, decimal.NewFromInt(30))
	require.NoError(t, err)
	assert.True(t, reversal.Equal(decimal.NewFromInt(30)), "expense reversal should be positive")

	_, err = ReversalAmount(domain.TransactionType("credit"), decimal.NewFromInt(1))
	assert.Error(t, err)
}

func TestAggregateReversalDeltas(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "t1", AccountID: "acc-a", Type: domain.Income, Amount: decimal.NewFromInt(100)},
		{TransactionID: "t2", AccountID: "acc-a", Type: domain.Expense, Amount: decimal.NewFromInt(30)},
		{TransactionID: "t3", AccountID: "acc-b", Type: domain.Income, Amount: decimal.NewFromInt(50)},
	}

	deltas, err := AggregateReversalDeltas(txns)
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	// acc-a: -100 (undo income) + 30 (undo expense) = -70
	assert.True(t, deltas["acc-a"].Equal(decimal.NewFromInt(-70)), "got %s", deltas["acc-a"])
	assert.True(t, deltas["acc-b"].Equal(decimal.NewFromInt(-50)), "got %s", deltas["acc-b"])
}

func TestAggregateReversalDeltas_CancellingPair(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "t1", AccountID: "acc-a", Type: domain.Income, Amount: decimal.NewFromInt(25)},
		{TransactionID: "t2", AccountID: "acc-a", Type: domain.Expense, Amount: decimal.NewFromInt(25)},
	}

	deltas, err := AggregateReversalDeltas(txns)
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.True(t, deltas["acc-a"].IsZero(), "cancelling pair should net to zero, got %s", deltas["acc-a"])
}

func TestAggregateReversalDeltas_UnknownType(t *testing.T) {
	txns := []domain.Transaction{
		{TransactionID: "t1", AccountID: "acc-a", Type: domain.TransactionType("bogus"), Amount: decimal.NewFromInt(1)},
	}

	_, err := AggregateReversalDeltas(txns)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "t1", "error should name the offending transaction")
}

func TestAggregateReversalDeltas_Empty(t *testing.T) {
	deltas, err := AggregateReversalDeltas(nil)
	require.NoError(t, err)
	assert.Empty(t, deltas)
}
