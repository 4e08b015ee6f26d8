package accounting

import (
	"fmt"

	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns the balance contribution of a transaction amount for the
// given transaction type: +amount for income, -amount for expense.
// This is used in both services and repositories to keep the sign convention in
// one place.
func SignedAmount(txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	switch txnType {
	case domain.Income:
		return amount, nil
	case domain.Expense:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type '%s'", txnType)
	}
}

// ReversalAmount returns the delta that undoes a transaction's effect on its
// account balance: -amount for income, +amount for expense.
func ReversalAmount(txnType domain.TransactionType, amount decimal.Decimal) (decimal.Decimal, error) {
	signed, err := SignedAmount(txnType, amount)
	if err != nil {
		return decimal.Zero, err
	}
	return signed.Neg(), nil
}

// AggregateReversalDeltas sums, per distinct account, the net delta that undoes
// the effect of every given transaction. Bulk deletions apply one aggregated
// increment per affected account instead of one write per transaction.
func AggregateReversalDeltas(transactions []domain.Transaction) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal, len(transactions))
	for _, txn := range transactions {
		reversal, err := ReversalAmount(txn.Type, txn.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", txn.TransactionID, err)
		}
		deltas[txn.AccountID] = deltas[txn.AccountID].Add(reversal)
	}
	return deltas, nil
}
