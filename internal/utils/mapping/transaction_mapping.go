package mapping

import (
	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/finvault/finvault_backend/internal/models"
)

// ToModelTransaction converts a domain.Transaction to models.Transaction for DB storage.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		Type:            models.TransactionType(d.Type),
		Category:        d.Category,
		Description:     d.Description,
		Date:            d.Date,
		BalanceAt:       d.BalanceAt,
		TransferGroupID: d.TransferGroupID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a models.Transaction from the DB to domain.Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		Type:            domain.TransactionType(m.Type),
		Category:        m.Category,
		Description:     m.Description,
		Date:            m.Date,
		BalanceAt:       m.BalanceAt,
		TransferGroupID: m.TransferGroupID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of models.Transaction to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
