package mapping

import (
	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/finvault/finvault_backend/internal/models"
)

// ToModelAccount converts a domain.Account to models.Account for DB storage.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		UserID:      d.UserID,
		Name:        d.Name,
		Type:        d.Type,
		Balance:     d.Balance,
		Color:       d.Color,
		CardNumber:  d.CardNumber,
		CardHolder:  d.CardHolder,
		ClientRef:   d.ClientRef,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a models.Account from the DB to domain.Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		UserID:      m.UserID,
		Name:        m.Name,
		Type:        m.Type,
		Balance:     m.Balance,
		Color:       m.Color,
		CardNumber:  m.CardNumber,
		CardHolder:  m.CardHolder,
		ClientRef:   m.ClientRef,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of models.Account to domain accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
