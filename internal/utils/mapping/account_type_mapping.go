package mapping

import (
	"github.com/finvault/finvault_backend/internal/core/domain"
	"github.com/finvault/finvault_backend/internal/models"
)

// ToModelAccountType converts a domain.AccountType to models.AccountType for DB storage.
func ToModelAccountType(d domain.AccountType) models.AccountType {
	return models.AccountType{
		AccountTypeID: d.AccountTypeID,
		UserID:        d.UserID,
		Label:         d.Label,
		Theme:         string(d.Theme),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountType converts a models.AccountType from the DB to domain.AccountType.
func ToDomainAccountType(m models.AccountType) domain.AccountType {
	return domain.AccountType{
		AccountTypeID: m.AccountTypeID,
		UserID:        m.UserID,
		Label:         m.Label,
		Theme:         domain.AccountTypeTheme(m.Theme),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
