package dto

import (
	"time"

	"github.com/finvault/finvault_backend/internal/core/domain"
)

// CreateAccountTypeRequest defines the data needed to create an account type.
type CreateAccountTypeRequest struct {
	Label string                  `json:"label" binding:"required"`
	Theme domain.AccountTypeTheme `json:"theme" binding:"omitempty,oneof=DEFAULT BLUE GREEN RED PURPLE"`
}

// AccountTypeResponse defines the data returned for an account type.
type AccountTypeResponse struct {
	AccountTypeID string                  `json:"accountTypeID"`
	Label         string                  `json:"label"`
	Theme         domain.AccountTypeTheme `json:"theme"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// ToAccountTypeResponse converts a domain.AccountType to AccountTypeResponse.
func ToAccountTypeResponse(at *domain.AccountType) AccountTypeResponse {
	return AccountTypeResponse{
		AccountTypeID: at.AccountTypeID,
		Label:         at.Label,
		Theme:         at.Theme,
		CreatedAt:     at.CreatedAt,
	}
}

// ToAccountTypeResponses converts a slice of domain account types to DTOs.
func ToAccountTypeResponses(ats []domain.AccountType) []AccountTypeResponse {
	res := make([]AccountTypeResponse, len(ats))
	for i := range ats {
		res[i] = ToAccountTypeResponse(&ats[i])
	}
	return res
}
