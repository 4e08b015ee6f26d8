package domain

// AccountTypeTheme is a display theme tag for an account type.
type AccountTypeTheme string

const (
	ThemeDefault AccountTypeTheme = "DEFAULT"
	ThemeBlue    AccountTypeTheme = "BLUE"
	ThemeGreen   AccountTypeTheme = "GREEN"
	ThemeRed     AccountTypeTheme = "RED"
	ThemePurple  AccountTypeTheme = "PURPLE"
)

// AccountType is pure classification data for a user's accounts.
// Label is unique per owner; there is no balance coupling.
type AccountType struct {
	AccountTypeID string           `json:"accountTypeID"` // Primary key (UUID)
	UserID        string           `json:"userID"`        // Owning user
	Label         string           `json:"label"`
	Theme         AccountTypeTheme `json:"theme"`
	AuditFields
}
