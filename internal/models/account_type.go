package models

// AccountType is the database representation of a classification label.
type AccountType struct {
	AccountTypeID string `db:"account_type_id"`
	UserID        string `db:"user_id"`
	Label         string `db:"label"`
	Theme         string `db:"theme"`
	AuditFields
}
