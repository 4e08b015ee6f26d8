package domain

// User represents a registered user of the application.
type User struct {
	UserID       string `json:"userID"` // Primary key (UUID)
	Email        string `json:"email"`  // Unique
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Never serialized
	AuditFields
}
