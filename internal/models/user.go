package models

// User is a row of the users table.
type User struct {
	UserID     string `db:"user_id"`
	ExternalID string `db:"external_id"`
	AuditFields
}
