package user

import "time"

// User is a local account for the single-tenant ledger. Passwords are
// stored as bcrypt hashes.
type User struct {
	ID            string
	FullName      string
	Username      string
	Email         string
	PasswordHash  string
	ContactNumber *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
