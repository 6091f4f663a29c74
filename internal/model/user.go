package model

import "time"

// User represents a staff account as stored in the `users` table or the
// seed users file.  Role is one of the auth role names (admin,
// front_desk, accounting, hk_manager, hk_team).
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Username     – unique, lower-cased login name.
//	Name         – display name shown in the app header.
//	PasswordHash – bcrypt hashed password.
//	Role         – role name driving screen access.
//	IsActive     – inactive accounts cannot sign in.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
