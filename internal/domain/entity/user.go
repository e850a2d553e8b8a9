// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account that authenticates with email and password and owns tasks.
type User struct {
	ID           int64     // Auto-increment identifier assigned by storage.
	Email        string    // Login identifier, stored trimmed and lower-cased.
	PasswordHash string    // Opaque digest produced by a PasswordHasher. Never exposed.
	Role         Role      // Authorization role, RoleUser unless promoted.
	Tasks        []*Task   // Tasks owned by this user, populated by lookups that load them.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
