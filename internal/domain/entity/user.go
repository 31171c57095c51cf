// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is the core account record. Usernames are unique under
// case-insensitive comparison; the casing given at registration is
// preserved for display and never changes afterwards.
type User struct {
	Username     string    // The canonical username as entered at registration.
	PasswordHash string    // The bcrypt-hashed password. Never exposed outside the credential store.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
