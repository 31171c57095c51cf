package entity

import "time"

// Session represents an authenticated login. The token is an opaque
// bearer credential; validity is decided by comparing CreatedAt against
// the configured expiry window at access time.
type Session struct {
	Token     string    // Opaque unique identifier handed to the client after login.
	Username  string    // The owning account. A non-owning reference into the credential store.
	CreatedAt time.Time // Timestamp of when the session was created (i.e., when the user logged in).
}

// ExpiresAfter reports whether the session is past its validity window
// at the given instant.
func (s *Session) ExpiresAfter(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}
