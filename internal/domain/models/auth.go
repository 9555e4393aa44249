package models

import "time"

// AuthCredential is the payload carried by an admin session token.
// It is never stored server-side.
type AuthCredential struct {
	Username  string `json:"username"`
	ExpiresAt int64  `json:"exp"` // Unix seconds
}

// Expired reports whether the credential is dead at now.
func (c AuthCredential) Expired(now time.Time) bool {
	return c.ExpiresAt <= now.Unix()
}

// Session is what the session check reports to callers.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}
