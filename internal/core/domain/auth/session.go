package auth

import "time"

// Session is the server-side record behind one logged-in browser. The cookie
// carries only the opaque Token; deleting the record kills the session even if
// the cookie is replayed before it expires.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
