package models

import "time"

// Session is the server-side record for a logged-in session. The token is the
// only piece that ever leaves the process (as a cookie value).
type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
