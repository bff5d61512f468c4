package models

import "time"

// User is a stored account row. Rows are created once at signup and are never
// updated or deleted afterwards.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // don't expose hash
	CreatedAt    time.Time `json:"created_at"`
}
