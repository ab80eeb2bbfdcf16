package domain

import "time"

// AdminSubject is the token subject of the predefined, environment-configured admin.
const AdminSubject = "admin"

// User models an account holder. ResetToken and ResetExpires are set only
// while a password reset is pending.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	ResetToken   string    `json:"-"`
	ResetExpires time.Time `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
