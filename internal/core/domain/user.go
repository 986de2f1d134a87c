package domain

import "time"

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the claim set carried by a bearer token.
type Identity struct {
	SubjectID string
	IsAdmin   bool
}

// CanActOn reports whether the identity may act on the user with the given id.
func (i Identity) CanActOn(userID string) bool {
	return i.IsAdmin || i.SubjectID == userID
}
