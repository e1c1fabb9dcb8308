package domain

import "time"

// User models an account holder. Only the bcrypt hash of the password is
// stored, and it is excluded from every JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"prenom"`
	LastName     string    `json:"nom"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
