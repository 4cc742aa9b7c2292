package models

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// Identity is what a verified bearer token carries.
type Identity struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
