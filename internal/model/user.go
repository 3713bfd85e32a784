package model

import "time"

// User represents a user in the database.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	ID    int64
	Email string
}

// AuthResponse represents an authentication response with a JWT token and user info.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public returns the API projection of the user.
func (u *User) Public() UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}
