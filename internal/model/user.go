package model

import (
	"strconv"
	"time"
)

// User is an admin panel account. Accounts are provisioned out of band
// (cmd/create-admin); the API only reads them and stamps last_login.
type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LoginRequest is the payload for admin authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// UserProfile is the public shape of a user returned by login and /me.
type UserProfile struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
}

// Profile returns the public shape of u.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		UID:         strconv.Itoa(u.ID),
		DisplayName: u.Name,
	}
}
