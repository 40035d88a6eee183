package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTutor   UserRole = "tutor"
	UserRoleAdmin   UserRole = "admin"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleStudent, UserRoleTutor, UserRoleAdmin:
		return true
	}
	return false
}

// User represents a user entity
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photoUrl"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserInput is sent by the client on first login.
type CreateUserInput struct {
	Email    string   `json:"email" binding:"required,email"`
	Name     string   `json:"name" binding:"max=100"`
	PhotoURL string   `json:"photoUrl" binding:"omitempty,url"`
	Role     UserRole `json:"role" binding:"omitempty,signuprole"`
}

// UpdateProfileInput carries the self-editable user fields.
type UpdateProfileInput struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	PhotoURL *string `json:"photoUrl" binding:"omitempty,url"`
}

// UpdateRoleInput is used by admins to change a user's role.
type UpdateRoleInput struct {
	Role UserRole `json:"role" binding:"required,userrole"`
}

// NormalizeEmail lowercases and trims an email so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
