package entities

import (
	"strings"

	"github.com/google/uuid"
)

// Principal is the authorization context of one request. It is built from a
// single user lookup right after the bearer token is verified.
type Principal struct {
	Email      string    `json:"email"`
	UserID     uuid.UUID `json:"userId"`
	Role       UserRole  `json:"role"`
	Registered bool      `json:"registered"`
}

// NewPrincipal builds a principal for email. A nil user means the identity
// has never called POST /users and is treated as a student.
func NewPrincipal(email string, user *User) *Principal {
	p := &Principal{Email: NormalizeEmail(email), Role: UserRoleStudent}
	if user != nil {
		p.UserID = user.ID
		p.Registered = true
		if user.Role.Valid() {
			p.Role = user.Role
		}
	}
	return p
}

func (p *Principal) HasRole(roles ...UserRole) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool {
	return p.HasRole(UserRoleAdmin)
}

// Is reports whether the principal is the identity behind email.
func (p *Principal) Is(email string) bool {
	return p != nil && strings.EqualFold(p.Email, strings.TrimSpace(email))
}
