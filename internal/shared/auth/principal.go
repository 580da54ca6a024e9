package auth

import "metalpedia-backend/internal/shared/apperr"

// Role of a user, as stored in users.role
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal is the acting identity for a request
type Principal struct {
	Address string `json:"address"`
	Role    Role   `json:"role"`
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Require returns the principal or an authentication error when the caller is anonymous
func Require(p *Principal) error {
	if p == nil || p.Address == "" {
		return apperr.ErrMissingToken
	}
	return nil
}
