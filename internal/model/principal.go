package model

import "github.com/google/uuid"

// Principal is the authenticated identity extracted from the bearer token.
// It is passed explicitly through every operation; there is no ambient
// session state.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
