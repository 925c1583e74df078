package auth

import (
	"coursehub/internal/apperror"
	"coursehub/internal/models"
)

// RequireRole fails with Forbidden unless id has exactly the required role.
// There is no role hierarchy.
func RequireRole(id Identity, required models.Role) error {
	if id.Role != required {
		return apperror.Forbidden(required.String() + " role required")
	}
	return nil
}

// Policy is the access rule a handler declares for one operation.
type Policy struct {
	Role    models.Role
	Message string
}

// Check applies RequireRole, replacing its message with p.Message when set.
func (p Policy) Check(id Identity) error {
	if err := RequireRole(id, p.Role); err != nil {
		if p.Message == "" {
			return err
		}
		return apperror.Forbidden(p.Message)
	}
	return nil
}
