package session

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/domain"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// UserFromContext retrieves the authenticated staff record.
func UserFromContext(c *fiber.Ctx) (*domain.StaffRecord, bool) {
	val := c.Locals(PrincipalKey)
	if val == nil {
		return nil, false
	}
	staff, ok := val.(*domain.StaffRecord)
	return staff, ok
}

// RequireRole ensures the authenticated staff member has one of the
// allowed roles.
func RequireRole(allowed ...domain.StaffRole) fiber.Handler {
	allowedSet := make(map[domain.StaffRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		staff, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("missing authorization")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[staff.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireLeader admits team leaders and administrators.
func RequireLeader() fiber.Handler {
	return RequireRole(domain.StaffRoleLeader, domain.StaffRoleAdmin)
}

// RequireAdmin admits administrators only.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.StaffRoleAdmin)
}
