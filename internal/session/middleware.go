package session

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/store"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// PrincipalKey is the Locals key under which the authenticated staff
// record is stored. Websocket handlers read it off the upgraded connection.
const PrincipalKey = "auth_principal"

// Middleware validates bearer tokens and loads the staff record they name.
type Middleware struct {
	tokens *TokenManager
	staff  store.StaffStore
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, staff store.StaffStore) *Middleware {
	return &Middleware{tokens: tokens, staff: staff}
}

// Handle enforces authentication for protected routes. Websocket upgrades
// cannot carry headers from browser clients, so a token query parameter is
// accepted as a fallback.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		return apperrors.NewUnauthorized("missing authorization")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	staff, err := m.staff.GetByID(c.Context(), claims.StaffID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NewUnauthorized("staff not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(PrincipalKey, staff)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
