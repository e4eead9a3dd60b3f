package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/api/dto"
	"github.com/cse-sg/absence-service/internal/session"
	"github.com/cse-sg/absence-service/internal/view"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// ViewsHandler exposes the role-gated tab model.
type ViewsHandler struct{}

// NewViewsHandler constructs handler.
func NewViewsHandler() *ViewsHandler {
	return &ViewsHandler{}
}

// List handles GET /views.
func (h *ViewsHandler) List(c *fiber.Ctx) error {
	user, ok := session.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization")
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"allowed": view.Allowed(user.Role),
			"default": view.DefaultTab(user.Role),
		},
	})
}

// Navigate handles POST /views/navigate. A request for a tab the role
// cannot see resolves back to the current tab without error.
func (h *ViewsHandler) Navigate(c *fiber.Ctx) error {
	user, ok := session.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization")
	}

	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	active := view.Navigate(view.Tab(req.Current), view.Tab(req.Requested), user.Role)
	return c.JSON(fiber.Map{"data": fiber.Map{"active": active}})
}
