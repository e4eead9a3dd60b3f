package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/api/dto"
	"github.com/cse-sg/absence-service/internal/service"
	"github.com/cse-sg/absence-service/internal/session"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// ProfileHandler exposes the authenticated user's own profile actions.
type ProfileHandler struct {
	profile *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profile *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// ChangePin handles POST /profile/pin.
func (h *ProfileHandler) ChangePin(c *fiber.Ctx) error {
	user, ok := session.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization")
	}

	var req dto.ChangePinRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.profile.ChangePin(c.Context(), user, req.CurrentPin, req.NewPin, req.ConfirmPin)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StaffFromDomain(updated)})
}
