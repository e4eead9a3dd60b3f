package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/api/dto"
	"github.com/cse-sg/absence-service/internal/session"
	"github.com/cse-sg/absence-service/internal/view"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// SessionHandler exposes the staged login flow.
type SessionHandler struct {
	controller *session.Controller
}

// NewSessionHandler constructs handler.
func NewSessionHandler(controller *session.Controller) *SessionHandler {
	return &SessionHandler{controller: controller}
}

// EnterOrgCode handles POST /auth/org-code.
func (h *SessionHandler) EnterOrgCode(c *fiber.Ctx) error {
	var req dto.OrgCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" {
		return apperrors.NewValidationError("client_id required", nil)
	}

	sess, err := h.controller.EnterOrgCode(c.Context(), req.ClientID, req.Code)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"session": dto.SessionFromDomain(sess),
			"teams":   h.controller.Teams(),
		},
	})
}

// Resume handles POST /auth/resume.
func (h *SessionHandler) Resume(c *fiber.Ctx) error {
	var req dto.ResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" {
		return apperrors.NewValidationError("client_id required", nil)
	}

	sess, err := h.controller.Resume(c.Context(), req.ClientID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"session": dto.SessionFromDomain(sess),
			"teams":   h.controller.Teams(),
		},
	})
}

// Get handles GET /auth/sessions/:id.
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	sess, err := h.controller.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"session": dto.SessionFromDomain(sess),
			"teams":   h.controller.Teams(),
		},
	})
}

// ChooseTeam handles POST /auth/sessions/:id/team.
func (h *SessionHandler) ChooseTeam(c *fiber.Ctx) error {
	var req dto.TeamPickRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sess, members, err := h.controller.ChooseTeam(c.Context(), c.Params("id"), req.Team)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"session": dto.SessionFromDomain(sess),
			"members": dto.StaffListFromDomain(members),
		},
	})
}

// ChooseUser handles POST /auth/sessions/:id/user.
func (h *SessionHandler) ChooseUser(c *fiber.Ctx) error {
	var req dto.UserPickRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sess, err := h.controller.ChooseUser(c.Context(), c.Params("id"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"session": dto.SessionFromDomain(sess)},
	})
}

// SubmitPIN handles POST /auth/sessions/:id/pin. A correct PIN trades the
// login session for a bearer token; the response carries the landing tab
// and the default-PIN advisory.
func (h *SessionHandler) SubmitPIN(c *fiber.Ctx) error {
	var req dto.PinRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	staff, token, exp, err := h.controller.SubmitPIN(c.Context(), c.Params("id"), req.PIN)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"auth":        dto.AuthResponse{Token: token, ExpiresAt: exp},
			"staff":       dto.StaffFromDomain(staff),
			"landing_tab": view.DefaultTab(staff.Role),
		},
	})
}

// Back handles POST /auth/sessions/:id/back.
func (h *SessionHandler) Back(c *fiber.Ctx) error {
	sess, err := h.controller.Back(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"session": dto.SessionFromDomain(sess)},
	})
}

// Logout handles POST /auth/logout. The flow reopens at team pick; the org
// gate stays passed for the client.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" {
		return apperrors.NewValidationError("client_id required", nil)
	}

	sess, err := h.controller.Logout(c.Context(), req.ClientID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"session": dto.SessionFromDomain(sess),
			"teams":   h.controller.Teams(),
		},
	})
}
