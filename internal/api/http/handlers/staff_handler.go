package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/api/dto"
	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/service"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// StaffHandler exposes the staff directory management endpoints.
type StaffHandler struct {
	directory *service.DirectoryService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(directory *service.DirectoryService) *StaffHandler {
	return &StaffHandler{directory: directory}
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	list, err := h.directory.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StaffRowsFromDomain(list)})
}

// Create handles POST /staff.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	rec, err := h.directory.Create(c.Context(), req.Name, domain.StaffRole(req.Role), req.Team)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.StaffFromDomain(rec),
	})
}

// Delete handles DELETE /staff/:id. The seed administrator cannot be
// removed.
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	rec, err := h.directory.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if rec.IsSeedAdmin() {
		return apperrors.NewForbidden("the seed administrator cannot be deleted")
	}

	if err := h.directory.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
