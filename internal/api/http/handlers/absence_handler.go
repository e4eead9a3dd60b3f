package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/api/dto"
	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/service"
	"github.com/cse-sg/absence-service/internal/session"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// AbsenceHandler exposes absence reporting and the team dashboard.
type AbsenceHandler struct {
	absences *service.AbsenceService
}

// NewAbsenceHandler constructs handler.
func NewAbsenceHandler(absences *service.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absences: absences}
}

// Submit handles POST /absences.
func (h *AbsenceHandler) Submit(c *fiber.Ctx) error {
	user, ok := session.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization")
	}

	var req dto.SubmitAbsenceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	rec, err := h.absences.Submit(c.Context(), user, service.SubmitInput{
		Type:   domain.LeaveType(req.Type),
		Date:   req.Date,
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AbsenceFromDomain(rec),
	})
}

// Mine handles GET /absences/mine.
func (h *AbsenceHandler) Mine(c *fiber.Ctx) error {
	user, ok := session.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing authorization")
	}

	list, err := h.absences.Mine(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AbsencesFromDomain(list)})
}

// Team handles GET /absences/team. Filters arrive as query parameters;
// the dashboard opens on today's absences across all teams.
func (h *AbsenceHandler) Team(c *fiber.Ctx) error {
	filters := teamFilters(c)
	list, err := h.absences.TeamView(c.Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"absences": dto.AbsencesFromDomain(list),
			"filters": fiber.Map{
				"date_filter": filters.DateFilter,
				"team_filter": filters.TeamFilter,
			},
			"absent_count": len(list),
		},
	})
}

// Acknowledge handles POST /absences/:id/acknowledge.
func (h *AbsenceHandler) Acknowledge(c *fiber.Ctx) error {
	if err := h.absences.Acknowledge(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"acknowledged": true}})
}

func teamFilters(c *fiber.Ctx) service.TeamFilters {
	return service.TeamFilters{
		DateFilter: c.Query("date_filter", service.DateFilterToday),
		TeamFilter: c.Query("team_filter", service.TeamFilterAll),
	}
}
