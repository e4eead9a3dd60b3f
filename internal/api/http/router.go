package http

import (
	"net/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/cse-sg/absence-service/internal/api/http/handlers"
	"github.com/cse-sg/absence-service/internal/session"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Sessions       *handlers.SessionHandler
	Absences       *handlers.AbsenceHandler
	Staff          *handlers.StaffHandler
	Profile        *handlers.ProfileHandler
	Views          *handlers.ViewsHandler
	Live           *handlers.LiveHandler
	AuthMiddleware *session.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/org-code", cfg.Sessions.EnterOrgCode)
	authGroup.Post("/resume", cfg.Sessions.Resume)
	authGroup.Post("/logout", cfg.Sessions.Logout)

	sessions := authGroup.Group("/sessions/:id")
	sessions.Get("", cfg.Sessions.Get)
	sessions.Post("/team", cfg.Sessions.ChooseTeam)
	sessions.Post("/user", cfg.Sessions.ChooseUser)
	sessions.Post("/pin", cfg.Sessions.SubmitPIN)
	sessions.Post("/back", cfg.Sessions.Back)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Get("/views", cfg.Views.List)
	protected.Post("/views/navigate", cfg.Views.Navigate)

	protected.Post("/absences", cfg.Absences.Submit)
	protected.Get("/absences/mine", cfg.Absences.Mine)
	protected.Get("/absences/team", session.RequireLeader(), cfg.Absences.Team)
	protected.Post("/absences/:id/acknowledge", session.RequireLeader(), cfg.Absences.Acknowledge)

	staffGroup := protected.Group("/staff", session.RequireAdmin())
	staffGroup.Get("", cfg.Staff.List)
	staffGroup.Post("", cfg.Staff.Create)
	staffGroup.Delete("/:id", cfg.Staff.Delete)

	protected.Post("/profile/pin", cfg.Profile.ChangePin)

	ws := app.Group("/ws", upgradeRequired, cfg.AuthMiddleware.Handle)
	ws.Get("/absences/mine", cfg.Live.MyAbsences())
	ws.Get("/absences/team", session.RequireLeader(), cfg.Live.TeamAbsences())
	ws.Get("/staff", session.RequireAdmin(), cfg.Live.Staff())
}

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return apperrors.NewDomainError("UPGRADE_REQUIRED", "websocket upgrade required", http.StatusUpgradeRequired, nil)
}
