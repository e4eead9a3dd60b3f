package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/service"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// Controller orchestrates the staged login flow. Each client works through
// one LoginSession; PIN success trades the session for a bearer token and
// the full staff record.
type Controller struct {
	sessions  SessionStore
	codes     CodeStore
	directory *service.DirectoryService
	tokens    *TokenManager
	logger    *zap.Logger
}

// ControllerDependencies encapsulates requirements for the controller.
type ControllerDependencies struct {
	Sessions  SessionStore
	Codes     CodeStore
	Directory *service.DirectoryService
	Tokens    *TokenManager
	Logger    *zap.Logger
}

// NewController constructs the controller.
func NewController(deps ControllerDependencies) *Controller {
	return &Controller{
		sessions:  deps.Sessions,
		codes:     deps.Codes,
		directory: deps.Directory,
		tokens:    deps.Tokens,
		logger:    deps.Logger,
	}
}

// EnterOrgCode passes the org gate. The comparison is case-insensitive
// after trimming; on success acceptance is persisted so subsequent launches
// by the same client resume at team pick.
func (c *Controller) EnterOrgCode(ctx context.Context, clientID, code string) (*LoginSession, error) {
	if !strings.EqualFold(strings.TrimSpace(code), domain.OrgAccessCode) {
		return nil, apperrors.NewInvalidOrgCode()
	}
	if err := c.codes.MarkAccepted(ctx, clientID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return c.openSession(ctx, clientID)
}

// Resume skips the org gate when acceptance was previously persisted.
func (c *Controller) Resume(ctx context.Context, clientID string) (*LoginSession, error) {
	accepted, err := c.codes.Accepted(ctx, clientID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !accepted {
		return nil, apperrors.NewDomainError("ORG_CODE_REQUIRED", "organization code required", 401, nil)
	}
	return c.openSession(ctx, clientID)
}

// openSession enters team pick, running the directory bootstrap first.
func (c *Controller) openSession(ctx context.Context, clientID string) (*LoginSession, error) {
	if err := c.directory.EnsureSeedAdmin(ctx); err != nil {
		return nil, err
	}
	sess := &LoginSession{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Stage:    StageTeamPick,
	}
	if err := c.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sess, nil
}

// Get returns the current stage of a login session.
func (c *Controller) Get(ctx context.Context, sessionID string) (*LoginSession, error) {
	return c.lookup(ctx, sessionID)
}

// Teams lists the team choices offered at team pick.
func (c *Controller) Teams() []string {
	return domain.Teams
}

// ChooseTeam advances team pick to name pick, returning the members of the
// chosen team only.
func (c *Controller) ChooseTeam(ctx context.Context, sessionID, team string) (*LoginSession, []*domain.StaffRecord, error) {
	sess, err := c.lookup(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if sess.Stage != StageTeamPick {
		return nil, nil, apperrors.NewConflict("team already chosen", map[string]any{"stage": sess.Stage})
	}
	if !domain.ValidTeam(team) {
		return nil, nil, apperrors.NewValidationError("unknown team", map[string]any{"team": team})
	}

	members, err := c.directory.ListByTeam(ctx, team)
	if err != nil {
		return nil, nil, err
	}

	sess.Team = team
	sess.Stage = StageNamePick
	if err := c.sessions.Save(ctx, sess); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return sess, members, nil
}

// ChooseUser advances name pick to PIN entry. Only members of the session's
// chosen team are selectable.
func (c *Controller) ChooseUser(ctx context.Context, sessionID, userID string) (*LoginSession, error) {
	sess, err := c.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Stage != StageNamePick {
		return nil, apperrors.NewConflict("not at name pick", map[string]any{"stage": sess.Stage})
	}

	user, err := c.directory.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Team != sess.Team {
		return nil, apperrors.NewNotFound("staff member", map[string]any{"team": sess.Team})
	}

	sess.UserID = user.ID
	sess.Stage = StagePinEntry
	if err := c.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sess, nil
}

// SubmitPIN completes the flow. The typed PIN is compared to the stored one
// by exact string equality; a mismatch re-prompts at PIN entry with no
// lockout. On success the staged session is discarded and a bearer token is
// issued for the authenticated staff record.
func (c *Controller) SubmitPIN(ctx context.Context, sessionID, pin string) (*domain.StaffRecord, string, time.Time, error) {
	sess, err := c.lookup(ctx, sessionID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if sess.Stage != StagePinEntry {
		return nil, "", time.Time{}, apperrors.NewConflict("not at pin entry", map[string]any{"stage": sess.Stage})
	}

	user, err := c.directory.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user.PIN != pin {
		return nil, "", time.Time{}, apperrors.NewWrongAccessPin()
	}

	if err := c.sessions.Delete(ctx, sessionID); err != nil {
		c.logger.Warn("failed to discard login session", zap.Error(err))
	}

	token, expiresAt, err := c.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	c.logger.Info("staff authenticated",
		zap.String("staff_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, token, expiresAt, nil
}

// Back returns the session to its prior stage; the org gate is never
// reachable this way.
func (c *Controller) Back(ctx context.Context, sessionID string) (*LoginSession, error) {
	sess, err := c.lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Back()
	if err := c.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sess, nil
}

// Logout discards the authenticated session and reopens the flow at team
// pick; org-code acceptance persists. In-flight writes are not aborted.
func (c *Controller) Logout(ctx context.Context, clientID string) (*LoginSession, error) {
	return c.Resume(ctx, clientID)
}

func (c *Controller) lookup(ctx context.Context, sessionID string) (*LoginSession, error) {
	sess, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperrors.NewNotFound("login session", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return sess, nil
}
