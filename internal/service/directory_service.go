package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/events"
	"github.com/cse-sg/absence-service/internal/store"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// byName is the canonical ordering of the staff directory.
var byName = store.Sort{Field: "name"}

// DirectoryService manages the staff directory: the live name-ordered list,
// admin-driven creation and deletion, and the first-run seed admin.
type DirectoryService struct {
	staff      store.StaffStore
	dispatcher events.Dispatcher
	logger     *zap.Logger

	bootstrap sync.Once
}

// DirectoryDependencies encapsulates requirements for the directory service.
type DirectoryDependencies struct {
	StaffStore store.StaffStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(deps DirectoryDependencies) *DirectoryService {
	return &DirectoryService{
		staff:      deps.StaffStore,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// List returns all staff ordered by name.
func (s *DirectoryService) List(ctx context.Context) ([]*domain.StaffRecord, error) {
	list, err := s.staff.List(ctx, byName)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// ListLive subscribes to the staff collection ordered by name; the channel
// carries the full list on every change.
func (s *DirectoryService) ListLive(ctx context.Context) (<-chan []*domain.StaffRecord, func(), error) {
	return s.staff.Subscribe(ctx, nil, byName)
}

// ListByTeam returns the members of one team, ordered by name.
func (s *DirectoryService) ListByTeam(ctx context.Context, team string) ([]*domain.StaffRecord, error) {
	list, err := s.staff.GetWhere(ctx, store.Where("team", team), byName)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// GetByID fetches a single staff record.
func (s *DirectoryService) GetByID(ctx context.Context, id string) (*domain.StaffRecord, error) {
	rec, err := s.staff.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rec, nil
}

// Create inserts a new staff record with the default PIN and a
// server-assigned timestamp. Names are not checked for uniqueness.
func (s *DirectoryService) Create(ctx context.Context, name string, role domain.StaffRole, team string) (*domain.StaffRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	if !domain.ValidTeam(team) {
		return nil, apperrors.NewValidationError("unknown team", map[string]any{"team": team})
	}

	rec := &domain.StaffRecord{
		Name: name,
		Team: team,
		Role: role,
		PIN:  domain.DefaultPIN,
	}
	if err := s.staff.Insert(ctx, rec); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventStaffCreated, events.StaffCreatedPayload{
		StaffID: rec.ID,
		Name:    rec.Name,
		Team:    rec.Team,
		Role:    rec.Role,
	})
	return rec, nil
}

// Delete removes a staff record. Existing absence reports keep their
// denormalized identity fields; nothing cascades. The caller is responsible
// for keeping the seed admin out of reach.
func (s *DirectoryService) Delete(ctx context.Context, id string) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventStaffDeleted, events.StaffDeletedPayload{StaffID: id})
	return nil
}

// EnsureSeedAdmin bootstraps the directory on first entry past the org
// gate: when the staff collection is empty, the seed administrator is
// inserted with the default PIN. It runs at most once per process and is
// idempotent; two clients racing on an empty store may both insert the
// seed admin, a tolerated anomaly of the best-effort bootstrap.
func (s *DirectoryService) EnsureSeedAdmin(ctx context.Context) error {
	var err error
	s.bootstrap.Do(func() {
		err = s.seed(ctx)
	})
	return err
}

func (s *DirectoryService) seed(ctx context.Context) error {
	list, err := s.staff.List(ctx, byName)
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(list) > 0 {
		return nil
	}

	admin := domain.SeedAdmin()
	if err := s.staff.Insert(ctx, admin); err != nil {
		return apperrors.MapError(err)
	}
	s.logger.Info("seed admin created",
		zap.String("staff_id", admin.ID),
		zap.String("name", admin.Name),
	)
	return nil
}

func (s *DirectoryService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
