package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/events"
	"github.com/cse-sg/absence-service/internal/store"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

// TeamFilterAll disables team filtering on the dashboard.
const TeamFilterAll = "All"

// Date filter modes for the team dashboard.
const (
	DateFilterToday = "today"
	DateFilterAll   = "all"
)

// SubmitInput carries a new absence report.
type SubmitInput struct {
	Type   domain.LeaveType
	Date   string
	Reason string
}

// TeamFilters select the dashboard's slice of the absence collection.
type TeamFilters struct {
	DateFilter string
	TeamFilter string
}

// AbsenceService manages absence reports: submission, the reporter's own
// live history, the team dashboard, and acknowledgement transitions.
// Dashboard filtering is applied in memory: the store cardinality is a small
// org's, and keeping predicates out of the backend keeps index needs nil.
type AbsenceService struct {
	absences   store.AbsenceStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// AbsenceDependencies encapsulates requirements for the absence service.
type AbsenceDependencies struct {
	AbsenceStore store.AbsenceStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewAbsenceService constructs the service.
func NewAbsenceService(deps AbsenceDependencies) *AbsenceService {
	return &AbsenceService{
		absences:   deps.AbsenceStore,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// Submit records a new absence for the reporting user, snapshotting the
// user's identity so the report survives later directory deletions.
func (s *AbsenceService) Submit(ctx context.Context, user *domain.StaffRecord, in SubmitInput) (*domain.AbsenceRecord, error) {
	if !domain.ValidLeaveType(in.Type) {
		return nil, apperrors.NewValidationError("unknown leave type", map[string]any{"type": in.Type})
	}
	if !domain.ValidDate(in.Date) {
		return nil, apperrors.NewValidationError("date must be YYYY-MM-DD", map[string]any{"date": in.Date})
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, apperrors.NewValidationError("reason required", nil)
	}

	rec := &domain.AbsenceRecord{
		UserID:   user.ID,
		UserName: user.Name,
		UserTeam: user.Team,
		Type:     in.Type,
		Date:     in.Date,
		Reason:   in.Reason,
		Status:   domain.StatusPendingReview,
	}
	if err := s.absences.Insert(ctx, rec); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventAbsenceSubmitted, events.AbsenceSubmittedPayload{
		AbsenceID: rec.ID,
		UserName:  rec.UserName,
		UserTeam:  rec.UserTeam,
		Type:      rec.Type,
		Date:      rec.Date,
	})
	return rec, nil
}

// Mine returns the user's own reports, most recent date first.
func (s *AbsenceService) Mine(ctx context.Context, userID string) ([]*domain.AbsenceRecord, error) {
	list, err := s.absences.GetWhere(ctx, store.Where("user_id", userID))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	sortByDateDesc(list)
	return list, nil
}

// MineLive subscribes to the user's own reports; each emission carries the
// full history sorted by date descending.
func (s *AbsenceService) MineLive(ctx context.Context, userID string) (<-chan []*domain.AbsenceRecord, func(), error) {
	ch, release, err := s.absences.Subscribe(ctx, store.Where("user_id", userID))
	if err != nil {
		return nil, nil, err
	}
	return transform(ch, func(list []*domain.AbsenceRecord) []*domain.AbsenceRecord {
		sortByDateDesc(list)
		return list
	}), release, nil
}

// TeamView returns the dashboard slice of the absence collection under the
// given filters, sorted by date descending.
func (s *AbsenceService) TeamView(ctx context.Context, f TeamFilters) ([]*domain.AbsenceRecord, error) {
	list, err := s.absences.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.applyTeamFilters(list, f, s.today()), nil
}

// TeamLive subscribes to the whole absence collection and filters each
// emission in memory. "today" is fixed at subscription time, matching the
// view lifecycle: changing the filter tears the subscription down and
// creates a new one.
func (s *AbsenceService) TeamLive(ctx context.Context, f TeamFilters) (<-chan []*domain.AbsenceRecord, func(), error) {
	today := s.today()
	ch, release, err := s.absences.Subscribe(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	return transform(ch, func(list []*domain.AbsenceRecord) []*domain.AbsenceRecord {
		return s.applyTeamFilters(list, f, today)
	}), release, nil
}

// Acknowledge merge-writes the acknowledged status. Acknowledging an
// already-acknowledged report is a no-op; last writer wins across clients
// but every writer targets the same state.
func (s *AbsenceService) Acknowledge(ctx context.Context, id string) error {
	if err := s.absences.Update(ctx, id, map[string]any{"status": domain.StatusAcknowledged}); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventAbsenceAcknowledged, events.AbsenceAcknowledgedPayload{AbsenceID: id})
	return nil
}

func (s *AbsenceService) applyTeamFilters(list []*domain.AbsenceRecord, f TeamFilters, today string) []*domain.AbsenceRecord {
	filtered := make([]*domain.AbsenceRecord, 0, len(list))
	for _, rec := range list {
		if f.DateFilter == DateFilterToday && rec.Date != today {
			continue
		}
		if f.TeamFilter != "" && f.TeamFilter != TeamFilterAll && rec.UserTeam != f.TeamFilter {
			continue
		}
		filtered = append(filtered, rec)
	}
	sortByDateDesc(filtered)
	return filtered
}

// today is the local calendar date in ISO form.
func (s *AbsenceService) today() string {
	return s.now().Format(domain.DateLayout)
}

func (s *AbsenceService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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

// sortByDateDesc orders reports newest date first; the ISO form makes the
// string compare sufficient.
func sortByDateDesc(list []*domain.AbsenceRecord) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date > list[j].Date
	})
}

// transform maps every emission of a live query through fn, preserving the
// closed-when-released behavior of the source channel.
func transform[T any](in <-chan []T, fn func([]T) []T) <-chan []T {
	out := make(chan []T, 1)
	go func() {
		defer close(out)
		for list := range in {
			out <- fn(list)
		}
	}()
	return out
}
