package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/store"
	apperrors "github.com/cse-sg/absence-service/pkg/util/errorutil"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newAbsenceFixture(t *testing.T) (*AbsenceService, store.AbsenceStore) {
	t.Helper()
	absences := store.NewMemoryAbsenceStore(store.NewNotifier())
	svc := NewAbsenceService(AbsenceDependencies{
		AbsenceStore: absences,
		Logger:       zap.NewNop(),
	})
	svc.now = func() time.Time { return fixedNow }
	return svc, absences
}

func reporter() *domain.StaffRecord {
	return &domain.StaffRecord{ID: "u1", Name: "Ivy Tan", Team: "Rebrick", Role: domain.StaffRoleStaff, PIN: "1234"}
}

func TestAbsenceService_Submit(t *testing.T) {
	svc, absences := newAbsenceFixture(t)
	ctx := context.Background()

	rec, err := svc.Submit(ctx, reporter(), SubmitInput{
		Type:   domain.LeaveSick,
		Date:   "2025-03-10",
		Reason: "flu",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "Ivy Tan", rec.UserName)
	assert.Equal(t, "Rebrick", rec.UserTeam)
	assert.Equal(t, domain.StatusPendingReview, rec.Status)

	stored, err := absences.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, stored.Timestamp.IsZero())
}

func TestAbsenceService_Submit_Validation(t *testing.T) {
	svc, _ := newAbsenceFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SubmitInput
	}{
		{"unknown type", SubmitInput{Type: "Gardening Leave", Date: "2025-03-10", Reason: "x"}},
		{"bad date", SubmitInput{Type: domain.LeaveSick, Date: "10/03/2025", Reason: "x"}},
		{"blank reason", SubmitInput{Type: domain.LeaveSick, Date: "2025-03-10", Reason: "   "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, reporter(), tc.in)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestAbsenceService_Mine_SortedNewestFirst(t *testing.T) {
	svc, _ := newAbsenceFixture(t)
	ctx := context.Background()
	user := reporter()

	for _, date := range []string{"2025-03-01", "2025-03-10", "2025-02-15"} {
		_, err := svc.Submit(ctx, user, SubmitInput{Type: domain.LeaveAnnual, Date: date, Reason: "r"})
		require.NoError(t, err)
	}
	other := &domain.StaffRecord{ID: "u2", Name: "Bob", Team: "L2ST"}
	_, err := svc.Submit(ctx, other, SubmitInput{Type: domain.LeaveSick, Date: "2025-03-05", Reason: "r"})
	require.NoError(t, err)

	mine, err := svc.Mine(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "2025-03-10", mine[0].Date)
	assert.Equal(t, "2025-03-01", mine[1].Date)
	assert.Equal(t, "2025-02-15", mine[2].Date)
}

func TestAbsenceService_TeamView_Filters(t *testing.T) {
	svc, _ := newAbsenceFixture(t)
	ctx := context.Background()

	submit := func(user *domain.StaffRecord, date string) {
		t.Helper()
		_, err := svc.Submit(ctx, user, SubmitInput{Type: domain.LeaveSick, Date: date, Reason: "r"})
		require.NoError(t, err)
	}
	alice := &domain.StaffRecord{ID: "u1", Name: "Alice", Team: "Rebrick"}
	bob := &domain.StaffRecord{ID: "u2", Name: "Bob", Team: "L2ST"}

	submit(alice, "2025-03-10") // today
	submit(alice, "2025-03-01")
	submit(bob, "2025-03-10") // today

	today, err := svc.TeamView(ctx, TeamFilters{DateFilter: DateFilterToday, TeamFilter: TeamFilterAll})
	require.NoError(t, err)
	assert.Len(t, today, 2)

	all, err := svc.TeamView(ctx, TeamFilters{DateFilter: DateFilterAll, TeamFilter: TeamFilterAll})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-10", all[0].Date, "newest first")

	rebrick, err := svc.TeamView(ctx, TeamFilters{DateFilter: DateFilterAll, TeamFilter: "Rebrick"})
	require.NoError(t, err)
	require.Len(t, rebrick, 2)
	for _, rec := range rebrick {
		assert.Equal(t, "Rebrick", rec.UserTeam)
	}

	todayL2ST, err := svc.TeamView(ctx, TeamFilters{DateFilter: DateFilterToday, TeamFilter: "L2ST"})
	require.NoError(t, err)
	require.Len(t, todayL2ST, 1)
	assert.Equal(t, "u2", todayL2ST[0].UserID)
}

func TestAbsenceService_Acknowledge(t *testing.T) {
	svc, absences := newAbsenceFixture(t)
	ctx := context.Background()

	rec, err := svc.Submit(ctx, reporter(), SubmitInput{Type: domain.LeaveSick, Date: "2025-03-10", Reason: "flu"})
	require.NoError(t, err)

	require.NoError(t, svc.Acknowledge(ctx, rec.ID))

	got, err := absences.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAcknowledged, got.Status)

	// acknowledging again is a no-op targeting the same state
	require.NoError(t, svc.Acknowledge(ctx, rec.ID))
	got, err = absences.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAcknowledged, got.Status)
}

func TestAbsenceService_Acknowledge_Missing(t *testing.T) {
	svc, _ := newAbsenceFixture(t)

	err := svc.Acknowledge(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAbsenceService_MineLive(t *testing.T) {
	svc, _ := newAbsenceFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	user := reporter()

	ch, release, err := svc.MineLive(ctx, user.ID)
	require.NoError(t, err)
	defer release()

	first := recv(t, ch)
	assert.Empty(t, first)

	_, err = svc.Submit(ctx, user, SubmitInput{Type: domain.LeaveSick, Date: "2025-03-10", Reason: "flu"})
	require.NoError(t, err)

	next := recv(t, ch)
	require.Len(t, next, 1)
	assert.Equal(t, user.ID, next[0].UserID)
}

func TestAbsenceService_TeamLive_FiltersEmissions(t *testing.T) {
	svc, _ := newAbsenceFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, release, err := svc.TeamLive(ctx, TeamFilters{DateFilter: DateFilterToday, TeamFilter: TeamFilterAll})
	require.NoError(t, err)
	defer release()

	assert.Empty(t, recv(t, ch))

	// yesterday's report does not show on the today view
	_, err = svc.Submit(ctx, reporter(), SubmitInput{Type: domain.LeaveSick, Date: "2025-03-09", Reason: "r"})
	require.NoError(t, err)
	assert.Empty(t, recv(t, ch))

	_, err = svc.Submit(ctx, reporter(), SubmitInput{Type: domain.LeaveSick, Date: "2025-03-10", Reason: "r"})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		var snapshot []*domain.AbsenceRecord
		select {
		case snapshot = <-ch:
		case <-deadline:
			t.Fatal("timed out waiting for today's report")
		}
		if len(snapshot) == 1 {
			assert.Equal(t, "2025-03-10", snapshot[0].Date)
			return
		}
	}
}

func recv[T any](t *testing.T, ch <-chan []T) []T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		return nil
	}
}
