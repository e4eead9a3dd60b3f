package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventAbsenceSubmitted, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventAbsenceSubmitted})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].ID)
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventStaffCreated, func(context.Context, Event) error {
		calls++
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventAbsenceSubmitted})
	assert.Zero(t, calls)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventStaffDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventStaffDeleted, func(context.Context, Event) error {
		second = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventStaffDeleted}))
	assert.True(t, second)
}
