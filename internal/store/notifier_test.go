package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NotifyReachesListeners(t *testing.T) {
	n := NewNotifier()

	ch, release := n.Listen(ColStaff)
	defer release()

	n.Notify(ColStaff)

	select {
	case <-ch:
	default:
		t.Fatal("expected a buffered ping")
	}
}

func TestNotifier_PingsCoalesce(t *testing.T) {
	n := NewNotifier()

	ch, release := n.Listen(ColAbsences)
	defer release()

	n.Notify(ColAbsences)
	n.Notify(ColAbsences)
	n.Notify(ColAbsences)

	<-ch
	select {
	case <-ch:
		t.Fatal("pings during a pending ping should coalesce into one")
	default:
	}
}

func TestNotifier_CollectionsAreIndependent(t *testing.T) {
	n := NewNotifier()

	staffCh, releaseStaff := n.Listen(ColStaff)
	defer releaseStaff()

	n.Notify(ColAbsences)

	select {
	case <-staffCh:
		t.Fatal("staff listener must not see absence pings")
	default:
	}
}

func TestNotifier_ReleaseStopsDelivery(t *testing.T) {
	n := NewNotifier()

	ch, release := n.Listen(ColStaff)
	release()

	n.Notify(ColStaff)

	select {
	case <-ch:
		t.Fatal("released listener must not receive pings")
	default:
	}
}

func TestNotifier_MultipleListeners(t *testing.T) {
	n := NewNotifier()

	ch1, release1 := n.Listen(ColStaff)
	defer release1()
	ch2, release2 := n.Listen(ColStaff)
	defer release2()

	n.Notify(ColStaff)

	require.Len(t, drain(ch1), 1)
	assert.Len(t, drain(ch2), 1)
}

func drain(ch chan struct{}) []struct{} {
	var got []struct{}
	for {
		select {
		case v := <-ch:
			got = append(got, v)
		default:
			return got
		}
	}
}
