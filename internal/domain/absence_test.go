package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidLeaveType(t *testing.T) {
	for _, lt := range []LeaveType{LeaveSick, LeaveChildcare, LeaveCompassionate, LeaveAnnual, LeaveOther} {
		assert.True(t, ValidLeaveType(lt))
	}
	assert.False(t, ValidLeaveType("Sabbatical"))
	assert.False(t, ValidLeaveType(""))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-01-31"))
	assert.False(t, ValidDate("31-01-2025"))
	assert.False(t, ValidDate("2025-13-01"))
	assert.False(t, ValidDate("2025-1-1"))
	assert.False(t, ValidDate(""))
}

func TestEffectiveStatus(t *testing.T) {
	rec := &AbsenceRecord{}
	assert.Equal(t, StatusPendingReview, rec.EffectiveStatus())

	rec.Status = StatusAcknowledged
	assert.Equal(t, StatusAcknowledged, rec.EffectiveStatus())
}
