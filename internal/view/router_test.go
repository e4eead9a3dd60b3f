package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cse-sg/absence-service/internal/domain"
)

func TestVisible(t *testing.T) {
	cases := []struct {
		tab  Tab
		role domain.StaffRole
		want bool
	}{
		{TabRegister, domain.StaffRoleStaff, true},
		{TabMyHistory, domain.StaffRoleStaff, true},
		{TabMyProfile, domain.StaffRoleStaff, true},
		{TabTeamDashboard, domain.StaffRoleStaff, false},
		{TabManageUsers, domain.StaffRoleStaff, false},
		{TabTeamDashboard, domain.StaffRoleLeader, true},
		{TabManageUsers, domain.StaffRoleLeader, false},
		{TabTeamDashboard, domain.StaffRoleAdmin, true},
		{TabManageUsers, domain.StaffRoleAdmin, true},
		{Tab("unknown"), domain.StaffRoleAdmin, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Visible(tc.tab, tc.role), "tab %s role %s", tc.tab, tc.role)
	}
}

func TestAllowed(t *testing.T) {
	assert.Equal(t, []Tab{TabRegister, TabMyHistory, TabMyProfile}, Allowed(domain.StaffRoleStaff))
	assert.Equal(t, []Tab{TabRegister, TabMyHistory, TabMyProfile, TabTeamDashboard}, Allowed(domain.StaffRoleLeader))
	assert.Equal(t, []Tab{TabRegister, TabMyHistory, TabMyProfile, TabTeamDashboard, TabManageUsers}, Allowed(domain.StaffRoleAdmin))
}

func TestDefaultTab(t *testing.T) {
	assert.Equal(t, TabRegister, DefaultTab(domain.StaffRoleStaff))
	assert.Equal(t, TabTeamDashboard, DefaultTab(domain.StaffRoleLeader))
	assert.Equal(t, TabTeamDashboard, DefaultTab(domain.StaffRoleAdmin))
}

func TestNavigate(t *testing.T) {
	// allowed requests win
	assert.Equal(t, TabMyHistory, Navigate(TabRegister, TabMyHistory, domain.StaffRoleStaff))

	// a gated request is silently ignored
	assert.Equal(t, TabRegister, Navigate(TabRegister, TabManageUsers, domain.StaffRoleStaff))
	assert.Equal(t, TabMyHistory, Navigate(TabMyHistory, TabTeamDashboard, domain.StaffRoleStaff))

	// if the current tab is itself gated, fall back to the landing tab
	assert.Equal(t, TabRegister, Navigate(TabManageUsers, TabTeamDashboard, domain.StaffRoleStaff))
}
