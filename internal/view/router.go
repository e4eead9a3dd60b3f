// Package view is the role-gated tab model. It decides which tabs a staff
// member can see, where they land after login, and what a navigation
// request resolves to.
package view

import "github.com/cse-sg/absence-service/internal/domain"

// Tab identifies one of the application's views.
type Tab string

const (
	TabRegister      Tab = "register"
	TabMyHistory     Tab = "my_history"
	TabMyProfile     Tab = "my_profile"
	TabTeamDashboard Tab = "team_dashboard"
	TabManageUsers   Tab = "manage_users"
)

// tabs in display order.
var tabs = []Tab{TabRegister, TabMyHistory, TabMyProfile, TabTeamDashboard, TabManageUsers}

// Visible reports whether the role may open the tab.
func Visible(tab Tab, role domain.StaffRole) bool {
	switch tab {
	case TabRegister, TabMyHistory, TabMyProfile:
		return true
	case TabTeamDashboard:
		return role == domain.StaffRoleLeader || role == domain.StaffRoleAdmin
	case TabManageUsers:
		return role == domain.StaffRoleAdmin
	}
	return false
}

// Allowed returns the tabs visible to the role, in display order.
func Allowed(role domain.StaffRole) []Tab {
	visible := make([]Tab, 0, len(tabs))
	for _, t := range tabs {
		if Visible(t, role) {
			visible = append(visible, t)
		}
	}
	return visible
}

// DefaultTab is the landing tab after login: the dashboard for leaders and
// admins, the registration form for everyone else.
func DefaultTab(role domain.StaffRole) Tab {
	if role == domain.StaffRoleLeader || role == domain.StaffRoleAdmin {
		return TabTeamDashboard
	}
	return TabRegister
}

// Navigate resolves a navigation request. A request for a tab the role
// cannot see is silently ignored: the current tab stands.
func Navigate(current, requested Tab, role domain.StaffRole) Tab {
	if Visible(requested, role) {
		return requested
	}
	if Visible(current, role) {
		return current
	}
	return DefaultTab(role)
}
