package dto

import (
	"time"

	"github.com/cse-sg/absence-service/internal/domain"
	"github.com/cse-sg/absence-service/internal/session"
)

// OrgCodeRequest passes the org gate.
type OrgCodeRequest struct {
	ClientID string `json:"client_id"`
	Code     string `json:"code"`
}

// ResumeRequest reopens the flow for a client with persisted acceptance.
type ResumeRequest struct {
	ClientID string `json:"client_id"`
}

// TeamPickRequest chooses a team.
type TeamPickRequest struct {
	Team string `json:"team"`
}

// UserPickRequest chooses a staff member.
type UserPickRequest struct {
	UserID string `json:"user_id"`
}

// PinRequest submits the typed PIN.
type PinRequest struct {
	PIN string `json:"pin"`
}

// LogoutRequest discards the authenticated session.
type LogoutRequest struct {
	ClientID string `json:"client_id"`
}

// SessionResponse reflects the staged login state.
type SessionResponse struct {
	ID     string        `json:"id"`
	Stage  session.Stage `json:"stage"`
	Team   string        `json:"team,omitempty"`
	UserID string        `json:"user_id,omitempty"`
}

// AuthResponse carries the issued bearer token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionFromDomain maps a login session.
func SessionFromDomain(s *session.LoginSession) SessionResponse {
	return SessionResponse{ID: s.ID, Stage: s.Stage, Team: s.Team, UserID: s.UserID}
}

// StaffResponse is the API shape of a staff record.
type StaffResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Team       string           `json:"team"`
	Role       domain.StaffRole `json:"role"`
	CreatedAt  time.Time        `json:"created_at"`
	DefaultPIN bool             `json:"default_pin"`
}

// StaffFromDomain maps a staff record. The default-PIN advisory travels
// with every staff payload so any view can surface the warning.
func StaffFromDomain(s *domain.StaffRecord) StaffResponse {
	return StaffResponse{
		ID:         s.ID,
		Name:       s.Name,
		Team:       s.Team,
		Role:       s.Role,
		CreatedAt:  s.CreatedAt,
		DefaultPIN: s.UsesDefaultPIN(),
	}
}
