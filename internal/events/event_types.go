package events

import (
	"time"

	"github.com/cse-sg/absence-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAbsenceSubmitted    EventType = "absence_submitted"
	EventAbsenceAcknowledged EventType = "absence_acknowledged"
	EventStaffCreated        EventType = "staff_created"
	EventStaffDeleted        EventType = "staff_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AbsenceSubmittedPayload payload.
type AbsenceSubmittedPayload struct {
	AbsenceID string           `json:"absence_id"`
	UserName  string           `json:"user_name"`
	UserTeam  string           `json:"user_team"`
	Type      domain.LeaveType `json:"type"`
	Date      string           `json:"date"`
}

// AbsenceAcknowledgedPayload payload.
type AbsenceAcknowledgedPayload struct {
	AbsenceID string `json:"absence_id"`
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	StaffID string           `json:"staff_id"`
	Name    string           `json:"name"`
	Team    string           `json:"team"`
	Role    domain.StaffRole `json:"role"`
}

// StaffDeletedPayload payload.
type StaffDeletedPayload struct {
	StaffID string `json:"staff_id"`
}
