package dto

import (
	"time"

	"github.com/cse-sg/absence-service/internal/domain"
)

// SubmitAbsenceRequest reports an absence for the authenticated user.
type SubmitAbsenceRequest struct {
	Type   string `json:"type"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// AbsenceResponse is the API shape of an absence record.
type AbsenceResponse struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	UserName       string               `json:"user_name"`
	UserTeam       string               `json:"user_team"`
	Type           domain.LeaveType     `json:"type"`
	Date           string               `json:"date"`
	Reason         string               `json:"reason"`
	Status         domain.AbsenceStatus `json:"status"`
	CanAcknowledge bool                 `json:"can_acknowledge"`
	Timestamp      time.Time            `json:"timestamp"`
}

// AbsenceFromDomain maps an absence record. The status is never empty on
// the wire even when the stored document predates the status field.
func AbsenceFromDomain(a *domain.AbsenceRecord) AbsenceResponse {
	status := a.EffectiveStatus()
	return AbsenceResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		UserName:       a.UserName,
		UserTeam:       a.UserTeam,
		Type:           a.Type,
		Date:           a.Date,
		Reason:         a.Reason,
		Status:         status,
		CanAcknowledge: status == domain.StatusPendingReview,
		Timestamp:      a.Timestamp,
	}
}

// AbsencesFromDomain maps a result set in order.
func AbsencesFromDomain(records []*domain.AbsenceRecord) []AbsenceResponse {
	out := make([]AbsenceResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, AbsenceFromDomain(rec))
	}
	return out
}
