package domain

import "time"

// LeaveType enumerates the supported absence categories.
type LeaveType string

const (
	LeaveSick          LeaveType = "Sick Leave"
	LeaveChildcare     LeaveType = "Childcare Leave"
	LeaveCompassionate LeaveType = "Compassionate Leave"
	LeaveAnnual        LeaveType = "Annual Leave"
	LeaveOther         LeaveType = "Other"
)

// AbsenceStatus is the acknowledgement state of a report.
type AbsenceStatus string

const (
	StatusPendingReview AbsenceStatus = "Pending Review"
	StatusAcknowledged  AbsenceStatus = "Acknowledged"
)

// DateLayout is the calendar-date form used on absence records (local time).
const DateLayout = "2006-01-02"

// AbsenceRecord is a self-reported day away from work. The reporter's
// identity is denormalized at creation time; UserID is a weak reference
// that may no longer resolve once the staff record is deleted.
type AbsenceRecord struct {
	ID        string        `bson:"_id,omitempty" json:"id"`
	UserID    string        `bson:"user_id" json:"user_id"`
	UserName  string        `bson:"user_name" json:"user_name"`
	UserTeam  string        `bson:"user_team" json:"user_team"`
	Type      LeaveType     `bson:"type" json:"type"`
	Date      string        `bson:"date" json:"date"`
	Reason    string        `bson:"reason" json:"reason"`
	Status    AbsenceStatus `bson:"status,omitempty" json:"status"`
	Timestamp time.Time     `bson:"timestamp" json:"timestamp"`
}

// DocumentID returns the store-assigned identifier.
func (a *AbsenceRecord) DocumentID() string { return a.ID }

// SetDocumentID assigns the store identifier.
func (a *AbsenceRecord) SetDocumentID(id string) { a.ID = id }

// StampCreated records the server-assigned creation time.
func (a *AbsenceRecord) StampCreated(t time.Time) { a.Timestamp = t }

// EffectiveStatus resolves the legacy empty status to Pending Review.
func (a *AbsenceRecord) EffectiveStatus() AbsenceStatus {
	if a.Status == "" {
		return StatusPendingReview
	}
	return a.Status
}

// ValidLeaveType reports whether t is one of the enumerated leave types.
func ValidLeaveType(t LeaveType) bool {
	switch t {
	case LeaveSick, LeaveChildcare, LeaveCompassionate, LeaveAnnual, LeaveOther:
		return true
	}
	return false
}

// ValidDate reports whether date parses as YYYY-MM-DD.
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
