package dto

import "github.com/cse-sg/absence-service/internal/domain"

// CreateStaffRequest adds a staff member to the directory.
type CreateStaffRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Team string `json:"team"`
}

// StaffRow is a directory row in the management view. The seed admin is
// never deletable.
type StaffRow struct {
	StaffResponse
	Deletable bool `json:"deletable"`
}

// StaffRowsFromDomain maps directory records to management rows.
func StaffRowsFromDomain(records []*domain.StaffRecord) []StaffRow {
	rows := make([]StaffRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, StaffRow{
			StaffResponse: StaffFromDomain(rec),
			Deletable:     !rec.IsSeedAdmin(),
		})
	}
	return rows
}

// StaffListFromDomain maps directory records without management metadata.
func StaffListFromDomain(records []*domain.StaffRecord) []StaffResponse {
	out := make([]StaffResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, StaffFromDomain(rec))
	}
	return out
}

// ChangePinRequest rotates the authenticated user's PIN.
type ChangePinRequest struct {
	CurrentPin string `json:"current_pin"`
	NewPin     string `json:"new_pin"`
	ConfirmPin string `json:"confirm_pin"`
}

// NavigateRequest asks to switch the active tab.
type NavigateRequest struct {
	Current   string `json:"current"`
	Requested string `json:"requested"`
}
