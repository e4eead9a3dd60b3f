package domain

import "time"

// StaffRole enumerates directory roles.
type StaffRole string

const (
	StaffRoleStaff  StaffRole = "staff"
	StaffRoleLeader StaffRole = "leader"
	StaffRoleAdmin  StaffRole = "admin"
)

// Organization-wide constants. The org code is a soft gate shared by all
// staff; per-user authentication happens against the stored PIN.
const (
	OrgAccessCode = "CSE2025"
	AdminName     = "Arnold Sim"
	DefaultPIN    = "1234"
)

// Teams is the closed set of team names a staff member can belong to.
var Teams = []string{
	"Bricktastic",
	"Rebrick",
	"Brickstars",
	"Piece Makers",
	"Brick Force",
	"Leg Godt Angels",
	"L2ST",
	"Others",
}

// StaffRecord models one member of the staff directory.
type StaffRecord struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Team      string    `bson:"team" json:"team"`
	Role      StaffRole `bson:"role" json:"role"`
	PIN       string    `bson:"pin" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// DocumentID returns the store-assigned identifier.
func (s *StaffRecord) DocumentID() string { return s.ID }

// SetDocumentID assigns the store identifier.
func (s *StaffRecord) SetDocumentID(id string) { s.ID = id }

// StampCreated records the server-assigned creation time.
func (s *StaffRecord) StampCreated(t time.Time) { s.CreatedAt = t }

// UsesDefaultPIN reports whether the member still has the provisioning PIN.
func (s *StaffRecord) UsesDefaultPIN() bool { return s.PIN == DefaultPIN }

// IsSeedAdmin reports whether this is the bootstrap administrator record,
// which must not be deletable through the admin surface.
func (s *StaffRecord) IsSeedAdmin() bool {
	return s.Name == AdminName && s.Role == StaffRoleAdmin
}

// ValidRole reports whether the role is one of the enumerated roles.
func ValidRole(role StaffRole) bool {
	switch role {
	case StaffRoleStaff, StaffRoleLeader, StaffRoleAdmin:
		return true
	}
	return false
}

// ValidTeam reports whether the team belongs to the closed enumeration.
func ValidTeam(team string) bool {
	for _, t := range Teams {
		if t == team {
			return true
		}
	}
	return false
}

// ValidPIN reports whether pin is exactly four digits.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SeedAdmin returns the record inserted when the staff list is empty.
func SeedAdmin() *StaffRecord {
	return &StaffRecord{
		Name: AdminName,
		Team: "Others",
		Role: StaffRoleAdmin,
		PIN:  DefaultPIN,
	}
}
