// Package session drives the staged login flow: org-code gate, team pick,
// name pick, PIN entry. Org-code acceptance is persisted durably so later
// launches skip the gate; the staged progress itself lives in a short-lived
// session record. A successful PIN entry exchanges the session for a bearer
// token carrying the authenticated staff record's identity.
package session

// Stage identifies a step of the login flow.
type Stage string

const (
	StageOrgCode  Stage = "org_code_gate"
	StageTeamPick Stage = "team_pick"
	StageNamePick Stage = "name_pick"
	StagePinEntry Stage = "pin_entry"
)

// LoginSession is one client's progress through the staged login flow.
type LoginSession struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Stage    Stage  `json:"stage"`
	Team     string `json:"team,omitempty"`
	UserID   string `json:"user_id,omitempty"`
}

// Back returns to the prior stage, clearing the choice made there. The org
// gate is not reachable via Back: at team pick the session stays put.
func (s *LoginSession) Back() {
	switch s.Stage {
	case StagePinEntry:
		s.Stage = StageNamePick
		s.UserID = ""
	case StageNamePick:
		s.Stage = StageTeamPick
		s.Team = ""
	}
}
