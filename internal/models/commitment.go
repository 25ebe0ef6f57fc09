package models

type CommitmentType string

const (
	CommitmentLecture CommitmentType = "lecture"
	CommitmentLab     CommitmentType = "lab"
	CommitmentMeeting CommitmentType = "meeting"
	CommitmentOther   CommitmentType = "other"
)

// Commitment is an immovable external interval on a given day, typically a
// class timetable entry. The scheduler never moves commitments; it packs
// flexible activities around them.
type Commitment struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Day       string         `json:"day"`
	StartTime string         `json:"start_time"` // HH:MM format
	EndTime   string         `json:"end_time"`   // HH:MM format
	UnitCode  string         `json:"unit_code"`
	UnitName  string         `json:"unit_name"`
	Venue     string         `json:"venue,omitempty"`
	Type      CommitmentType `json:"type"`
	Active    bool           `json:"active"`
}
