package models

// Attendance request states. A request is created pending and moves to
// exactly one of the terminal states when the host resolves it.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// ValidResolution reports whether the value is a terminal status a host may set.
func ValidResolution(value string) bool {
	return value == StatusAccepted || value == StatusRejected
}

// Request ties a requestor to a party. RequestorID and PartyID are immutable
// after creation; only status and message may change, and only through the
// party's host.
type Request struct {
	BaseModel

	RequestorID string `gorm:"type:uuid;not null;index" json:"requestor_id"`
	Requestor   *User  `gorm:"foreignKey:RequestorID" json:"-"`

	PartyID string `gorm:"type:uuid;not null;index" json:"party_id"`
	Party   *Party `gorm:"foreignKey:PartyID" json:"-"`

	Message string `json:"message,omitempty"`
	Status  string `gorm:"not null;default:pending" json:"status"`
}
