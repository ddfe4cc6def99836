package domain

// LoopStatus is the lifecycle state of a loop.
type LoopStatus string

const (
	LoopActive   LoopStatus = "ACTIVE"
	LoopInactive LoopStatus = "INACTIVE"
	LoopDraft    LoopStatus = "DRAFT"
)

// IsValid reports whether s is a known loop status.
func (s LoopStatus) IsValid() bool {
	switch s {
	case LoopActive, LoopInactive, LoopDraft:
		return true
	default:
		return false
	}
}

// Loop is a named, ordered cycle of journals connected by edges independent
// of the parent/child tree. For an ACTIVE loop the edges form a single
// simple cycle: every member journal has exactly one incoming and one
// outgoing edge within the loop.
type Loop struct {
	LoopID      string     `json:"loopID"` // Primary Key (UUID)
	CompanyID   string     `json:"companyID"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      LoopStatus `json:"status"`
	AuditFields
}

// LoopConnection is a directed edge between two journals belonging to
// exactly one loop, ordered by Position within that loop.
type LoopConnection struct {
	ConnectionID  string `json:"connectionID"` // Primary Key (UUID)
	LoopID        string `json:"loopID"`
	FromJournalID string `json:"fromJournalID"`
	ToJournalID   string `json:"toJournalID"`
	Position      int    `json:"position"`
	AuditFields
}
