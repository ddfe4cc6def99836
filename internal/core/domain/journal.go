package domain

import "encoding/json"

// Journal is a node in the organizational/accounting tree of a company.
// Journals scope cross-entity links, approval tiers and loops.
type Journal struct {
	JournalID       string          `json:"journalID"` // Primary Key (UUID)
	CompanyID       string          `json:"companyID"`
	Name            string          `json:"name"`
	ParentJournalID *string         `json:"parentJournalID"` // nil => root journal
	IsTerminal      bool            `json:"isTerminal"`      // terminal journals may not gain children
	Extra           json.RawMessage `json:"extra,omitempty"` // opaque blob, never inspected by the engine
	AuditFields
}

// IsRoot reports whether the journal has no parent.
func (j *Journal) IsRoot() bool {
	return j.ParentJournalID == nil
}
