package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cross-entity links attach a business entity to a journal, making it
// visible/usable under that journal. Hierarchical integrity: a link on a
// non-root journal requires an equivalent link (same entity ids) on the
// parent journal at creation time. Deletion never re-validates descendants.

// JournalPartnerLink makes a partner usable under a journal.
type JournalPartnerLink struct {
	LinkID          string     `json:"linkID"` // Primary Key (UUID)
	CompanyID       string     `json:"companyID"`
	JournalID       string     `json:"journalID"`
	PartnerID       string     `json:"partnerID"`
	PartnershipType string     `json:"partnershipType"` // e.g. "SUPPLIER", "CUSTOMER"
	DateStart       *time.Time `json:"dateStart"`
	DateEnd         *time.Time `json:"dateEnd"`
	Approval
	AuditFields
}

// JournalGoodLink makes a good usable under a journal, optionally
// overriding its VAT rate within that journal's scope.
type JournalGoodLink struct {
	LinkID          string           `json:"linkID"` // Primary Key (UUID)
	CompanyID       string           `json:"companyID"`
	JournalID       string           `json:"journalID"`
	GoodID          string           `json:"goodID"`
	VatRateOverride *decimal.Decimal `json:"vatRateOverride"`
	Approval
	AuditFields
}

// JournalPartnerGoodLink scopes a specific partner+good pair to a journal.
type JournalPartnerGoodLink struct {
	LinkID    string `json:"linkID"` // Primary Key (UUID)
	CompanyID string `json:"companyID"`
	JournalID string `json:"journalID"`
	PartnerID string `json:"partnerID"`
	GoodID    string `json:"goodID"`
	Approval
	AuditFields
}
