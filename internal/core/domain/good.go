package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Good is a product or service item traded by the company.
type Good struct {
	GoodID            string          `json:"goodID"` // Primary Key (UUID)
	CompanyID         string          `json:"companyID"`
	Name              string          `json:"name"`
	Barcode           string          `json:"barcode"`
	Unit              string          `json:"unit"` // e.g. "pcs", "kg"
	DefaultVatRate    decimal.Decimal `json:"defaultVatRate"`
	Extra             json.RawMessage `json:"extra,omitempty"` // opaque blob, never inspected by the engine
	CreationJournalID string          `json:"creationJournalID"`
	Approval
	AuditFields
}
