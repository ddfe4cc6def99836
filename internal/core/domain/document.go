package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType categorizes accounting documents.
type DocumentType string

const (
	DocumentInvoice  DocumentType = "INVOICE"
	DocumentReceipt  DocumentType = "RECEIPT"
	DocumentTransfer DocumentType = "TRANSFER"
)

// Document is an accounting document registered under a journal.
type Document struct {
	DocumentID   string          `json:"documentID"` // Primary Key (UUID)
	CompanyID    string          `json:"companyID"`
	JournalID    string          `json:"journalID"` // creation journal, drives approval tier
	PartnerID    *string         `json:"partnerID"` // optional counterparty
	DocType      DocumentType    `json:"docType"`
	DocumentDate time.Time       `json:"documentDate"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	Description  string          `json:"description"`
	Approval
	AuditFields
}
