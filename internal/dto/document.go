package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CreateDocumentRequest defines the payload for registering a document.
type CreateDocumentRequest struct {
	JournalID    string          `json:"journalID" binding:"required"`
	PartnerID    *string         `json:"partnerID"`
	DocType      string          `json:"docType" binding:"required,oneof=INVOICE RECEIPT TRANSFER"`
	DocumentDate time.Time       `json:"documentDate" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Description  string          `json:"description"`
}

// UpdateDocumentRequest defines the updatable fields of a document.
type UpdateDocumentRequest struct {
	DocumentDate *time.Time `json:"documentDate"`
	Description  *string    `json:"description"`
}

// DocumentResponse is the wire form of a document.
type DocumentResponse struct {
	DocumentID     string                `json:"documentID"`
	JournalID      string                `json:"journalID"`
	PartnerID      *string               `json:"partnerID"`
	DocType        domain.DocumentType   `json:"docType"`
	DocumentDate   time.Time             `json:"documentDate"`
	Amount         decimal.Decimal       `json:"amount"`
	CurrencyCode   string                `json:"currencyCode"`
	Description    string                `json:"description"`
	ApprovalStatus domain.ApprovalStatus `json:"approvalStatus"`
	PendingLevel   int                   `json:"pendingLevel"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// ListDocumentsResponse wraps a documents listing page.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

// ToDocumentResponse converts a domain document to its response DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:     d.DocumentID,
		JournalID:      d.JournalID,
		PartnerID:      d.PartnerID,
		DocType:        d.DocType,
		DocumentDate:   d.DocumentDate,
		Amount:         d.Amount,
		CurrencyCode:   d.CurrencyCode,
		Description:    d.Description,
		ApprovalStatus: d.ApprovalStatus,
		PendingLevel:   d.CurrentPendingLevel,
		CreatedAt:      d.CreatedAt,
	}
}
