package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CreatePartnerLinkRequest attaches a partner to a journal.
type CreatePartnerLinkRequest struct {
	JournalID       string     `json:"journalID" binding:"required"`
	PartnerID       string     `json:"partnerID" binding:"required"`
	PartnershipType string     `json:"partnershipType"`
	DateStart       *time.Time `json:"dateStart"`
	DateEnd         *time.Time `json:"dateEnd"`
}

// CreateGoodLinkRequest attaches a good to a journal.
type CreateGoodLinkRequest struct {
	JournalID       string           `json:"journalID" binding:"required"`
	GoodID          string           `json:"goodID" binding:"required"`
	VatRateOverride *decimal.Decimal `json:"vatRateOverride"`
}

// CreatePartnerGoodLinkRequest scopes a partner+good pair to a journal.
type CreatePartnerGoodLinkRequest struct {
	JournalID string `json:"journalID" binding:"required"`
	PartnerID string `json:"partnerID" binding:"required"`
	GoodID    string `json:"goodID" binding:"required"`
}

// ListLinksParams narrows link listings to a journal subtree.
type ListLinksParams struct {
	JournalID          *string `form:"journalID"`
	IncludeDescendants bool    `form:"includeDescendants"`
	Limit              int     `form:"limit"`
	Offset             int     `form:"offset"`
}

// PartnerLinkResponse is the wire form of a journal-partner link.
type PartnerLinkResponse struct {
	LinkID          string                `json:"linkID"`
	JournalID       string                `json:"journalID"`
	PartnerID       string                `json:"partnerID"`
	PartnershipType string                `json:"partnershipType"`
	DateStart       *time.Time            `json:"dateStart"`
	DateEnd         *time.Time            `json:"dateEnd"`
	ApprovalStatus  domain.ApprovalStatus `json:"approvalStatus"`
	PendingLevel    int                   `json:"pendingLevel"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// GoodLinkResponse is the wire form of a journal-good link.
type GoodLinkResponse struct {
	LinkID          string                `json:"linkID"`
	JournalID       string                `json:"journalID"`
	GoodID          string                `json:"goodID"`
	VatRateOverride *decimal.Decimal      `json:"vatRateOverride"`
	ApprovalStatus  domain.ApprovalStatus `json:"approvalStatus"`
	PendingLevel    int                   `json:"pendingLevel"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// PartnerGoodLinkResponse is the wire form of a journal-partner-good link.
type PartnerGoodLinkResponse struct {
	LinkID         string                `json:"linkID"`
	JournalID      string                `json:"journalID"`
	PartnerID      string                `json:"partnerID"`
	GoodID         string                `json:"goodID"`
	ApprovalStatus domain.ApprovalStatus `json:"approvalStatus"`
	PendingLevel   int                   `json:"pendingLevel"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// ToPartnerLinkResponse converts a domain link to its response DTO.
func ToPartnerLinkResponse(l *domain.JournalPartnerLink) PartnerLinkResponse {
	return PartnerLinkResponse{
		LinkID:          l.LinkID,
		JournalID:       l.JournalID,
		PartnerID:       l.PartnerID,
		PartnershipType: l.PartnershipType,
		DateStart:       l.DateStart,
		DateEnd:         l.DateEnd,
		ApprovalStatus:  l.ApprovalStatus,
		PendingLevel:    l.CurrentPendingLevel,
		CreatedAt:       l.CreatedAt,
	}
}

// ToGoodLinkResponse converts a domain link to its response DTO.
func ToGoodLinkResponse(l *domain.JournalGoodLink) GoodLinkResponse {
	return GoodLinkResponse{
		LinkID:          l.LinkID,
		JournalID:       l.JournalID,
		GoodID:          l.GoodID,
		VatRateOverride: l.VatRateOverride,
		ApprovalStatus:  l.ApprovalStatus,
		PendingLevel:    l.CurrentPendingLevel,
		CreatedAt:       l.CreatedAt,
	}
}

// ToPartnerGoodLinkResponse converts a domain link to its response DTO.
func ToPartnerGoodLinkResponse(l *domain.JournalPartnerGoodLink) PartnerGoodLinkResponse {
	return PartnerGoodLinkResponse{
		LinkID:         l.LinkID,
		JournalID:      l.JournalID,
		PartnerID:      l.PartnerID,
		GoodID:         l.GoodID,
		ApprovalStatus: l.ApprovalStatus,
		PendingLevel:   l.CurrentPendingLevel,
		CreatedAt:      l.CreatedAt,
	}
}
