package dto

import (
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CreatePartnerRequest defines the payload for registering a partner.
type CreatePartnerRequest struct {
	Name              string `json:"name" binding:"required"`
	Tin               string `json:"tin"`
	Notes             string `json:"notes"`
	CreationJournalID string `json:"creationJournalID" binding:"required"`
}

// UpdatePartnerRequest defines the updatable fields of a partner.
type UpdatePartnerRequest struct {
	Name  *string `json:"name"`
	Tin   *string `json:"tin"`
	Notes *string `json:"notes"`
}

// ListEntitiesParams scopes entity listings to a journal subtree.
type ListEntitiesParams struct {
	JournalID          *string `form:"journalID"`
	IncludeDescendants bool    `form:"includeDescendants"`
	Limit              int     `form:"limit"`
	Offset             int     `form:"offset"`
}

// PartnerResponse is the wire form of a partner.
type PartnerResponse struct {
	PartnerID         string                `json:"partnerID"`
	Name              string                `json:"name"`
	Tin               string                `json:"tin"`
	Notes             string                `json:"notes"`
	CreationJournalID string                `json:"creationJournalID"`
	ApprovalStatus    domain.ApprovalStatus `json:"approvalStatus"`
	PendingLevel      int                   `json:"pendingLevel"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// ListPartnersResponse wraps a partner listing page.
type ListPartnersResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

// ToPartnerResponse converts a domain partner to its response DTO.
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:         p.PartnerID,
		Name:              p.Name,
		Tin:               p.Tin,
		Notes:             p.Notes,
		CreationJournalID: p.CreationJournalID,
		ApprovalStatus:    p.ApprovalStatus,
		PendingLevel:      p.CurrentPendingLevel,
		CreatedAt:         p.CreatedAt,
	}
}
