package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CreateGoodRequest defines the payload for registering a good.
type CreateGoodRequest struct {
	Name              string          `json:"name" binding:"required"`
	Barcode           string          `json:"barcode"`
	Unit              string          `json:"unit" binding:"required"`
	DefaultVatRate    decimal.Decimal `json:"defaultVatRate"`
	Extra             json.RawMessage `json:"extra"`
	CreationJournalID string          `json:"creationJournalID" binding:"required"`
}

// UpdateGoodRequest defines the updatable fields of a good.
type UpdateGoodRequest struct {
	Name           *string          `json:"name"`
	Barcode        *string          `json:"barcode"`
	Unit           *string          `json:"unit"`
	DefaultVatRate *decimal.Decimal `json:"defaultVatRate"`
	Extra          json.RawMessage  `json:"extra"`
}

// GoodResponse is the wire form of a good.
type GoodResponse struct {
	GoodID            string                `json:"goodID"`
	Name              string                `json:"name"`
	Barcode           string                `json:"barcode"`
	Unit              string                `json:"unit"`
	DefaultVatRate    decimal.Decimal       `json:"defaultVatRate"`
	Extra             json.RawMessage       `json:"extra,omitempty"`
	CreationJournalID string                `json:"creationJournalID"`
	ApprovalStatus    domain.ApprovalStatus `json:"approvalStatus"`
	PendingLevel      int                   `json:"pendingLevel"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// ListGoodsResponse wraps a goods listing page.
type ListGoodsResponse struct {
	Goods []GoodResponse `json:"goods"`
}

// ToGoodResponse converts a domain good to its response DTO.
func ToGoodResponse(g *domain.Good) GoodResponse {
	return GoodResponse{
		GoodID:            g.GoodID,
		Name:              g.Name,
		Barcode:           g.Barcode,
		Unit:              g.Unit,
		DefaultVatRate:    g.DefaultVatRate,
		Extra:             g.Extra,
		CreationJournalID: g.CreationJournalID,
		ApprovalStatus:    g.ApprovalStatus,
		PendingLevel:      g.CurrentPendingLevel,
		CreatedAt:         g.CreatedAt,
	}
}
