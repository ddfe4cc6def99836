package dto

import (
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// ListInProcessParams filters the approval queue.
type ListInProcessParams struct {
	EntityTypes        []string `form:"entityTypes"`
	JournalID          *string  `form:"journalID"`
	IncludeDescendants bool     `form:"includeDescendants"`
	Take               int      `form:"take"`
	Skip               int      `form:"skip"`
}

// ApprovableItemResponse is one row of the approval queue.
type ApprovableItemResponse struct {
	EntityType   domain.ApprovableType `json:"entityType"`
	EntityID     string                `json:"entityID"`
	JournalID    string                `json:"journalID"`
	Label        string                `json:"label"`
	Status       domain.ApprovalStatus `json:"status"`
	PendingLevel int                   `json:"pendingLevel"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListInProcessResponse wraps an approval queue page.
type ListInProcessResponse struct {
	Items []ApprovableItemResponse `json:"items"`
	Take  int                      `json:"take"`
	Skip  int                      `json:"skip"`
}

// ApprovalStateResponse reports the entity state after approve/reject.
type ApprovalStateResponse struct {
	EntityType   domain.ApprovableType `json:"entityType"`
	EntityID     string                `json:"entityID"`
	Status       domain.ApprovalStatus `json:"status"`
	PendingLevel int                   `json:"pendingLevel"`
}

// ToApprovableItemResponse converts a queue row to its response DTO.
func ToApprovableItemResponse(item *domain.ApprovableItem) ApprovableItemResponse {
	return ApprovableItemResponse{
		EntityType:   item.EntityType,
		EntityID:     item.EntityID,
		JournalID:    item.JournalID,
		Label:        item.Label,
		Status:       item.ApprovalStatus,
		PendingLevel: item.CurrentPendingLevel,
		CreatedAt:    item.CreatedAt,
		CreatedBy:    item.CreatedBy,
	}
}

// ToApprovalStateResponse converts a queue row to the post-action state DTO.
func ToApprovalStateResponse(item *domain.ApprovableItem) ApprovalStateResponse {
	return ApprovalStateResponse{
		EntityType:   item.EntityType,
		EntityID:     item.EntityID,
		Status:       item.ApprovalStatus,
		PendingLevel: item.CurrentPendingLevel,
	}
}
