package services

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// ApprovalSvcFacade drives the tiered approval lifecycle of approvable
// entities. A user's tier is the depth of their restricted journal;
// unrestricted users match every level.
type ApprovalSvcFacade interface {
	// Approve advances a pending entity one tier up (level 0 approves
	// terminally). The acting user's tier must match the entity's current
	// pending level.
	Approve(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, actingUserID string) (*domain.ApprovableItem, error)

	// Reject terminally rejects a pending entity under the same tier-match
	// precondition.
	Reject(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, actingUserID string) (*domain.ApprovableItem, error)

	// ListInProcessItems pages the pending queue at the acting user's tier,
	// scoped by entity type and journal subtree filters.
	ListInProcessItems(ctx context.Context, companyID string, params dto.ListInProcessParams, actingUserID string) ([]domain.ApprovableItem, error)

	// GetUserTier derives the acting user's approval tier.
	GetUserTier(ctx context.Context, companyID, userID string) (domain.ApprovalTier, error)
}
