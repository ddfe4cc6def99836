package repositories

import (
	"context"
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// InProcessFilter narrows the approval queue query.
type InProcessFilter struct {
	// PendingLevel filters rows whose current pending level equals this
	// value; negative means no level filter (unrestricted reviewers).
	PendingLevel int

	// EntityTypes restricts the entity kinds returned; empty means all.
	EntityTypes []domain.ApprovableType

	// JournalIDs restricts rows to entities created under these journals
	// (already expanded to descendants by the caller); empty means all.
	JournalIDs []string

	Take int
	Skip int
}

// ApprovalRepository provides the approval state of approvable entities
// across their underlying tables.
type ApprovalRepository interface {
	// FindApprovable loads the approval state of one entity.
	FindApprovable(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string) (*domain.ApprovableItem, error)

	// TransitionApproval applies an approval state change as a compare-and-
	// swap: the update only takes effect while the row is still PENDING at
	// expectedLevel. Returns false (and no error) when the row was changed
	// concurrently, so two approvals cannot both decrement the level.
	TransitionApproval(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, expectedLevel int, newStatus domain.ApprovalStatus, newLevel int, actedBy string, at time.Time) (bool, error)

	// ListInProcess returns PENDING entities matching the filter, ordered by
	// creation time ascending for deterministic queue fairness.
	ListInProcess(ctx context.Context, companyID string, filter InProcessFilter) ([]domain.ApprovableItem, error)
}
