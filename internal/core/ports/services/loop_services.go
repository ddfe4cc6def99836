package services

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// LoopSvcFacade maintains loops: cycles of journals connected by ordered
// edges independent of the parent/child tree.
type LoopSvcFacade interface {
	// CreateLoop builds a loop from an ordered sequence of at least three
	// distinct journals, closing the cycle back to the first.
	CreateLoop(ctx context.Context, companyID string, req dto.CreateLoopRequest, creatorUserID string) (*domain.Loop, []domain.LoopConnection, error)

	// GetLoopByID retrieves a loop with its edges ordered by position.
	GetLoopByID(ctx context.Context, companyID, loopID string, requestingUserID string) (*domain.Loop, []domain.LoopConnection, error)

	// ListLoops pages the company's loops.
	ListLoops(ctx context.Context, companyID string, limit, offset int, requestingUserID string) ([]domain.Loop, error)

	// DetectConnection reports whether after is the immediate successor of
	// before in any ACTIVE loop. This is a direct-edge check, not transitive
	// reachability.
	DetectConnection(ctx context.Context, companyID, beforeJournalID, afterJournalID string, requestingUserID string) (*dto.ConnectionResponse, error)

	// InsertChain replaces the edge insertAfter -> insertBefore of the named
	// loop with a path through the chain journals, atomically.
	InsertChain(ctx context.Context, companyID, loopID string, req dto.InsertChainRequest, requestingUserID string) (*domain.Loop, []domain.LoopConnection, error)

	// DeactivateLoop soft-deletes a loop.
	DeactivateLoop(ctx context.Context, companyID, loopID string, requestingUserID string) error
}
