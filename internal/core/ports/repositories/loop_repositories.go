package repositories

import (
	"context"
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// LoopReader defines read operations for loops and their edges.
type LoopReader interface {
	// FindLoopByID retrieves a loop and its connections ordered by position.
	FindLoopByID(ctx context.Context, companyID, loopID string) (*domain.Loop, []domain.LoopConnection, error)

	// FindActiveConnection looks up a direct edge from -> to in any ACTIVE
	// loop of the company. Returns apperrors.ErrNotFound when absent.
	FindActiveConnection(ctx context.Context, companyID, fromJournalID, toJournalID string) (*domain.LoopConnection, error)

	// ListLoops retrieves loops of a company, newest first.
	ListLoops(ctx context.Context, companyID string, limit, offset int) ([]domain.Loop, error)
}

// LoopWriter defines write operations for loops. All mutations are atomic
// per loop: either the full edge-set change commits or none of it does.
type LoopWriter interface {
	// SaveLoop persists a loop and its full edge list in one transaction.
	SaveLoop(ctx context.Context, loop domain.Loop, connections []domain.LoopConnection) error

	// ReplaceConnection removes one edge and splices the inserted edges into
	// its position, shifting the positions of all later edges, inside one
	// transaction that locks the loop row. The inserted connections are
	// given in chain order; the repository assigns their final positions.
	ReplaceConnection(ctx context.Context, companyID, loopID, removeConnectionID string, inserted []domain.LoopConnection, updatedBy string, at time.Time) error

	// UpdateLoopStatus changes the loop status (soft delete = INACTIVE).
	UpdateLoopStatus(ctx context.Context, companyID, loopID string, status domain.LoopStatus, updatedBy string, at time.Time) error
}

// LoopRepositoryFacade combines all loop repository interfaces.
type LoopRepositoryFacade interface {
	LoopReader
	LoopWriter
}
