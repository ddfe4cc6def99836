package repositories

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// GoodRepositoryFacade defines persistence operations for goods.
type GoodRepositoryFacade interface {
	SaveGood(ctx context.Context, good domain.Good) error
	FindGoodByID(ctx context.Context, companyID, goodID string) (*domain.Good, error)
	UpdateGood(ctx context.Context, good domain.Good) error

	// ListGoodsByJournals returns goods linked (via journal-good links) to
	// any of the given journals. Empty journalIDs lists the whole company.
	ListGoodsByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Good, error)
}
