package repositories

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// PartnerRepositoryFacade defines persistence operations for partners.
type PartnerRepositoryFacade interface {
	SavePartner(ctx context.Context, partner domain.Partner) error
	FindPartnerByID(ctx context.Context, companyID, partnerID string) (*domain.Partner, error)
	UpdatePartner(ctx context.Context, partner domain.Partner) error

	// ListPartnersByJournals returns partners linked (via journal-partner
	// links) to any of the given journals. Empty journalIDs lists the whole
	// company.
	ListPartnersByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Partner, error)
}
