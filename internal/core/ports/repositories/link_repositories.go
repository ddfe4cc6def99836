package repositories

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// LinkReader defines read operations for cross-entity links.
type LinkReader interface {
	FindPartnerLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalPartnerLink, error)
	FindGoodLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalGoodLink, error)
	FindPartnerGoodLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalPartnerGoodLink, error)

	ListPartnerLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalPartnerLink, error)
	ListGoodLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalGoodLink, error)
	ListPartnerGoodLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalPartnerGoodLink, error)

	// CountLinksByJournal counts links of all three variants attached to a
	// journal. Used to refuse journal deletion while dependents exist.
	CountLinksByJournal(ctx context.Context, companyID, journalID string) (int, error)
}

// LinkWriter defines write operations for cross-entity links. Each create
// runs the parent-equivalence check and the insert inside one database
// transaction, serialized per journal, so two concurrent creates cannot
// both race past the hierarchy check. requireParentJournalID is nil for
// root journals (no precondition); otherwise the repository verifies an
// equivalent link exists on that parent and returns
// apperrors.ErrHierarchyViolation when it does not.
type LinkWriter interface {
	CreatePartnerLink(ctx context.Context, link domain.JournalPartnerLink, requireParentJournalID *string) error
	CreateGoodLink(ctx context.Context, link domain.JournalGoodLink, requireParentJournalID *string) error
	CreatePartnerGoodLink(ctx context.Context, link domain.JournalPartnerGoodLink, requireParentJournalID *string) error

	// Deletes perform no hierarchy re-validation of descendant links.
	DeletePartnerLink(ctx context.Context, companyID, linkID string) error
	DeleteGoodLink(ctx context.Context, companyID, linkID string) error
	DeletePartnerGoodLink(ctx context.Context, companyID, linkID string) error
}

// LinkRepositoryFacade combines all link repository interfaces.
type LinkRepositoryFacade interface {
	LinkReader
	LinkWriter
}
