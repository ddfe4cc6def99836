package repositories

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// DocumentRepositoryFacade defines persistence operations for documents.
type DocumentRepositoryFacade interface {
	SaveDocument(ctx context.Context, document domain.Document) error
	FindDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, error)
	UpdateDocument(ctx context.Context, document domain.Document) error

	// ListDocumentsByJournals returns documents registered under any of the
	// given journals, newest first. Empty journalIDs lists the company.
	ListDocumentsByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Document, error)
}
