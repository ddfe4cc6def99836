package services

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// JournalReaderSvc defines read operations over the journal hierarchy.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a specific journal.
	GetJournalByID(ctx context.Context, companyID, journalID string, requestingUserID string) (*domain.Journal, error)

	// ListChildJournals retrieves the direct children of a journal.
	ListChildJournals(ctx context.Context, companyID, journalID string, requestingUserID string) ([]domain.Journal, error)

	// GetDescendantJournalIDs computes the descendant closure of a root set.
	// Unknown roots contribute nothing.
	GetDescendantJournalIDs(ctx context.Context, companyID string, rootIDs []string, includeRoots bool, requestingUserID string) ([]string, error)

	// IsJournalDescendant reports whether candidate lies strictly inside the
	// subtree rooted at ancestor.
	IsJournalDescendant(ctx context.Context, companyID, candidateID, ancestorID string) (bool, error)

	// GetJournalDepth returns the depth of a journal from its forest root
	// (roots are depth 0).
	GetJournalDepth(ctx context.Context, companyID, journalID string) (int, error)
}

// JournalWriterSvc defines write operations on the journal hierarchy.
type JournalWriterSvc interface {
	// CreateJournal creates a journal node under an optional parent.
	CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// UpdateJournal updates name, terminal flag and extra blob.
	UpdateJournal(ctx context.Context, companyID, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error)

	// DeleteJournal removes a journal; refused while children or dependent
	// links exist.
	DeleteJournal(ctx context.Context, companyID, journalID string, requestingUserID string) error
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
