package repositories

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// JournalReader defines read operations for journal hierarchy data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal within a company.
	FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error)

	// FindJournalsByIDs retrieves multiple journals keyed by id. Missing ids
	// are simply absent from the result map.
	FindJournalsByIDs(ctx context.Context, companyID string, journalIDs []string) (map[string]domain.Journal, error)

	// FindChildJournals retrieves the direct children of a journal.
	FindChildJournals(ctx context.Context, companyID, journalID string) ([]domain.Journal, error)

	// FindJournalsByCompany retrieves the full journal forest of a company,
	// used to build hierarchy snapshots.
	FindJournalsByCompany(ctx context.Context, companyID string) ([]domain.Journal, error)

	// CountChildJournals returns the number of direct children of a journal.
	CountChildJournals(ctx context.Context, companyID, journalID string) (int, error)
}

// JournalWriter defines write operations for journal hierarchy data
type JournalWriter interface {
	// SaveJournal persists a new journal node.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournal updates name, terminal flag and extra blob of a journal.
	UpdateJournal(ctx context.Context, journal domain.Journal) error

	// DeleteJournal removes a journal node. Callers must have verified the
	// node has no children and no dependent links.
	DeleteJournal(ctx context.Context, companyID, journalID string) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
