package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all PostgreSQL repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		JournalRepo:  newPgxJournalRepository(dbPool),
		LinkRepo:     newPgxLinkRepository(dbPool),
		ApprovalRepo: newPgxApprovalRepository(dbPool),
		LoopRepo:     newPgxLoopRepository(dbPool),
		PartnerRepo:  newPgxPartnerRepository(dbPool),
		GoodRepo:     newPgxGoodRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
	}
}
