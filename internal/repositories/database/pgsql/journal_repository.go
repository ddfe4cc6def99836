package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalSelectColumns = `
	journal_id, company_id, name, parent_journal_id, is_terminal, extra,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var j domain.Journal
	err := row.Scan(
		&j.JournalID,
		&j.CompanyID,
		&j.Name,
		&j.ParentJournalID,
		&j.IsTerminal,
		&j.Extra,
		&j.CreatedAt,
		&j.CreatedBy,
		&j.LastUpdatedAt,
		&j.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *PgxJournalRepository) collectJournals(ctx context.Context, filterQuery string, args ...any) ([]domain.Journal, error) {
	query := `SELECT ` + journalSelectColumns + ` FROM journals ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, *j)
	}
	return journals, rows.Err()
}

func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalSelectColumns + ` FROM journals WHERE company_id = $1 AND journal_id = $2;`
	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, companyID, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	return journal, nil
}

func (r *PgxJournalRepository) FindJournalsByIDs(ctx context.Context, companyID string, journalIDs []string) (map[string]domain.Journal, error) {
	if len(journalIDs) == 0 {
		return map[string]domain.Journal{}, nil
	}
	journals, err := r.collectJournals(ctx, `WHERE company_id = $1 AND journal_id = ANY($2)`, companyID, journalIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Journal, len(journals))
	for _, j := range journals {
		result[j.JournalID] = j
	}
	return result, nil
}

func (r *PgxJournalRepository) FindChildJournals(ctx context.Context, companyID, journalID string) ([]domain.Journal, error) {
	return r.collectJournals(ctx, `WHERE company_id = $1 AND parent_journal_id = $2 ORDER BY name`, companyID, journalID)
}

func (r *PgxJournalRepository) FindJournalsByCompany(ctx context.Context, companyID string) ([]domain.Journal, error) {
	return r.collectJournals(ctx, `WHERE company_id = $1 ORDER BY created_at`, companyID)
}

func (r *PgxJournalRepository) CountChildJournals(ctx context.Context, companyID, journalID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM journals WHERE company_id = $1 AND parent_journal_id = $2;`
	if err := r.Pool.QueryRow(ctx, query, companyID, journalID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count child journals: %w", err)
	}
	return count, nil
}

func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		INSERT INTO journals (
			journal_id, company_id, name, parent_journal_id, is_terminal, extra,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		journal.JournalID,
		journal.CompanyID,
		journal.Name,
		journal.ParentJournalID,
		journal.IsTerminal,
		journal.Extra,
		journal.CreatedAt,
		journal.CreatedBy,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save journal: %w", err)
	}
	return nil
}

func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	query := `
		UPDATE journals
		SET name = $3, parent_journal_id = $4, is_terminal = $5, extra = $6, last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND journal_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		journal.CompanyID,
		journal.JournalID,
		journal.Name,
		journal.ParentJournalID,
		journal.IsTerminal,
		journal.Extra,
		journal.LastUpdatedAt,
		journal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, companyID, journalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE company_id = $1 AND journal_id = $2;`, companyID, journalID)
	if err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
