package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
)

const uniqueViolationCode = "23505"

type PgxLinkRepository struct {
	BaseRepository
}

func newPgxLinkRepository(pool *pgxpool.Pool) portsrepo.LinkRepositoryFacade {
	return &PgxLinkRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LinkRepositoryFacade = (*PgxLinkRepository)(nil)

// lockJournalRow takes a row lock on the link's journal so concurrent link
// creates on the same journal serialize against each other. The hierarchy
// precondition is then checked and the insert performed under that lock.
func lockJournalRow(ctx context.Context, tx pgx.Tx, companyID, journalID string) error {
	var id string
	query := `SELECT journal_id FROM journals WHERE company_id = $1 AND journal_id = $2 FOR UPDATE;`
	if err := tx.QueryRow(ctx, query, companyID, journalID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock journal %s: %w", journalID, err)
	}
	return nil
}

func requireEquivalentLink(ctx context.Context, tx pgx.Tx, existsQuery string, args ...any) error {
	var exists bool
	if err := tx.QueryRow(ctx, existsQuery, args...).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check parent link: %w", err)
	}
	if !exists {
		return apperrors.ErrHierarchyViolation
	}
	return nil
}

func translateInsertError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
	}
	return fmt.Errorf("failed to insert %s: %w", what, err)
}

func (r *PgxLinkRepository) CreatePartnerLink(ctx context.Context, link domain.JournalPartnerLink, requireParentJournalID *string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockJournalRow(ctx, tx, link.CompanyID, link.JournalID); err != nil {
		return err
	}
	if requireParentJournalID != nil {
		err := requireEquivalentLink(ctx, tx,
			`SELECT EXISTS (
				SELECT 1 FROM journal_partner_links
				WHERE company_id = $1 AND journal_id = $2 AND partner_id = $3
			);`,
			link.CompanyID, *requireParentJournalID, link.PartnerID,
		)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO journal_partner_links (
			link_id, company_id, journal_id, partner_id, partnership_type,
			date_start, date_end, approval_status, creation_level, current_pending_level,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		link.LinkID, link.CompanyID, link.JournalID, link.PartnerID, link.PartnershipType,
		link.DateStart, link.DateEnd, link.ApprovalStatus, link.CreationLevel, link.CurrentPendingLevel,
		link.CreatedAt, link.CreatedBy, link.LastUpdatedAt, link.LastUpdatedBy,
	)
	if err != nil {
		return translateInsertError(err, "journal-partner link")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxLinkRepository) CreateGoodLink(ctx context.Context, link domain.JournalGoodLink, requireParentJournalID *string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockJournalRow(ctx, tx, link.CompanyID, link.JournalID); err != nil {
		return err
	}
	if requireParentJournalID != nil {
		err := requireEquivalentLink(ctx, tx,
			`SELECT EXISTS (
				SELECT 1 FROM journal_good_links
				WHERE company_id = $1 AND journal_id = $2 AND good_id = $3
			);`,
			link.CompanyID, *requireParentJournalID, link.GoodID,
		)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO journal_good_links (
			link_id, company_id, journal_id, good_id, vat_rate_override,
			approval_status, creation_level, current_pending_level,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		link.LinkID, link.CompanyID, link.JournalID, link.GoodID, link.VatRateOverride,
		link.ApprovalStatus, link.CreationLevel, link.CurrentPendingLevel,
		link.CreatedAt, link.CreatedBy, link.LastUpdatedAt, link.LastUpdatedBy,
	)
	if err != nil {
		return translateInsertError(err, "journal-good link")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxLinkRepository) CreatePartnerGoodLink(ctx context.Context, link domain.JournalPartnerGoodLink, requireParentJournalID *string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockJournalRow(ctx, tx, link.CompanyID, link.JournalID); err != nil {
		return err
	}
	if requireParentJournalID != nil {
		err := requireEquivalentLink(ctx, tx,
			`SELECT EXISTS (
				SELECT 1 FROM journal_partner_good_links
				WHERE company_id = $1 AND journal_id = $2 AND partner_id = $3 AND good_id = $4
			);`,
			link.CompanyID, *requireParentJournalID, link.PartnerID, link.GoodID,
		)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO journal_partner_good_links (
			link_id, company_id, journal_id, partner_id, good_id,
			approval_status, creation_level, current_pending_level,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		link.LinkID, link.CompanyID, link.JournalID, link.PartnerID, link.GoodID,
		link.ApprovalStatus, link.CreationLevel, link.CurrentPendingLevel,
		link.CreatedAt, link.CreatedBy, link.LastUpdatedAt, link.LastUpdatedBy,
	)
	if err != nil {
		return translateInsertError(err, "journal-partner-good link")
	}
	return r.Commit(ctx, tx)
}

const partnerLinkSelectColumns = `
	link_id, company_id, journal_id, partner_id, partnership_type, date_start, date_end,
	approval_status, creation_level, current_pending_level,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPartnerLink(row pgx.Row) (*domain.JournalPartnerLink, error) {
	var l domain.JournalPartnerLink
	err := row.Scan(
		&l.LinkID, &l.CompanyID, &l.JournalID, &l.PartnerID, &l.PartnershipType,
		&l.DateStart, &l.DateEnd,
		&l.ApprovalStatus, &l.CreationLevel, &l.CurrentPendingLevel,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const goodLinkSelectColumns = `
	link_id, company_id, journal_id, good_id, vat_rate_override,
	approval_status, creation_level, current_pending_level,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanGoodLink(row pgx.Row) (*domain.JournalGoodLink, error) {
	var l domain.JournalGoodLink
	err := row.Scan(
		&l.LinkID, &l.CompanyID, &l.JournalID, &l.GoodID, &l.VatRateOverride,
		&l.ApprovalStatus, &l.CreationLevel, &l.CurrentPendingLevel,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const partnerGoodLinkSelectColumns = `
	link_id, company_id, journal_id, partner_id, good_id,
	approval_status, creation_level, current_pending_level,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPartnerGoodLink(row pgx.Row) (*domain.JournalPartnerGoodLink, error) {
	var l domain.JournalPartnerGoodLink
	err := row.Scan(
		&l.LinkID, &l.CompanyID, &l.JournalID, &l.PartnerID, &l.GoodID,
		&l.ApprovalStatus, &l.CreationLevel, &l.CurrentPendingLevel,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PgxLinkRepository) FindPartnerLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalPartnerLink, error) {
	query := `SELECT ` + partnerLinkSelectColumns + ` FROM journal_partner_links WHERE company_id = $1 AND link_id = $2;`
	link, err := scanPartnerLink(r.Pool.QueryRow(ctx, query, companyID, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal-partner link %s: %w", linkID, err)
	}
	return link, nil
}

func (r *PgxLinkRepository) FindGoodLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalGoodLink, error) {
	query := `SELECT ` + goodLinkSelectColumns + ` FROM journal_good_links WHERE company_id = $1 AND link_id = $2;`
	link, err := scanGoodLink(r.Pool.QueryRow(ctx, query, companyID, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal-good link %s: %w", linkID, err)
	}
	return link, nil
}

func (r *PgxLinkRepository) FindPartnerGoodLinkByID(ctx context.Context, companyID, linkID string) (*domain.JournalPartnerGoodLink, error) {
	query := `SELECT ` + partnerGoodLinkSelectColumns + ` FROM journal_partner_good_links WHERE company_id = $1 AND link_id = $2;`
	link, err := scanPartnerGoodLink(r.Pool.QueryRow(ctx, query, companyID, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal-partner-good link %s: %w", linkID, err)
	}
	return link, nil
}

// journalScopeClause returns the WHERE fragment and args for a company plus
// optional journal filter. Argument numbering starts at $1.
func journalScopeClause(companyID string, journalIDs []string) (string, []any) {
	if len(journalIDs) == 0 {
		return `WHERE company_id = $1`, []any{companyID}
	}
	return `WHERE company_id = $1 AND journal_id = ANY($2)`, []any{companyID, journalIDs}
}

func (r *PgxLinkRepository) ListPartnerLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalPartnerLink, error) {
	where, args := journalScopeClause(companyID, journalIDs)
	query := fmt.Sprintf(
		`SELECT %s FROM journal_partner_links %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		partnerLinkSelectColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal-partner links: %w", err)
	}
	defer rows.Close()

	links := []domain.JournalPartnerLink{}
	for rows.Next() {
		l, err := scanPartnerLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal-partner link: %w", err)
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

func (r *PgxLinkRepository) ListGoodLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalGoodLink, error) {
	where, args := journalScopeClause(companyID, journalIDs)
	query := fmt.Sprintf(
		`SELECT %s FROM journal_good_links %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		goodLinkSelectColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal-good links: %w", err)
	}
	defer rows.Close()

	links := []domain.JournalGoodLink{}
	for rows.Next() {
		l, err := scanGoodLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal-good link: %w", err)
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

func (r *PgxLinkRepository) ListPartnerGoodLinksByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.JournalPartnerGoodLink, error) {
	where, args := journalScopeClause(companyID, journalIDs)
	query := fmt.Sprintf(
		`SELECT %s FROM journal_partner_good_links %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d;`,
		partnerGoodLinkSelectColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal-partner-good links: %w", err)
	}
	defer rows.Close()

	links := []domain.JournalPartnerGoodLink{}
	for rows.Next() {
		l, err := scanPartnerGoodLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal-partner-good link: %w", err)
		}
		links = append(links, *l)
	}
	return links, rows.Err()
}

func (r *PgxLinkRepository) CountLinksByJournal(ctx context.Context, companyID, journalID string) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM journal_partner_links WHERE company_id = $1 AND journal_id = $2)
			+ (SELECT COUNT(*) FROM journal_good_links WHERE company_id = $1 AND journal_id = $2)
			+ (SELECT COUNT(*) FROM journal_partner_good_links WHERE company_id = $1 AND journal_id = $2);
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID, journalID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count links of journal %s: %w", journalID, err)
	}
	return count, nil
}

func (r *PgxLinkRepository) deleteLink(ctx context.Context, table, companyID, linkID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE company_id = $1 AND link_id = $2;`, table)
	tag, err := r.Pool.Exec(ctx, query, companyID, linkID)
	if err != nil {
		return fmt.Errorf("failed to delete link %s: %w", linkID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLinkRepository) DeletePartnerLink(ctx context.Context, companyID, linkID string) error {
	return r.deleteLink(ctx, "journal_partner_links", companyID, linkID)
}

func (r *PgxLinkRepository) DeleteGoodLink(ctx context.Context, companyID, linkID string) error {
	return r.deleteLink(ctx, "journal_good_links", companyID, linkID)
}

func (r *PgxLinkRepository) DeletePartnerGoodLink(ctx context.Context, companyID, linkID string) error {
	return r.deleteLink(ctx, "journal_partner_good_links", companyID, linkID)
}
