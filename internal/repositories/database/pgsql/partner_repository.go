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

type PgxPartnerRepository struct {
	BaseRepository
}

func newPgxPartnerRepository(pool *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

const partnerSelectColumns = `
	partner_id, company_id, name, tin, notes, creation_journal_id,
	approval_status, creation_level, current_pending_level,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanPartner(row pgx.Row) (*domain.Partner, error) {
	var p domain.Partner
	err := row.Scan(
		&p.PartnerID, &p.CompanyID, &p.Name, &p.Tin, &p.Notes, &p.CreationJournalID,
		&p.ApprovalStatus, &p.CreationLevel, &p.CurrentPendingLevel,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		INSERT INTO partners (
			partner_id, company_id, name, tin, notes, creation_journal_id,
			approval_status, creation_level, current_pending_level,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		partner.PartnerID, partner.CompanyID, partner.Name, partner.Tin, partner.Notes, partner.CreationJournalID,
		partner.ApprovalStatus, partner.CreationLevel, partner.CurrentPendingLevel,
		partner.CreatedAt, partner.CreatedBy, partner.LastUpdatedAt, partner.LastUpdatedBy,
	)
	if err != nil {
		return translateInsertError(err, "partner")
	}
	return nil
}

func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, companyID, partnerID string) (*domain.Partner, error) {
	query := `SELECT ` + partnerSelectColumns + ` FROM partners WHERE company_id = $1 AND partner_id = $2;`
	partner, err := scanPartner(r.Pool.QueryRow(ctx, query, companyID, partnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner %s: %w", partnerID, err)
	}
	return partner, nil
}

func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		UPDATE partners
		SET name = $3, tin = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1 AND partner_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		partner.CompanyID, partner.PartnerID,
		partner.Name, partner.Tin, partner.Notes,
		partner.LastUpdatedAt, partner.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update partner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartnerRepository) ListPartnersByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Partner, error) {
	var query string
	var args []any
	if len(journalIDs) == 0 {
		query = `SELECT ` + partnerSelectColumns + `
			FROM partners WHERE company_id = $1
			ORDER BY name LIMIT $2 OFFSET $3;`
		args = []any{companyID, limit, offset}
	} else {
		query = `SELECT DISTINCT
			p.partner_id, p.company_id, p.name, p.tin, p.notes, p.creation_journal_id,
			p.approval_status, p.creation_level, p.current_pending_level,
			p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
			FROM partners p
			JOIN journal_partner_links jpl ON jpl.partner_id = p.partner_id AND jpl.company_id = p.company_id
			WHERE p.company_id = $1 AND jpl.journal_id = ANY($2)
			ORDER BY p.name LIMIT $3 OFFSET $4;`
		args = []any{companyID, journalIDs, limit, offset}
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner: %w", err)
		}
		partners = append(partners, *p)
	}
	return partners, rows.Err()
}
