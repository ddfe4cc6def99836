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

type PgxGoodRepository struct {
	BaseRepository
}

func newPgxGoodRepository(pool *pgxpool.Pool) portsrepo.GoodRepositoryFacade {
	return &PgxGoodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GoodRepositoryFacade = (*PgxGoodRepository)(nil)

const goodSelectColumns = `
	good_id, company_id, name, barcode, unit, default_vat_rate, extra, creation_journal_id,
	approval_status, creation_level, current_pending_level,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanGood(row pgx.Row) (*domain.Good, error) {
	var g domain.Good
	err := row.Scan(
		&g.GoodID, &g.CompanyID, &g.Name, &g.Barcode, &g.Unit, &g.DefaultVatRate, &g.Extra, &g.CreationJournalID,
		&g.ApprovalStatus, &g.CreationLevel, &g.CurrentPendingLevel,
		&g.CreatedAt, &g.CreatedBy, &g.LastUpdatedAt, &g.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PgxGoodRepository) SaveGood(ctx context.Context, good domain.Good) error {
	query := `
		INSERT INTO goods (
			good_id, company_id, name, barcode, unit, default_vat_rate, extra, creation_journal_id,
			approval_status, creation_level, current_pending_level,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		good.GoodID, good.CompanyID, good.Name, good.Barcode, good.Unit, good.DefaultVatRate, good.Extra, good.CreationJournalID,
		good.ApprovalStatus, good.CreationLevel, good.CurrentPendingLevel,
		good.CreatedAt, good.CreatedBy, good.LastUpdatedAt, good.LastUpdatedBy,
	)
	if err != nil {
		return translateInsertError(err, "good")
	}
	return nil
}

func (r *PgxGoodRepository) FindGoodByID(ctx context.Context, companyID, goodID string) (*domain.Good, error) {
	query := `SELECT ` + goodSelectColumns + ` FROM goods WHERE company_id = $1 AND good_id = $2;`
	good, err := scanGood(r.Pool.QueryRow(ctx, query, companyID, goodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find good %s: %w", goodID, err)
	}
	return good, nil
}

func (r *PgxGoodRepository) UpdateGood(ctx context.Context, good domain.Good) error {
	query := `
		UPDATE goods
		SET name = $3, barcode = $4, unit = $5, default_vat_rate = $6, extra = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE company_id = $1 AND good_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		good.CompanyID, good.GoodID,
		good.Name, good.Barcode, good.Unit, good.DefaultVatRate, good.Extra,
		good.LastUpdatedAt, good.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update good: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxGoodRepository) ListGoodsByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Good, error) {
	var query string
	var args []any
	if len(journalIDs) == 0 {
		query = `SELECT ` + goodSelectColumns + `
			FROM goods WHERE company_id = $1
			ORDER BY name LIMIT $2 OFFSET $3;`
		args = []any{companyID, limit, offset}
	} else {
		query = `SELECT DISTINCT
			g.good_id, g.company_id, g.name, g.barcode, g.unit, g.default_vat_rate, g.extra, g.creation_journal_id,
			g.approval_status, g.creation_level, g.current_pending_level,
			g.created_at, g.created_by, g.last_updated_at, g.last_updated_by
			FROM goods g
			JOIN journal_good_links jgl ON jgl.good_id = g.good_id AND jgl.company_id = g.company_id
			WHERE g.company_id = $1 AND jgl.journal_id = ANY($2)
			ORDER BY g.name LIMIT $3 OFFSET $4;`
		args = []any{companyID, journalIDs, limit, offset}
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list goods: %w", err)
	}
	defer rows.Close()

	goods := []domain.Good{}
	for rows.Next() {
		g, err := scanGood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan good: %w", err)
		}
		goods = append(goods, *g)
	}
	return goods, rows.Err()
}
