package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
)

// approvableTable maps an entity type onto the table holding its approval
// columns. Every table carries approval_status, creation_level,
// current_pending_level plus the standard audit columns.
type approvableTable struct {
	table         string
	idColumn      string
	journalColumn string
	labelExpr     string
}

var approvableTables = map[domain.ApprovableType]approvableTable{
	domain.ApprovablePartner: {
		table:         "partners",
		idColumn:      "partner_id",
		journalColumn: "creation_journal_id",
		labelExpr:     "name",
	},
	domain.ApprovableGood: {
		table:         "goods",
		idColumn:      "good_id",
		journalColumn: "creation_journal_id",
		labelExpr:     "name",
	},
	domain.ApprovableDocument: {
		table:         "documents",
		idColumn:      "document_id",
		journalColumn: "journal_id",
		labelExpr:     "doc_type || ' ' || description",
	},
	domain.ApprovablePartnerLink: {
		table:         "journal_partner_links",
		idColumn:      "link_id",
		journalColumn: "journal_id",
		labelExpr:     "'partner link ' || partner_id",
	},
	domain.ApprovableGoodLink: {
		table:         "journal_good_links",
		idColumn:      "link_id",
		journalColumn: "journal_id",
		labelExpr:     "'good link ' || good_id",
	},
	domain.ApprovablePartnerGoodLink: {
		table:         "journal_partner_good_links",
		idColumn:      "link_id",
		journalColumn: "journal_id",
		labelExpr:     "'partner-good link ' || partner_id || '/' || good_id",
	},
}

type PgxApprovalRepository struct {
	BaseRepository
}

func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepository {
	return &PgxApprovalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalRepository = (*PgxApprovalRepository)(nil)

func (r *PgxApprovalRepository) FindApprovable(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string) (*domain.ApprovableItem, error) {
	meta, ok := approvableTables[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown approvable type %s", apperrors.ErrValidation, entityType)
	}

	query := fmt.Sprintf(`
		SELECT %s, company_id, %s, %s,
			approval_status, creation_level, current_pending_level, created_at, created_by
		FROM %s
		WHERE company_id = $1 AND %s = $2;
	`, meta.idColumn, meta.journalColumn, meta.labelExpr, meta.table, meta.idColumn)

	item := domain.ApprovableItem{EntityType: entityType}
	err := r.Pool.QueryRow(ctx, query, companyID, entityID).Scan(
		&item.EntityID,
		&item.CompanyID,
		&item.JournalID,
		&item.Label,
		&item.ApprovalStatus,
		&item.CreationLevel,
		&item.CurrentPendingLevel,
		&item.CreatedAt,
		&item.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approvable %s %s: %w", entityType, entityID, err)
	}
	return &item, nil
}

// TransitionApproval is a compare-and-swap: the WHERE clause pins the row to
// the PENDING state at the expected level, so a concurrently advanced row
// makes the update a no-op and the method reports false.
func (r *PgxApprovalRepository) TransitionApproval(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, expectedLevel int, newStatus domain.ApprovalStatus, newLevel int, actedBy string, at time.Time) (bool, error) {
	meta, ok := approvableTables[entityType]
	if !ok {
		return false, fmt.Errorf("%w: unknown approvable type %s", apperrors.ErrValidation, entityType)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET approval_status = $4, current_pending_level = $5, last_updated_by = $6, last_updated_at = $7
		WHERE company_id = $1 AND %s = $2
			AND approval_status = 'PENDING' AND current_pending_level = $3;
	`, meta.table, meta.idColumn)

	tag, err := r.Pool.Exec(ctx, query, companyID, entityID, expectedLevel, newStatus, newLevel, actedBy, at)
	if err != nil {
		return false, fmt.Errorf("failed to transition approval of %s %s: %w", entityType, entityID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxApprovalRepository) ListInProcess(ctx context.Context, companyID string, filter portsrepo.InProcessFilter) ([]domain.ApprovableItem, error) {
	entityTypes := filter.EntityTypes
	if len(entityTypes) == 0 {
		entityTypes = []domain.ApprovableType{
			domain.ApprovablePartner,
			domain.ApprovableGood,
			domain.ApprovableDocument,
			domain.ApprovablePartnerLink,
			domain.ApprovableGoodLink,
			domain.ApprovablePartnerGoodLink,
		}
	}

	args := []any{companyID}
	levelClause := ""
	if filter.PendingLevel >= 0 {
		args = append(args, filter.PendingLevel)
		levelClause = fmt.Sprintf(` AND current_pending_level = $%d`, len(args))
	}
	journalArgIdx := 0
	if len(filter.JournalIDs) > 0 {
		args = append(args, filter.JournalIDs)
		journalArgIdx = len(args)
	}

	branches := make([]string, 0, len(entityTypes))
	for _, entityType := range entityTypes {
		meta, ok := approvableTables[entityType]
		if !ok {
			return nil, fmt.Errorf("%w: unknown approvable type %s", apperrors.ErrValidation, entityType)
		}
		journalClause := ""
		if journalArgIdx > 0 {
			journalClause = fmt.Sprintf(` AND %s = ANY($%d)`, meta.journalColumn, journalArgIdx)
		}
		branches = append(branches, fmt.Sprintf(`
			SELECT '%s' AS entity_type, %s AS entity_id, company_id, %s AS journal_id, %s AS label,
				approval_status, creation_level, current_pending_level, created_at, created_by
			FROM %s
			WHERE company_id = $1 AND approval_status = 'PENDING'%s%s
		`,
			entityType, meta.idColumn, meta.journalColumn, meta.labelExpr, meta.table,
			levelClause, journalClause,
		))
	}

	args = append(args, filter.Take, filter.Skip)
	query := fmt.Sprintf(`%s ORDER BY created_at ASC LIMIT $%d OFFSET $%d;`,
		strings.Join(branches, " UNION ALL "), len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	defer rows.Close()

	items := []domain.ApprovableItem{}
	for rows.Next() {
		var item domain.ApprovableItem
		err := rows.Scan(
			&item.EntityType,
			&item.EntityID,
			&item.CompanyID,
			&item.JournalID,
			&item.Label,
			&item.ApprovalStatus,
			&item.CreationLevel,
			&item.CurrentPendingLevel,
			&item.CreatedAt,
			&item.CreatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending approval: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
