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

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentSelectColumns = `
	document_id, company_id, journal_id, partner_id, doc_type, document_date,
	amount, currency_code, description,
	approval_status, creation_level, current_pending_level,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(
		&d.DocumentID, &d.CompanyID, &d.JournalID, &d.PartnerID, &d.DocType, &d.DocumentDate,
		&d.Amount, &d.CurrencyCode, &d.Description,
		&d.ApprovalStatus, &d.CreationLevel, &d.CurrentPendingLevel,
		&d.CreatedAt, &d.CreatedBy, &d.LastUpdatedAt, &d.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	query := `
		INSERT INTO documents (
			document_id, company_id, journal_id, partner_id, doc_type, document_date,
			amount, currency_code, description,
			approval_status, creation_level, current_pending_level,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		document.DocumentID, document.CompanyID, document.JournalID, document.PartnerID,
		document.DocType, document.DocumentDate,
		document.Amount, document.CurrencyCode, document.Description,
		document.ApprovalStatus, document.CreationLevel, document.CurrentPendingLevel,
		document.CreatedAt, document.CreatedBy, document.LastUpdatedAt, document.LastUpdatedBy,
	)
	if err != nil {
		return translateInsertError(err, "document")
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, companyID, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentSelectColumns + ` FROM documents WHERE company_id = $1 AND document_id = $2;`
	document, err := scanDocument(r.Pool.QueryRow(ctx, query, companyID, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	return document, nil
}

func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, document domain.Document) error {
	query := `
		UPDATE documents
		SET partner_id = $3, doc_type = $4, document_date = $5, amount = $6,
			currency_code = $7, description = $8, last_updated_at = $9, last_updated_by = $10
		WHERE company_id = $1 AND document_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		document.CompanyID, document.DocumentID,
		document.PartnerID, document.DocType, document.DocumentDate, document.Amount,
		document.CurrencyCode, document.Description, document.LastUpdatedAt, document.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDocumentRepository) ListDocumentsByJournals(ctx context.Context, companyID string, journalIDs []string, limit, offset int) ([]domain.Document, error) {
	var query string
	var args []any
	if len(journalIDs) == 0 {
		query = `SELECT ` + documentSelectColumns + `
			FROM documents WHERE company_id = $1
			ORDER BY document_date DESC, created_at DESC LIMIT $2 OFFSET $3;`
		args = []any{companyID, limit, offset}
	} else {
		query = `SELECT ` + documentSelectColumns + `
			FROM documents WHERE company_id = $1 AND journal_id = ANY($2)
			ORDER BY document_date DESC, created_at DESC LIMIT $3 OFFSET $4;`
		args = []any{companyID, journalIDs, limit, offset}
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := []domain.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, *d)
	}
	return documents, rows.Err()
}
