package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
)

type PgxLoopRepository struct {
	BaseRepository
}

func newPgxLoopRepository(pool *pgxpool.Pool) portsrepo.LoopRepositoryFacade {
	return &PgxLoopRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LoopRepositoryFacade = (*PgxLoopRepository)(nil)

const loopSelectColumns = `
	loop_id, company_id, name, description, status,
	created_at, created_by, last_updated_at, last_updated_by
`

const connectionSelectColumns = `
	connection_id, loop_id, from_journal_id, to_journal_id, position,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanLoop(row pgx.Row) (*domain.Loop, error) {
	var l domain.Loop
	err := row.Scan(
		&l.LoopID, &l.CompanyID, &l.Name, &l.Description, &l.Status,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanConnection(row pgx.Row) (*domain.LoopConnection, error) {
	var c domain.LoopConnection
	err := row.Scan(
		&c.ConnectionID, &c.LoopID, &c.FromJournalID, &c.ToJournalID, &c.Position,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgxLoopRepository) FindLoopByID(ctx context.Context, companyID, loopID string) (*domain.Loop, []domain.LoopConnection, error) {
	query := `SELECT ` + loopSelectColumns + ` FROM loops WHERE company_id = $1 AND loop_id = $2;`
	loop, err := scanLoop(r.Pool.QueryRow(ctx, query, companyID, loopID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to find loop %s: %w", loopID, err)
	}

	rows, err := r.Pool.Query(ctx,
		`SELECT `+connectionSelectColumns+` FROM loop_connections WHERE loop_id = $1 ORDER BY position;`,
		loopID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query connections of loop %s: %w", loopID, err)
	}
	defer rows.Close()

	connections := []domain.LoopConnection{}
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan loop connection: %w", err)
		}
		connections = append(connections, *c)
	}
	return loop, connections, rows.Err()
}

func (r *PgxLoopRepository) FindActiveConnection(ctx context.Context, companyID, fromJournalID, toJournalID string) (*domain.LoopConnection, error) {
	query := `
		SELECT lc.connection_id, lc.loop_id, lc.from_journal_id, lc.to_journal_id, lc.position,
			lc.created_at, lc.created_by, lc.last_updated_at, lc.last_updated_by
		FROM loop_connections lc
		JOIN loops l ON l.loop_id = lc.loop_id
		WHERE l.company_id = $1 AND l.status = 'ACTIVE'
			AND lc.from_journal_id = $2 AND lc.to_journal_id = $3
		LIMIT 1;
	`
	connection, err := scanConnection(r.Pool.QueryRow(ctx, query, companyID, fromJournalID, toJournalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find connection %s -> %s: %w", fromJournalID, toJournalID, err)
	}
	return connection, nil
}

func (r *PgxLoopRepository) ListLoops(ctx context.Context, companyID string, limit, offset int) ([]domain.Loop, error) {
	query := `SELECT ` + loopSelectColumns + ` FROM loops WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list loops: %w", err)
	}
	defer rows.Close()

	loops := []domain.Loop{}
	for rows.Next() {
		l, err := scanLoop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loop: %w", err)
		}
		loops = append(loops, *l)
	}
	return loops, rows.Err()
}

func (r *PgxLoopRepository) SaveLoop(ctx context.Context, loop domain.Loop, connections []domain.LoopConnection) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO loops (
			loop_id, company_id, name, description, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		loop.LoopID, loop.CompanyID, loop.Name, loop.Description, loop.Status,
		loop.CreatedAt, loop.CreatedBy, loop.LastUpdatedAt, loop.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert loop: %w", err)
	}

	for _, c := range connections {
		if err := insertConnection(ctx, tx, c); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

func insertConnection(ctx context.Context, tx pgx.Tx, c domain.LoopConnection) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO loop_connections (
			connection_id, loop_id, from_journal_id, to_journal_id, position,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		c.ConnectionID, c.LoopID, c.FromJournalID, c.ToJournalID, c.Position,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert loop connection: %w", err)
	}
	return nil
}

// ReplaceConnection locks the loop row, removes the replaced edge, shifts the
// later edges to make room and inserts the new path edges at the freed
// position range. The whole splice commits or rolls back as one unit.
func (r *PgxLoopRepository) ReplaceConnection(ctx context.Context, companyID, loopID, removeConnectionID string, inserted []domain.LoopConnection, updatedBy string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT loop_id FROM loops WHERE company_id = $1 AND loop_id = $2 FOR UPDATE;`,
		companyID, loopID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock loop %s: %w", loopID, err)
	}

	var removedPosition int
	err = tx.QueryRow(ctx,
		`DELETE FROM loop_connections WHERE loop_id = $1 AND connection_id = $2 RETURNING position;`,
		loopID, removeConnectionID,
	).Scan(&removedPosition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to remove loop connection %s: %w", removeConnectionID, err)
	}

	shift := len(inserted) - 1
	if shift > 0 {
		_, err = tx.Exec(ctx,
			`UPDATE loop_connections SET position = position + $2, last_updated_by = $3, last_updated_at = $4
			 WHERE loop_id = $1 AND position > $5;`,
			loopID, shift, updatedBy, at, removedPosition,
		)
		if err != nil {
			return fmt.Errorf("failed to shift loop connections: %w", err)
		}
	}

	for i, c := range inserted {
		c.LoopID = loopID
		c.Position = removedPosition + i
		if err := insertConnection(ctx, tx, c); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE loops SET last_updated_by = $3, last_updated_at = $4 WHERE company_id = $1 AND loop_id = $2;`,
		companyID, loopID, updatedBy, at,
	)
	if err != nil {
		return fmt.Errorf("failed to touch loop %s: %w", loopID, err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxLoopRepository) UpdateLoopStatus(ctx context.Context, companyID, loopID string, status domain.LoopStatus, updatedBy string, at time.Time) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE loops SET status = $3, last_updated_by = $4, last_updated_at = $5 WHERE company_id = $1 AND loop_id = $2;`,
		companyID, loopID, status, updatedBy, at,
	)
	if err != nil {
		return fmt.Errorf("failed to update status of loop %s: %w", loopID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
