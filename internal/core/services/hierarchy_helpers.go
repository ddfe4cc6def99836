package services

import (
	"context"
	"fmt"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
	"github.com/zhurnal-erp/zhurnal_backend/internal/utils/hierarchy"
)

// loadArena builds a hierarchy snapshot from the company's full journal forest.
func loadArena(ctx context.Context, repo portsrepo.JournalReader, companyID string) (*hierarchy.Arena, error) {
	journals, err := repo.FindJournalsByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal hierarchy: %w", err)
	}
	return hierarchy.NewArena(journals), nil
}

// journalDepth resolves the depth of a journal from its forest root.
func journalDepth(ctx context.Context, repo portsrepo.JournalReader, companyID, journalID string) (int, error) {
	arena, err := loadArena(ctx, repo, companyID)
	if err != nil {
		return 0, err
	}
	depth, ok := arena.Depth(journalID)
	if !ok {
		return 0, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}
	return depth, nil
}

// expandJournalScope resolves an optional journal filter into the set of
// journal ids a listing should cover. A nil journalID means no filter.
func expandJournalScope(ctx context.Context, repo portsrepo.JournalReader, companyID string, journalID *string, includeDescendants bool) ([]string, error) {
	if journalID == nil {
		return nil, nil
	}
	arena, err := loadArena(ctx, repo, companyID)
	if err != nil {
		return nil, err
	}
	if !arena.Contains(*journalID) {
		return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, *journalID)
	}
	if !includeDescendants {
		return []string{*journalID}, nil
	}
	return arena.DescendantIDs([]string{*journalID}, true), nil
}

// normalizePage applies defaults and caps to limit/offset pagination.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
