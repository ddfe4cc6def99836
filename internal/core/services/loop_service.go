package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// LoopService maintains loops: ordered cycles of journals connected by edges
// independent of the parent/child tree. An ACTIVE loop is always a single
// simple cycle; every mutation that touches the edge set is atomic.
type LoopService struct {
	BaseService
	loopRepo    portsrepo.LoopRepositoryFacade
	journalRepo portsrepo.JournalReader
}

// NewLoopService creates a new LoopService.
func NewLoopService(lr portsrepo.LoopRepositoryFacade, jr portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.LoopSvcFacade {
	return &LoopService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		loopRepo:    lr,
		journalRepo: jr,
	}
}

var _ portssvc.LoopSvcFacade = (*LoopService)(nil)

// requireKnownJournals checks that every id names an existing journal of the
// company and that the ids are pairwise distinct.
func (s *LoopService) requireKnownJournals(ctx context.Context, companyID string, journalIDs []string, sentinel error) error {
	seen := make(map[string]struct{}, len(journalIDs))
	for _, id := range journalIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: journal %s appears more than once", sentinel, id)
		}
		seen[id] = struct{}{}
	}
	known, err := s.journalRepo.FindJournalsByIDs(ctx, companyID, journalIDs)
	if err != nil {
		return fmt.Errorf("failed to load journals: %w", err)
	}
	for _, id := range journalIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown journal %s", sentinel, id)
		}
	}
	return nil
}

// CreateLoop builds an ACTIVE loop from an ordered sequence of at least
// three distinct journals, adding the closing edge from the last back to the
// first.
func (s *LoopService) CreateLoop(ctx context.Context, companyID string, req dto.CreateLoopRequest, creatorUserID string) (*domain.Loop, []domain.LoopConnection, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	if len(req.JournalIDs) < 3 {
		return nil, nil, fmt.Errorf("%w: a loop needs at least 3 journals, got %d", apperrors.ErrValidation, len(req.JournalIDs))
	}
	if err := s.requireKnownJournals(ctx, companyID, req.JournalIDs, apperrors.ErrValidation); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	loop := domain.Loop{
		LoopID:      uuid.NewString(),
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.LoopActive,
		AuditFields: audit,
	}

	connections := make([]domain.LoopConnection, 0, len(req.JournalIDs))
	for i, fromID := range req.JournalIDs {
		toID := req.JournalIDs[(i+1)%len(req.JournalIDs)]
		connections = append(connections, domain.LoopConnection{
			ConnectionID:  uuid.NewString(),
			LoopID:        loop.LoopID,
			FromJournalID: fromID,
			ToJournalID:   toID,
			Position:      i,
			AuditFields:   audit,
		})
	}

	if err := s.loopRepo.SaveLoop(ctx, loop, connections); err != nil {
		s.LogError(ctx, err, "Failed to save loop", slog.String("company_id", companyID))
		return nil, nil, fmt.Errorf("failed to create loop: %w", err)
	}

	s.LogInfo(ctx, "Loop created", slog.String("loop_id", loop.LoopID), slog.Int("edges", len(connections)))
	return &loop, connections, nil
}

// GetLoopByID retrieves a loop with its edges ordered by position.
func (s *LoopService) GetLoopByID(ctx context.Context, companyID, loopID string, requestingUserID string) (*domain.Loop, []domain.LoopConnection, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	return s.loopRepo.FindLoopByID(ctx, companyID, loopID)
}

// ListLoops pages the company's loops, newest first.
func (s *LoopService) ListLoops(ctx context.Context, companyID string, limit, offset int, requestingUserID string) ([]domain.Loop, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	limit, offset = normalizePage(limit, offset)
	return s.loopRepo.ListLoops(ctx, companyID, limit, offset)
}

// DetectConnection reports whether after is the immediate successor of
// before in any ACTIVE loop. This is a direct-edge lookup, not transitive
// reachability.
func (s *LoopService) DetectConnection(ctx context.Context, companyID, beforeJournalID, afterJournalID string, requestingUserID string) (*dto.ConnectionResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	connection, err := s.loopRepo.FindActiveConnection(ctx, companyID, beforeJournalID, afterJournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.ConnectionResponse{Connected: false}, nil
		}
		return nil, fmt.Errorf("failed to look up loop connection: %w", err)
	}

	return &dto.ConnectionResponse{Connected: true, LoopID: &connection.LoopID}, nil
}

// InsertChain replaces the edge insertAfter -> insertBefore of the named
// loop with a path through the chain journals. The replacement is atomic:
// either the old edge is gone and the whole chain is spliced in, or nothing
// changes.
func (s *LoopService) InsertChain(ctx context.Context, companyID, loopID string, req dto.InsertChainRequest, requestingUserID string) (*domain.Loop, []domain.LoopConnection, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, nil, err
	}

	// The contract holds independent of request binding: an empty chain
	// would degenerate into re-inserting the removed edge.
	if len(req.JournalChain) == 0 {
		return nil, nil, fmt.Errorf("%w: chain must contain at least one journal", apperrors.ErrInvalidInsertion)
	}

	loop, connections, err := s.loopRepo.FindLoopByID(ctx, companyID, loopID)
	if err != nil {
		return nil, nil, err
	}
	if loop.Status != domain.LoopActive {
		return nil, nil, fmt.Errorf("%w: loop %s is %s", apperrors.ErrConflict, loopID, loop.Status)
	}

	var target *domain.LoopConnection
	members := make(map[string]struct{}, len(connections))
	for i := range connections {
		members[connections[i].FromJournalID] = struct{}{}
		if connections[i].FromJournalID == req.InsertAfterJournalID && connections[i].ToJournalID == req.InsertBeforeJournalID {
			target = &connections[i]
		}
	}
	if target == nil {
		return nil, nil, fmt.Errorf("%w: loop %s has no edge %s -> %s", apperrors.ErrInvalidInsertion, loopID, req.InsertAfterJournalID, req.InsertBeforeJournalID)
	}

	if err := s.requireKnownJournals(ctx, companyID, req.JournalChain, apperrors.ErrInvalidInsertion); err != nil {
		return nil, nil, err
	}
	for _, id := range req.JournalChain {
		if _, exists := members[id]; exists {
			return nil, nil, fmt.Errorf("%w: journal %s is already part of loop %s", apperrors.ErrInvalidInsertion, id, loopID)
		}
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     requestingUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: requestingUserID,
	}

	// Path insertAfter -> chain[0] -> ... -> chain[n-1] -> insertBefore.
	path := make([]string, 0, len(req.JournalChain)+2)
	path = append(path, req.InsertAfterJournalID)
	path = append(path, req.JournalChain...)
	path = append(path, req.InsertBeforeJournalID)

	inserted := make([]domain.LoopConnection, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		inserted = append(inserted, domain.LoopConnection{
			ConnectionID:  uuid.NewString(),
			LoopID:        loopID,
			FromJournalID: path[i],
			ToJournalID:   path[i+1],
			AuditFields:   audit,
		})
	}

	if err := s.loopRepo.ReplaceConnection(ctx, companyID, loopID, target.ConnectionID, inserted, requestingUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to insert chain into loop", slog.String("loop_id", loopID))
		return nil, nil, fmt.Errorf("failed to insert chain: %w", err)
	}

	s.LogInfo(ctx, "Chain inserted into loop", slog.String("loop_id", loopID), slog.Int("chain_length", len(req.JournalChain)))
	return s.loopRepo.FindLoopByID(ctx, companyID, loopID)
}

// DeactivateLoop soft-deletes a loop. Its edges stop counting for
// connection detection.
func (s *LoopService) DeactivateLoop(ctx context.Context, companyID, loopID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	loop, _, err := s.loopRepo.FindLoopByID(ctx, companyID, loopID)
	if err != nil {
		return err
	}
	if loop.Status == domain.LoopInactive {
		return fmt.Errorf("%w: loop %s is already inactive", apperrors.ErrConflict, loopID)
	}
	if err := s.loopRepo.UpdateLoopStatus(ctx, companyID, loopID, domain.LoopInactive, requestingUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to deactivate loop: %w", err)
	}
	s.LogInfo(ctx, "Loop deactivated", slog.String("loop_id", loopID))
	return nil
}
