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

// JournalService handles business logic for the journal hierarchy.
type JournalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	linkRepo    portsrepo.LinkReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(jr portsrepo.JournalRepositoryFacade, lr portsrepo.LinkReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.JournalSvcFacade {
	return &JournalService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		journalRepo: jr,
		linkRepo:    lr,
	}
}

var _ portssvc.JournalSvcFacade = (*JournalService)(nil)

// CreateJournal creates a journal node under an optional parent. Terminal
// journals may not gain children.
func (s *JournalService) CreateJournal(ctx context.Context, companyID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	if req.ParentJournalID != nil {
		parent, err := s.journalRepo.FindJournalByID(ctx, companyID, *req.ParentJournalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent journal %s", apperrors.ErrNotFound, *req.ParentJournalID)
			}
			return nil, fmt.Errorf("failed to load parent journal: %w", err)
		}
		if parent.IsTerminal {
			return nil, fmt.Errorf("%w: parent journal %s is terminal and cannot have children", apperrors.ErrValidation, parent.JournalID)
		}
	}

	now := time.Now()
	journal := domain.Journal{
		JournalID:       uuid.NewString(),
		CompanyID:       companyID,
		Name:            req.Name,
		ParentJournalID: req.ParentJournalID,
		IsTerminal:      req.IsTerminal,
		Extra:           req.Extra,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	s.LogInfo(ctx, "Journal created", slog.String("journal_id", journal.JournalID), slog.String("company_id", companyID))
	return &journal, nil
}

// UpdateJournal updates name, parent, terminal flag and extra blob of a
// journal. Re-parenting keeps the tree acyclic: a journal cannot be moved
// under itself or any of its descendants.
func (s *JournalService) UpdateJournal(ctx context.Context, companyID, journalID string, req dto.UpdateJournalRequest, requestingUserID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		journal.Name = *req.Name
	}
	if req.ParentJournalID != nil && (journal.ParentJournalID == nil || *journal.ParentJournalID != *req.ParentJournalID) {
		newParent, err := s.journalRepo.FindJournalByID(ctx, companyID, *req.ParentJournalID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent journal %s", apperrors.ErrNotFound, *req.ParentJournalID)
			}
			return nil, fmt.Errorf("failed to load parent journal: %w", err)
		}
		if newParent.IsTerminal {
			return nil, fmt.Errorf("%w: parent journal %s is terminal and cannot have children", apperrors.ErrValidation, newParent.JournalID)
		}
		arena, err := loadArena(ctx, s.journalRepo, companyID)
		if err != nil {
			return nil, err
		}
		if arena.WouldCreateCycle(journalID, newParent.JournalID) {
			return nil, fmt.Errorf("%w: journal %s cannot be moved into its own subtree", apperrors.ErrConflict, journalID)
		}
		journal.ParentJournalID = req.ParentJournalID
	}
	if req.IsTerminal != nil {
		// A journal with children cannot be flipped to terminal.
		if *req.IsTerminal && !journal.IsTerminal {
			childCount, err := s.journalRepo.CountChildJournals(ctx, companyID, journalID)
			if err != nil {
				return nil, fmt.Errorf("failed to count child journals: %w", err)
			}
			if childCount > 0 {
				return nil, fmt.Errorf("%w: journal %s has %d children and cannot become terminal", apperrors.ErrConflict, journalID, childCount)
			}
		}
		journal.IsTerminal = *req.IsTerminal
	}
	if req.Extra != nil {
		journal.Extra = req.Extra
	}
	journal.LastUpdatedAt = time.Now()
	journal.LastUpdatedBy = requestingUserID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		s.LogError(ctx, err, "Failed to update journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal: %w", err)
	}

	return journal, nil
}

// DeleteJournal removes a journal node. Deletion is refused while the node
// has children or any cross-entity links attached to it.
func (s *JournalService) DeleteJournal(ctx context.Context, companyID, journalID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID); err != nil {
		return err
	}

	childCount, err := s.journalRepo.CountChildJournals(ctx, companyID, journalID)
	if err != nil {
		return fmt.Errorf("failed to count child journals: %w", err)
	}
	if childCount > 0 {
		return fmt.Errorf("%w: journal %s has %d child journals", apperrors.ErrConflict, journalID, childCount)
	}

	linkCount, err := s.linkRepo.CountLinksByJournal(ctx, companyID, journalID)
	if err != nil {
		return fmt.Errorf("failed to count journal links: %w", err)
	}
	if linkCount > 0 {
		return fmt.Errorf("%w: journal %s has %d links attached", apperrors.ErrConflict, journalID, linkCount)
	}

	if err := s.journalRepo.DeleteJournal(ctx, companyID, journalID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal: %w", err)
	}

	s.LogInfo(ctx, "Journal deleted", slog.String("journal_id", journalID), slog.String("company_id", companyID))
	return nil
}

// GetJournalByID retrieves a specific journal.
func (s *JournalService) GetJournalByID(ctx context.Context, companyID, journalID string, requestingUserID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.journalRepo.FindJournalByID(ctx, companyID, journalID)
}

// ListChildJournals retrieves the direct children of a journal.
func (s *JournalService) ListChildJournals(ctx context.Context, companyID, journalID string, requestingUserID string) ([]domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID); err != nil {
		return nil, err
	}
	return s.journalRepo.FindChildJournals(ctx, companyID, journalID)
}

// GetDescendantJournalIDs computes the descendant closure of a root set over
// a snapshot of the company's journal forest. Unknown roots contribute
// nothing to the result.
func (s *JournalService) GetDescendantJournalIDs(ctx context.Context, companyID string, rootIDs []string, includeRoots bool, requestingUserID string) ([]string, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	arena, err := loadArena(ctx, s.journalRepo, companyID)
	if err != nil {
		return nil, err
	}
	return arena.DescendantIDs(rootIDs, includeRoots), nil
}

// IsJournalDescendant reports whether candidate lies strictly inside the
// subtree rooted at ancestor.
func (s *JournalService) IsJournalDescendant(ctx context.Context, companyID, candidateID, ancestorID string) (bool, error) {
	arena, err := loadArena(ctx, s.journalRepo, companyID)
	if err != nil {
		return false, err
	}
	return arena.IsDescendantOf(candidateID, ancestorID), nil
}

// GetJournalDepth returns the depth of a journal from its forest root.
func (s *JournalService) GetJournalDepth(ctx context.Context, companyID, journalID string) (int, error) {
	return journalDepth(ctx, s.journalRepo, companyID, journalID)
}
