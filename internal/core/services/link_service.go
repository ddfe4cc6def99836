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

// LinkService guards creation of cross-entity links. A link on a non-root
// journal requires an equivalent link on the parent journal at creation time;
// the check and the insert run in one repository transaction serialized per
// journal. Deletion never re-validates descendant links.
type LinkService struct {
	BaseService
	linkRepo    portsrepo.LinkRepositoryFacade
	journalRepo portsrepo.JournalReader
	partnerRepo portsrepo.PartnerRepositoryFacade
	goodRepo    portsrepo.GoodRepositoryFacade
}

// NewLinkService creates a new LinkService.
func NewLinkService(lr portsrepo.LinkRepositoryFacade, jr portsrepo.JournalReader, pr portsrepo.PartnerRepositoryFacade, gr portsrepo.GoodRepositoryFacade, authorizer portssvc.CompanyAuthorizerSvc) portssvc.LinkSvcFacade {
	return &LinkService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		linkRepo:    lr,
		journalRepo: jr,
		partnerRepo: pr,
		goodRepo:    gr,
	}
}

var _ portssvc.LinkSvcFacade = (*LinkService)(nil)

// prepareLinkTarget loads the target journal and computes the approval
// creation level from its depth.
func (s *LinkService) prepareLinkTarget(ctx context.Context, companyID, journalID string) (*domain.Journal, int, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, companyID, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, 0, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, 0, fmt.Errorf("failed to load journal: %w", err)
	}
	depth, err := journalDepth(ctx, s.journalRepo, companyID, journalID)
	if err != nil {
		return nil, 0, err
	}
	return journal, depth, nil
}

// CreatePartnerLink attaches a partner to a journal.
func (s *LinkService) CreatePartnerLink(ctx context.Context, companyID string, req dto.CreatePartnerLinkRequest, creatorUserID string) (*domain.JournalPartnerLink, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	journal, depth, err := s.prepareLinkTarget(ctx, companyID, req.JournalID)
	if err != nil {
		return nil, err
	}
	if _, err := s.partnerRepo.FindPartnerByID(ctx, companyID, req.PartnerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: partner %s", apperrors.ErrNotFound, req.PartnerID)
		}
		return nil, fmt.Errorf("failed to load partner: %w", err)
	}

	now := time.Now()
	link := domain.JournalPartnerLink{
		LinkID:          uuid.NewString(),
		CompanyID:       companyID,
		JournalID:       req.JournalID,
		PartnerID:       req.PartnerID,
		PartnershipType: req.PartnershipType,
		DateStart:       req.DateStart,
		DateEnd:         req.DateEnd,
		Approval:        domain.NewPendingApproval(depth),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.linkRepo.CreatePartnerLink(ctx, link, journal.ParentJournalID); err != nil {
		if errors.Is(err, apperrors.ErrHierarchyViolation) && journal.ParentJournalID != nil {
			return nil, fmt.Errorf("%w: partner %s has no link on parent journal %s", apperrors.ErrHierarchyViolation, req.PartnerID, *journal.ParentJournalID)
		}
		s.LogError(ctx, err, "Failed to create partner link", slog.String("journal_id", req.JournalID), slog.String("partner_id", req.PartnerID))
		return nil, fmt.Errorf("failed to create partner link: %w", err)
	}

	s.LogInfo(ctx, "Partner link created", slog.String("link_id", link.LinkID), slog.String("journal_id", req.JournalID))
	return &link, nil
}

// CreateGoodLink attaches a good to a journal.
func (s *LinkService) CreateGoodLink(ctx context.Context, companyID string, req dto.CreateGoodLinkRequest, creatorUserID string) (*domain.JournalGoodLink, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	journal, depth, err := s.prepareLinkTarget(ctx, companyID, req.JournalID)
	if err != nil {
		return nil, err
	}
	if _, err := s.goodRepo.FindGoodByID(ctx, companyID, req.GoodID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: good %s", apperrors.ErrNotFound, req.GoodID)
		}
		return nil, fmt.Errorf("failed to load good: %w", err)
	}

	now := time.Now()
	link := domain.JournalGoodLink{
		LinkID:          uuid.NewString(),
		CompanyID:       companyID,
		JournalID:       req.JournalID,
		GoodID:          req.GoodID,
		VatRateOverride: req.VatRateOverride,
		Approval:        domain.NewPendingApproval(depth),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.linkRepo.CreateGoodLink(ctx, link, journal.ParentJournalID); err != nil {
		if errors.Is(err, apperrors.ErrHierarchyViolation) && journal.ParentJournalID != nil {
			return nil, fmt.Errorf("%w: good %s has no link on parent journal %s", apperrors.ErrHierarchyViolation, req.GoodID, *journal.ParentJournalID)
		}
		s.LogError(ctx, err, "Failed to create good link", slog.String("journal_id", req.JournalID), slog.String("good_id", req.GoodID))
		return nil, fmt.Errorf("failed to create good link: %w", err)
	}

	s.LogInfo(ctx, "Good link created", slog.String("link_id", link.LinkID), slog.String("journal_id", req.JournalID))
	return &link, nil
}

// CreatePartnerGoodLink scopes a partner+good pair to a journal. The parent
// must hold an equivalent pair link, not merely separate partner and good
// links.
func (s *LinkService) CreatePartnerGoodLink(ctx context.Context, companyID string, req dto.CreatePartnerGoodLinkRequest, creatorUserID string) (*domain.JournalPartnerGoodLink, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	journal, depth, err := s.prepareLinkTarget(ctx, companyID, req.JournalID)
	if err != nil {
		return nil, err
	}
	if _, err := s.partnerRepo.FindPartnerByID(ctx, companyID, req.PartnerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: partner %s", apperrors.ErrNotFound, req.PartnerID)
		}
		return nil, fmt.Errorf("failed to load partner: %w", err)
	}
	if _, err := s.goodRepo.FindGoodByID(ctx, companyID, req.GoodID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: good %s", apperrors.ErrNotFound, req.GoodID)
		}
		return nil, fmt.Errorf("failed to load good: %w", err)
	}

	now := time.Now()
	link := domain.JournalPartnerGoodLink{
		LinkID:    uuid.NewString(),
		CompanyID: companyID,
		JournalID: req.JournalID,
		PartnerID: req.PartnerID,
		GoodID:    req.GoodID,
		Approval:  domain.NewPendingApproval(depth),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.linkRepo.CreatePartnerGoodLink(ctx, link, journal.ParentJournalID); err != nil {
		if errors.Is(err, apperrors.ErrHierarchyViolation) && journal.ParentJournalID != nil {
			return nil, fmt.Errorf("%w: pair (%s, %s) has no link on parent journal %s", apperrors.ErrHierarchyViolation, req.PartnerID, req.GoodID, *journal.ParentJournalID)
		}
		s.LogError(ctx, err, "Failed to create partner-good link", slog.String("journal_id", req.JournalID))
		return nil, fmt.Errorf("failed to create partner-good link: %w", err)
	}

	s.LogInfo(ctx, "Partner-good link created", slog.String("link_id", link.LinkID), slog.String("journal_id", req.JournalID))
	return &link, nil
}

// DeletePartnerLink removes a partner link without re-validating links on
// descendant journals.
func (s *LinkService) DeletePartnerLink(ctx context.Context, companyID, linkID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.linkRepo.FindPartnerLinkByID(ctx, companyID, linkID); err != nil {
		return err
	}
	if err := s.linkRepo.DeletePartnerLink(ctx, companyID, linkID); err != nil {
		return fmt.Errorf("failed to delete partner link: %w", err)
	}
	s.LogInfo(ctx, "Partner link deleted", slog.String("link_id", linkID))
	return nil
}

// DeleteGoodLink removes a good link.
func (s *LinkService) DeleteGoodLink(ctx context.Context, companyID, linkID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.linkRepo.FindGoodLinkByID(ctx, companyID, linkID); err != nil {
		return err
	}
	if err := s.linkRepo.DeleteGoodLink(ctx, companyID, linkID); err != nil {
		return fmt.Errorf("failed to delete good link: %w", err)
	}
	s.LogInfo(ctx, "Good link deleted", slog.String("link_id", linkID))
	return nil
}

// DeletePartnerGoodLink removes a partner-good link.
func (s *LinkService) DeletePartnerGoodLink(ctx context.Context, companyID, linkID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.linkRepo.FindPartnerGoodLinkByID(ctx, companyID, linkID); err != nil {
		return err
	}
	if err := s.linkRepo.DeletePartnerGoodLink(ctx, companyID, linkID); err != nil {
		return fmt.Errorf("failed to delete partner-good link: %w", err)
	}
	s.LogInfo(ctx, "Partner-good link deleted", slog.String("link_id", linkID))
	return nil
}

// ListPartnerLinks pages partner links, optionally scoped to a journal
// subtree.
func (s *LinkService) ListPartnerLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalPartnerLink, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	journalIDs, err := expandJournalScope(ctx, s.journalRepo, companyID, params.JournalID, params.IncludeDescendants)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(params.Limit, params.Offset)
	return s.linkRepo.ListPartnerLinksByJournals(ctx, companyID, journalIDs, limit, offset)
}

// ListGoodLinks pages good links, optionally scoped to a journal subtree.
func (s *LinkService) ListGoodLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalGoodLink, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	journalIDs, err := expandJournalScope(ctx, s.journalRepo, companyID, params.JournalID, params.IncludeDescendants)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(params.Limit, params.Offset)
	return s.linkRepo.ListGoodLinksByJournals(ctx, companyID, journalIDs, limit, offset)
}

// ListPartnerGoodLinks pages partner-good links, optionally scoped to a
// journal subtree.
func (s *LinkService) ListPartnerGoodLinks(ctx context.Context, companyID string, params dto.ListLinksParams, requestingUserID string) ([]domain.JournalPartnerGoodLink, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	journalIDs, err := expandJournalScope(ctx, s.journalRepo, companyID, params.JournalID, params.IncludeDescendants)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(params.Limit, params.Offset)
	return s.linkRepo.ListPartnerGoodLinksByJournals(ctx, companyID, journalIDs, limit, offset)
}
