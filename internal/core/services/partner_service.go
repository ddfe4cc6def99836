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

// PartnerService handles business logic for partner records. New partners
// enter the approval queue at the tier of their creation journal.
type PartnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
	journalRepo portsrepo.JournalReader
}

// NewPartnerService creates a new PartnerService.
func NewPartnerService(pr portsrepo.PartnerRepositoryFacade, jr portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.PartnerSvcFacade {
	return &PartnerService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		partnerRepo: pr,
		journalRepo: jr,
	}
}

var _ portssvc.PartnerSvcFacade = (*PartnerService)(nil)

// CreatePartner registers a partner pending approval at the depth of its
// creation journal.
func (s *PartnerService) CreatePartner(ctx context.Context, companyID string, req dto.CreatePartnerRequest, creatorUserID string) (*domain.Partner, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	depth, err := journalDepth(ctx, s.journalRepo, companyID, req.CreationJournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: creation journal %s", apperrors.ErrNotFound, req.CreationJournalID)
		}
		return nil, err
	}

	now := time.Now()
	partner := domain.Partner{
		PartnerID:         uuid.NewString(),
		CompanyID:         companyID,
		Name:              req.Name,
		Tin:               req.Tin,
		Notes:             req.Notes,
		CreationJournalID: req.CreationJournalID,
		Approval:          domain.NewPendingApproval(depth),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partnerRepo.SavePartner(ctx, partner); err != nil {
		s.LogError(ctx, err, "Failed to save partner", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create partner: %w", err)
	}

	s.LogInfo(ctx, "Partner created", slog.String("partner_id", partner.PartnerID), slog.Int("creation_level", depth))
	return &partner, nil
}

// GetPartnerByID retrieves a partner.
func (s *PartnerService) GetPartnerByID(ctx context.Context, companyID, partnerID string, requestingUserID string) (*domain.Partner, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.partnerRepo.FindPartnerByID(ctx, companyID, partnerID)
}

// UpdatePartner updates the descriptive fields of a partner.
func (s *PartnerService) UpdatePartner(ctx context.Context, companyID, partnerID string, req dto.UpdatePartnerRequest, requestingUserID string) (*domain.Partner, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	partner, err := s.partnerRepo.FindPartnerByID(ctx, companyID, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.Tin != nil {
		partner.Tin = *req.Tin
	}
	if req.Notes != nil {
		partner.Notes = *req.Notes
	}
	partner.LastUpdatedAt = time.Now()
	partner.LastUpdatedBy = requestingUserID

	if err := s.partnerRepo.UpdatePartner(ctx, *partner); err != nil {
		s.LogError(ctx, err, "Failed to update partner", slog.String("partner_id", partnerID))
		return nil, fmt.Errorf("failed to update partner: %w", err)
	}

	return partner, nil
}

// ListPartners pages partners, optionally scoped to a journal subtree via
// their journal-partner links.
func (s *PartnerService) ListPartners(ctx context.Context, companyID string, params dto.ListEntitiesParams, requestingUserID string) ([]domain.Partner, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	journalIDs, err := expandJournalScope(ctx, s.journalRepo, companyID, params.JournalID, params.IncludeDescendants)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(params.Limit, params.Offset)
	return s.partnerRepo.ListPartnersByJournals(ctx, companyID, journalIDs, limit, offset)
}
