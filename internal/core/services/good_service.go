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

// GoodService handles business logic for good records.
type GoodService struct {
	BaseService
	goodRepo    portsrepo.GoodRepositoryFacade
	journalRepo portsrepo.JournalReader
}

// NewGoodService creates a new GoodService.
func NewGoodService(gr portsrepo.GoodRepositoryFacade, jr portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.GoodSvcFacade {
	return &GoodService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		goodRepo:    gr,
		journalRepo: jr,
	}
}

var _ portssvc.GoodSvcFacade = (*GoodService)(nil)

// CreateGood registers a good pending approval at the depth of its creation
// journal.
func (s *GoodService) CreateGood(ctx context.Context, companyID string, req dto.CreateGoodRequest, creatorUserID string) (*domain.Good, error) {
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
	good := domain.Good{
		GoodID:            uuid.NewString(),
		CompanyID:         companyID,
		Name:              req.Name,
		Barcode:           req.Barcode,
		Unit:              req.Unit,
		DefaultVatRate:    req.DefaultVatRate,
		Extra:             req.Extra,
		CreationJournalID: req.CreationJournalID,
		Approval:          domain.NewPendingApproval(depth),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.goodRepo.SaveGood(ctx, good); err != nil {
		s.LogError(ctx, err, "Failed to save good", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create good: %w", err)
	}

	s.LogInfo(ctx, "Good created", slog.String("good_id", good.GoodID), slog.Int("creation_level", depth))
	return &good, nil
}

// GetGoodByID retrieves a good.
func (s *GoodService) GetGoodByID(ctx context.Context, companyID, goodID string, requestingUserID string) (*domain.Good, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.goodRepo.FindGoodByID(ctx, companyID, goodID)
}

// UpdateGood updates the descriptive fields of a good.
func (s *GoodService) UpdateGood(ctx context.Context, companyID, goodID string, req dto.UpdateGoodRequest, requestingUserID string) (*domain.Good, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	good, err := s.goodRepo.FindGoodByID(ctx, companyID, goodID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		good.Name = *req.Name
	}
	if req.Barcode != nil {
		good.Barcode = *req.Barcode
	}
	if req.Unit != nil {
		good.Unit = *req.Unit
	}
	if req.DefaultVatRate != nil {
		good.DefaultVatRate = *req.DefaultVatRate
	}
	if req.Extra != nil {
		good.Extra = req.Extra
	}
	good.LastUpdatedAt = time.Now()
	good.LastUpdatedBy = requestingUserID

	if err := s.goodRepo.UpdateGood(ctx, *good); err != nil {
		s.LogError(ctx, err, "Failed to update good", slog.String("good_id", goodID))
		return nil, fmt.Errorf("failed to update good: %w", err)
	}

	return good, nil
}

// ListGoods pages goods, optionally scoped to a journal subtree via their
// journal-good links.
func (s *GoodService) ListGoods(ctx context.Context, companyID string, params dto.ListEntitiesParams, requestingUserID string) ([]domain.Good, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	journalIDs, err := expandJournalScope(ctx, s.journalRepo, companyID, params.JournalID, params.IncludeDescendants)
	if err != nil {
		return nil, err
	}
	limit, offset := normalizePage(params.Limit, params.Offset)
	return s.goodRepo.ListGoodsByJournals(ctx, companyID, journalIDs, limit, offset)
}
