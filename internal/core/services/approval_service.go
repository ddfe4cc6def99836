package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portsrepo "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/repositories"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// ApprovalService drives the tiered approval lifecycle. An entity created
// under a journal at depth N starts PENDING at level N and must be approved
// once per level down to 0; the level-0 approval is terminal. A user's tier
// is the depth of their restricted journal; unrestricted users match every
// level.
type ApprovalService struct {
	BaseService
	approvalRepo portsrepo.ApprovalRepository
	userRepo     portsrepo.UserRepositoryFacade
	journalRepo  portsrepo.JournalReader
}

// NewApprovalService creates a new ApprovalService.
func NewApprovalService(ar portsrepo.ApprovalRepository, ur portsrepo.UserRepositoryFacade, jr portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.ApprovalSvcFacade {
	return &ApprovalService{
		BaseService:  BaseService{CompanyAuthorizer: authorizer},
		approvalRepo: ar,
		userRepo:     ur,
		journalRepo:  jr,
	}
}

var _ portssvc.ApprovalSvcFacade = (*ApprovalService)(nil)

// GetUserTier derives the acting user's approval tier from their journal
// restriction.
func (s *ApprovalService) GetUserTier(ctx context.Context, companyID, userID string) (domain.ApprovalTier, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return domain.ApprovalTier{}, err
	}
	if user.RestrictedJournalID == nil {
		return domain.UnrestrictedTier, nil
	}
	depth, err := journalDepth(ctx, s.journalRepo, companyID, *user.RestrictedJournalID)
	if err != nil {
		return domain.ApprovalTier{}, fmt.Errorf("failed to resolve tier for user %s: %w", userID, err)
	}
	return domain.TierAt(depth), nil
}

// transition runs the shared guard sequence for approve and reject: the
// entity must exist, still be pending, and the acting user's tier must match
// its current pending level. The state change itself is a compare-and-swap
// keyed on that level, so concurrent actors cannot both take the same step.
func (s *ApprovalService) transition(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, actingUserID string, newStatus func(current int) (domain.ApprovalStatus, int)) (*domain.ApprovableItem, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !entityType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, entityType)
	}

	item, err := s.approvalRepo.FindApprovable(ctx, companyID, entityType, entityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, entityType, entityID)
		}
		return nil, fmt.Errorf("failed to load approvable entity: %w", err)
	}

	if item.ApprovalStatus != domain.ApprovalPending {
		return nil, fmt.Errorf("%w: %s %s is %s", apperrors.ErrEntityNotPending, entityType, entityID, item.ApprovalStatus)
	}

	tier, err := s.GetUserTier(ctx, companyID, actingUserID)
	if err != nil {
		return nil, err
	}
	if !tier.Matches(item.CurrentPendingLevel) {
		return nil, fmt.Errorf("%w: entity pending at level %d, user tier is %d", apperrors.ErrWrongApprovalLevel, item.CurrentPendingLevel, tier.Level)
	}

	status, level := newStatus(item.CurrentPendingLevel)
	now := time.Now()
	ok, err := s.approvalRepo.TransitionApproval(ctx, companyID, entityType, entityID, item.CurrentPendingLevel, status, level, actingUserID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to transition approval state", slog.String("entity_type", string(entityType)), slog.String("entity_id", entityID))
		return nil, fmt.Errorf("failed to transition approval state: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: approval state of %s %s changed concurrently", apperrors.ErrConflict, entityType, entityID)
	}

	item.ApprovalStatus = status
	item.CurrentPendingLevel = level

	s.LogInfo(ctx, "Approval state transitioned",
		slog.String("entity_type", string(entityType)),
		slog.String("entity_id", entityID),
		slog.String("status", string(status)),
		slog.Int("pending_level", level))
	return item, nil
}

// Approve advances a pending entity one tier. At level 0 the approval is
// terminal; at level N>0 the entity stays pending at level N-1.
func (s *ApprovalService) Approve(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, actingUserID string) (*domain.ApprovableItem, error) {
	return s.transition(ctx, companyID, entityType, entityID, actingUserID, func(current int) (domain.ApprovalStatus, int) {
		if current == 0 {
			return domain.ApprovalApproved, 0
		}
		return domain.ApprovalPending, current - 1
	})
}

// Reject terminally rejects a pending entity. Rejection at any level is
// final; there is no partial rejection.
func (s *ApprovalService) Reject(ctx context.Context, companyID string, entityType domain.ApprovableType, entityID string, actingUserID string) (*domain.ApprovableItem, error) {
	return s.transition(ctx, companyID, entityType, entityID, actingUserID, func(current int) (domain.ApprovalStatus, int) {
		return domain.ApprovalRejected, current
	})
}

// ListInProcessItems pages the pending queue visible to the acting user:
// restricted users see only entities pending at exactly their tier,
// unrestricted users see every pending entity.
func (s *ApprovalService) ListInProcessItems(ctx context.Context, companyID string, params dto.ListInProcessParams, actingUserID string) ([]domain.ApprovableItem, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	tier, err := s.GetUserTier(ctx, companyID, actingUserID)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.InProcessFilter{PendingLevel: -1}
	if !tier.Unrestricted {
		filter.PendingLevel = tier.Level
	}

	for _, raw := range params.EntityTypes {
		entityType := domain.ApprovableType(raw)
		if !entityType.IsValid() {
			return nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, raw)
		}
		filter.EntityTypes = append(filter.EntityTypes, entityType)
	}

	filter.JournalIDs, err = expandJournalScope(ctx, s.journalRepo, companyID, params.JournalID, params.IncludeDescendants)
	if err != nil {
		return nil, err
	}

	filter.Take, filter.Skip = normalizePage(params.Take, params.Skip)

	return s.approvalRepo.ListInProcess(ctx, companyID, filter)
}
