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
	"github.com/zhurnal-erp/zhurnal_backend/internal/middleware"
)

// CompanyService handles business logic related to companies and memberships.
type CompanyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(cr portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &CompanyService{companyRepo: cr}
}

var _ portssvc.CompanySvcFacade = (*CompanyService)(nil)

// AuthorizeUserAction checks that the user holds at least the required role in
// the company. It is the single authorization gate used by the other services.
func (s *CompanyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error {
	membership, err := s.companyRepo.FindUserCompany(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s is not a member of company %s", apperrors.ErrNotFound, userID, companyID)
		}
		return fmt.Errorf("failed to check company membership: %w", err)
	}
	if !membership.Role.Satisfies(requiredRole) {
		return fmt.Errorf("%w: role %s does not satisfy %s", apperrors.ErrForbidden, membership.Role, requiredRole)
	}
	return nil
}

// CreateCompany creates a new company and makes the creator the initial admin.
func (s *CompanyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompanyWithAdmin(ctx, company, creatorUserID); err != nil {
		logger.Error("Failed to save company", slog.String("error", err.Error()), slog.String("company_name", req.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("creator_user_id", creatorUserID))
	return &company, nil
}

// GetCompanyByID retrieves a company the requesting user is a member of.
func (s *CompanyService) GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ListUserCompanies lists the companies the user belongs to.
func (s *CompanyService) ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// AddUserToCompany adds a member with a role. Only admins may do this.
func (s *CompanyService) AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, actingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, actingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	now := time.Now()
	membership := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      domain.UserCompanyRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actingUserID,
		},
	}

	if err := s.companyRepo.AddUserToCompany(ctx, membership); err != nil {
		logger.Error("Failed to add user to company", slog.String("error", err.Error()), slog.String("target_user_id", req.UserID), slog.String("company_id", companyID))
		return fmt.Errorf("failed to add user to company: %w", err)
	}

	logger.Info("User added to company", slog.String("target_user_id", req.UserID), slog.String("company_id", companyID), slog.String("role", req.Role))
	return nil
}
