package services

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// CompanyAuthorizerSvc is the narrow interface other services use to gate
// actions on company membership roles.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns nil when the user holds at least the
	// required role in the company; apperrors.ErrNotFound when the user is
	// not a member, apperrors.ErrForbidden when the role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, requiredRole domain.UserCompanyRole) error
}

// CompanySvcFacade manages companies and memberships.
type CompanySvcFacade interface {
	CompanyAuthorizerSvc

	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error)
	ListUserCompanies(ctx context.Context, userID string) ([]domain.Company, error)
	AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, actingUserID string) error
}
