package repositories

import (
	"context"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CompanyRepositoryFacade defines persistence operations for companies and
// user memberships.
type CompanyRepositoryFacade interface {
	// SaveCompanyWithAdmin persists a company and the creator's ADMIN
	// membership in one transaction.
	SaveCompanyWithAdmin(ctx context.Context, company domain.Company, creatorUserID string) error

	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)

	// FindUserCompany retrieves a user's membership in a company; returns
	// apperrors.ErrNotFound when the user is not a member.
	FindUserCompany(ctx context.Context, userID, companyID string) (*domain.UserCompany, error)

	AddUserToCompany(ctx context.Context, membership domain.UserCompany) error
}
