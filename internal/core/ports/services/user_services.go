package services

import (
	"context"
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	"github.com/zhurnal-erp/zhurnal_backend/internal/dto"
)

// UserSvcFacade manages user accounts and journal restrictions.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, requestingUserID string) error

	// SetJournalRestriction confines a user to a journal subtree. A
	// restricted admin may only assign restrictions within their own
	// subtree; nil removes the restriction (unrestricted admins only).
	SetJournalRestriction(ctx context.Context, companyID, targetUserID string, req dto.SetRestrictionRequest, actingUserID string) (*domain.User, error)

	// AuthenticateUser verifies local credentials.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// GetOrCreateGoogleUser finds or provisions a user for a verified
	// Google identity.
	GetOrCreateGoogleUser(ctx context.Context, email, name, providerUserID string) (*domain.User, error)

	// Refresh token persistence, called by the token service.
	StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
