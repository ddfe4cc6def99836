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
	"github.com/zhurnal-erp/zhurnal_backend/internal/utils"
)

// UserService handles business logic related to users, credentials and
// journal restrictions.
type UserService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	journalRepo portsrepo.JournalReader
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepositoryFacade, jr portsrepo.JournalReader, authorizer portssvc.CompanyAuthorizerSvc) portssvc.UserSvcFacade {
	return &UserService{
		BaseService: BaseService{CompanyAuthorizer: authorizer},
		userRepo:    ur,
		journalRepo: jr,
	}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// CreateUser registers a local user with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, req.Email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user; soft-deleted users are reported as not found.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return user, nil
}

// ListUsers pages users.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	limit, offset = normalizePage(limit, offset)
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// UpdateUser updates a user's own profile fields.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, fmt.Errorf("%w: users may only update their own profile", apperrors.ErrForbidden)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteUser soft-deletes a user's own account.
func (s *UserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if userID != requestingUserID {
		return fmt.Errorf("%w: users may only delete their own account", apperrors.ErrForbidden)
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, requestingUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// SetJournalRestriction confines a user to a journal subtree, which also
// fixes their approval tier at that journal's depth. A restricted admin may
// only hand out restrictions inside their own subtree; removing a
// restriction requires an unrestricted admin.
func (s *UserService) SetJournalRestriction(ctx context.Context, companyID, targetUserID string, req dto.SetRestrictionRequest, actingUserID string) (*domain.User, error) {
	if err := s.AuthorizeUser(ctx, actingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	actingUser, err := s.GetUserByID(ctx, actingUserID)
	if err != nil {
		return nil, err
	}
	targetUser, err := s.GetUserByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	if req.JournalID == nil {
		if actingUser.RestrictedJournalID != nil {
			return nil, fmt.Errorf("%w: a restricted admin cannot lift restrictions", apperrors.ErrForbidden)
		}
		targetUser.RestrictedJournalID = nil
	} else {
		if _, err := s.journalRepo.FindJournalByID(ctx, companyID, *req.JournalID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, *req.JournalID)
			}
			return nil, fmt.Errorf("failed to load journal: %w", err)
		}
		if actingUser.RestrictedJournalID != nil {
			arena, err := loadArena(ctx, s.journalRepo, companyID)
			if err != nil {
				return nil, err
			}
			own := *actingUser.RestrictedJournalID
			if *req.JournalID != own && !arena.IsDescendantOf(*req.JournalID, own) {
				return nil, fmt.Errorf("%w: journal %s is outside the acting admin's subtree", apperrors.ErrForbidden, *req.JournalID)
			}
		}
		targetUser.RestrictedJournalID = req.JournalID
	}

	targetUser.LastUpdatedAt = time.Now()
	targetUser.LastUpdatedBy = actingUserID

	if err := s.userRepo.UpdateUser(ctx, *targetUser); err != nil {
		s.LogError(ctx, err, "Failed to set journal restriction", slog.String("target_user_id", targetUserID))
		return nil, fmt.Errorf("failed to set journal restriction: %w", err)
	}

	s.LogInfo(ctx, "Journal restriction updated", slog.String("target_user_id", targetUserID))
	return targetUser, nil
}

// AuthenticateUser verifies local credentials.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.DeletedAt != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// GetOrCreateGoogleUser finds or provisions a user for a verified Google
// identity.
func (s *UserService) GetOrCreateGoogleUser(ctx context.Context, email, name, providerUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		if user.DeletedAt != nil {
			return nil, apperrors.ErrUnauthorized
		}
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:         uuid.NewString(),
		Name:           name,
		Email:          email,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: &providerUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		s.LogError(ctx, err, "Failed to provision google user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "Google user provisioned", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// StoreRefreshTokenHash persists the hash and expiry of the user's current
// refresh token.
func (s *UserService) StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, &tokenHash, &expiresAt)
}

// ClearRefreshToken drops the stored refresh token, logging the user out of
// the refresh flow.
func (s *UserService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil, nil)
}
