package dto

import (
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// CreateUserRequest defines the payload for registering a user.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the updatable fields of a user.
type UpdateUserRequest struct {
	Name *string `json:"name"`
}

// SetRestrictionRequest confines a user to a journal subtree; a nil
// journal id removes the restriction.
type SetRestrictionRequest struct {
	JournalID *string `json:"journalID"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	UserID              string    `json:"userID"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	RestrictedJournalID *string   `json:"restrictedJournalID"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ListUsersResponse wraps a users listing page.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:              u.UserID,
		Name:                u.Name,
		Email:               u.Email,
		RestrictedJournalID: u.RestrictedJournalID,
		CreatedAt:           u.CreatedAt,
	}
}
