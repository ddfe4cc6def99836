package domain

import "time"

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User is an account in the system. RestrictedJournalID confines the user
// to a subtree of the journal hierarchy; its depth is the user's approval
// tier. A nil restriction means the user is unrestricted and tier-matches
// every approval level.
type User struct {
	UserID              string       `json:"userID"` // Primary Key (UUID)
	Name                string       `json:"name"`
	Email               string       `json:"email"`
	PasswordHash        string       `json:"-"`
	AuthProvider        AuthProvider `json:"authProvider"`
	ProviderUserID      *string      `json:"-"` // subject id at the external provider
	RestrictedJournalID *string      `json:"restrictedJournalID"`
	RefreshTokenHash    *string      `json:"-"`
	RefreshTokenExpiry  *time.Time   `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}
