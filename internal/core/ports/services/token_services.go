package services

import (
	"context"
	"time"

	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
)

// GoogleIdentity is the verified identity extracted from a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
}

// TokenSvcFacade issues and validates access/refresh tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates an opaque refresh token and persists its
	// hash against the user.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateRefreshToken checks a presented refresh token against the
	// stored hash and expiry, returning the user on success.
	ValidateRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error)

	// ValidateGoogleIDToken verifies a Google-issued ID token.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)

	// GetGoogleLoginURL builds the Google consent page URL carrying the
	// given state parameter.
	GetGoogleLoginURL(ctx context.Context, state string) (string, error)

	// ExchangeGoogleAuthCode redeems an authorization code for tokens and
	// verifies the ID token contained in the response.
	ExchangeGoogleAuthCode(ctx context.Context, code string) (*GoogleIdentity, error)
}
