package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/zhurnal-erp/zhurnal_backend/internal/apperrors"
	"github.com/zhurnal-erp/zhurnal_backend/internal/core/domain"
	portssvc "github.com/zhurnal-erp/zhurnal_backend/internal/core/ports/services"
	"github.com/zhurnal-erp/zhurnal_backend/internal/platform/config"
	"github.com/zhurnal-erp/zhurnal_backend/internal/utils"
)

// tokenService implements TokenSvcFacade for JWT access tokens, opaque
// refresh tokens and Google sign-in, both the ID-token path and the
// server-side authorization code flow.
type tokenService struct {
	cfg          *config.Config
	userService  portssvc.UserSvcFacade
	oauth2Config *oauth2.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates an opaque refresh token and stores its hash
// against the user. Only the hash is persisted; the raw token is returned to
// the caller once.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	rawRefreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	if err := s.userService.StoreRefreshTokenHash(ctx, user.UserID, utils.HashRefreshToken(rawRefreshToken), expiryTime); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store refresh token hash: %w", err)
	}

	return rawRefreshToken, expiryTime, nil
}

// ValidateRefreshToken checks a presented refresh token against the stored
// hash and expiry, returning the user on success.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load user for refresh validation: %w", err)
	}

	if user.RefreshTokenHash == nil || user.RefreshTokenExpiry == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiry) {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CompareRefreshTokenHash(refreshToken, *user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// ValidateGoogleIDToken verifies a Google-issued ID token against the
// configured client id.
func (s *tokenService) ValidateGoogleIDToken(ctx context.Context, idToken string) (*portssvc.GoogleIdentity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrUnauthorized)
	}

	payload, err := idtoken.Validate(ctx, idToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid google id token", apperrors.ErrUnauthorized)
	}

	identity := &portssvc.GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: google id token carries no email", apperrors.ErrUnauthorized)
	}

	return identity, nil
}

// GetGoogleLoginURL builds the Google consent page URL carrying the given
// state parameter.
func (s *tokenService) GetGoogleLoginURL(ctx context.Context, state string) (string, error) {
	if s.oauth2Config.ClientID == "" || s.oauth2Config.RedirectURL == "" {
		return "", fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrUnauthorized)
	}
	return s.oauth2Config.AuthCodeURL(state), nil
}

// ExchangeGoogleAuthCode redeems an authorization code against Google's token
// endpoint, then verifies the ID token carried in the response.
func (s *tokenService) ExchangeGoogleAuthCode(ctx context.Context, code string) (*portssvc.GoogleIdentity, error) {
	if s.oauth2Config.ClientID == "" || s.oauth2Config.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrUnauthorized)
	}

	oauth2Token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to exchange authorization code", apperrors.ErrUnauthorized)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("%w: token response carries no id token", apperrors.ErrUnauthorized)
	}

	return s.ValidateGoogleIDToken(ctx, rawIDToken)
}
