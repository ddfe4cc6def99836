package dto

import "time"

// LoginRequest carries local credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries a Google ID token obtained by the frontend.
type GoogleSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleAuthURLResponse returns the consent page URL for the server-side
// authorization code flow. The state must be echoed back on the callback.
type GoogleAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// ExchangeGoogleCodeRequest carries the authorization code returned by
// Google's consent page.
type ExchangeGoogleCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse is returned on successful login or refresh.
type AuthResponse struct {
	AccessToken    string       `json:"accessToken"`
	ExpiresAt      time.Time    `json:"expiresAt"`
	RefreshToken   string       `json:"refreshToken"`
	RefreshExpires time.Time    `json:"refreshExpires"`
	User           UserResponse `json:"user"`
}
