package auth

import "context"

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and issues a signed access token plus a
	// rotating refresh token.
	Login(ctx context.Context, email, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a fresh pair, rotating the
	// stored token.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
