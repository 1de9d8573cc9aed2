// Package auth issues and verifies the access/refresh credential pair and
// carries the caller's identity through request handling.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-events/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "campus-events"

const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// ErrInvalidToken is returned by VerifyAccess and VerifyRefresh for any
// token that fails signature, expiry or usage checks.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated caller
type Identity struct {
	UserID string          `json:"id"`
	Role   models.UserRole `json:"role"`
}

// IsAdmin returns true if the caller is an admin
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Claims is the JWT payload of both tokens. TokenUse keeps a refresh token
// from being replayed as an access token even if secrets were shared.
type Claims struct {
	jwt.RegisteredClaims
	Role     models.UserRole `json:"role"`
	TokenUse string          `json:"token_use"`
}

// Config holds the signing settings. The two secrets must differ.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenPair is returned on login and registration
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// TokenManager signs and verifies tokens with HS256
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager creates a TokenManager from cfg
func NewTokenManager(cfg Config) (*TokenManager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh secrets are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &TokenManager{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}, nil
}

// SetClock replaces the time source
func (m *TokenManager) SetClock(now func() time.Time) {
	m.now = now
}

// IssuePair mints a fresh access and refresh token for identity
func (m *TokenManager) IssuePair(identity Identity) (TokenPair, error) {
	access, err := m.IssueAccess(identity)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := m.sign(identity, useRefresh, m.refreshSecret, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTTL.Seconds()),
	}, nil
}

// IssueAccess mints an access token for identity
func (m *TokenManager) IssueAccess(identity Identity) (string, error) {
	return m.sign(identity, useAccess, m.accessSecret, m.accessTTL)
}

// VerifyAccess checks an access token's signature, expiry and usage
func (m *TokenManager) VerifyAccess(token string) (Identity, error) {
	return m.verify(token, useAccess, m.accessSecret)
}

// VerifyRefresh checks a refresh token against the refresh secret
func (m *TokenManager) VerifyRefresh(token string) (Identity, error) {
	return m.verify(token, useRefresh, m.refreshSecret)
}

// Authenticate resolves the caller from an access token, falling back to the
// refresh token only when the access token does not verify. When the
// fallback succeeds the returned string holds a new access token carrying
// the refresh token's claims; otherwise it is empty. The refresh token
// itself is never rotated.
func (m *TokenManager) Authenticate(accessToken, refreshToken string) (Identity, string, error) {
	accessToken = strings.TrimSpace(accessToken)
	refreshToken = strings.TrimSpace(refreshToken)

	if accessToken == "" {
		return Identity{}, "", models.ErrMissingToken
	}

	identity, err := m.VerifyAccess(accessToken)
	if err == nil {
		return identity, "", nil
	}

	if refreshToken == "" {
		return Identity{}, "", models.WrapError(models.KindUnauthorized, models.CodeTokenExpired, models.ErrTokenExpired.Message, err)
	}

	identity, err = m.VerifyRefresh(refreshToken)
	if err != nil {
		return Identity{}, "", models.WrapError(models.KindUnauthorized, models.CodeRefreshTokenExpired, models.ErrRefreshTokenExpired.Message, err)
	}

	renewed, err := m.IssueAccess(identity)
	if err != nil {
		return Identity{}, "", models.Internal(err)
	}

	return identity, renewed, nil
}

// RequireRole fails with FORBIDDEN unless the identity holds one of roles
func RequireRole(identity Identity, roles ...models.UserRole) error {
	for _, role := range roles {
		if identity.Role == role {
			return nil
		}
	}
	return models.ErrForbidden
}

func (m *TokenManager) sign(identity Identity, use string, secret []byte, ttl time.Duration) (string, error) {
	if strings.TrimSpace(identity.UserID) == "" {
		return "", errors.New("identity has no subject")
	}

	now := m.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:     identity.Role,
		TokenUse: use,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", use, err)
	}
	return signed, nil
}

func (m *TokenManager) verify(token, use string, secret []byte) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.TokenUse != use {
		return Identity{}, fmt.Errorf("%w: expected %s token", ErrInvalidToken, use)
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Identity{UserID: claims.Subject, Role: claims.Role}, nil
}
