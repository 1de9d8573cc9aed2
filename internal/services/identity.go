package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"campus-events/internal/auth"
	"campus-events/internal/models"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *models.User `json:"user"`
}

// IdentityService handles registration, login and account administration
type IdentityService struct {
	users  UserRepository
	tokens TokenIssuer
	hasher PasswordHasher
}

// NewIdentityService creates a new identity service
func NewIdentityService(users UserRepository, tokens TokenIssuer, hasher PasswordHasher) *IdentityService {
	return &IdentityService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// Register creates a new account and signs it in. Admin accounts cannot be
// self-registered.
func (s *IdentityService) Register(ctx context.Context, req *models.UserCreateRequest) (*AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, models.Validation(err.Error())
	}
	if req.Role == models.RoleAdmin {
		return nil, models.Forbidden("admin accounts cannot be self-registered")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, models.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateEntry) {
			return nil, models.WrapError(models.KindValidation, models.CodeDuplicateEntry,
				"an account with this email already exists", err)
		}
		return nil, err
	}

	log.Printf("Registered user %s with role %s", user.ID, user.Role)
	return s.signIn(user)
}

// Login checks credentials and returns a fresh credential pair
func (s *IdentityService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, models.Validation("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		// keep timing close to a real verification
		s.hasher.VerifyDummy(req.Password)
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return nil, models.Internal(fmt.Errorf("failed to verify password: %w", err))
	}
	if !ok {
		return nil, models.ErrInvalidCredentials
	}

	return s.signIn(user)
}

// Profile returns the caller's account
func (s *IdentityService) Profile(ctx context.Context, identity auth.Identity) (*models.User, error) {
	return s.users.GetByID(ctx, identity.UserID)
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is returned to nobody and stays valid until it expires.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", models.ErrMissingToken
	}

	identity, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", models.WrapError(models.KindUnauthorized, models.CodeRefreshTokenExpired, models.ErrRefreshTokenExpired.Message, err)
	}

	// roles may have changed since the refresh token was issued
	user, err := s.users.GetByID(ctx, identity.UserID)
	if errors.Is(err, models.ErrUserNotFound) {
		return "", models.ErrRefreshTokenExpired
	}
	if err != nil {
		return "", err
	}

	token, err := s.tokens.IssueAccess(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return "", models.Internal(err)
	}
	return token, nil
}

// AddPoints credits gamification points to a user (admin only)
func (s *IdentityService) AddPoints(ctx context.Context, identity auth.Identity, userID string, points int) (int, error) {
	if err := auth.RequireRole(identity, models.RoleAdmin); err != nil {
		return 0, err
	}
	if points <= 0 {
		return 0, models.Validation("points must be positive")
	}

	balance, err := s.users.AddPoints(ctx, userID, points)
	if err != nil {
		return 0, err
	}

	log.Printf("Admin %s credited %d points to user %s", identity.UserID, points, userID)
	return balance, nil
}

// DeleteUser removes an account (admin only)
func (s *IdentityService) DeleteUser(ctx context.Context, identity auth.Identity, userID string) error {
	if err := auth.RequireRole(identity, models.RoleAdmin); err != nil {
		return err
	}
	if identity.UserID == userID {
		return models.Validation("admins cannot delete their own account")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	log.Printf("Admin %s deleted user %s", identity.UserID, userID)
	return nil
}

func (s *IdentityService) signIn(user *models.User) (*AuthResponse, error) {
	pair, err := s.tokens.IssuePair(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, models.Internal(fmt.Errorf("failed to issue tokens: %w", err))
	}

	return &AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         user,
	}, nil
}
