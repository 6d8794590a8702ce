package user

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"smartplates/models"
	"smartplates/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// VerifyPasswordComplexity enforces the minimum password rules.
func VerifyPasswordComplexity(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain both letters and digits")
	}
	return nil
}

// RegisterUser creates a new account and signs the user in.
func (s *DefaultUserService) RegisterUser(username, email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if err := VerifyPasswordComplexity(password); err != nil {
		return nil, err
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(usr); err != nil {
		logger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(usr)
}

// AuthenticateUser verifies credentials and issues a session token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return s.issueToken(usr)
}

// issueToken generates a JWT, records its hash on the user document, and
// primes the auth cache.
func (s *DefaultUserService) issueToken(usr *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, usr.Email, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	updateDoc := map[string]any{
		"token_hash": tokenHash,
		"updatedAt":  time.Now(),
	}
	if err := s.Repo.UpdateSetDocument(usr.ID, updateDoc); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		cacheKey := utils.AuthCachePrefix + usr.ID
		if err := authCache.Set(context.Background(), cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Failed to prime auth cache", zap.Error(err))
		}
	}

	return &AuthResponse{
		ID:           usr.ID,
		Token:        token,
		Username:     usr.Username,
		Email:        usr.Email,
		Role:         usr.Role,
		ProfileImage: usr.ProfileImage,
	}, nil
}

// RevokeUserAuthToken logs the user out by clearing the stored token hash.
func (s *DefaultUserService) RevokeUserAuthToken(userID string) error {
	updateDoc := map[string]any{
		"token_hash": "",
		"updatedAt":  time.Now(),
	}
	if err := s.Repo.UpdateSetDocument(userID, updateDoc); err != nil {
		utils.GetLogger().Error("Failed to revoke user auth token", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to logout, please try again")
	}

	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		cacheKey := utils.AuthCachePrefix + userID
		if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
			utils.GetLogger().Error("Failed to clear auth cache on logout", zap.Error(err))
		}
	}
	return nil
}
