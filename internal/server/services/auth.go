// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, credential checks, and the
// issue/refresh/logout lifecycle of token pairs.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dpetrovs/authgate/internal/common"
	"github.com/dpetrovs/authgate/internal/server/config"
	"github.com/dpetrovs/authgate/internal/server/models"
	"github.com/dpetrovs/authgate/internal/server/password"
	"github.com/dpetrovs/authgate/internal/server/repositories/accounts"
	"github.com/dpetrovs/authgate/internal/server/repositories/refreshtokens"
	"github.com/dpetrovs/authgate/internal/server/token"
)

// MinPasswordLength is the smallest password Register accepts, counted in
// runes.
const MinPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication operations:
//   - Register: create accounts
//   - Authenticate: verify credentials and mint a token pair
//   - Refresh: rotate a refresh token into a fresh pair
//   - Logout: retire a refresh token
//   - Verify: validate a presented Authorization header
type AuthService struct {
	accounts                     accounts.Repository
	refreshTokens                refreshtokens.Repository
	codec                        *token.Codec
	hasher                       *password.Hasher
	defaultProjectID             string
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService from the repositories, the token
// codec, the credential hasher, and server config.
func NewAuthService(a accounts.Repository, r refreshtokens.Repository, c *token.Codec, h *password.Hasher, cfg *config.Config) *AuthService {
	return &AuthService{
		accounts:                     a,
		refreshTokens:                r,
		codec:                        c,
		hasher:                       h,
		defaultProjectID:             cfg.DefaultProjectID,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates an account for username in projectID, or in the default
// project when projectID is empty. Passwords shorter than MinPasswordLength
// are rejected with common.ErrWeakCredential. The store's uniqueness
// constraint is the only duplicate gate; a taken username surfaces as
// common.ErrDuplicateAccount.
func (s *AuthService) Register(ctx context.Context, username, pass, projectID string) (*models.Account, error) {
	projectID = s.projectOrDefault(projectID)

	if utf8.RuneCountInString(pass) < MinPasswordLength {
		return nil, common.ErrWeakCredential
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	account, err := s.accounts.Create(ctx, &models.Account{
		Username:     username,
		ProjectID:    projectID,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateAccount) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, s.storeUnavailable("creating account", err)
	}

	return account, nil
}

// Authenticate checks username/password within projectID, or within the
// default project when projectID is empty, and mints a fresh token pair.
// Unknown accounts and wrong passwords are indistinguishable to the caller:
// both return common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, pass, projectID string) (*TokenPair, error) {
	projectID = s.projectOrDefault(projectID)

	account, err := s.accounts.Find(ctx, username, projectID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, s.storeUnavailable("finding account", err)
	}

	if !s.hasher.Verify(pass, account.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.generateTokenPair(ctx, account.Username, account.ProjectID)
}

// Refresh redeems refreshToken for a new pair. The stored token is consumed
// first, so of N concurrent attempts with the same token exactly one
// proceeds and the rest get common.ErrInvalidRefreshToken. The consumed
// string itself is then decoded to recover the identity; expired, tampered,
// or claim-less tokens also report common.ErrInvalidRefreshToken, after the
// stored entry is already gone.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if err := s.refreshTokens.Consume(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidRefreshToken
		}
		return nil, s.storeUnavailable("consuming refresh token", err)
	}

	claims, err := s.codec.Decode(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidRefreshToken
	}

	return s.generateTokenPair(ctx, claims.Subject, claims.Project)
}

// Logout retires refreshToken. A token that is already gone counts as
// success, so logout is idempotent; only store failures surface.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokens.Consume(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return s.storeUnavailable("consuming refresh token", err)
	}
	return nil
}

// Verify validates an Authorization header and returns the access token's
// claims. The header must be exactly "Bearer <token>" with a
// case-insensitive scheme. Verification is stateless: no store is touched,
// so an unexpired access token keeps verifying after logout.
func (s *AuthService) Verify(authorizationHeader string) (*token.Claims, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, common.ErrInvalidAuthHeader
	}

	claims, err := s.codec.Decode(parts[1])
	if err != nil {
		if errors.Is(err, common.ErrMissingClaim) {
			return nil, common.ErrInvalidAuthHeader
		}
		return nil, err
	}

	return claims, nil
}

// --- helpers below ---

func (s *AuthService) projectOrDefault(projectID string) string {
	if projectID == "" {
		return s.defaultProjectID
	}
	return projectID
}

func (s *AuthService) storeUnavailable(op string, err error) error {
	return fmt.Errorf("%w: error %s: %v", common.ErrStoreUnavailable, op, err)
}

func (s *AuthService) generateTokenPair(ctx context.Context, username, projectID string) (*TokenPair, error) {
	access, err := s.codec.Issue(username, projectID, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error issuing access token: %v", err)
	}
	refresh, err := s.codec.Issue(username, projectID, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error issuing refresh token: %v", err)
	}
	if err := s.refreshTokens.Put(ctx, refresh, username, projectID, s.refreshTokenValidityDuration); err != nil {
		return nil, s.storeUnavailable("storing refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
