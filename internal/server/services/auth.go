// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, password login, access-token
// refresh, and bearer authentication for the dispatcher.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/hash"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

// UserSummary is the client-visible view of a user. It never carries the
// password hash.
type UserSummary struct {
	ID    string
	Name  string
	Email string
}

// LoginResult bundles the minted token pair with the user summary.
type LoginResult struct {
	User         UserSummary
	AccessToken  string
	RefreshToken string
}

// AuthService provides authentication-related operations:
//   - Register: create users with a hashed password
//   - Login: verify credentials and mint an access/refresh token pair
//   - Refresh: exchange a tracked refresh token for a new access token
//   - Logout: revoke one refresh token (soft failure)
//   - Authenticate: resolve a bearer value to a user id
type AuthService struct {
	repo                         users.Repository
	sessions                     *SessionService
	hasher                       hash.Hasher
	logger                       logging.Logger
	jwtSecret                    []byte
	dummyHash                    string
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	storeTimeout                 time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(repo users.Repository, sessions *SessionService, hasher hash.Hasher, logger logging.Logger, cfg *config.Config) *AuthService {
	// Hashed once so the login path can burn comparable work on unknown
	// emails, keeping the two InvalidCredentials cases indistinguishable.
	dummyHash, err := hasher.Hash("authkeeper-timing-equalizer")
	if err != nil {
		dummyHash = ""
	}

	return &AuthService{
		repo:                         repo,
		sessions:                     sessions,
		hasher:                       hasher,
		logger:                       logger.With("module", "auth_service"),
		jwtSecret:                    []byte(cfg.SecretKey),
		dummyHash:                    dummyHash,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		storeTimeout:                 cfg.StoreTimeout,
	}
}

// storeCtx bounds a store round trip with the configured timeout.
func (s *AuthService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// Register hashes the password and creates the user. The plaintext is never
// stored or logged. A taken email yields common.ErrorUserAlreadyExists.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*UserSummary, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "hashing password", "err", err)
		return nil, common.ErrorInternal
	}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	user, err := s.repo.Create(cctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorUserAlreadyExists
		}
		s.logger.Error(ctx, "creating user", "err", err)
		return nil, common.ErrorStoreUnavailable
	}

	return &UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Login verifies the password and mints both tokens. The unknown-email and
// wrong-password cases both return common.ErrorInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	user, err := s.repo.GetByEmail(cctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Check(password, s.dummyHash)
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "looking up user by email", "err", err)
		return nil, common.ErrorStoreUnavailable
	}

	ok, err := s.hasher.Check(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, common.ErrorInvalidCredentials
	}

	accessToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "minting access token", "err", err)
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.GenerateToken(user.ID, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "minting refresh token", "err", err)
		return nil, common.ErrorInternal
	}

	expiresAt := time.Now().Add(s.refreshTokenValidityDuration)
	if err := s.sessions.Track(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         UserSummary{ID: user.ID, Name: user.Name, Email: user.Email},
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid, still-tracked refresh token for a new access
// token. The refresh token itself is not rotated and the password is never
// re-checked. Every verification failure collapses to
// common.ErrorInvalidRefreshToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := auth.GetUserIDFromToken(refreshToken, s.jwtSecret)
	if err != nil {
		s.logger.Debug(ctx, "refresh token rejected", "reason", err.Error())
		return "", common.ErrorInvalidRefreshToken
	}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if _, err := s.repo.GetByIDAndRefreshToken(cctx, userID, refreshToken); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// The token verified but is not in the outstanding set: it was
			// revoked (or never issued by us). Worth flagging.
			s.logger.Warn(ctx, "refresh attempt with untracked token", "user_id", userID)
			return "", common.ErrorInvalidRefreshToken
		}
		s.logger.Error(ctx, "looking up refresh token", "err", err)
		return "", common.ErrorStoreUnavailable
	}

	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "minting access token", "err", err)
		return "", common.ErrorInternal
	}

	return accessToken, nil
}

// Logout revokes one refresh token for the user. It never fails from the
// caller's perspective: store hiccups are logged by the session manager and
// the client discards its credentials regardless.
func (s *AuthService) Logout(ctx context.Context, userID, refreshToken string) {
	s.sessions.Revoke(ctx, userID, refreshToken)
}

// Authenticate resolves a bearer access token to a user id. Any failure is
// reported as common.ErrorUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, bearer string) (string, error) {
	userID, err := auth.GetUserIDFromToken(bearer, s.jwtSecret)
	if err != nil {
		return "", common.ErrorUnauthenticated
	}
	return userID, nil
}
