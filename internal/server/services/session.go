package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

// SessionService maintains the per-user set of outstanding refresh tokens.
// Tracking a new token is a hard failure (login must not hand out a token
// the store never recorded); revocation is a soft failure (a storage hiccup
// must never prevent a client from discarding its credentials).
type SessionService struct {
	repo         users.Repository
	logger       logging.Logger
	storeTimeout time.Duration
}

func NewSessionService(repo users.Repository, logger logging.Logger, cfg *config.Config) *SessionService {
	return &SessionService{
		repo:         repo,
		logger:       logger.With("module", "session_service"),
		storeTimeout: cfg.StoreTimeout,
	}
}

// Track records a newly minted refresh token as outstanding. Adding the same
// token twice is a no-op at the store level.
func (s *SessionService) Track(ctx context.Context, userID, token string, expiresAt time.Time) error {
	cctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.repo.AddRefreshToken(cctx, userID, token, expiresAt); err != nil {
		s.logger.Error(ctx, "tracking refresh token", "user_id", userID, "err", err)
		return common.ErrorStoreUnavailable
	}

	return nil
}

// Revoke removes the token from the outstanding set. Removing an absent
// token is a no-op. Store failures are logged, not propagated; the
// authoritative state may lag but the client-visible logout is unconditional.
func (s *SessionService) Revoke(ctx context.Context, userID, token string) {
	cctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.repo.RemoveRefreshToken(cctx, userID, token); err != nil {
		s.logger.Error(ctx, "revoking refresh token", "user_id", userID, "err", err)
	}
}
