// Package users persists principal records together with their set of
// outstanding refresh tokens. The repository is the single source of truth
// for which refresh tokens are currently honored.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. Email uniqueness is enforced by the store
	// in the same atomic step as the insert; a taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByIDAndRefreshToken returns the user only if token is currently
	// present in that user's outstanding set. This is the enforcement point
	// for refresh-token revocation.
	GetByIDAndRefreshToken(ctx context.Context, id, token string) (*models.User, error)

	// AddRefreshToken and RemoveRefreshToken are idempotent: adding a
	// duplicate or removing an absent token is a no-op.
	AddRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	RemoveRefreshToken(ctx context.Context, userID, token string) error
}
