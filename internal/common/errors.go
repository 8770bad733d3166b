// Package common defines shared sentinel errors used across the authkeeper
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors surfaced to the dispatcher.
	ErrorUserAlreadyExists   = errors.New("user already exists")
	ErrorInvalidCredentials  = errors.New("invalid credentials")
	ErrorInvalidRefreshToken = errors.New("invalid refresh token")
	ErrorUnauthenticated     = errors.New("unauthenticated")
	ErrorStoreUnavailable    = errors.New("store unavailable")
	ErrorInternal            = errors.New("internal error")

	// Token lifecycle errors (codec level, collapsed before leaving the
	// service layer).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
