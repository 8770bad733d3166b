// Package models holds the server-side domain records persisted by the
// repositories.
package models

import "time"

// User is the durable principal record. PasswordHash is a one-way hash and
// is never serialized to clients; the set of outstanding refresh tokens
// lives in its own table keyed by user id.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
