// Package repomanager wires the concrete repositories to a shared database
// handle and applies schema migrations at startup.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/products"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Close() error
	Users() users.Repository
	Products() products.Repository
}
