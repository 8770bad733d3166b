// Package httpapi is the HTTP dispatcher: it routes verified requests to the
// auth and product services and maps service failures to stable status
// codes. It carries no business invariants of its own.
package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

type API struct {
	logger   logging.Logger
	db       *sql.DB
	auth     *services.AuthService
	products *services.ProductService
}

func NewAPI(logger logging.Logger, db *sql.DB, auth *services.AuthService, products *services.ProductService) *API {
	return &API{
		logger:   logger.With("module", "httpapi"),
		db:       db,
		auth:     auth,
		products: products,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)

	mux.HandleFunc("POST /api/v1/auth/register", a.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", a.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", a.handleRefresh)
	mux.Handle("POST /api/v1/auth/logout", a.requireAuth(http.HandlerFunc(a.handleLogout)))

	mux.Handle("GET /api/v1/products", a.requireAuth(http.HandlerFunc(a.handleListProducts)))
	mux.Handle("POST /api/v1/products", a.requireAuth(http.HandlerFunc(a.handleCreateProduct)))
	mux.Handle("GET /api/v1/products/{id}", a.requireAuth(http.HandlerFunc(a.handleGetProduct)))
	mux.Handle("PUT /api/v1/products/{id}", a.requireAuth(http.HandlerFunc(a.handleUpdateProduct)))
	mux.Handle("DELETE /api/v1/products/{id}", a.requireAuth(http.HandlerFunc(a.handleDeleteProduct)))

	return a.requestID(mux)
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.db.PingContext(ctx); err != nil {
		a.logger.Error(ctx, "db ping failed", "err", err)
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
