package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func encode[T any](w http.ResponseWriter, status int, v T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func decode[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, fmt.Errorf("decode json: %w", err)
	}
	return v, nil
}

// writeServiceError maps classified service failures to stable outward
// signals. Unclassified errors become a generic 500 with no internal detail.
func (a *API) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: "internal server error"}

	switch {
	case errors.Is(err, common.ErrorUserAlreadyExists):
		status, resp.Error = http.StatusConflict, "user already exists"
	case errors.Is(err, common.ErrorInvalidCredentials):
		status, resp.Error = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, common.ErrorInvalidRefreshToken):
		status, resp.Error = http.StatusUnauthorized, "invalid refresh token"
	case errors.Is(err, common.ErrorUnauthenticated):
		status, resp.Error = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, common.ErrorNotFound):
		status, resp.Error = http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrorStoreUnavailable):
		status, resp.Error = http.StatusServiceUnavailable, "store unavailable"
	default:
		a.logger.Error(ctx, "unclassified error", "err", err)
	}

	if err := encode(w, status, resp); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

func (a *API) writeBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	if err := encode(w, http.StatusBadRequest, ErrorResponse{Error: msg}); err != nil {
		a.logger.Error(r.Context(), "responding to client", "err", err)
	}
}
