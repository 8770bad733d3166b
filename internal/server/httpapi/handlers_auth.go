package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decode[RegisterRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.writeBadRequest(w, r, "bad request")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.writeBadRequest(w, r, "name, email and password are required")
		return
	}

	user, err := a.auth.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	a.logger.Info(ctx, "user registered", "user_id", user.ID)
	if err := encode(w, http.StatusCreated, userToResponse(*user)); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decode[LoginRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.writeBadRequest(w, r, "bad request")
		return
	}
	if req.Email == "" || req.Password == "" {
		a.writeBadRequest(w, r, "email and password are required")
		return
	}

	result, err := a.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	a.logger.Info(ctx, "user logged in", "user_id", result.User.ID)
	resp := LoginResponse{
		User:         userToResponse(result.User),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
	if err := encode(w, http.StatusOK, resp); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, err := decode[RefreshRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.writeBadRequest(w, r, "bad request")
		return
	}
	if req.RefreshToken == "" {
		a.writeBadRequest(w, r, "refresh_token is required")
		return
	}

	accessToken, err := a.auth.Refresh(ctx, req.RefreshToken)
	if err != nil {
		a.writeServiceError(w, r, err)
		return
	}

	if err := encode(w, http.StatusOK, RefreshResponse{AccessToken: accessToken}); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}

// handleLogout is bearer-gated: the principal id comes from the verified
// access token, never from the request body. The response is 200 regardless
// of whether the refresh token was still tracked.
func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := UserIDFromContext(ctx)
	if !ok {
		a.writeServiceError(w, r, common.ErrorUnauthenticated)
		return
	}

	req, err := decode[LogoutRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.writeBadRequest(w, r, "bad request")
		return
	}

	a.auth.Logout(ctx, userID, req.RefreshToken)

	a.logger.Info(ctx, "user logged out", "user_id", userID)
	if err := encode(w, http.StatusOK, LogoutResponse{LoggedOut: true}); err != nil {
		a.logger.Error(ctx, "responding to client", "err", err)
	}
}
