// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type AuthHandler struct {
	engine *engine.Engine
	cfg    cliparse.Config
}

func NewAuthHandler(e *engine.Engine, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{engine: e, cfg: cfg}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.engine.Authenticate(r.Context(), req.Username, req.Password, middleware.GetClientIP(r))
	if err != nil {
		writeError(w, err, "login")
		return
	}

	expires := h.engine.Now().Add(h.cfg.SessionTTL)
	token, err := auth.IssueSessionToken(auth.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: expires,
	}, h.cfg.SessionSecret)
	if err != nil {
		slog.Error("failed to issue session token", "user_id", user.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expires.UTC().Truncate(time.Second),
		User:      userView(user),
	})
}
