// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type UserHandler struct {
	engine *engine.Engine
}

func NewUserHandler(e *engine.Engine) *UserHandler {
	return &UserHandler{engine: e}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.engine.ListUsers(r.Context())
	if err != nil {
		writeError(w, err, "list users")
		return
	}

	views := make([]models.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, userView(u))
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// CreateUser handles POST /admin/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	u, err := h.engine.CreateUser(r.Context(), actorFrom(r), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(w, err, "create user")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, userView(u))
}

// UpdateUser handles PUT /admin/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	u, err := h.engine.UpdateUser(r.Context(), actorFrom(r), r.PathValue("id"), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(w, err, "update user")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, userView(u))
}

// DeleteUser handles DELETE /admin/users/{id}
// Returns the polls whose allow lists referenced the user.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	affected, err := h.engine.DeleteUser(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "delete user")
		return
	}
	if affected == nil {
		affected = []string{}
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeleteUserResponse{AffectedPolls: affected})
}
