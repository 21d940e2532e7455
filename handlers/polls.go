// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
)

type PollHandler struct {
	engine *engine.Engine
}

func NewPollHandler(e *engine.Engine) *PollHandler {
	return &PollHandler{engine: e}
}

// ListPolls handles GET /admin/polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := h.engine.ListPolls(r.Context())
	if err != nil {
		writeError(w, err, "list polls")
		return
	}

	now := h.engine.Now()
	views := make([]models.PollView, 0, len(polls))
	for _, p := range polls {
		views = append(views, adminPollView(p, now))
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// CreatePoll handles POST /admin/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	kind := poll.Kind(req.PollType)
	if kind == "" {
		kind = poll.KindSingleChoice
	}

	p, err := h.engine.CreatePoll(r.Context(), actorFrom(r), engine.CreatePollInput{
		Kind:        kind,
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
		MaxSelect:   req.MaxSelectableOptions,
		Settings:    settingsFrom(req.PollSettingsRequest),
	})
	if err != nil {
		writeError(w, err, "create poll")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, adminPollView(p, h.engine.Now()))
}

// GetPoll handles GET /admin/polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	p, err := h.engine.GetPoll(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "get poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, adminPollView(p, h.engine.Now()))
}

// UpdatePoll handles PUT /admin/polls/{id} (draft only)
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	p, err := h.engine.UpdatePoll(r.Context(), actorFrom(r), r.PathValue("id"), engine.UpdatePollInput{
		Title:       req.Title,
		Description: req.Description,
		MaxSelect:   req.MaxSelectableOptions,
		Settings:    settingsFrom(req.PollSettingsRequest),
	})
	if err != nil {
		writeError(w, err, "update poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, adminPollView(p, h.engine.Now()))
}

// StartPoll handles POST /admin/polls/{id}/start
func (h *PollHandler) StartPoll(w http.ResponseWriter, r *http.Request) {
	p, err := h.engine.StartPoll(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "start poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, adminPollView(p, h.engine.Now()))
}

// EndPoll handles POST /admin/polls/{id}/end
// The body is optional; hide_after_end defaults to false.
func (h *PollHandler) EndPoll(w http.ResponseWriter, r *http.Request) {
	var req models.EndPollRequest
	if r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	p, err := h.engine.EndPoll(r.Context(), actorFrom(r), r.PathValue("id"), req.HideAfterEnd)
	if err != nil {
		writeError(w, err, "end poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, adminPollView(p, h.engine.Now()))
}

// DeletePoll handles DELETE /admin/polls/{id}
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	title, err := h.engine.DeletePoll(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "delete poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DeletePollResponse{Title: title})
}

// GetResults handles GET /admin/polls/{id}/results
func (h *PollHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Results(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "poll results")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resultsResponse(res))
}
