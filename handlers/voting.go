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

type VotingHandler struct {
	engine *engine.Engine
}

func NewVotingHandler(e *engine.Engine) *VotingHandler {
	return &VotingHandler{engine: e}
}

// ListPolls handles GET /polls?status=all|active|ended|voted|not_voted
func (h *VotingHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	filter, err := poll.ParseFilter(r.URL.Query().Get("status"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	actor := actorFrom(r)
	polls, err := h.engine.PollsForVoter(r.Context(), actor.UserID, filter)
	if err != nil {
		writeError(w, err, "list voter polls")
		return
	}

	now := h.engine.Now()
	views := make([]models.PollView, 0, len(polls))
	for _, p := range polls {
		views = append(views, voterPollView(p, actor.UserID, now))
	}
	middleware.JSONResponse(w, http.StatusOK, views)
}

// GetPoll handles GET /polls/{id}
func (h *VotingHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	p, err := h.engine.GetPollForVoter(r.Context(), actor.UserID, r.PathValue("id"))
	if err != nil {
		writeError(w, err, "get voter poll")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, voterPollView(p, actor.UserID, h.engine.Now()))
}

// CastVote handles POST /polls/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	receipt, err := h.engine.CastVote(r.Context(), actorFrom(r), r.PathValue("id"), req.OptionIDs)
	if err != nil {
		writeError(w, err, "cast vote")
		return
	}

	msg := "Vote recorded"
	if len(receipt.Selected) == 0 {
		msg = "Response recorded without a selection"
	}
	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		PollID:     receipt.PollID,
		Selected:   receipt.Selected,
		TotalVotes: receipt.TotalVotes,
		Message:    msg,
	})
}

// GetResults handles GET /polls/{id}/results
func (h *VotingHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	res, err := h.engine.Results(r.Context(), actorFrom(r), r.PathValue("id"))
	if err != nil {
		writeError(w, err, "voter results")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, resultsResponse(res))
}
