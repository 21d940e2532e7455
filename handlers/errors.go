// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// reasonStatus maps domain reason codes to HTTP status codes
var reasonStatus = map[string]int{
	"poll_not_found": http.StatusNotFound,
	"user_not_found": http.StatusNotFound,

	"poll_locked":              http.StatusConflict,
	"invalid_transition":       http.StatusConflict,
	"poll_not_accepting_votes": http.StatusConflict,
	"already_voted":            http.StatusConflict,
	"username_already_exists":  http.StatusConflict,

	"user_not_eligible":  http.StatusForbidden,
	"results_hidden":     http.StatusForbidden,
	"cannot_delete_self": http.StatusForbidden,

	"invalid_credentials": http.StatusUnauthorized,

	"selection_required": http.StatusBadRequest,
	"invalid_selection":  http.StatusBadRequest,
	"option_not_found":   http.StatusBadRequest,
	"title_required":     http.StatusBadRequest,
	"not_enough_options": http.StatusBadRequest,
	"invalid_settings":   http.StatusBadRequest,
	"invalid_poll_type":  http.StatusBadRequest,
	"username_required":  http.StatusBadRequest,
	"password_required":  http.StatusBadRequest,
	"invalid_role":       http.StatusBadRequest,
}

// writeError reports a domain error with its reason code. Anything else
// is logged and reported as a generic 500.
func writeError(w http.ResponseWriter, err error, op string) {
	reason := engine.Reason(err)
	status, ok := reasonStatus[reason]
	if !ok {
		slog.Error("request failed", "op", op, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	middleware.ReasonResponse(w, status, reason, err.Error())
}
