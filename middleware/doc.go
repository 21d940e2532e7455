// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, client IP, status, and duration_ms on completion.

# Sessions

SessionGuard checks the Authorization: Bearer token and the caller's role:

	guard := middleware.NewSessionGuard(cfg.SessionSecret, nil)
	mux.HandleFunc("GET /admin/polls", guard.Require(h.List, models.RoleAdmin))

Handlers read the verified session from the request context:

	session, _ := middleware.SessionFromContext(r.Context())

Missing, tampered, or expired tokens get 401 with reason
"unauthenticated"; a wrong role gets 403 with reason "forbidden".

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.ReasonResponse(w, http.StatusConflict, "already_voted", "message")

Parse JSON request bodies:

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Recorded with every audit entry.
*/
package middleware
