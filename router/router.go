// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

func NewRouter(e *engine.Engine, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(e, cfg)
	pollHandler := handlers.NewPollHandler(e)
	votingHandler := handlers.NewVotingHandler(e)
	userHandler := handlers.NewUserHandler(e)
	auditHandler := handlers.NewAuditHandler(e)

	guard := middleware.NewSessionGuard(cfg.SessionSecret, e.Now).WithAccounts(
		func(ctx context.Context, userID string) (string, bool, error) {
			u, err := e.GetUser(ctx, userID)
			if errors.Is(err, engine.ErrUserNotFound) {
				return "", false, nil
			}
			if err != nil {
				return "", false, err
			}
			return u.Role, true, nil
		})
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(guard.Require(h, models.RoleAdmin))
	}
	voter := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(guard.Require(h, models.RoleVoter))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))

	// Poll management
	mux.HandleFunc("GET /admin/polls", admin(pollHandler.ListPolls))
	mux.HandleFunc("POST /admin/polls", admin(pollHandler.CreatePoll))
	mux.HandleFunc("GET /admin/polls/{id}", admin(pollHandler.GetPoll))
	mux.HandleFunc("PUT /admin/polls/{id}", admin(pollHandler.UpdatePoll))
	mux.HandleFunc("POST /admin/polls/{id}/start", admin(pollHandler.StartPoll))
	mux.HandleFunc("POST /admin/polls/{id}/end", admin(pollHandler.EndPoll))
	mux.HandleFunc("DELETE /admin/polls/{id}", admin(pollHandler.DeletePoll))
	mux.HandleFunc("GET /admin/polls/{id}/results", admin(pollHandler.GetResults))

	// Accounts
	mux.HandleFunc("GET /admin/users", admin(userHandler.ListUsers))
	mux.HandleFunc("POST /admin/users", admin(userHandler.CreateUser))
	mux.HandleFunc("PUT /admin/users/{id}", admin(userHandler.UpdateUser))
	mux.HandleFunc("DELETE /admin/users/{id}", admin(userHandler.DeleteUser))

	// Audit trail
	mux.HandleFunc("GET /admin/audit-logs", admin(auditHandler.ListEntries))

	// Voting
	mux.HandleFunc("GET /polls", voter(votingHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", voter(votingHandler.GetPoll))
	mux.HandleFunc("POST /polls/{id}/votes", voter(votingHandler.CastVote))
	mux.HandleFunc("GET /polls/{id}/results", voter(votingHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}
