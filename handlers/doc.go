// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct wrapping the engine:

  - AuthHandler: Credential login and session token issue
  - PollHandler: Admin poll lifecycle (create, edit, start, end, delete, results)
  - VotingHandler: Voter listings, poll detail, vote casting and results
  - UserHandler: Account management
  - AuditHandler: Paged audit log queries

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(engine)
	authHandler := handlers.NewAuthHandler(engine, cfg)

# Sessions

Handlers expect a session placed in the request context by
middleware.SessionGuard. The session together with the client IP becomes
the engine.Actor for the operation.

# Errors

Domain errors carry a stable reason code which selects the status:

	poll_not_found, user_not_found                      → 404
	poll_locked, invalid_transition, already_voted, ... → 409
	user_not_eligible, results_hidden                   → 403
	invalid_credentials                                 → 401
	selection and validation failures                   → 400

Anything else is logged and returned as a generic 500.

# Views

Admins see tallies and allow lists on every poll. Voters see tallies only
when the poll's results mode allows, and never see allow lists.
*/
package handlers
