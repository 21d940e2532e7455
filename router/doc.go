// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(engine, cfg)

# Endpoints

Public:

	GET  /health
	GET  /
	POST /auth/login - Exchange credentials for a session token

Poll management (admin session):

	GET    /admin/polls               - List every poll
	POST   /admin/polls               - Create a draft
	GET    /admin/polls/{id}          - Poll with tallies
	PUT    /admin/polls/{id}          - Edit a draft
	POST   /admin/polls/{id}/start    - Open for voting
	POST   /admin/polls/{id}/end      - Close, optionally hiding it
	DELETE /admin/polls/{id}          - Remove
	GET    /admin/polls/{id}/results  - Tallies and percentages

Accounts and audit (admin session):

	GET    /admin/users
	POST   /admin/users
	PUT    /admin/users/{id}
	DELETE /admin/users/{id}
	GET    /admin/audit-logs

Voting (voter session):

	GET  /polls?status=all|active|ended|voted|not_voted
	GET  /polls/{id}
	POST /polls/{id}/votes
	GET  /polls/{id}/results

Sessions are passed as "Authorization: Bearer <token>". Every route except
the public ones is wrapped in a SessionGuard that checks the token
signature and expiry, then looks the account up so deleted users are
rejected and the stored role is the one checked.
*/
package router
