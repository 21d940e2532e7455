// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and record types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: username, password
  - CreatePollRequest: poll_type, title, description, options, settings
  - UpdatePollRequest: title, description, settings (draft only)
  - EndPollRequest: hide_after_end
  - CastVoteRequest: option_ids
  - CreateUserRequest / UpdateUserRequest: username, password, role

# Response Types

Types for JSON responses:

  - LoginResponse: token, expires_at, user
  - PollView: poll details; votes only when results are visible
  - ResultsResponse: per-option counts and percentages
  - CastVoteResponse: selected option texts and new total
  - AuditLogResponse: one page of audit entries
  - ErrorResponse: error, message, reason

# Records

User is the persisted account record:

	{"id": "...", "username": "...", "password_hash": "...", "role": "admin"}

# Constants

Roles:

	RoleAdmin = "admin"
	RoleVoter = "voter"
*/
package models
