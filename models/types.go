// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// User roles
const (
	RoleAdmin = "admin"
	RoleVoter = "voter"
)

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVoter
}

// Domain types

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// Request types

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Settings mirror the persisted poll record field names.
type PollSettingsRequest struct {
	AllowMultipleVotes *bool      `json:"allow_multiple_votes"`
	ShowResultsMode    string     `json:"show_results_mode"`
	IsRestricted       bool       `json:"is_restricted"`
	AllowedUsers       []string   `json:"allowed_users"`
	EndDate            *time.Time `json:"end_date"`
	RequiresVote       *bool      `json:"requires_vote"`
}

type CreatePollRequest struct {
	PollType             string   `json:"poll_type"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Options              []string `json:"options"`
	MaxSelectableOptions int      `json:"max_selectable_options"`
	PollSettingsRequest
}

type UpdatePollRequest struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	MaxSelectableOptions *int   `json:"max_selectable_options"`
	PollSettingsRequest
}

type EndPollRequest struct {
	HideAfterEnd bool `json:"hide_after_end"`
}

type CastVoteRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Empty password keeps the current one.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Response types

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type OptionView struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes *int   `json:"votes,omitempty"`
}

type PollView struct {
	ID                       string       `json:"id"`
	Title                    string       `json:"title"`
	Description              string       `json:"description"`
	PollType                 string       `json:"poll_type"`
	DisplayName              string       `json:"display_name"`
	Status                   string       `json:"status"`
	Options                  []OptionView `json:"options"`
	MaxSelectableOptions     int          `json:"max_selectable_options"`
	AllowsMultipleSelections bool         `json:"allows_multiple_selections"`
	AllowMultipleVotes       bool         `json:"allow_multiple_votes"`
	ShowResultsMode          string       `json:"show_results_mode"`
	IsRestricted             bool         `json:"is_restricted"`
	AllowedUsers             []string     `json:"allowed_users,omitempty"`
	RequiresVote             bool         `json:"requires_vote"`
	EndDate                  *time.Time   `json:"end_date,omitempty"`
	StartDate                *time.Time   `json:"start_date,omitempty"`
	ActualEndDate            *time.Time   `json:"actual_end_date,omitempty"`
	HideAfterEnd             bool         `json:"hide_after_end"`
	AcceptingVotes           bool         `json:"accepting_votes"`
	HasVoted                 *bool        `json:"has_voted,omitempty"`
	TotalVotes               *int         `json:"total_votes,omitempty"`
}

type OptionResult struct {
	ID      string  `json:"id"`
	Text    string  `json:"text"`
	Votes   int     `json:"votes"`
	Percent float64 `json:"percent"`
}

type ResultsResponse struct {
	PollID     string         `json:"poll_id"`
	Title      string         `json:"title"`
	Status     string         `json:"status"`
	TotalVotes int            `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

type CastVoteResponse struct {
	PollID     string   `json:"poll_id"`
	Selected   []string `json:"selected"`
	TotalVotes int      `json:"total_votes"`
	Message    string   `json:"message"`
}

type DeletePollResponse struct {
	Title string `json:"title"`
}

type DeleteUserResponse struct {
	AffectedPolls []string `json:"affected_polls"`
}

type AuditEntryView struct {
	Action    string    `json:"action"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
	When      string    `json:"when"`
	IPAddress string    `json:"ip_address"`
}

type AuditLogResponse struct {
	Entries    []AuditEntryView `json:"entries"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
