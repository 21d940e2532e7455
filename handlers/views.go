// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-vote/engine"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/poll"
)

// actorFrom builds the engine actor from the verified session
func actorFrom(r *http.Request) engine.Actor {
	s, _ := middleware.SessionFromContext(r.Context())
	return engine.Actor{
		UserID:    s.UserID,
		Username:  s.Username,
		Role:      s.Role,
		IPAddress: middleware.GetClientIP(r),
	}
}

// settingsFrom applies request defaults: repeat votes off, selection
// required, results always shown.
func settingsFrom(req models.PollSettingsRequest) poll.Settings {
	return poll.Settings{
		AllowMultipleVotes: boolOr(req.AllowMultipleVotes, false),
		ShowResults:        poll.ShowResults(req.ShowResultsMode),
		Restricted:         req.IsRestricted,
		AllowedUsers:       req.AllowedUsers,
		EndDate:            req.EndDate,
		RequiresVote:       boolOr(req.RequiresVote, true),
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// adminPollView shows everything, including tallies and the allow list.
func adminPollView(p *poll.Poll, now time.Time) models.PollView {
	v := basePollView(p, now)
	v.AllowedUsers = p.Settings.AllowedUsers
	v.Options = optionViews(p, true)
	total := p.TotalVotes()
	v.TotalVotes = &total
	return v
}

// voterPollView shows tallies only when the results mode allows.
func voterPollView(p *poll.Poll, userID string, now time.Time) models.PollView {
	v := basePollView(p, now)
	showVotes := p.ShouldShowResultsToUser(userID, now)
	v.Options = optionViews(p, showVotes)
	if showVotes {
		total := p.TotalVotes()
		v.TotalVotes = &total
	}
	voted := p.HasUserVoted(userID)
	v.HasVoted = &voted
	return v
}

func basePollView(p *poll.Poll, now time.Time) models.PollView {
	return models.PollView{
		ID:                       p.ID,
		Title:                    p.Title,
		Description:              p.Description,
		PollType:                 string(p.Variant.Kind),
		DisplayName:              p.DisplayName(),
		Status:                   string(p.Status),
		MaxSelectableOptions:     p.MaxSelectableOptions(),
		AllowsMultipleSelections: p.AllowsMultipleSelections(),
		AllowMultipleVotes:       p.Settings.AllowMultipleVotes,
		ShowResultsMode:          string(p.Settings.ShowResults),
		IsRestricted:             p.Settings.Restricted,
		RequiresVote:             p.Settings.RequiresVote,
		EndDate:                  p.Settings.EndDate,
		StartDate:                p.StartDate,
		ActualEndDate:            p.ActualEndDate,
		HideAfterEnd:             p.HideAfterEnd,
		AcceptingVotes:           p.CanBeVotedOn(now),
	}
}

func optionViews(p *poll.Poll, withVotes bool) []models.OptionView {
	views := make([]models.OptionView, 0, len(p.Options))
	for _, o := range p.Options {
		v := models.OptionView{ID: o.ID, Text: o.Text}
		if withVotes {
			votes := o.Votes
			v.Votes = &votes
		}
		views = append(views, v)
	}
	return views
}

func resultsResponse(res engine.Results) models.ResultsResponse {
	options := make([]models.OptionResult, 0, len(res.Options))
	for _, o := range res.Options {
		options = append(options, models.OptionResult{ID: o.ID, Text: o.Text, Votes: o.Votes, Percent: o.Percent})
	}
	return models.ResultsResponse{
		PollID:     res.Poll.ID,
		Title:      res.Poll.Title,
		Status:     string(res.Poll.Status),
		TotalVotes: res.TotalVotes,
		Options:    options,
	}
}

func userView(u models.User) models.UserView {
	return models.UserView{ID: u.ID, Username: u.Username, Role: u.Role}
}
