// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine runs poll lifecycle, voting, and account operations over
the store repositories.

# Construction

	e := engine.NewFromStore(s,
		engine.WithClock(time.Now),
		engine.WithLogger(logger),
	)

# Operations

Every mutation loads a whole collection, changes it, and saves it back
under one writer lock:

  - CreatePoll, UpdatePoll, StartPoll, EndPoll, DeletePoll
  - CastVote
  - CreateUser, UpdateUser, DeleteUser, EnsureDefaultUsers

Each successful mutation appends an audit entry. Audit failures are
logged and do not undo the mutation.

# Voting

CastVote checks, in order: poll exists, poll accepts votes, user is
allowed, user has not already voted (unless repeat votes are on),
selection present when required, selection valid for the poll type,
every option belongs to the poll. The first failure is returned.

# Reads

ListPolls and GetPoll serve admins. PollsForVoter and GetPollForVoter
hide drafts, hidden ended polls, and restricted polls the voter is not
on. Results applies the results visibility mode for voters.

# Errors

Reason maps any domain error, including the poll package errors, to a
stable reason code:

	engine.Reason(poll.ErrAlreadyVoted)         // "already_voted"
	engine.Reason(engine.ErrCannotDeleteSelf)   // "cannot_delete_self"
*/
package engine
