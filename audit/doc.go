// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package audit records administrative and voting actions.

# Recording

A Recorder stamps each entry with its clock and appends it:

	rec := audit.NewRecorder(repo, nil, logger)
	rec.Record(ctx, audit.ActionPollStarted, actor, "Started poll 'Lunch'")

Entries without a client address are stored with IP "unknown".

# Querying

Repositories return pages newest first:

	res, err := rec.Query(ctx, audit.Filter{Action: audit.ActionVoteCast}, audit.Page{Number: 1})

Apply implements filtering and pagination for stores that hold the whole
log in memory.
*/
package audit
