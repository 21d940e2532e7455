// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

// Option is a single selectable answer. Votes only ever grows.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// IncrementVotes adds one vote and returns the new count.
func (o *Option) IncrementVotes() int {
	o.Votes++
	return o.Votes
}
