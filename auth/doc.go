// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides identifiers, password hashing, and session tokens.

# ID Generation

Random identifiers with a readable prefix:

	id := auth.NewID("poll")  // poll_9b1deb4d3b7d4bad9bdd2b0d7b3dcb6d

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword("admin123")
	ok := auth.CheckPassword(hash, "admin123")

# Session Tokens

Session tokens use HMAC-SHA256 over the user id, role, username, and
expiry, so they can be verified without server-side storage:

	token, err := auth.IssueSessionToken(auth.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: now.Add(12 * time.Hour),
	}, secret)

	session, err := auth.ParseSessionToken(token, secret, time.Now())

ParseSessionToken returns ErrInvalidToken for malformed or tampered
tokens and ErrExpiredToken once the expiry has passed.
*/
package auth
