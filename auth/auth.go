// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token expired")
	ErrEmptySecret  = errors.New("session secret required")
)

// NewID returns a random identifier such as "poll_3f2a...".
func NewID(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// HashPassword hashes a password with bcrypt at the default cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Session is the identity carried by a signed session token
type Session struct {
	UserID    string
	Username  string
	Role      string
	ExpiresAt time.Time
}

// IssueSessionToken signs the session with HMAC-SHA256.
// Token format: base64(userID|role|username|expiryUnix).base64(mac)
func IssueSessionToken(s Session, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if strings.Contains(s.UserID, "|") || strings.Contains(s.Role, "|") {
		return "", fmt.Errorf("%w: user id and role must not contain '|'", ErrInvalidToken)
	}

	payload := strings.Join([]string{
		s.UserID,
		s.Role,
		s.Username,
		strconv.FormatInt(s.ExpiresAt.Unix(), 10),
	}, "|")

	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return body + "." + sign(body, secret), nil
}

// ParseSessionToken verifies the signature and expiry of a token
func ParseSessionToken(token, secret string, now time.Time) (Session, error) {
	body, mac, ok := strings.Cut(token, ".")
	if !ok || body == "" || mac == "" {
		return Session{}, ErrInvalidToken
	}
	if !hmac.Equal([]byte(mac), []byte(sign(body, secret))) {
		return Session{}, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	// Usernames may contain '|', so split the fixed fields off both ends.
	parts := strings.SplitN(string(raw), "|", 3)
	if len(parts) != 3 {
		return Session{}, ErrInvalidToken
	}
	i := strings.LastIndex(parts[2], "|")
	if i < 0 {
		return Session{}, ErrInvalidToken
	}
	expiry, err := strconv.ParseInt(parts[2][i+1:], 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	s := Session{
		UserID:    parts[0],
		Role:      parts[1],
		Username:  parts[2][:i],
		ExpiresAt: time.Unix(expiry, 0).UTC(),
	}
	if !now.Before(s.ExpiresAt) {
		return Session{}, ErrExpiredToken
	}
	return s, nil
}

func sign(body, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(body))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
