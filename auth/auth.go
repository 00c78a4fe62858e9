// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/danielhkuo/onomate/models"
)

var ErrInvalidFounderToken = errors.New("invalid founder token")

// GenerateFounderToken creates an HMAC-based token binding a founder to a
// session. This is deterministic and verifiable
func GenerateFounderToken(sessionID string, founder models.FounderID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(sessionID))
	h.Write([]byte{0})
	h.Write([]byte(founder))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// FounderTokens returns the tokens for both founders of a session.
func FounderTokens(sessionID, salt string) map[models.FounderID]string {
	tokens := make(map[models.FounderID]string, len(models.Founders))
	for _, f := range models.Founders {
		tokens[f] = GenerateFounderToken(sessionID, f, salt)
	}
	return tokens
}

// FounderFromToken returns the founder the token was issued to.
func FounderFromToken(sessionID, token, salt string) (models.FounderID, error) {
	if token == "" {
		return "", ErrInvalidFounderToken
	}
	for _, f := range models.Founders {
		expected := GenerateFounderToken(sessionID, f, salt)
		if hmac.Equal([]byte(token), []byte(expected)) {
			return f, nil
		}
	}
	return "", ErrInvalidFounderToken
}
