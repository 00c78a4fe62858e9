// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/onomate/models"
)

func TestGenerateFounderToken(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		salt      string
	}{
		{"standard", "session123", "secret-salt"},
		{"empty session id", "", "salt"},
		{"empty salt", "session456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := GenerateFounderToken(tt.sessionID, models.FounderA, tt.salt)

			// Should be deterministic
			if again := GenerateFounderToken(tt.sessionID, models.FounderA, tt.salt); a != again {
				t.Errorf("GenerateFounderToken() not deterministic: %s != %s", a, again)
			}

			// Should not contain padding or URL-unsafe characters
			if strings.ContainsAny(a, "=+/") {
				t.Errorf("GenerateFounderToken() contains unsafe chars: %s", a)
			}

			if b := GenerateFounderToken(tt.sessionID, models.FounderB, tt.salt); a == b {
				t.Error("Founders of one session share a token")
			}
		})
	}

	// Different sessions should produce different tokens
	if GenerateFounderToken("s1", models.FounderA, "salt") == GenerateFounderToken("s2", models.FounderA, "salt") {
		t.Error("Different sessions produced the same token")
	}
	// Different salts should produce different tokens
	if GenerateFounderToken("s1", models.FounderA, "salt1") == GenerateFounderToken("s1", models.FounderA, "salt2") {
		t.Error("Different salts produced the same token")
	}
}

func TestFounderFromToken(t *testing.T) {
	tokens := FounderTokens("session", "salt")

	for _, f := range models.Founders {
		got, err := FounderFromToken("session", tokens[f], "salt")
		if err != nil {
			t.Fatalf("FounderFromToken(%s) error = %v", f, err)
		}
		if got != f {
			t.Errorf("FounderFromToken() = %s, want %s", got, f)
		}
	}

	tests := []struct {
		name      string
		sessionID string
		token     string
		salt      string
	}{
		{"empty token", "session", "", "salt"},
		{"garbage", "session", "not-a-token", "salt"},
		{"other session", "other", tokens[models.FounderA], "salt"},
		{"wrong salt", "session", tokens[models.FounderA], "pepper"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FounderFromToken(tt.sessionID, tt.token, tt.salt); !errors.Is(err, ErrInvalidFounderToken) {
				t.Errorf("expected ErrInvalidFounderToken, got %v", err)
			}
		})
	}
}
