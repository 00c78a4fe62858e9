// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth issues and checks founder tokens.

# Founder Tokens

Each session has exactly two tokens, one per founder, derived with
HMAC-SHA256 from the session ID, the founder ID and a server secret:

	tokens := auth.FounderTokens(sessionID, salt)
	founder, err := auth.FounderFromToken(sessionID, token, salt)

Tokens are URL-safe base64 encoded without padding. Since they're
deterministic, the same session ID and salt always produce the same tokens,
so nothing needs to be stored to validate them. A token from one session is
rejected by every other session.
*/
package auth
