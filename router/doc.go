// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Onomate API.

	mux := router.NewRouter(store, fac, cfg)

# Endpoints

Health:

	GET /health

Sessions:

	POST /sessions                              - Start a naming session
	GET  /sessions/{id}                         - Session view
	GET  /sessions/{id}/names                   - Suggestions ranked by score
	POST /sessions/{id}/messages                - Founder message (X-Founder-Token)
	PUT  /sessions/{id}/names/{nameId}/reaction - Founder reaction (X-Founder-Token)

Names:

	POST /names/analyze - Score one name
	POST /names/rank    - Rank a list of names

All routes except health and root are wrapped with middleware.WithLogging.
*/
package router
