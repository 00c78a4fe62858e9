// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Onomate API.

# Handler Types

  - SessionHandler: session lifecycle, founder messages and reactions
  - NameHandler: stateless name analysis and ranking

Handlers are created via constructor functions:

	sessionHandler := handlers.NewSessionHandler(store, fac, cfg)
	nameHandler := handlers.NewNameHandler(cfg)

# Sessions

	POST /sessions                              → CreateSession (returns founder tokens)
	GET  /sessions/{id}                         → GetSession
	GET  /sessions/{id}/names                   → ListNames (ranked by viability)
	POST /sessions/{id}/messages                → SendMessage
	PUT  /sessions/{id}/names/{nameId}/reaction → React

Messages and reactions require the X-Founder-Token header; the token
identifies which founder is speaking. Each of these requests loads the
session, runs the facilitator and saves the result while holding a
per-session lock, so concurrent requests for one session apply in order.
A failed facilitator call saves nothing.

# Errors

Domain errors map to status codes:

	400  empty message, unknown reaction, blank name
	401  missing or foreign founder token
	404  unknown session or suggestion
	409  session already completed
	503  name generator or summarizer unavailable (retryable: true)

# Names

	POST /names/analyze → Analyze (analysis, composite score, trademark risk, domains)
	POST /names/rank    → Rank (filtered by request or configured criteria)
*/
package handlers
