// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Onomate API server.

Onomate helps two co-founders agree on a company name. A facilitator
interviews each founder, summarises where they align, asks a language
model for candidate names, scores and filters those candidates, collects
both founders' reactions, and drives the pair to a decision, falling back
to a two-name vote with a random tie-break.

# Starting the Server

	TOKEN_SALT=... LLM_ENDPOINT=https://... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -token-salt ...

# Configuration

Required settings:

  - TOKEN_SALT (-token-salt): Secret for founder token HMAC
  - DATABASE_URL (-d): required when DATABASE_TYPE is postgres

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default, file onomate.db) or postgres
  - LLM_ENDPOINT, LLM_MODEL, LLM_API_KEY: chat completions backend
  - SUGGESTION_COUNT (-suggestions): names per generation (default: 5)
  - TIE_BREAK_SEED (-seed): fixed seed for vote tie-breaks (0 = unseeded)
  - NAME_MIN_LENGTH, NAME_MAX_LENGTH, FORBIDDEN_WORDS, CULTURAL_SENSITIVITY

A .env file and a YAML config file (-c or ONOMATE_CONFIG) are also read;
flags win over environment, which wins over the file.

# Architecture

  - facilitator: phase router and convergence controller
  - interview, reactions, intent: facilitation building blocks
  - scoring, ranking: name viability heuristics and ordering
  - agents: name generator and summarizer contracts, LLM client
  - handlers, router, middleware: HTTP surface
  - db: schema and session store
  - auth: founder tokens
  - cliparse: configuration parsing
  - models: domain and request/response types

See package documentation for each component.
*/
package main
