// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Sources

Values are resolved in this order, first match wins:

 1. command-line flags
 2. environment variables (a .env file is loaded first, see -env)
 3. the YAML file named by -c or ONOMATE_CONFIG
 4. defaults

# CLI Flags and Environment Variables

	-p             PORT                  Server port (default 3318)
	-d             DATABASE_URL          sqlite file or postgres DSN
	-t             DATABASE_TYPE         sqlite (default) or postgres
	-token-salt    TOKEN_SALT            Founder token HMAC secret (required)
	-llm-endpoint  LLM_ENDPOINT          Chat completions URL
	-llm-model     LLM_MODEL             Model name
	-llm-key       LLM_API_KEY           API key
	-suggestions   SUGGESTION_COUNT      Names per generation (default 5)
	-seed          TIE_BREAK_SEED        Tie-break seed, 0 = unseeded
	-min-length    NAME_MIN_LENGTH       Shortest acceptable name
	-max-length    NAME_MAX_LENGTH       Longest acceptable name
	-forbidden     FORBIDDEN_WORDS       Comma-separated substrings to reject
	-cultural      CULTURAL_SENSITIVITY  Reject culturally risky names (default true)

# Config File

	port: 3318
	database:
	  type: postgres
	  url: postgres://localhost/onomate?sslmode=disable
	llm:
	  endpoint: https://api.openai.com/v1/chat/completions
	  model: gpt-4o-mini
	naming:
	  suggestionCount: 6
	  tieBreakSeed: 42
	  criteria:
	    minLength: 4
	    maxLength: 10
	    forbiddenWords: [app, ai]
	    culturalSensitivity: true

# Validation

ParseFlags returns an error if:

  - TOKEN_SALT is missing
  - the database type is neither sqlite nor postgres
  - postgres is selected without a database URL
  - the suggestion count is not positive or the length bounds are inconsistent
*/
package cliparse
