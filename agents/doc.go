// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package agents defines the external collaborators of a naming session and
an HTTP client that implements them.

SuggestionGenerator proposes names from both founder profiles. Summarizer
describes where the founders align. LLMClient implements both against an
OpenAI-compatible chat completions endpoint.

Every failure is reported as *UnavailableError, which matches
ErrUnavailable with errors.Is and is always retryable.
*/
package agents
