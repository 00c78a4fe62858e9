// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the API.

# Domain Types

  - FounderID: founder_a or founder_b; Other and Label helpers
  - FounderProfile: ordered interview responses; Status derives from the count
  - Reaction: love, like, neutral, dislike, reject with weights 5..1
  - NameSuggestion: candidate name with both founders' reactions
  - SessionFlow: phase, stage, completion percentage; Advance never moves back
  - VotingRound: finalists, votes, final decision
  - Message: transcript entry
  - Session: everything above plus criteria and the transcript

Phases advance Intake → Alignment → Naming → Convergence → Completed.

# Request Types

  - CreateSessionRequest: optional criteria
  - SendMessageRequest: content
  - ReactRequest: reaction
  - AnalyzeNameRequest: name
  - RankNamesRequest: names, optional criteria

# Response Types

  - CreateSessionResponse: session_id, founder_tokens, messages
  - ReplyResponse: messages, signal, flow, current_founder, final_decision
  - SessionView, FounderView: read-only session snapshot
  - RankedSuggestion, AnalyzeNameResponse, RankNamesResponse
  - ErrorResponse: error, message, retryable

# Constants

Message senders:

	SenderSystem      = "system"
	SenderFacilitator = "facilitator"

Message types:

	MessageTypeMessage        = "message"
	MessageTypeQuestion       = "question"
	MessageTypeNameSuggestion = "name_suggestion"
	MessageTypeSystemUpdate   = "system_update"
*/
package models
