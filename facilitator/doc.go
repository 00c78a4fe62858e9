// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package facilitator drives a two-founder naming session from first
question to final decision.

# Phases

A session moves through five phases and never moves back:

	Intake       founders answer five interview questions each, founder a first
	Alignment    the summarizer describes where the founders align and differ
	Naming       the generator proposes names; founders react to each one
	Convergence  strong candidates are discussed, picked, or voted on
	Completed    the final decision is fixed

HandleMessage appends the founder's message to the transcript and routes
it by phase. If anything fails the session is restored to its state before
the call, so a retry sees the same session.

	f := facilitator.New(generator, summarizer,
		facilitator.WithRandomizer(facilitator.NewRandomizer(seed)),
		facilitator.WithSuggestionCount(5),
	)
	s, reply := f.NewSession(id, criteria)
	reply, err := f.HandleMessage(ctx, s, models.FounderA, "Something short and playful")

React records one founder's reaction to a suggestion. Once both founders
have reacted to every suggestion the session moves to Convergence and a
feedback analysis is posted.

# Convergence

ConvergenceController handles Convergence on its own and can be driven
without a Facilitator. A strong candidate is one both founders liked or
loved. With exactly one strong candidate a pick or a "ready" completes the
session. With two or more, the two highest-scoring candidates go to a
vote; with fewer, no vote opens and more suggestions are requested. Each founder votes once; when the votes differ the winner is drawn
from the Randomizer.

# Outcome Signals

Some results are not errors and are reported through Reply.Signal:

	SignalClarify             the message could not be acted on; a re-prompt was posted
	SignalNeedMoreSuggestions too few qualified candidates to vote
	SignalNoCandidates        every generated name was filtered out
	SignalDecided             the session is completed

Collaborator failures are returned as *agents.UnavailableError.
*/
package facilitator
