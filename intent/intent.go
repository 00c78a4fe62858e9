// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package intent maps a founder's free-text message to one of a fixed set of
// intents. Rules are checked in order and the first match wins, so a message
// like "yes, let's vote" is a vote request rather than plain agreement.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the classified meaning of a message.
type Intent int

const (
	Unknown Intent = iota
	// DirectPick: "let's go with this name"
	DirectPick
	// RequestVote: "let's vote"
	RequestVote
	// RequestMore: "show me different options"
	RequestMore
	// Ready: "yes", "ok", "we agree"
	Ready
	// Discuss: "compare the options"
	Discuss
	// Revisit: "go back to the earlier ones"
	Revisit
)

var names = map[Intent]string{
	Unknown:     "unknown",
	DirectPick:  "direct_pick",
	RequestVote: "request_vote",
	RequestMore: "request_more",
	Ready:       "ready",
	Discuss:     "discuss",
	Revisit:     "revisit",
}

func (i Intent) String() string {
	if s, ok := names[i]; ok {
		return s
	}
	return "unknown"
}

type rule struct {
	intent  Intent
	pattern *regexp.Regexp
}

// words builds a case-insensitive, whole-word alternation.
func words(ws ...string) *regexp.Regexp {
	quoted := make([]string, len(ws))
	for i, w := range ws {
		quoted[i] = strings.ReplaceAll(regexp.QuoteMeta(w), " ", `\s+`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

var rules = []rule{
	{DirectPick, words("move forward", "go with", "choose this", "pick this", "this name")},
	{RequestVote, words("vote", "voting", "votes")},
	{RequestMore, words(
		"more", "different", "other", "others", "additional", "suggest", "suggestion",
		"suggestions", "explore", "variation", "variations", "alternative",
		"alternatives", "generate",
	)},
	{Ready, words(
		"yes", "yeah", "yep", "ok", "okay", "sure", "ready", "agree", "agreed",
		"decide", "done", "next", "final", "let's go",
	)},
	{Discuss, words("discuss", "options", "compare", "analyze", "analyse")},
	{Revisit, words("back", "previous", "earlier", "original")},
}

// Classify returns the first intent whose keywords appear in text.
func Classify(text string) Intent {
	for _, r := range rules {
		if r.pattern.MatchString(text) {
			return r.intent
		}
	}
	return Unknown
}
