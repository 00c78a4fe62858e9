// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package interview drives each founder through the five intake questions.
//
// A founder's progress is nothing more than the number of recorded
// responses: the next question is the one at index len(responses), and the
// interview is complete once all five are answered.
package interview

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/onomate/models"
)

var (
	ErrEmptyResponse     = errors.New("response must not be empty")
	ErrInterviewComplete = errors.New("interview already complete")
)

// Questions are asked in order, one per response slot.
var Questions = [models.InterviewQuestionCount]string{
	"What type of name do you envision for your startup? Please describe the style or feeling you're looking for.",
	"That sounds interesting! Describe what you do and what industry or market are you targeting with your startup?",
	"How important is it that the name works internationally? Are there any specific markets you're focused on?",
	"What about domain availability? How flexible are you with domain extensions like .com, .io, .ai?",
	"Thinking about your company's personality, should the name sound more professional, innovative, approachable, or something else?",
}

// NextQuestion returns the question for the founder's next response slot, or
// false once all questions are answered.
func NextQuestion(p models.FounderProfile) (string, bool) {
	n := len(p.Responses)
	if n >= models.InterviewQuestionCount {
		return "", false
	}
	return Questions[n], true
}

// Record appends content as the founder's next response.
func Record(p *models.FounderProfile, content string, at time.Time) (models.Response, error) {
	if p.Status() == models.InterviewComplete {
		return models.Response{}, fmt.Errorf("%s: %w", p.ID, ErrInterviewComplete)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Response{}, ErrEmptyResponse
	}

	r := models.Response{
		Content:   content,
		Timestamp: at,
		Ordinal:   len(p.Responses) + 1,
	}
	p.Responses = append(p.Responses, r)
	return r, nil
}

// StepKind says what happens after a response is recorded.
type StepKind int

const (
	// StepAsk: the same founder gets their next question.
	StepAsk StepKind = iota
	// StepSwitch: this founder is done, the other founder takes the turn.
	StepSwitch
	// StepBothComplete: both interviews are done; intake is over.
	StepBothComplete
)

// Step is the next move after a response: who answers next and what they
// are asked. Question is empty for StepBothComplete.
type Step struct {
	Kind     StepKind
	Founder  models.FounderID
	Question string
}

// Advance decides the next step for the session after founder answered.
func Advance(s *models.Session, founder models.FounderID) Step {
	if q, ok := NextQuestion(*s.Profile(founder)); ok {
		return Step{Kind: StepAsk, Founder: founder, Question: q}
	}

	other := founder.Other()
	if q, ok := NextQuestion(*s.Profile(other)); ok {
		return Step{Kind: StepSwitch, Founder: other, Question: q}
	}

	return Step{Kind: StepBothComplete}
}
