// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/onomate/ranking"
	"github.com/danielhkuo/onomate/scoring"
)

var (
	ErrInvalidFounder   = errors.New("invalid founder id")
	ErrInvalidReaction  = errors.New("invalid reaction")
	ErrPhaseRegression  = errors.New("session phase cannot move backwards")
	ErrSessionCompleted = errors.New("session is completed")
)

// InterviewQuestionCount is the number of answers that completes an interview.
const InterviewQuestionCount = 5

// FounderID identifies one of the two participants.
type FounderID string

const (
	FounderA FounderID = "founder_a"
	FounderB FounderID = "founder_b"
)

// Founders lists both participants in turn order.
var Founders = [2]FounderID{FounderA, FounderB}

// ParseFounderID accepts "founder_a", "a" or "A" (and the B equivalents).
func ParseFounderID(s string) (FounderID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "founder_a", "a":
		return FounderA, nil
	case "founder_b", "b":
		return FounderB, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFounder, s)
}

// Other returns the opposite founder.
func (f FounderID) Other() FounderID {
	if f == FounderA {
		return FounderB
	}
	return FounderA
}

// Label renders the id for facilitator messages ("founder a").
func (f FounderID) Label() string {
	return strings.ReplaceAll(string(f), "_", " ")
}

// Interview status values. Derived from the response count, never stored.
type InterviewStatus string

const (
	InterviewNotStarted InterviewStatus = "not_started"
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewComplete   InterviewStatus = "complete"
)

// Response is one interview answer. Ordinal is 1-based.
type Response struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Ordinal   int       `json:"question_number"`
}

type FounderProfile struct {
	ID        FounderID  `json:"founder_id"`
	Responses []Response `json:"responses"`
}

// Status is a pure function of the number of responses.
func (p FounderProfile) Status() InterviewStatus {
	switch n := len(p.Responses); {
	case n == 0:
		return InterviewNotStarted
	case n < InterviewQuestionCount:
		return InterviewInProgress
	default:
		return InterviewComplete
	}
}

// Reaction is a founder's response to a name suggestion.
type Reaction string

const (
	ReactionLove    Reaction = "love"
	ReactionLike    Reaction = "like"
	ReactionNeutral Reaction = "neutral"
	ReactionDislike Reaction = "dislike"
	ReactionReject  Reaction = "reject"
)

var reactionWeights = map[Reaction]int{
	ReactionLove:    5,
	ReactionLike:    4,
	ReactionNeutral: 3,
	ReactionDislike: 2,
	ReactionReject:  1,
}

// Weight returns the fixed ordering weight, or 0 for an unknown reaction.
func (r Reaction) Weight() int {
	return reactionWeights[r]
}

// ParseReaction accepts a reaction name in any case.
func ParseReaction(s string) (Reaction, error) {
	r := Reaction(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := reactionWeights[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidReaction, s)
	}
	return r, nil
}

// Name categories
const (
	CategoryCompound     = "compound"
	CategoryCoined       = "coined"
	CategoryDescriptive  = "descriptive"
	CategoryMetaphorical = "metaphorical"
	CategoryAbstract     = "abstract"
)

// Domain status values
const (
	DomainAvailable   = "available"
	DomainPremium     = "premium"
	DomainUnavailable = "unavailable"
	DomainUnknown     = "unknown"
)

type NameSuggestion struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Category        string                 `json:"category"`
	Rationale       string                 `json:"rationale"`
	ConfidenceScore int                    `json:"confidence_score"`
	DomainStatus    string                 `json:"domain_status"`
	Reactions       map[FounderID]Reaction `json:"founder_reactions,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ReactionOf returns the founder's reaction if one was recorded.
func (s NameSuggestion) ReactionOf(f FounderID) (Reaction, bool) {
	r, ok := s.Reactions[f]
	return r, ok
}

// SetReaction overwrites the founder's slot.
func (s *NameSuggestion) SetReaction(f FounderID, r Reaction) {
	if s.Reactions == nil {
		s.Reactions = make(map[FounderID]Reaction, 2)
	}
	s.Reactions[f] = r
}

// Phase is the top-level session phase. Phases only move forward.
type Phase string

const (
	PhaseIntake      Phase = "intake"
	PhaseAlignment   Phase = "alignment"
	PhaseNaming      Phase = "naming"
	PhaseConvergence Phase = "convergence"
	PhaseCompleted   Phase = "completed"
)

var phaseOrder = map[Phase]int{
	PhaseIntake:      0,
	PhaseAlignment:   1,
	PhaseNaming:      2,
	PhaseConvergence: 3,
	PhaseCompleted:   4,
}

// Order is the position of the phase in the session lifecycle.
func (p Phase) Order() int {
	return phaseOrder[p]
}

type SessionFlow struct {
	Phase                Phase  `json:"current_flow"`
	Stage                string `json:"current_stage"`
	CompletionPercentage int    `json:"completion_percentage"`
}

// Advance moves the flow to phase/stage. Staying in the same phase with a new
// stage is allowed; moving to an earlier phase or leaving Completed is not.
func (f *SessionFlow) Advance(phase Phase, stage string, percentage int) error {
	if f.Phase == PhaseCompleted {
		return ErrSessionCompleted
	}
	if phase.Order() < f.Phase.Order() {
		return fmt.Errorf("%w: %s -> %s", ErrPhaseRegression, f.Phase, phase)
	}
	if phase == PhaseCompleted {
		percentage = 100
	}
	percentage = max(0, min(100, percentage))

	f.Phase = phase
	f.Stage = stage
	f.CompletionPercentage = percentage
	return nil
}

// VotingRound holds the final two candidates and the founders' votes.
type VotingRound struct {
	IsVoting      bool                 `json:"is_voting"`
	Candidates    []NameSuggestion     `json:"top_candidates"`
	Votes         map[FounderID]string `json:"votes"`
	FinalDecision string               `json:"final_decision,omitempty"`
}

// Message senders
const (
	SenderSystem      = "system"
	SenderFacilitator = "facilitator"
)

// Message types
const (
	MessageTypeMessage        = "message"
	MessageTypeQuestion       = "question"
	MessageTypeNameSuggestion = "name_suggestion"
	MessageTypeSystemUpdate   = "system_update"
)

type Message struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
}

// Session is the complete state of one naming negotiation. It is owned by a
// single caller at a time; nothing in it is shared across sessions.
type Session struct {
	ID             string           `json:"session_id"`
	FounderA       FounderProfile   `json:"founder_a"`
	FounderB       FounderProfile   `json:"founder_b"`
	Flow           SessionFlow      `json:"flow"`
	CurrentFounder FounderID        `json:"current_founder"`
	Suggestions    []NameSuggestion `json:"names_generated"`
	Voting         VotingRound      `json:"voting"`
	AlignmentShown bool             `json:"alignment_shown"`
	Criteria       ranking.Criteria `json:"criteria"`
	Transcript     []Message        `json:"transcript"`
	NextMessageSeq int              `json:"next_message_seq"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// Profile returns a pointer to the founder's profile inside the session.
func (s *Session) Profile(f FounderID) *FounderProfile {
	if f == FounderB {
		return &s.FounderB
	}
	return &s.FounderA
}

// FinalDecision returns the chosen name once the session is completed.
func (s *Session) FinalDecision() (string, bool) {
	if s.Flow.Phase != PhaseCompleted || s.Voting.FinalDecision == "" {
		return "", false
	}
	return s.Voting.FinalDecision, true
}

// Suggestion finds a suggestion by id.
func (s *Session) Suggestion(id string) (*NameSuggestion, bool) {
	for i := range s.Suggestions {
		if s.Suggestions[i].ID == id {
			return &s.Suggestions[i], true
		}
	}
	return nil, false
}

// Request types

type CreateSessionRequest struct {
	Criteria *ranking.Criteria `json:"criteria,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type ReactRequest struct {
	Reaction string `json:"reaction"`
}

type AnalyzeNameRequest struct {
	Name string `json:"name"`
}

type RankNamesRequest struct {
	Names    []string          `json:"names"`
	Criteria *ranking.Criteria `json:"criteria,omitempty"`
}

// Response types

type CreateSessionResponse struct {
	SessionID     string               `json:"session_id"`
	FounderTokens map[FounderID]string `json:"founder_tokens"`
	Messages      []Message            `json:"messages"`
}

type ReplyResponse struct {
	Messages       []Message   `json:"messages"`
	Signal         string      `json:"signal,omitempty"`
	Flow           SessionFlow `json:"flow"`
	CurrentFounder FounderID   `json:"current_founder"`
	FinalDecision  string      `json:"final_decision,omitempty"`
}

type FounderView struct {
	ID              FounderID       `json:"founder_id"`
	InterviewStatus InterviewStatus `json:"interview_status"`
	Answered        int             `json:"answered"`
}

type SessionView struct {
	SessionID      string           `json:"session_id"`
	Flow           SessionFlow      `json:"flow"`
	CurrentFounder FounderID        `json:"current_founder"`
	Founders       []FounderView    `json:"founders"`
	Suggestions    []NameSuggestion `json:"names"`
	Voting         VotingRound      `json:"voting"`
	Transcript     []Message        `json:"transcript"`
	Started        string           `json:"started"`
}

type RankedSuggestion struct {
	Suggestion NameSuggestion   `json:"suggestion"`
	Score      float64          `json:"score"`
	Analysis   scoring.Analysis `json:"analysis"`
	Rank       int              `json:"rank"` // 1-indexed ranking
}

type AnalyzeNameResponse struct {
	Analysis      scoring.Analysis `json:"analysis"`
	Score         float64          `json:"score"`
	TrademarkRisk scoring.Risk     `json:"trademark_risk"`
	Domains       []string         `json:"domain_variations"`
}

type RankNamesResponse struct {
	Rankings []ranking.Ranked `json:"rankings"`
}

// Error response

type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}
