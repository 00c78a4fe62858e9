// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package facilitator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/onomate/agents"
	"github.com/danielhkuo/onomate/intent"
	"github.com/danielhkuo/onomate/interview"
	"github.com/danielhkuo/onomate/models"
	"github.com/danielhkuo/onomate/ranking"
	"github.com/danielhkuo/onomate/reactions"
)

var (
	ErrEmptyMessage      = errors.New("message must not be empty")
	ErrUnknownSuggestion = errors.New("suggestion not found")
)

// DefaultSuggestionCount is how many names are requested per generation.
const DefaultSuggestionCount = 5

// Stages before completion
const (
	StageWelcome    = "welcome"
	StageAnalysis   = "analysis"
	StageGeneration = "generation"
)

const welcomeMessage = "Welcome to Onomate! I'm your naming facilitator. I'll help you both find the perfect name for your startup through a structured conversation. Let's start by understanding each of your individual preferences."

// Reply is what one founder action produced: the facilitator messages added
// to the transcript and the outcome signal.
type Reply struct {
	Messages []models.Message
	Signal   Signal
}

// Facilitator runs sessions. It holds no per-session state, so one instance
// serves every session; callers must not handle two messages for the same
// session concurrently.
type Facilitator struct {
	generator       agents.SuggestionGenerator
	summarizer      agents.Summarizer
	controller      *ConvergenceController
	rng             Randomizer
	now             func() time.Time
	logger          *slog.Logger
	suggestionCount int
}

// Option configures a Facilitator.
type Option func(*Facilitator)

// WithRandomizer sets the source used for vote tie-breaks.
func WithRandomizer(r Randomizer) Option {
	return func(f *Facilitator) { f.rng = r }
}

// WithClock replaces time.Now for message and session timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Facilitator) { f.now = now }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Facilitator) { f.logger = l }
}

// WithSuggestionCount sets how many names to request per generation.
// Non-positive values are ignored.
func WithSuggestionCount(n int) Option {
	return func(f *Facilitator) {
		if n > 0 {
			f.suggestionCount = n
		}
	}
}

// New returns a Facilitator backed by the given collaborators. Either may be
// nil, in which case the phase that needs it reports it unavailable.
func New(generator agents.SuggestionGenerator, summarizer agents.Summarizer, opts ...Option) *Facilitator {
	f := &Facilitator{
		generator:       generator,
		summarizer:      summarizer,
		now:             time.Now,
		logger:          slog.Default(),
		suggestionCount: DefaultSuggestionCount,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = NewRandomizer(0)
	}
	f.controller = NewConvergenceController(f.rng, f.logger)
	return f
}

// NewSession starts a session in Intake with founder A holding the turn and
// the first question asked.
func (f *Facilitator) NewSession(id string, criteria ranking.Criteria) (*models.Session, Reply) {
	now := f.now()
	s := &models.Session{
		ID:             id,
		FounderA:       models.FounderProfile{ID: models.FounderA},
		FounderB:       models.FounderProfile{ID: models.FounderB},
		Flow:           models.SessionFlow{Phase: models.PhaseIntake, Stage: StageWelcome},
		CurrentFounder: models.FounderA,
		Criteria:       criteria,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var r Reply
	f.post(s, &r, welcomeMessage, models.MessageTypeSystemUpdate)
	q, _ := interview.NextQuestion(s.FounderA)
	f.post(s, &r, fmt.Sprintf("%s, let's start with you. %s", capitalize(models.FounderA.Label()), q), models.MessageTypeQuestion)

	f.logger.Info("session created", "session_id", id)
	return s, r
}

// HandleMessage records founder's message and routes it by phase. On error
// the session is left exactly as it was.
func (f *Facilitator) HandleMessage(ctx context.Context, s *models.Session, founder models.FounderID, text string) (Reply, error) {
	if founder != models.FounderA && founder != models.FounderB {
		return Reply{}, models.ErrInvalidFounder
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, ErrEmptyMessage
	}

	snapshot := snapshotOf(s)

	s.Transcript = append(s.Transcript, models.Message{
		ID:        f.nextID(s),
		Timestamp: f.now(),
		Sender:    string(founder),
		Content:   text,
		Type:      models.MessageTypeMessage,
	})

	var (
		r   Reply
		err error
	)
	switch s.Flow.Phase {
	case models.PhaseIntake:
		err = f.handleIntake(s, &r, founder, text)
	case models.PhaseAlignment:
		err = f.handleAlignment(ctx, s, &r, text)
	case models.PhaseNaming:
		err = f.handleNaming(ctx, s, &r, text)
	case models.PhaseConvergence, models.PhaseCompleted:
		err = f.handleConvergence(ctx, s, &r, founder, text)
	default:
		err = fmt.Errorf("unknown phase %q", s.Flow.Phase)
	}

	if err != nil {
		snapshot.restore(s)
		return Reply{}, err
	}

	s.UpdatedAt = f.now()
	return r, nil
}

// React records founder's reaction to a suggestion, replacing any earlier
// one, and moves Naming to Convergence once every suggestion is covered.
func (f *Facilitator) React(s *models.Session, founder models.FounderID, suggestionID string, reaction models.Reaction) (Reply, error) {
	if founder != models.FounderA && founder != models.FounderB {
		return Reply{}, models.ErrInvalidFounder
	}
	if reaction.Weight() == 0 {
		return Reply{}, fmt.Errorf("%w: %q", models.ErrInvalidReaction, reaction)
	}
	if s.Flow.Phase == models.PhaseCompleted {
		return Reply{}, models.ErrSessionCompleted
	}

	sg, ok := s.Suggestion(suggestionID)
	if !ok {
		return Reply{}, fmt.Errorf("%w: %s", ErrUnknownSuggestion, suggestionID)
	}
	sg.SetReaction(founder, reaction)
	s.UpdatedAt = f.now()

	var r Reply
	if out, moved := f.controller.CheckCoverage(s); moved {
		f.apply(s, &r, out)
	}
	return r, nil
}

func (f *Facilitator) handleIntake(s *models.Session, r *Reply, founder models.FounderID, text string) error {
	if founder != s.CurrentFounder {
		r.Signal = SignalClarify
		f.post(s, r, fmt.Sprintf("It's %s's turn to answer right now. You'll be up next!", s.CurrentFounder.Label()), models.MessageTypeMessage)
		return nil
	}

	if _, err := interview.Record(s.Profile(founder), text, f.now()); err != nil {
		return err
	}

	step := interview.Advance(s, founder)
	switch step.Kind {
	case interview.StepAsk:
		f.post(s, r, step.Question, models.MessageTypeQuestion)

	case interview.StepSwitch:
		s.CurrentFounder = step.Founder
		next := len(s.Profile(step.Founder).Responses) + 1
		f.post(s, r, fmt.Sprintf("Thank you %s! Now let's hear from %s. Here is your %s question: %s",
			founder.Label(), step.Founder.Label(), humanize.Ordinal(next), step.Question), models.MessageTypeSystemUpdate)

	case interview.StepBothComplete:
		if err := s.Flow.Advance(models.PhaseAlignment, StageAnalysis, 30); err != nil {
			return err
		}
		f.logger.Info("interviews complete", "session_id", s.ID)
		f.post(s, r, "Excellent! Both founders have shared their preferences. Now I'll analyze your responses to identify areas of alignment and create a naming strategy that works for both of you. Ready to see the analysis?", models.MessageTypeSystemUpdate)
	}
	return nil
}

func (f *Facilitator) handleAlignment(ctx context.Context, s *models.Session, r *Reply, text string) error {
	switch intent.Classify(text) {
	case intent.Ready, intent.RequestMore:
	default:
		f.post(s, r, "I understand. Once you're both ready, I'll analyze your responses to find where you align and where we might need creative compromises. Just say when!", models.MessageTypeMessage)
		return nil
	}

	if f.summarizer == nil {
		return agents.Unavailable(agents.AgentSynthesizer, errors.New("no summarizer configured"))
	}
	syn, err := f.summarizer.Summarize(ctx, s.FounderA, s.FounderB)
	if err != nil {
		f.logger.Warn("alignment summary failed", "session_id", s.ID, "error", err)
		return agents.Unavailable(agents.AgentSynthesizer, err)
	}

	f.post(s, r, "Based on your responses, here's what I found:", models.MessageTypeSystemUpdate)
	f.post(s, r, orDefault(syn.AlignmentAreas, "**Areas of Alignment:**\nBoth founders share common ground in their goals."), models.MessageTypeMessage)
	f.post(s, r, orDefault(syn.BalanceAreas, "**Areas to Balance:**\nA few preferences differ and will shape the suggestions."), models.MessageTypeMessage)
	f.post(s, r, orDefault(syn.Strategy, "**Naming Strategy:**\nWe'll look for names that bridge both perspectives.")+"\n\nReady to see suggestions?", models.MessageTypeQuestion)

	s.AlignmentShown = true
	return s.Flow.Advance(models.PhaseNaming, StageGeneration, 50)
}

func (f *Facilitator) handleNaming(ctx context.Context, s *models.Session, r *Reply, text string) error {
	in := intent.Classify(text)

	switch {
	case in == intent.RequestMore,
		len(s.Suggestions) == 0 && (in == intent.Ready || in == intent.Unknown):
		return f.generate(ctx, s, r, agents.VariationNone)
	case len(s.Suggestions) == 0:
		f.post(s, r, "Say \"ready\" when you'd like me to generate name suggestions.", models.MessageTypeQuestion)
		return nil
	}

	if out, moved := f.controller.CheckCoverage(s); moved {
		f.apply(s, r, out)
		return nil
	}

	pending := 0
	for _, sg := range s.Suggestions {
		if !reactions.IsCovered(sg) {
			pending++
		}
	}
	f.post(s, r, fmt.Sprintf("I'm waiting on reactions to %d of %d suggestions. Please both react to every name so I can understand your preferences.",
		pending, len(s.Suggestions)), models.MessageTypeMessage)
	return nil
}

func (f *Facilitator) handleConvergence(ctx context.Context, s *models.Session, r *Reply, founder models.FounderID, text string) error {
	out, err := f.controller.Handle(s, founder, text)
	if err != nil {
		return err
	}
	f.apply(s, r, out)

	if out.Signal == SignalNeedMoreSuggestions {
		return f.generate(ctx, s, r, agents.VariationAlternatives)
	}
	return nil
}

// generate replaces the suggestion set with fresh names from the generator.
// Blank names and names failing the session criteria are dropped and the
// rest are ordered by composite score. If nothing survives, the previous
// set is kept and the reply signals no candidates.
func (f *Facilitator) generate(ctx context.Context, s *models.Session, r *Reply, variation string) error {
	if f.generator == nil {
		return agents.Unavailable(agents.AgentNamer, errors.New("no generator configured"))
	}

	req := agents.GenerateRequest{
		SessionID: s.ID,
		FounderA:  s.FounderA,
		FounderB:  s.FounderB,
		Constraints: agents.Constraints{
			Count:            f.suggestionCount,
			IncludeRationale: true,
			VariationType:    variation,
		},
	}
	if variation != agents.VariationNone {
		req.Previous = s.Suggestions
	}

	drafts, err := f.generator.Generate(ctx, req)
	if err != nil {
		f.logger.Warn("name generation failed", "session_id", s.ID, "error", err)
		return agents.Unavailable(agents.AgentNamer, err)
	}

	byName := make(map[string]agents.Draft, len(drafts))
	names := make([]string, 0, len(drafts))
	for _, d := range drafts {
		d.Name = strings.TrimSpace(d.Name)
		key := strings.ToLower(d.Name)
		if d.Name == "" {
			continue
		}
		if _, dup := byName[key]; dup {
			continue
		}
		byName[key] = d
		names = append(names, d.Name)
	}

	ranked, err := ranking.Rank(names, &s.Criteria)
	if err != nil {
		return fmt.Errorf("rank generated names: %w", err)
	}

	if len(ranked) == 0 {
		f.logger.Info("no usable names generated", "session_id", s.ID, "received", len(drafts))
		r.Signal = SignalNoCandidates
		f.post(s, r, "None of the generated names passed your naming criteria. Tell me more about what you're looking for, or ask me to try again.", models.MessageTypeQuestion)
		return nil
	}

	now := f.now()
	suggestions := make([]models.NameSuggestion, 0, len(ranked))
	for _, rk := range ranked {
		d := byName[strings.ToLower(rk.Name)]
		suggestions = append(suggestions, models.NameSuggestion{
			ID:              uuid.New().String(),
			Name:            d.Name,
			Category:        d.Category,
			Rationale:       d.Rationale,
			ConfidenceScore: max(0, min(100, d.ConfidenceScore)),
			DomainStatus:    orDefault(d.DomainStatus, models.DomainUnknown),
			CreatedAt:       now,
		})
	}
	s.Suggestions = suggestions

	f.logger.Info("names generated", "session_id", s.ID, "count", len(suggestions), "variation", variation)

	lines := make([]string, len(suggestions))
	for i, sg := range suggestions {
		lines[i] = fmt.Sprintf("**%s** (%s) - %s", sg.Name, sg.Category, sg.Rationale)
	}
	f.post(s, r, "Here are my name suggestions:\n• "+strings.Join(lines, "\n• "), models.MessageTypeNameSuggestion)
	f.post(s, r, "Please both react to each name (love, like, neutral, dislike, reject) so I can understand your preferences.", models.MessageTypeQuestion)
	return nil
}

func (f *Facilitator) apply(s *models.Session, r *Reply, out Outcome) {
	for _, n := range out.Notes {
		f.post(s, r, n.Content, n.Type)
	}
	if out.Signal != SignalNone {
		r.Signal = out.Signal
	}
}

// post appends a facilitator message unless it repeats the message right
// before it.
func (f *Facilitator) post(s *models.Session, r *Reply, content, typ string) {
	if n := len(s.Transcript); n > 0 {
		last := s.Transcript[n-1]
		if last.Sender == models.SenderFacilitator && last.Content == content {
			f.logger.Debug("duplicate message suppressed", "session_id", s.ID)
			return
		}
	}

	msg := models.Message{
		ID:        f.nextID(s),
		Timestamp: f.now(),
		Sender:    models.SenderFacilitator,
		Content:   content,
		Type:      typ,
	}
	s.Transcript = append(s.Transcript, msg)
	r.Messages = append(r.Messages, msg)
}

func (f *Facilitator) nextID(s *models.Session) string {
	s.NextMessageSeq++
	return fmt.Sprintf("msg_%d", s.NextMessageSeq)
}

// snapshot holds what a failed HandleMessage must put back.
type snapshot struct {
	transcriptLen  int
	nextMessageSeq int
	flow           models.SessionFlow
	current        models.FounderID
	responsesA     int
	responsesB     int
	alignmentShown bool
	voting         models.VotingRound
}

func snapshotOf(s *models.Session) snapshot {
	return snapshot{
		transcriptLen:  len(s.Transcript),
		nextMessageSeq: s.NextMessageSeq,
		flow:           s.Flow,
		current:        s.CurrentFounder,
		responsesA:     len(s.FounderA.Responses),
		responsesB:     len(s.FounderB.Responses),
		alignmentShown: s.AlignmentShown,
		voting:         cloneVoting(s.Voting),
	}
}

func (snap snapshot) restore(s *models.Session) {
	s.Transcript = s.Transcript[:snap.transcriptLen]
	s.NextMessageSeq = snap.nextMessageSeq
	s.Flow = snap.flow
	s.CurrentFounder = snap.current
	s.FounderA.Responses = s.FounderA.Responses[:snap.responsesA]
	s.FounderB.Responses = s.FounderB.Responses[:snap.responsesB]
	s.AlignmentShown = snap.alignmentShown
	s.Voting = snap.voting
}

func cloneVoting(v models.VotingRound) models.VotingRound {
	out := v
	out.Candidates = append([]models.NameSuggestion(nil), v.Candidates...)
	if v.Votes != nil {
		out.Votes = make(map[models.FounderID]string, len(v.Votes))
		for k, val := range v.Votes {
			out.Votes[k] = val
		}
	}
	return out
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
