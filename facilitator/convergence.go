// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package facilitator

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/onomate/intent"
	"github.com/danielhkuo/onomate/models"
	"github.com/danielhkuo/onomate/reactions"
)

var (
	ErrNotConverging = errors.New("session is not in the convergence phase")
	ErrNotVoting     = errors.New("no vote in progress")
)

// Completion stages
const (
	StageConsensusReached = "consensus_reached"
	StageDecisionMade     = "decision_made"
	StageDecision         = "decision"
)

// Signal tells the caller what, beyond the posted messages, a turn produced.
type Signal string

const (
	SignalNone                Signal = ""
	SignalClarify             Signal = "clarify"
	SignalNeedMoreSuggestions Signal = "need_more_suggestions"
	SignalNoCandidates        Signal = "no_candidates"
	SignalDecided             Signal = "decided"
)

// Note is a facilitator message not yet placed in the transcript.
type Note struct {
	Content string
	Type    string
}

// Outcome is the result of one controller step.
type Outcome struct {
	Signal Signal
	Notes  []Note
}

func (o *Outcome) say(typ, format string, args ...any) {
	o.Notes = append(o.Notes, Note{Content: fmt.Sprintf(format, args...), Type: typ})
}

// ConvergenceController owns the Naming, Convergence and Completed phases:
// the coverage check, direct picks, the final vote and the tie-break.
type ConvergenceController struct {
	rng    Randomizer
	logger *slog.Logger
}

// NewConvergenceController falls back to an unseeded randomizer and
// slog.Default() when given nil.
func NewConvergenceController(rng Randomizer, logger *slog.Logger) *ConvergenceController {
	if rng == nil {
		rng = NewRandomizer(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvergenceController{rng: rng, logger: logger}
}

// CheckCoverage moves a Naming session to Convergence once both founders
// reacted to every suggestion, posting the feedback analysis. It reports
// whether the phase changed.
func (c *ConvergenceController) CheckCoverage(s *models.Session) (Outcome, bool) {
	var out Outcome
	if s.Flow.Phase != models.PhaseNaming {
		return out, false
	}

	class := reactions.Classify(s.Suggestions)
	if !class.HasFullCoverage {
		return out, false
	}

	if err := s.Flow.Advance(models.PhaseConvergence, StageDecision, 80); err != nil {
		return out, false
	}
	c.logger.Info("session converging", "session_id", s.ID, "strong_candidates", len(class.StrongCandidates))

	out.say(models.MessageTypeSystemUpdate, "**Feedback Analysis Complete!**")

	strong := class.StrongCandidates
	if len(strong) > 0 {
		lines := make([]string, 0, 3)
		for _, sg := range strong[:min(3, len(strong))] {
			lines = append(lines, fmt.Sprintf("**%s** (A: %s, B: %s)",
				sg.Name, sg.Reactions[models.FounderA], sg.Reactions[models.FounderB]))
		}
		out.say(models.MessageTypeMessage,
			"**Top Candidates with Strong Support:**\n• %s\n\nThese names received positive reactions from both founders!",
			strings.Join(lines, "\n• "))
	} else {
		out.say(models.MessageTypeMessage,
			"**Interesting Challenge:** No names received strong support from both founders. Let me help you find common ground.")
	}

	strongest := reactions.Score(s.Suggestions)[0]
	switch {
	case strongest.Total >= 8 && reactions.IsStrong(strongest.Suggestion):
		out.say(models.MessageTypeQuestion,
			"**Strong Consensus:** %q appears to be your strongest candidate! Both founders gave positive feedback. Would you like to move forward with this name or explore variations?",
			strongest.Suggestion.Name)
	case len(strong) > 0:
		out.say(models.MessageTypeQuestion,
			"**Decision Time:** You have %d strong candidates. I recommend discussing these top options together. Which aspects of these names resonate most with your vision?",
			len(strong))
	default:
		out.say(models.MessageTypeQuestion,
			"**New Direction Needed:** Based on your feedback, I can generate a fresh set of options that better align with both your preferences. What elements from the previous suggestions did you find most appealing?")
	}

	return out, true
}

// Handle processes one founder message during Convergence or after
// completion. While a vote is open every message is treated as a vote.
func (c *ConvergenceController) Handle(s *models.Session, founder models.FounderID, text string) (Outcome, error) {
	if s.Flow.Phase == models.PhaseCompleted {
		return c.completed(s), nil
	}
	if s.Flow.Phase != models.PhaseConvergence {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNotConverging, s.Flow.Phase)
	}
	if s.Voting.IsVoting {
		return c.HandleVote(s, founder, text)
	}

	var out Outcome
	switch intent.Classify(text) {
	case intent.DirectPick:
		return c.directPick(s, text), nil

	case intent.RequestVote:
		return c.StartVoting(s), nil

	case intent.Ready:
		strong := reactions.Classify(s.Suggestions).StrongCandidates
		if len(strong) == 1 {
			return c.complete(s, strong[0].Name, StageConsensusReached), nil
		}
		vote := c.StartVoting(s)
		if vote.Signal == SignalNone {
			out.say(models.MessageTypeSystemUpdate,
				"Excellent! It sounds like you're ready to make a decision. Let me set up a final vote between your top candidates...")
		}
		out.Signal = vote.Signal
		out.Notes = append(out.Notes, vote.Notes...)

	case intent.RequestMore:
		out.Signal = SignalNeedMoreSuggestions
		out.say(models.MessageTypeSystemUpdate,
			"Perfect! I'll generate additional suggestions. Since you've already seen one set, let me create variations and alternatives that build on what we've learned...")

	case intent.Discuss:
		c.discuss(s, &out)

	case intent.Revisit:
		strong := reactions.Classify(s.Suggestions).StrongCandidates
		if len(strong) == 0 {
			out.say(models.MessageTypeQuestion,
				"None of the names so far had strong support from both of you. Would you like me to generate a new set?")
			break
		}
		out.say(models.MessageTypeQuestion,
			"Here are your previous strong candidates: %s. Sometimes the first good options are the best ones! Would you like to vote between them?",
			joinNames(strong, ", "))

	default:
		out.say(models.MessageTypeMessage,
			"Thank you for that input. I'm here to help facilitate the final decision between both founders. Feel free to discuss the options or let me know if you need additional suggestions.")
	}

	return out, nil
}

// directPick completes the session without a vote when the founders point at
// exactly one strong candidate.
func (c *ConvergenceController) directPick(s *models.Session, text string) Outcome {
	strong := reactions.Classify(s.Suggestions).StrongCandidates

	switch len(strong) {
	case 0:
		out := Outcome{Signal: SignalClarify}
		out.say(models.MessageTypeQuestion,
			"I'd like to confirm which name you want to move forward with. Could you specify the exact name?")
		return out
	case 1:
		return c.complete(s, strong[0].Name, StageConsensusReached)
	}

	if named, ok := matchName(strong, text); ok {
		return c.complete(s, named.Name, StageConsensusReached)
	}

	out := Outcome{Signal: SignalClarify}
	out.say(models.MessageTypeQuestion,
		"You have %d strong candidates: %s. Which one do you want to move forward with, or would you like to vote?",
		len(strong), joinNames(strong, ", "))
	return out
}

// StartVoting opens the final vote between the top two candidates. With
// fewer than two strong candidates no vote is opened and the outcome asks
// for more suggestions.
func (c *ConvergenceController) StartVoting(s *models.Session) Outcome {
	var out Outcome

	strong := reactions.Classify(s.Suggestions).StrongCandidates
	top := reactions.TopByScore(s.Suggestions, 2)
	if len(strong) < 2 || len(top) < 2 {
		out.Signal = SignalNeedMoreSuggestions
		out.say(models.MessageTypeSystemUpdate,
			"I notice we don't have enough strong candidates for a final vote yet. Let me generate some additional options that both founders might like...")
		return out
	}

	candidates := make([]models.NameSuggestion, len(top))
	lines := make([]string, len(top))
	for i, t := range top {
		candidates[i] = t.Suggestion
		lines[i] = fmt.Sprintf("**%d. %s** - %s", i+1, t.Suggestion.Name, truncate(t.Suggestion.Rationale, 60))
	}

	s.Voting = models.VotingRound{
		IsVoting:   true,
		Candidates: candidates,
		Votes:      make(map[models.FounderID]string, 2),
	}
	c.logger.Info("vote started", "session_id", s.ID, "candidates", joinNames(candidates, ","))

	out.say(models.MessageTypeSystemUpdate, "**Final Voting Round**")
	out.say(models.MessageTypeQuestion,
		"Here are your two finalists:\n%s\n\nEach founder should now vote for their preferred choice. Simply say \"I choose [name]\" or \"I vote for [name]\".",
		strings.Join(lines, "\n"))
	out.say(models.MessageTypeQuestion, "**%s**, please cast your vote first.", s.CurrentFounder.Label())
	return out
}

// HandleVote records founder's vote if text names exactly one candidate.
// Anything else re-prompts without changing state. Once both founders have
// voted the session is completed, by tie-break if the votes differ.
func (c *ConvergenceController) HandleVote(s *models.Session, founder models.FounderID, text string) (Outcome, error) {
	if !s.Voting.IsVoting {
		return Outcome{}, ErrNotVoting
	}

	out := Outcome{Signal: SignalClarify}

	if prev, ok := s.Voting.Votes[founder]; ok {
		out.say(models.MessageTypeQuestion, "%s already voted for %s. Waiting for %s.",
			founder.Label(), prev, founder.Other().Label())
		return out, nil
	}

	chosen, ok := matchName(s.Voting.Candidates, text)
	if !ok {
		out.say(models.MessageTypeQuestion, "Please specify which name you're voting for: %s.",
			joinNames(s.Voting.Candidates, " or "))
		return out, nil
	}

	if s.Voting.Votes == nil {
		s.Voting.Votes = make(map[models.FounderID]string, 2)
	}
	s.Voting.Votes[founder] = chosen.Name

	out = Outcome{}
	out.say(models.MessageTypeSystemUpdate, "**%s votes for: %s**", founder.Label(), chosen.Name)

	other := founder.Other()
	if _, voted := s.Voting.Votes[other]; !voted {
		s.CurrentFounder = other
		out.say(models.MessageTypeQuestion, "**%s**, please cast your vote.", other.Label())
		return out, nil
	}

	a, b := s.Voting.Votes[models.FounderA], s.Voting.Votes[models.FounderB]
	if a == b {
		out.say(models.MessageTypeSystemUpdate, "**Unanimous Decision!** Both founders chose: **%s**", a)
		done := c.complete(s, a, StageDecisionMade)
		out.Signal = done.Signal
		out.Notes = append(out.Notes, done.Notes...)
		return out, nil
	}

	out.say(models.MessageTypeSystemUpdate,
		"**Vote Results:**\n• Founder A: %s\n• Founder B: %s\n\nWe have a tie! Let me randomly select the winner...", a, b)

	winner := s.Voting.Votes[models.Founders[c.rng.IntN(len(models.Founders))]]
	c.logger.Info("vote tie broken", "session_id", s.ID, "founder_a", a, "founder_b", b, "winner", winner)

	out.say(models.MessageTypeSystemUpdate, "**Random Selection Result:** **%s**", winner)
	s.Voting.IsVoting = false
	s.Voting.FinalDecision = winner
	if err := s.Flow.Advance(models.PhaseCompleted, StageDecisionMade, 100); err != nil {
		return Outcome{}, err
	}
	out.Signal = SignalDecided
	out.say(models.MessageTypeMessage,
		"Your startup name is: **%s**! While this was decided by chance, both names were strong candidates that received positive feedback. Congratulations on completing the naming process!",
		winner)
	return out, nil
}

// complete records name as the final decision. Only reachable from
// Convergence, so Advance cannot fail here.
func (c *ConvergenceController) complete(s *models.Session, name, stage string) Outcome {
	s.Voting.IsVoting = false
	s.Voting.FinalDecision = name
	_ = s.Flow.Advance(models.PhaseCompleted, stage, 100)
	c.logger.Info("session completed", "session_id", s.ID, "decision", name, "stage", stage)

	out := Outcome{Signal: SignalDecided}
	if stage == StageConsensusReached {
		out.say(models.MessageTypeSystemUpdate, "**Consensus Decision!** Moving forward with: **%s**", name)
	}
	out.say(models.MessageTypeMessage,
		"Congratulations! You've successfully chosen %q as your startup name. This name received support from both founders and represents your shared vision.",
		name)
	return out
}

func (c *ConvergenceController) completed(s *models.Session) Outcome {
	out := Outcome{Signal: SignalDecided}
	out.say(models.MessageTypeMessage,
		"The naming session is complete. Your startup name is **%s**.", s.Voting.FinalDecision)
	return out
}

func (c *ConvergenceController) discuss(s *models.Session, out *Outcome) {
	strong := reactions.Classify(s.Suggestions).StrongCandidates
	if len(strong) == 0 {
		out.say(models.MessageTypeMessage,
			"I notice we haven't found strong consensus candidates yet. Let me help identify what each founder values most in the names we've seen so far...")
		out.say(models.MessageTypeQuestion,
			"Would you like me to: 1) Generate completely new suggestions with a different approach, 2) Focus on finding compromise solutions, or 3) Help you articulate what you're both looking for?")
		return
	}

	lines := make([]string, len(strong))
	for i, sg := range strong {
		lines[i] = fmt.Sprintf("**%s** - %s", sg.Name, truncate(sg.Rationale, 80))
	}
	out.say(models.MessageTypeMessage,
		"**Your Strong Candidates:**\n• %s\n\nThese names received positive feedback from both founders. Which aspects of these resonate most with each of you?",
		strings.Join(lines, "\n• "))
	out.say(models.MessageTypeQuestion,
		"Consider: What specific elements of these names appeal to each founder? Would any of these work as your final choice, or do you need something that combines elements from multiple candidates?")
}

// matchName finds the single suggestion whose name appears in text,
// case-insensitively. When one matched name contains another ("Nova" and
// "NovaLink") the longer one wins; two unrelated matches are ambiguous.
func matchName(candidates []models.NameSuggestion, text string) (models.NameSuggestion, bool) {
	lower := strings.ToLower(text)

	var matched []models.NameSuggestion
	for _, c := range candidates {
		if c.Name != "" && strings.Contains(lower, strings.ToLower(c.Name)) {
			matched = append(matched, c)
		}
	}

	switch len(matched) {
	case 0:
		return models.NameSuggestion{}, false
	case 1:
		return matched[0], true
	}

	longest := matched[0]
	for _, m := range matched[1:] {
		if len(m.Name) > len(longest.Name) {
			longest = m
		}
	}
	for _, m := range matched {
		if !strings.Contains(strings.ToLower(longest.Name), strings.ToLower(m.Name)) {
			return models.NameSuggestion{}, false
		}
	}
	return longest, true
}

func joinNames(suggestions []models.NameSuggestion, sep string) string {
	names := make([]string, len(suggestions))
	for i, s := range suggestions {
		names[i] = s.Name
	}
	return strings.Join(names, sep)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
