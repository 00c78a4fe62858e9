// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package agents

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/onomate/models"
)

// ErrUnavailable marks a collaborator failure. Callers may retry.
var ErrUnavailable = errors.New("collaborator unavailable")

// Agent names
const (
	AgentNamer       = "namer"
	AgentSynthesizer = "synthesizer"
)

// UnavailableError reports which collaborator failed and why.
type UnavailableError struct {
	Agent string
	Err   error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Agent, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

// Retryable is always true; collaborator failures are transient by contract.
func (e *UnavailableError) Retryable() bool { return true }

// Unavailable wraps err as a failure of agent. A nil err stays nil.
func Unavailable(agent string, err error) error {
	if err == nil {
		return nil
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	return &UnavailableError{Agent: agent, Err: err}
}

// Draft is a name proposed by the generator before the session adopts it.
type Draft struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Rationale       string `json:"rationale"`
	ConfidenceScore int    `json:"confidence_score"`
	DomainStatus    string `json:"domain_status"`
}

// Variation types
const (
	VariationNone         = ""
	VariationAlternatives = "alternatives"
)

// Constraints shape one generation request.
type Constraints struct {
	Count            int    `json:"count"`
	IncludeRationale bool   `json:"include_rationale"`
	VariationType    string `json:"variation_type,omitempty"`
}

// GenerateRequest carries both founder profiles and, for variations, the
// suggestions already shown.
type GenerateRequest struct {
	SessionID   string                  `json:"session_id"`
	FounderA    models.FounderProfile   `json:"founder_a"`
	FounderB    models.FounderProfile   `json:"founder_b"`
	Constraints Constraints             `json:"constraints"`
	Previous    []models.NameSuggestion `json:"previous_suggestions,omitempty"`
}

// Synthesis is the advisory alignment summary of both interviews.
type Synthesis struct {
	AlignmentAreas string `json:"alignment_areas"`
	BalanceAreas   string `json:"balance_areas"`
	Strategy       string `json:"naming_strategy"`
}

// SuggestionGenerator proposes candidate names from both founders' profiles.
type SuggestionGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) ([]Draft, error)
}

// Summarizer describes where the founders align and differ.
type Summarizer interface {
	Summarize(ctx context.Context, a, b models.FounderProfile) (Synthesis, error)
}
