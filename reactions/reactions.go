// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package reactions aggregates founder reactions into candidate scores.
package reactions

import (
	"sort"

	"github.com/danielhkuo/onomate/models"
)

// Classification summarises the founders' reactions over a suggestion set.
type Classification struct {
	StrongCandidates []models.NameSuggestion
	HasFullCoverage  bool
}

// Scored is a suggestion with the weights of both founders' reactions.
// A missing reaction weighs 0.
type Scored struct {
	Suggestion models.NameSuggestion
	WeightA    int
	WeightB    int
	Total      int
}

// Weights returns the reaction weight of each founder for s.
func Weights(s models.NameSuggestion) (a, b int) {
	if r, ok := s.ReactionOf(models.FounderA); ok {
		a = r.Weight()
	}
	if r, ok := s.ReactionOf(models.FounderB); ok {
		b = r.Weight()
	}
	return a, b
}

// IsStrong is true when both founders reacted with Love or Like.
func IsStrong(s models.NameSuggestion) bool {
	a, b := Weights(s)
	return a >= models.ReactionLike.Weight() && b >= models.ReactionLike.Weight()
}

// IsCovered is true when both founders reacted to s.
func IsCovered(s models.NameSuggestion) bool {
	_, okA := s.ReactionOf(models.FounderA)
	_, okB := s.ReactionOf(models.FounderB)
	return okA && okB
}

// Classify finds the strong candidates and whether every suggestion has a
// reaction from both founders. An empty set is never fully covered.
func Classify(suggestions []models.NameSuggestion) Classification {
	c := Classification{HasFullCoverage: len(suggestions) > 0}
	for _, s := range suggestions {
		if IsStrong(s) {
			c.StrongCandidates = append(c.StrongCandidates, s)
		}
		if !IsCovered(s) {
			c.HasFullCoverage = false
		}
	}
	return c
}

// TopByScore returns up to n suggestions with at least one strong positive
// reaction and no strong negative one, highest total weight first. Ties keep
// input order.
func TopByScore(suggestions []models.NameSuggestion, n int) []Scored {
	scored := Score(suggestions)

	qualified := scored[:0]
	for _, s := range scored {
		if qualifies(s) {
			qualified = append(qualified, s)
		}
	}

	if n >= 0 && len(qualified) > n {
		qualified = qualified[:n]
	}
	return qualified
}

// Score weighs every suggestion and sorts by total weight, highest first.
func Score(suggestions []models.NameSuggestion) []Scored {
	scored := make([]Scored, 0, len(suggestions))
	for _, s := range suggestions {
		a, b := Weights(s)
		scored = append(scored, Scored{Suggestion: s, WeightA: a, WeightB: b, Total: a + b})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Total > scored[j].Total
	})
	return scored
}

func qualifies(s Scored) bool {
	neutral := models.ReactionNeutral.Weight()
	like := models.ReactionLike.Weight()
	return s.Total >= 7 && min(s.WeightA, s.WeightB) >= neutral && max(s.WeightA, s.WeightB) >= like
}
