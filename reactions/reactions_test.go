// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reactions

import (
	"testing"

	"github.com/danielhkuo/onomate/models"
)

func suggestion(name string, a, b models.Reaction) models.NameSuggestion {
	s := models.NameSuggestion{ID: "id-" + name, Name: name}
	if a != "" {
		s.SetReaction(models.FounderA, a)
	}
	if b != "" {
		s.SetReaction(models.FounderB, b)
	}
	return s
}

func TestIsStrong(t *testing.T) {
	tests := []struct {
		a, b     models.Reaction
		expected bool
	}{
		{models.ReactionLove, models.ReactionLike, true},
		{models.ReactionLike, models.ReactionLike, true},
		{models.ReactionLove, models.ReactionReject, false},
		{models.ReactionLove, models.ReactionNeutral, false},
		{models.ReactionLove, "", false},
	}

	for _, tt := range tests {
		s := suggestion("Nexus", tt.a, tt.b)
		if got := IsStrong(s); got != tt.expected {
			t.Errorf("IsStrong(A:%s, B:%s) = %v, expected %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestClassify(t *testing.T) {
	suggestions := []models.NameSuggestion{
		suggestion("Nexus", models.ReactionLove, models.ReactionLike),
		suggestion("Catalyst", models.ReactionLove, models.ReactionReject),
		suggestion("Lumina", models.ReactionLike, models.ReactionLove),
	}

	c := Classify(suggestions)
	if !c.HasFullCoverage {
		t.Error("Expected full coverage")
	}
	if len(c.StrongCandidates) != 2 {
		t.Fatalf("Expected 2 strong candidates, got %d", len(c.StrongCandidates))
	}
	if c.StrongCandidates[0].Name != "Nexus" || c.StrongCandidates[1].Name != "Lumina" {
		t.Errorf("Unexpected strong candidates: %+v", c.StrongCandidates)
	}

	suggestions = append(suggestions, suggestion("Orbit", models.ReactionLike, ""))
	if Classify(suggestions).HasFullCoverage {
		t.Error("Missing reaction should break coverage")
	}

	if Classify(nil).HasFullCoverage {
		t.Error("Empty suggestion set should not count as covered")
	}
}

func TestTopByScore(t *testing.T) {
	suggestions := []models.NameSuggestion{
		suggestion("Neutralish", models.ReactionNeutral, models.ReactionLike), // 7, qualifies
		suggestion("Vetoed", models.ReactionLove, models.ReactionDislike),     // 7, min 2
		suggestion("Loved", models.ReactionLove, models.ReactionLove),         // 10
		suggestion("Liked", models.ReactionLike, models.ReactionLike),         // 8
		suggestion("Lukewarm", models.ReactionNeutral, models.ReactionNeutral), // 6
		suggestion("AlsoLiked", models.ReactionLike, models.ReactionLike),     // 8, after Liked
	}

	top := TopByScore(suggestions, 10)
	expected := []string{"Loved", "Liked", "AlsoLiked", "Neutralish"}
	if len(top) != len(expected) {
		t.Fatalf("Expected %d candidates, got %d", len(expected), len(top))
	}
	for i, name := range expected {
		if top[i].Suggestion.Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, top[i].Suggestion.Name)
		}
	}

	top2 := TopByScore(suggestions, 2)
	if len(top2) != 2 || top2[0].Suggestion.Name != "Loved" || top2[1].Suggestion.Name != "Liked" {
		t.Errorf("Unexpected top 2: %+v", top2)
	}
	if top2[0].Total != 10 || top2[0].WeightA != 5 || top2[0].WeightB != 5 {
		t.Errorf("Unexpected weights: %+v", top2[0])
	}
}

func TestTopByScore_DoesNotMutateInput(t *testing.T) {
	suggestions := []models.NameSuggestion{
		suggestion("B", models.ReactionLike, models.ReactionLike),
		suggestion("A", models.ReactionLove, models.ReactionLove),
	}

	TopByScore(suggestions, 1)

	if suggestions[0].Name != "B" || suggestions[1].Name != "A" {
		t.Errorf("Input order changed: %s, %s", suggestions[0].Name, suggestions[1].Name)
	}
}
