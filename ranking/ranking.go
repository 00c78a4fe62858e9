// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package ranking filters candidate names by hard criteria and orders them
// by composite viability score.
package ranking

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/onomate/scoring"
)

// Criteria are the founders' hard constraints on a name. Zero values disable
// the corresponding check.
type Criteria struct {
	MinLength           int      `json:"min_length,omitempty" yaml:"minLength"`
	MaxLength           int      `json:"max_length,omitempty" yaml:"maxLength"`
	ForbiddenWords      []string `json:"forbidden_words,omitempty" yaml:"forbiddenWords"`
	CulturalSensitivity bool     `json:"cultural_sensitivity" yaml:"culturalSensitivity"`
}

// Ranked is a scored name with its 1-indexed position.
type Ranked struct {
	Name     string           `json:"name"`
	Score    float64          `json:"score"`
	Analysis scoring.Analysis `json:"analysis"`
	Rank     int              `json:"rank"`
}

// FilterByConstraints keeps the names passing every criterion: length bounds,
// then forbidden substrings (case-insensitive), then cultural risk when
// requested. Input order is preserved.
func FilterByConstraints(names []string, criteria Criteria) []string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if Passes(name, criteria) {
			kept = append(kept, name)
		}
	}
	return kept
}

// Passes reports whether a single name satisfies criteria.
func Passes(name string, criteria Criteria) bool {
	n := utf8.RuneCountInString(name)
	if criteria.MinLength > 0 && n < criteria.MinLength {
		return false
	}
	if criteria.MaxLength > 0 && n > criteria.MaxLength {
		return false
	}

	if len(criteria.ForbiddenWords) > 0 {
		lower := strings.ToLower(name)
		for _, word := range criteria.ForbiddenWords {
			if word != "" && strings.Contains(lower, strings.ToLower(word)) {
				return false
			}
		}
	}

	if criteria.CulturalSensitivity && len(scoring.CulturalConcerns(name)) > 0 {
		return false
	}

	return true
}

// Rank orders names by composite score, highest first. Equal scores keep
// their input order. When criteria is non-nil, names failing it are dropped
// before ranking. A blank name fails the whole call.
func Rank(names []string, criteria *Criteria) ([]Ranked, error) {
	if criteria != nil {
		names = FilterByConstraints(names, *criteria)
	}

	ranked := make([]Ranked, 0, len(names))
	for i, name := range names {
		analysis, err := scoring.Analyze(name)
		if err != nil {
			return nil, fmt.Errorf("name %d: %w", i, err)
		}
		ranked = append(ranked, Ranked{
			Name:     name,
			Score:    analysis.Composite(),
			Analysis: analysis,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked, nil
}
