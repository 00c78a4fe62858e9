// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Risk is a coarse trademark conflict estimate.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

var (
	crowdedTechWords = []string{"app", "tech", "soft", "ware", "data", "cloud", "smart", "digital"}
	lettersOnly      = regexp.MustCompile(`^[a-zA-Z]+$`)
	nonAlnum         = regexp.MustCompile(`[^a-z0-9]`)
)

// AssessTrademarkRisk estimates conflict risk without a trademark database.
// Names built from crowded tech words are high risk; short plain words are
// medium; coined words are low.
func AssessTrademarkRisk(name string) Risk {
	lower := strings.ToLower(name)

	if containsAny(lower, crowdedTechWords) {
		return RiskHigh
	}
	if utf8.RuneCountInString(name) <= 4 && lettersOnly.MatchString(name) {
		return RiskMedium
	}
	if isCoined(name) {
		return RiskLow
	}
	return RiskMedium
}

func isCoined(name string) bool {
	return !slices.Contains(commonWords, strings.ToLower(name)) && !hasDigit.MatchString(name)
}

// DomainVariations lists candidate domains to check for name.
func DomainVariations(name string) []string {
	base := nonAlnum.ReplaceAllString(strings.ToLower(name), "")
	if base == "" {
		return nil
	}

	variations := []string{
		base + ".com",
		base + ".io",
		base + ".co",
		"get" + base + ".com",
		"try" + base + ".com",
		base + "app.com",
		base + "hq.com",
	}

	if utf8.RuneCountInString(name) > 6 && len(base) >= 4 {
		variations = append(variations, base[:4]+".com")
	}

	return variations
}
