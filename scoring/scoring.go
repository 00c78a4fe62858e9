// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scoring

import (
	"errors"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEmptyName is returned when an empty or blank name is analyzed.
var ErrEmptyName = errors.New("name must not be empty")

// Analysis is the multi-dimensional view of a single name. It is a pure
// function of the name and is recomputed on every call.
type Analysis struct {
	Name                    string   `json:"name"`
	Length                  int      `json:"length"`
	SyllableCount           int      `json:"syllable_count"`
	PronunciationDifficulty float64  `json:"pronunciation_difficulty"`
	MemoryScore             float64  `json:"memory_score"`
	BrandabilityScore       float64  `json:"brandability_score"`
	InternationalViability  float64  `json:"international_viability"`
	LinguisticRisks         []string `json:"linguistic_risks"`
	PhoneticallyPleasant    bool     `json:"phonetically_pleasant"`
	CulturalConcerns        []string `json:"cultural_concerns"`
}

var (
	syllableSuffix = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	vowelCluster   = regexp.MustCompile(`[aeiouy]{1,2}`)

	consonantRun3   = regexp.MustCompile(`(?i)[bcdfghjklmnpqrstvwxyz]{3,}`)
	consonantRun4   = regexp.MustCompile(`(?i)[bcdfghjklmnpqrstvwxyz]{4,}`)
	uncommonCombo   = regexp.MustCompile(`(?i)[qx]|[ck]{2,}|[dt]h`)
	caseTransition  = regexp.MustCompile(`[a-z][A-Z]`)
	familiarPattern = regexp.MustCompile(`^[A-Z][a-z]+$|^[A-Z][a-z]*[A-Z][a-z]*$`)
	titleOrCamel    = regexp.MustCompile(`^[A-Z][a-z]*$|^[A-Z][a-z]*[A-Z][a-z]*$`)
	hasDigit        = regexp.MustCompile(`[0-9]`)
	nonLetter       = regexp.MustCompile(`[^a-zA-Z]`)
	hardLetters     = regexp.MustCompile(`(?i)[jqvwx]`)
	hardDigraph     = regexp.MustCompile(`(?i)th|ch|sh|gh`)
	ambiguousSpell  = regexp.MustCompile(`(?i)[ei][ei]|ph|ck`)
	flowingVowels   = regexp.MustCompile(`(?i)[aeiou].*[aeiou]`)
	harshEnding     = regexp.MustCompile(`(?i)[qxz]$`)
)

var commonWords = []string{
	"apple", "book", "car", "dog", "easy", "fast", "good", "help",
	"idea", "just", "kind", "love", "make", "nice", "open", "play",
	"quick", "real", "safe", "time", "user", "very", "work", "year", "zero",
}

var positiveRoots = []string{"bright", "fast", "smart", "clear", "grow", "build", "connect"}

var specificTerms = []string{"web", "mobile", "app", "software", "platform", "tool"}

// words with an unfortunate meaning in a major non-English market
var foreignNegatives = []string{"shit", "puta", "merde"}

var homophones = map[string][]string{
	"to":  {"two", "too"},
	"for": {"four", "fore"},
	"by":  {"buy", "bye"},
	"no":  {"know"},
	"so":  {"sew", "sow"},
}

var (
	profanity     = []string{"damn", "hell", "crap"}
	religiousTerm = []string{"god", "christ", "allah", "buddha"}
	politicalTerm = []string{"trump", "biden", "liberal", "conservative"}
)

// Linguistic risk and cultural concern labels
const (
	RiskDifficultPronunciation = "Difficult pronunciation"
	RiskAmbiguousSpelling      = "Potentially ambiguous spelling"
	ConcernOffensive           = "Contains potentially offensive language"
	ConcernReligious           = "Contains religious terminology"
	ConcernPolitical           = "Contains political terminology"
)

// Analyze scores name across every heuristic. Blank names are rejected.
func Analyze(name string) (Analysis, error) {
	if strings.TrimSpace(name) == "" {
		return Analysis{}, ErrEmptyName
	}

	return Analysis{
		Name:                    name,
		Length:                  utf8.RuneCountInString(name),
		SyllableCount:           CountSyllables(name),
		PronunciationDifficulty: PronunciationDifficulty(name),
		MemoryScore:             MemoryScore(name),
		BrandabilityScore:       BrandabilityScore(name),
		InternationalViability:  InternationalViability(name),
		LinguisticRisks:         LinguisticRisks(name),
		PhoneticallyPleasant:    PhoneticallyPleasant(name),
		CulturalConcerns:        CulturalConcerns(name),
	}, nil
}

// Score is the composite viability of name in [0, 1].
func Score(name string) (float64, error) {
	a, err := Analyze(name)
	if err != nil {
		return 0, err
	}
	return a.Composite(), nil
}

// Composite folds the analysis into the weighted score used for ranking.
func (a Analysis) Composite() float64 {
	score := 0.0
	score += a.MemoryScore * 0.25
	score += a.BrandabilityScore * 0.25
	score += (1 - a.PronunciationDifficulty) * 0.20
	score += a.InternationalViability * 0.15
	if a.PhoneticallyPleasant {
		score += 0.10
	}
	if len(a.LinguisticRisks) == 0 {
		score += 0.05
	}

	if len(a.CulturalConcerns) > 0 {
		score -= 0.2
	}

	return clamp01(score)
}

// CountSyllables approximates the syllable count of an English-ish word.
func CountSyllables(word string) int {
	word = strings.ToLower(word)
	if utf8.RuneCountInString(word) <= 3 {
		return 1
	}

	word = syllableSuffix.ReplaceAllString(word, "")
	word = strings.TrimPrefix(word, "y")

	n := len(vowelCluster.FindAllStringIndex(word, -1))
	if n == 0 {
		return 1
	}
	return n
}

// PronunciationDifficulty is 0 for easy names and rises with consonant
// clusters, rare letter combinations, length past 8 and case changes.
func PronunciationDifficulty(name string) float64 {
	difficulty := 0.0

	if consonantRun3.MatchString(name) {
		difficulty += 0.3
	}
	if uncommonCombo.MatchString(name) {
		difficulty += 0.2
	}

	if n := utf8.RuneCountInString(name); n > 8 {
		difficulty += float64(n-8) * 0.05
	}

	difficulty += float64(len(caseTransition.FindAllStringIndex(name, -1))) * 0.1

	return clamp01(difficulty)
}

// MemoryScore rewards short, familiar, letter-only names.
func MemoryScore(name string) float64 {
	score := 0.5

	switch n := utf8.RuneCountInString(name); {
	case n <= 6:
		score += 0.3
	case n <= 8:
		score += 0.1
	case n > 12:
		score -= 0.2
	}

	if alternatesVowels(name) {
		score += 0.2
	}
	if familiarPattern.MatchString(name) {
		score += 0.1
	}

	if hasDigit.MatchString(name) {
		score -= 0.2
	}
	if nonLetter.MatchString(name) {
		score -= 0.1
	}

	return clamp01(score)
}

// BrandabilityScore rewards coined, capitalised names with positive roots and
// no product-category words.
func BrandabilityScore(name string) float64 {
	score := 0.5
	lower := strings.ToLower(name)

	if !slices.Contains(commonWords, lower) {
		score += 0.2
	}

	n := utf8.RuneCountInString(name)
	if n >= 4 && n <= 10 && titleOrCamel.MatchString(name) {
		score += 0.1
	}

	if containsAny(lower, positiveRoots) {
		score += 0.2
	}
	if !containsAny(lower, specificTerms) {
		score += 0.1
	}

	return clamp01(score)
}

// InternationalViability estimates how well the name travels across languages.
func InternationalViability(name string) float64 {
	score := 0.8

	if hardLetters.MatchString(name) {
		score -= 0.1
	}
	if hardDigraph.MatchString(name) {
		score -= 0.05
	}
	if utf8.RuneCountInString(name) > 8 {
		score -= 0.1
	}
	if containsAny(strings.ToLower(name), foreignNegatives) {
		score -= 0.5
	}

	return clamp01(score)
}

// LinguisticRisks lists pronunciation, spelling and homophone risks.
func LinguisticRisks(name string) []string {
	risks := []string{}

	if PronunciationDifficulty(name) > 0.7 {
		risks = append(risks, RiskDifficultPronunciation)
	}
	if ambiguousSpell.MatchString(name) {
		risks = append(risks, RiskAmbiguousSpelling)
	}
	if words, ok := homophones[strings.ToLower(name)]; ok {
		risks = append(risks, "Sounds like: "+strings.Join(words, ", "))
	}

	return risks
}

// PhoneticallyPleasant reports whether the name has separated vowels, no
// consonant run of four or more, and does not end in q, x or z.
func PhoneticallyPleasant(name string) bool {
	return flowingVowels.MatchString(name) &&
		!consonantRun4.MatchString(name) &&
		!harshEnding.MatchString(name)
}

// CulturalConcerns matches the name against the profanity, religious and
// political term lists. Matching is case-insensitive substring only.
func CulturalConcerns(name string) []string {
	concerns := []string{}
	lower := strings.ToLower(name)

	if containsAny(lower, profanity) {
		concerns = append(concerns, ConcernOffensive)
	}
	if containsAny(lower, religiousTerm) {
		concerns = append(concerns, ConcernReligious)
	}
	if containsAny(lower, politicalTerm) {
		concerns = append(concerns, ConcernPolitical)
	}

	return concerns
}

// alternatesVowels is true when every adjacent pair of characters switches
// between vowel and consonant.
func alternatesVowels(name string) bool {
	runes := []rune(strings.ToLower(name))
	if len(runes) == 0 {
		return false
	}

	lastWasVowel := isVowel(runes[0])
	for _, r := range runes[1:] {
		v := isVowel(r)
		if v == lastWasVowel {
			return false
		}
		lastWasVowel = v
	}
	return true
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiou", unicode.ToLower(r))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
