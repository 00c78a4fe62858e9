// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scoring estimates how viable a string is as a company name.

Analyze runs every heuristic and Composite folds the result into one score
in [0, 1]:

	a, err := scoring.Analyze("Lumina")
	score := a.Composite()

The heuristics are deliberately simple pattern checks on spelling:
syllable count, consonant clusters, vowel alternation, familiar word
stems and short term lists for linguistic and cultural risk. They are
pure functions and safe for concurrent use.

AssessTrademarkRisk and DomainVariations are advisory and do not feed the
composite score.
*/
package scoring
