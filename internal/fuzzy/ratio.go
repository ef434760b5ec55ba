package fuzzy

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 1.0
)

const (
	// partialScoreCap short-circuits PartialRatio once an alignment is near perfect.
	partialScoreCap = 0.995
	// unbaseScale discounts token based ratios against the plain ratio.
	unbaseScale = 0.95
	// partialLengthRatio is the length ratio from which alignments are used.
	partialLengthRatio = 1.5
	// farLengthRatio is the length ratio above which partial scores are scaled harder.
	farLengthRatio = 8
)

// PartialRatio aligns the shorter string against every matching block of the
// longer one and returns the best ratio of the aligned window. Alignments that
// do not start at a word boundary are discounted by penaltyRate per skipped
// rune of the word they start in.
func PartialRatio(query, text string, penaltyRate float64, useEditDistance bool) float64 {
	return partialRatio([]rune(query), []rune(text), penaltyRate, useEditDistance)
}

func partialRatio(shorter, longer []rune, penaltyRate float64, useEditDistance bool) float64 {
	if len(shorter) == 0 || len(longer) == 0 {
		return MinScore
	}
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := MinScore
	for _, b := range newSequenceMatcher(shorter, longer, useEditDistance).MatchingBlocks() {
		longStart := max(0, b.PosSecond-b.PosFirst)

		current := longStart - 1
		for current >= 0 && !unicode.IsSpace(longer[current]) {
			current--
		}
		penalty := math.Pow(penaltyRate, float64(longStart-current-1))

		longEnd := min(len(longer), longStart+len(shorter))
		window := longer[min(longStart, longEnd):longEnd]
		best = max(best, newSequenceMatcher(shorter, window, useEditDistance).Ratio()*penalty)
		if best > partialScoreCap {
			return MaxScore
		}
	}
	return best
}

// TokenSortRatio compares the token lists sorted alphabetically, either as a
// whole or, when partial is set, by PartialRatio.
func TokenSortRatio(query, text []string, partial bool, penaltyRate float64, useEditDistance bool) float64 {
	q := strings.Join(sortedCopy(query), " ")
	t := strings.Join(sortedCopy(text), " ")
	if partial {
		return PartialRatio(q, t, penaltyRate, useEditDistance)
	}
	return NewSequenceMatcher(q, t, useEditDistance).Ratio()
}

// TokenSetRatio compares the shared tokens with each side rewritten as
// "shared + own tokens" and returns the best of the three pairings.
func TokenSetRatio(query, text []string, partial bool, penaltyRate float64, useEditDistance bool) float64 {
	qset := toSet(query)
	tset := toSet(text)

	var shared, queryOnly, textOnly []string
	for tok := range qset {
		if _, ok := tset[tok]; ok {
			shared = append(shared, tok)
		} else {
			queryOnly = append(queryOnly, tok)
		}
	}
	for tok := range tset {
		if _, ok := qset[tok]; !ok {
			textOnly = append(textOnly, tok)
		}
	}
	slices.Sort(shared)
	slices.Sort(queryOnly)
	slices.Sort(textOnly)

	sharedStr := strings.Join(shared, " ")
	queryRewritten := rewrite(sharedStr, queryOnly)
	textRewritten := rewrite(sharedStr, textOnly)

	ratio := func(a, b string) float64 {
		if partial {
			return PartialRatio(a, b, penaltyRate, useEditDistance)
		}
		return NewSequenceMatcher(a, b, useEditDistance).Ratio()
	}
	return max(
		ratio(sharedStr, queryRewritten),
		ratio(sharedStr, textRewritten),
		ratio(queryRewritten, textRewritten),
	)
}

// WeightedRatio blends the plain, partial, token sort and token set ratios of
// the normalized token strings. The more the lengths differ, the more the
// alignment based ratios are trusted and the more they are scaled down.
func WeightedRatio(query, text []string, penaltyRate float64, useEditDistance bool) float64 {
	q := strings.Join(query, " ")
	t := strings.Join(text, " ")
	qLen, tLen := len([]rune(q)), len([]rune(t))
	if qLen == 0 || tLen == 0 {
		return MinScore
	}

	weighted := NewSequenceMatcher(q, t, useEditDistance).Ratio()

	lengthRatio := float64(max(qLen, tLen)) / float64(min(qLen, tLen))
	usePartial := lengthRatio >= partialLengthRatio
	partialScale := 1.0
	if usePartial {
		partialScale = 0.9
		if lengthRatio > farLengthRatio {
			partialScale = 0.6
		}
		weighted = max(weighted, PartialRatio(q, t, penaltyRate, useEditDistance)*partialScale)
	}

	weighted = max(weighted,
		TokenSortRatio(query, text, usePartial, penaltyRate, useEditDistance)*unbaseScale*partialScale)
	// partial token set scores are inflated by the shared prefix, so never partial here
	weighted = max(weighted,
		TokenSetRatio(query, text, false, penaltyRate, useEditDistance)*unbaseScale*partialScale)
	return weighted
}

func rewrite(shared string, own []string) string {
	if shared == "" {
		return strings.Join(own, " ")
	}
	return shared + " " + strings.Join(own, " ")
}

func sortedCopy(tokens []string) []string {
	c := slices.Clone(tokens)
	slices.Sort(c)
	return c
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
