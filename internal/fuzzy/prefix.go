package fuzzy

import "math"

// Per-rune weights of a prefix alignment.
const (
	leadingPrefixWeight = 1.0 // inside the first token of the text
	wordFrontWeight     = 0.8 // first rune of a later token
	inWordWeight        = 0.6 // anywhere else
)

// PrefixScore measures how well the query reads as a run of word prefixes of
// the text, e.g. "c o c" against "Clash of Clan". The score is 1 - 0.5^r where
// r sums the per-rune weights of the best alignment; it is 0 when the query
// cannot be aligned at all.
func PrefixScore(query, text []string) float64 {
	r := prefixRelevance(query, text)
	if r == 0 {
		return MinScore
	}
	return 1 - math.Pow(0.5, r)
}

func prefixRelevance(query, text []string) float64 {
	var q []rune
	for _, tok := range query {
		q = append(q, []rune(tok)...)
	}
	if len(q) == 0 || len(text) == 0 {
		return 0
	}

	tokens := make([][]rune, len(text))
	for i, tok := range text {
		tokens[i] = []rune(tok)
	}

	best := 0.0
	for start := range tokens {
		best = max(best, alignPrefix(q, tokens, start))
	}
	return best
}

// alignPrefix walks the query through the text tokens beginning at tokens[start].
// A mismatch moves on to the next token only when the current token already
// matched at least one rune; the whole query has to be consumed.
func alignPrefix(q []rune, tokens [][]rune, start int) float64 {
	score := 0.0
	ti, ci := start, 0
	matched := false
	for qi := 0; qi < len(q); {
		if ti >= len(tokens) {
			return 0
		}
		tok := tokens[ti]
		if ci >= len(tok) {
			ti, ci, matched = ti+1, 0, false
			continue
		}
		if q[qi] != tok[ci] {
			if !matched {
				return 0
			}
			ti, ci, matched = ti+1, 0, false
			continue
		}

		switch {
		case ti == 0:
			score += leadingPrefixWeight
		case ci == 0:
			score += wordFrontWeight
		default:
			score += inWordWeight
		}
		qi++
		ci++
		matched = true
	}
	return score
}
