// Package fuzzy scores how relevant a tokenized tag is to a tokenized query.
//
// The score blends a prefix alignment with either a weighted mix of
// difflib-style ratios or a plain sequence ratio, as selected by params.
package fuzzy

import (
	"slices"
	"unicode"

	"github.com/kailas-cloud/localsearch/internal/domain/search/params"
	"github.com/kailas-cloud/localsearch/internal/domain/search/result"
	"github.com/kailas-cloud/localsearch/internal/tokenizer"
)

// Matcher decides tag relevance with the package scoring. Zero value is ready to use.
type Matcher struct{}

// NewMatcher creates a Matcher.
func NewMatcher() Matcher { return Matcher{} }

// IsRelevant scores tag against query and reports whether the score reaches
// p.RelevanceThreshold. Hits are rune ranges in the tag's original text and are
// only returned for relevant tags.
func (Matcher) IsRelevant(query, tag tokenizer.Text, p params.Params) (bool, float64, []result.Hit) {
	score, hits, ok := Relevance(query, tag, p)
	if !ok || score < p.RelevanceThreshold {
		return false, score, nil
	}
	return true, score, hits
}

// Relevance computes the score and hit ranges of tag for query. A
// case-insensitive exact match always scores MaxScore, even for tags without
// word characters. Otherwise ok is false when the pair is rejected before
// scoring: either side has no tokens, or the query is at least twice as long
// as the tag.
func Relevance(query, tag tokenizer.Text, p params.Params) (score float64, hits []result.Hit, ok bool) {
	if query.Text() == "" || tag.Text() == "" {
		return MinScore, nil, false
	}

	q := lowerRunes(query.Text())
	t := lowerRunes(tag.Text())
	if slices.Equal(q, t) {
		return MaxScore, []result.Hit{{Start: 0, End: len(t)}}, true
	}
	if query.IsEmpty() || tag.IsEmpty() {
		return MinScore, nil, false
	}

	for _, b := range newSequenceMatcher(q, t, false).MatchingBlocks() {
		if b.Length > 0 {
			hits = append(hits, result.Hit{Start: b.PosSecond, End: b.PosSecond + b.Length})
		}
	}

	if len(q) >= 2*len(t) {
		return MinScore, nil, false
	}

	prefix := PrefixScore(query.Terms(), tag.Terms())
	if p.UsePrefixOnly && prefix >= p.RelevanceThreshold {
		return prefix, hits, true
	}

	var ratio float64
	if p.UseWeightedRatio {
		ratio = WeightedRatio(query.Terms(), tag.Terms(), p.PartialMatchPenaltyRate, p.UseEditDistance)
	} else {
		ratio = newSequenceMatcher(q, t, p.UseEditDistance).Ratio()
	}
	return (ratio + prefix) / 2, hits, true
}

// lowerRunes lowercases rune by rune so offsets stay aligned with the input.
func lowerRunes(s string) []rune {
	r := []rune(s)
	for i := range r {
		r[i] = unicode.ToLower(r[i])
	}
	return r
}
