package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/localsearch/internal/domain/search/params"
	"github.com/kailas-cloud/localsearch/internal/domain/search/result"
	"github.com/kailas-cloud/localsearch/internal/tokenizer"
)

func tok(s string) tokenizer.Text { return tokenizer.Tokenize(s) }

func weighted() params.Params {
	p := params.Default()
	p.UseWeightedRatio = true
	p.UseEditDistance = false
	return p
}

func TestRelevance_WeightedThresholds(t *testing.T) {
	p := weighted()

	score, _, ok := Relevance(tok("anonymous"), tok("famous"), p)
	require.True(t, ok)
	assert.Less(t, score, 0.4)

	score, _, ok = Relevance(tok("CC"), tok("Clash Of Clan"), p)
	require.True(t, ok)
	assert.Less(t, score, 0.25)

	score, _, ok = Relevance(tok("Clash.of.clan"), tok("ClashOfTitan"), p)
	require.True(t, ok)
	assert.Greater(t, score, 0.4)
	assert.Less(t, score, 0.5)
}

func TestRelevance_EditDistance(t *testing.T) {
	p := params.Default()
	p.UseWeightedRatio = false
	p.UseEditDistance = true

	score, _, ok := Relevance(tok("anonymous"), tok("famous"), p)

	require.True(t, ok)
	assert.InDelta(t, 0.33/2, score, 0.01)
}

func TestRelevance_ExactMatchIgnoresCase(t *testing.T) {
	score, hits, ok := Relevance(tok("yat"), tok("YaT"), params.Default())

	require.True(t, ok)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, []result.Hit{{Start: 0, End: 3}}, hits)
}

func TestRelevance_QueryTooLong(t *testing.T) {
	_, _, ok := Relevance(tok("settings"), tok("set"), params.Default())

	assert.False(t, ok)
}

func TestRelevance_EmptySides(t *testing.T) {
	_, _, ok := Relevance(tok("wifi"), tok(""), params.Default())
	assert.False(t, ok)

	_, _, ok = Relevance(tok("!!!"), tok("Wi-Fi"), params.Default())
	assert.False(t, ok)

	_, _, ok = Relevance(tok("+"), tok("#"), params.Default())
	assert.False(t, ok)
}

func TestRelevance_SymbolOnlyExactMatch(t *testing.T) {
	for _, tag := range []string{"+", "#", "???", "\u2014", "\U0001F642"} {
		score, hits, ok := Relevance(tok(tag), tok(tag), params.Default())

		require.True(t, ok, "tag %q", tag)
		assert.Equal(t, MaxScore, score, "tag %q", tag)
		assert.Equal(t, []result.Hit{{Start: 0, End: len([]rune(tag))}}, hits, "tag %q", tag)
	}
}

func TestRelevance_PrefixOnly(t *testing.T) {
	p := params.Default()
	p.UsePrefixOnly = true

	score, _, ok := Relevance(tok("clas"), tok("Clash of Clan"), p)

	require.True(t, ok)
	assert.InDelta(t, 0.9375, score, 1e-9)
}

func TestMatcher_IsRelevant(t *testing.T) {
	m := NewMatcher()
	p := params.Default()

	relevant, score, hits := m.IsRelevant(tok("wifi"), tok("Wi-Fi settings"), p)
	assert.True(t, relevant)
	assert.GreaterOrEqual(t, score, p.RelevanceThreshold)
	assert.Equal(t, []result.Hit{{Start: 0, End: 2}, {Start: 3, End: 5}}, hits)

	relevant, _, hits = m.IsRelevant(tok("wifi"), tok("Bluetooth settings"), p)
	assert.False(t, relevant)
	assert.Nil(t, hits)
}

func TestMatcher_IsRelevantStrictThreshold(t *testing.T) {
	p := params.Default()
	p.RelevanceThreshold = 1.0

	relevant, score, _ := NewMatcher().IsRelevant(tok("wifi"), tok("Wi-Fi settings"), p)

	assert.False(t, relevant)
	assert.Less(t, score, 1.0)
}

func TestMatcher_IsRelevantPermissiveThreshold(t *testing.T) {
	p := params.Default()
	p.RelevanceThreshold = -1

	relevant, _, _ := NewMatcher().IsRelevant(tok("zzz"), tok("Bluetooth"), p)
	assert.True(t, relevant)

	relevant, _, _ = NewMatcher().IsRelevant(tok("zzz"), tok(""), p)
	assert.False(t, relevant, "empty tags never match")
}

func TestMatcher_Deterministic(t *testing.T) {
	p := params.Default()
	a1, s1, h1 := NewMatcher().IsRelevant(tok("scrn shot"), tok("Take screenshot"), p)
	a2, s2, h2 := NewMatcher().IsRelevant(tok("scrn shot"), tok("Take screenshot"), p)

	assert.Equal(t, a1, a2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, h1, h2)
}
