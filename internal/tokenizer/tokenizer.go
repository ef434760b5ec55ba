// Package tokenizer splits tags and queries into lowercased word tokens that
// remember where they came from in the original text.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	bleveunicode "github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

// segmenter performs UAX #29 word segmentation. It holds no state.
var segmenter analysis.Tokenizer = bleveunicode.NewUnicodeTokenizer()

// Token is a lowercased term and its rune range [Start, End) in the original text.
type Token struct {
	Term  string
	Start int
	End   int
}

// Text is the tokenized form of a tag or query (immutable).
type Text struct {
	text   string
	runes  int
	tokens []Token
}

// Text returns the original, untouched input.
func (t Text) Text() string { return t.text }

// Len returns the rune length of the original input.
func (t Text) Len() int { return t.runes }

// Tokens returns the tokens in text order.
func (t Text) Tokens() []Token { return t.tokens }

// Terms returns the token terms in text order.
func (t Text) Terms() []string {
	terms := make([]string, len(t.tokens))
	for i, tok := range t.tokens {
		terms[i] = tok.Term
	}
	return terms
}

// IsEmpty reports whether the input produced no tokens.
func (t Text) IsEmpty() bool { return len(t.tokens) == 0 }

// Tokenize segments text into words, then splits every word further on
// camelCase, acronym and letter/digit boundaries and on inner punctuation
// ("Wi-Fi" -> wi, fi; "ClashOfTitan" -> clash, of, titan; "wifi6" -> wifi, 6).
func Tokenize(text string) Text {
	out := Text{text: text, runes: utf8.RuneCountInString(text)}
	if text == "" {
		return out
	}

	runeAt := byteToRuneOffsets(text)
	for _, seg := range segmenter.Tokenize([]byte(text)) {
		word := []rune(text[seg.Start:seg.End])
		base := runeAt[seg.Start]
		for _, span := range splitWord(word) {
			out.tokens = append(out.tokens, Token{
				Term:  strings.ToLower(string(word[span[0]:span[1]])),
				Start: base + span[0],
				End:   base + span[1],
			})
		}
	}
	return out
}

// byteToRuneOffsets maps every byte offset of s (and len(s)) to a rune offset.
func byteToRuneOffsets(s string) []int {
	offsets := make([]int, len(s)+1)
	for i := range offsets {
		offsets[i] = -1
	}
	r := 0
	for i := range s {
		offsets[i] = r
		r++
	}
	offsets[len(s)] = r
	for i := 1; i < len(s); i++ {
		if offsets[i] < 0 {
			offsets[i] = offsets[i-1]
		}
	}
	return offsets
}

type class int

const (
	classOther class = iota
	classLower
	classUpper
	classDigit
)

func classify(r rune) class {
	switch {
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsUpper(r):
		return classUpper
	case unicode.IsLetter(r):
		return classLower
	default:
		return classOther
	}
}

// splitWord returns [start, end) rune spans of the terms inside one word.
func splitWord(word []rune) [][2]int {
	var spans [][2]int
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			spans = append(spans, [2]int{start, end})
		}
		start = -1
	}

	for i, r := range word {
		if unicode.IsMark(r) && start >= 0 {
			continue
		}
		c := classify(r)
		if c == classOther {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if isBoundary(word, i) {
			flush(i)
			start = i
		}
	}
	flush(len(word))
	return spans
}

// isBoundary reports whether a new term starts at word[i]; word[i-1] belongs to the current term.
func isBoundary(word []rune, i int) bool {
	prev, cur := classify(word[i-1]), classify(word[i])
	if prev == classOther {
		// a combining mark continues the term it follows
		return false
	}
	switch {
	case (prev == classDigit) != (cur == classDigit):
		return true
	case prev == classLower && cur == classUpper:
		return true
	case prev == classUpper && cur == classUpper:
		// "HTTPServer": the last capital before a lowercase letter starts a new term
		return i+1 < len(word) && classify(word[i+1]) == classLower
	}
	return false
}
