package result

// Hit is a matched rune range [Start, End) in a tag's original text.
type Hit struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the hit.
func (h Hit) Len() int { return h.End - h.Start }

// Result is a single document that matched a query.
type Result struct {
	id    string
	score float64
	hits  []Hit
}

// New creates a search result.
func New(id string, score float64, hits []Hit) Result {
	return Result{id: id, score: score, hits: hits}
}

// ID returns the document identifier.
func (r Result) ID() string { return r.id }

// Score returns the relevance score in [0, 1].
func (r Result) Score() float64 { return r.score }

// Hits returns the matched ranges of the tag that decided the score.
func (r Result) Hits() []Hit { return r.hits }
