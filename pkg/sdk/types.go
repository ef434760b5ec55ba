package localsearch

import "time"

// Backend selects the search strategy of an index.
type Backend string

// Backend constants.
const (
	BackendLinearMap     Backend = "linear_map"
	BackendInvertedIndex Backend = "inverted_index" // reserved, not implemented
)

// Status is the outcome of a Find call.
type Status string

// Status constants. Only StatusSuccess counts as a performed search.
const (
	StatusSuccess    Status = "success"
	StatusEmptyQuery Status = "empty_query"
	StatusEmptyIndex Status = "empty_index"
)

// Document is an ID with its searchable tags.
type Document struct {
	ID   string
	Tags []string
}

// Hit is a matched range [Start, End) of a tag, in characters.
type Hit struct {
	Start int
	End   int
}

// Result is a single matched document.
type Result struct {
	ID    string
	Score float64
	Hits  []Hit
}

// BatchResult is the outcome of one item in a batch operation.
type BatchResult struct {
	ID  string
	OK  bool
	Err error
}

// Params tunes relevance scoring.
type Params struct {
	RelevanceThreshold      float64
	PartialMatchPenaltyRate float64
	UsePrefixOnly           bool
	UseWeightedRatio        bool
	UseEditDistance         bool
	// MaxLatency is stored but not enforced.
	MaxLatency time.Duration
}
