package params

import "time"

// Default values for the matching heuristics.
const (
	DefaultRelevanceThreshold      = 0.64
	DefaultPartialMatchPenaltyRate = 0.9
)

// Params controls the fuzzy matching heuristics of an index.
// Set replaces the whole value; no field is validated or clamped, so an
// out-of-range threshold simply makes every or no tag relevant.
type Params struct {
	RelevanceThreshold      float64
	PartialMatchPenaltyRate float64
	UsePrefixOnly           bool
	UseWeightedRatio        bool
	UseEditDistance         bool
	// MaxLatency is carried for callers that set it; scans do not enforce it.
	MaxLatency time.Duration
}

// Default returns the params every new index starts with.
func Default() Params {
	return Params{
		RelevanceThreshold:      DefaultRelevanceThreshold,
		PartialMatchPenaltyRate: DefaultPartialMatchPenaltyRate,
		UsePrefixOnly:           false,
		UseWeightedRatio:        true,
		UseEditDistance:         false,
	}
}
