package localsearch

import (
	dombatch "github.com/kailas-cloud/localsearch/internal/domain/batch"
	domdoc "github.com/kailas-cloud/localsearch/internal/domain/document"
	"github.com/kailas-cloud/localsearch/internal/domain/search/params"
	"github.com/kailas-cloud/localsearch/internal/domain/search/result"
)

// DefaultParams returns the built-in scoring params.
func DefaultParams() Params {
	return fromInternalParams(params.Default())
}

// toInternalDocuments keeps invalid IDs so the engine reports them per item.
func toInternalDocuments(docs []Document) []domdoc.Document {
	out := make([]domdoc.Document, len(docs))
	for i, d := range docs {
		out[i] = domdoc.Reconstruct(d.ID, d.Tags)
	}
	return out
}

func fromBatchResults(rs []dombatch.Result) []BatchResult {
	out := make([]BatchResult, len(rs))
	for i, r := range rs {
		out[i] = BatchResult{
			ID:  r.ID(),
			OK:  r.Status() == dombatch.StatusOK,
			Err: r.Err(),
		}
	}
	return out
}

func fromResults(rs []result.Result) []Result {
	if rs == nil {
		return nil
	}
	out := make([]Result, len(rs))
	for i, r := range rs {
		hits := make([]Hit, len(r.Hits()))
		for j, h := range r.Hits() {
			hits[j] = Hit{Start: h.Start, End: h.End}
		}
		out[i] = Result{ID: r.ID(), Score: r.Score(), Hits: hits}
	}
	return out
}

func toInternalParams(p Params) params.Params {
	return params.Params{
		RelevanceThreshold:      p.RelevanceThreshold,
		PartialMatchPenaltyRate: p.PartialMatchPenaltyRate,
		UsePrefixOnly:           p.UsePrefixOnly,
		UseWeightedRatio:        p.UseWeightedRatio,
		UseEditDistance:         p.UseEditDistance,
		MaxLatency:              p.MaxLatency,
	}
}

func fromInternalParams(p params.Params) Params {
	return Params{
		RelevanceThreshold:      p.RelevanceThreshold,
		PartialMatchPenaltyRate: p.PartialMatchPenaltyRate,
		UsePrefixOnly:           p.UsePrefixOnly,
		UseWeightedRatio:        p.UseWeightedRatio,
		UseEditDistance:         p.UseEditDistance,
		MaxLatency:              p.MaxLatency,
	}
}
