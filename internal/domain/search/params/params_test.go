package params

import "testing"

func TestDefault(t *testing.T) {
	p := Default()
	if p.RelevanceThreshold != 0.64 {
		t.Errorf("RelevanceThreshold = %v", p.RelevanceThreshold)
	}
	if p.PartialMatchPenaltyRate != 0.9 {
		t.Errorf("PartialMatchPenaltyRate = %v", p.PartialMatchPenaltyRate)
	}
	if p.UsePrefixOnly || p.UseEditDistance {
		t.Errorf("prefix-only and edit distance must be off by default: %+v", p)
	}
	if !p.UseWeightedRatio {
		t.Error("UseWeightedRatio must be on by default")
	}
	if p.MaxLatency != 0 {
		t.Errorf("MaxLatency = %v", p.MaxLatency)
	}
}
