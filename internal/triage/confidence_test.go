package triage

import (
	"math"
	"testing"

	"github.com/b45t3rr/genai-triage/internal/model"
)

func ev(typ model.EvidenceType, crit model.ImpactLevel) model.Evidence {
	return model.Evidence{Type: typ, Description: "d", Content: "c", Criticality: crit}
}

func TestConfidenceScoreNoEvidence(t *testing.T) {
	if got := ConfidenceScore(nil); got != 0.3 {
		t.Errorf("ConfidenceScore(nil) = %v, want 0.3", got)
	}
	if got := ConfidenceScore([]model.Evidence{}); got != 0.3 {
		t.Errorf("ConfidenceScore(empty) = %v, want 0.3", got)
	}
}

func TestConfidenceScorePerType(t *testing.T) {
	tests := []struct {
		typ      model.EvidenceType
		expected float64
	}{
		{model.EvidenceCode, 0.8},          // 0.5 + 0.3
		{model.EvidenceDatabase, 0.75},     // 0.5 + 0.25
		{model.EvidenceHTTPResponse, 0.7},  // 0.5 + 0.2
		{model.EvidenceFile, 0.65},         // 0.5 + 0.15
		{model.EvidenceConfiguration, 0.6}, // 0.5 + 0.1
		{model.EvidenceType("misterio"), 0.55},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got := ConfidenceScore([]model.Evidence{ev(tt.typ, model.ImpactLow)})
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ConfidenceScore(%s) = %v, want %v", tt.typ, got, tt.expected)
			}
		})
	}
}

func TestConfidenceScoreCriticalityMultiplier(t *testing.T) {
	high := ConfidenceScore([]model.Evidence{ev(model.EvidenceHTTPResponse, model.ImpactHigh)})
	if math.Abs(high-0.8) > 1e-9 { // 0.5 + 0.2*1.5
		t.Errorf("high criticality = %v, want 0.8", high)
	}
	medium := ConfidenceScore([]model.Evidence{ev(model.EvidenceHTTPResponse, model.ImpactMedium)})
	if math.Abs(medium-0.74) > 1e-9 { // 0.5 + 0.2*1.2
		t.Errorf("medium criticality = %v, want 0.74", medium)
	}
}

func TestConfidenceScoreClampedAndMonotonic(t *testing.T) {
	evidence := []model.Evidence{}
	prev := ConfidenceScore(evidence)
	for i := 0; i < 20; i++ {
		evidence = append(evidence, ev(model.EvidenceCode, model.ImpactHigh))
		got := ConfidenceScore(evidence)
		if got < 0 || got > 1 {
			t.Fatalf("confidence %v out of [0,1] at %d items", got, len(evidence))
		}
		// Saturating accumulator: non-decreasing in evidence count. The first
		// step goes from the 0.3 empty default to the 0.5 base plus weight.
		if got < prev {
			t.Fatalf("confidence decreased from %v to %v at %d items", prev, got, len(evidence))
		}
		prev = got
	}
	if prev != 1.0 {
		t.Errorf("confidence should saturate at 1.0, got %v", prev)
	}
}
