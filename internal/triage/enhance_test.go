package triage

import (
	"testing"

	"github.com/b45t3rr/genai-triage/internal/model"
)

func TestEnhanceOverridesModelOutput(t *testing.T) {
	// The LLM claimed informativa/P4 with wild confidence; the domain rules
	// recompute all three from the evidence and take precedence.
	v := model.TriagedVulnerability{
		Name:               "SQL Injection en /login",
		TriageSeverity:     model.SeverityInfo,
		Priority:           model.PriorityP4,
		Confidence:         0.99,
		ExploitProbability: model.ExploitHigh,
		Evidence: []model.Evidence{
			{Type: model.EvidenceCode, Criticality: model.ImpactHigh},
			{Type: model.EvidenceHTTPResponse, Criticality: model.ImpactHigh},
		},
	}

	got := Enhance(v, EnhanceInput{
		OriginalImpact:    "crítico",
		BusinessImpact:    model.ImpactHigh,
		HasProofOfConcept: true,
	})

	// Score: 4.0 impact + 3.0 exploit + 1.0 evidence + 1.0 poc = 9.0 → crítica.
	if got.SeverityScore != 9.0 {
		t.Errorf("SeverityScore = %v, want 9.0", got.SeverityScore)
	}
	if got.TriageSeverity != model.SeverityCritical {
		t.Errorf("TriageSeverity = %q, want crítica", got.TriageSeverity)
	}
	if got.Priority != model.PriorityP0 {
		t.Errorf("Priority = %q, want P0", got.Priority)
	}
	// Confidence: 0.5 + 0.3*1.5 + 0.2*1.5 = 1.25 → clamped 1.0.
	if got.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0", got.Confidence)
	}
}

func TestEnhanceFallbackRecordKeepsLowConfidence(t *testing.T) {
	v := model.TriagedVulnerability{
		Name:                 "sin análisis",
		TriageSeverity:       model.SeverityMedium,
		Priority:             model.PriorityP2,
		Confidence:           0.1,
		ExploitProbability:   model.ExploitMedium,
		RequiresManualReview: true,
	}

	got := Enhance(v, EnhanceInput{OriginalImpact: "bajo", BusinessImpact: model.ImpactMedium})

	// Zero evidence floors confidence at exactly 0.3.
	if got.Confidence != 0.3 {
		t.Errorf("Confidence = %v, want 0.3", got.Confidence)
	}
	// Score: 1.0 + 2.0 = 3.0 → baja → P3.
	if got.TriageSeverity != model.SeverityLow {
		t.Errorf("TriageSeverity = %q, want baja", got.TriageSeverity)
	}
	if got.Priority != model.PriorityP3 {
		t.Errorf("Priority = %q, want P3", got.Priority)
	}
	if !got.RequiresManualReview {
		t.Error("manual-review flag must survive enhancement")
	}
}

func TestEnhanceDoesNotTouchOtherFields(t *testing.T) {
	v := model.TriagedVulnerability{
		ID:                    "vuln-1",
		Name:                  "XSS",
		OriginalSeverity:      "alta",
		SeverityJustification: "justificación",
		Notes:                 "nota",
	}
	got := Enhance(v, EnhanceInput{BusinessImpact: model.ImpactMedium})
	if got.ID != "vuln-1" || got.Name != "XSS" || got.OriginalSeverity != "alta" ||
		got.SeverityJustification != "justificación" || got.Notes != "nota" {
		t.Errorf("enhancement must only recompute severity/priority/confidence: %+v", got)
	}
}
