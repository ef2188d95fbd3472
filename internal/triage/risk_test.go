package triage

import (
	"math"
	"testing"

	"github.com/b45t3rr/genai-triage/internal/model"
)

func vuln(sev model.Severity, pri model.Priority, conf float64) model.TriagedVulnerability {
	return model.TriagedVulnerability{
		Name:           "v",
		TriageSeverity: sev,
		Priority:       pri,
		Confidence:     conf,
	}
}

func TestOverallRiskScoreEmptyBatch(t *testing.T) {
	if got := OverallRiskScore(nil); got != 0.0 {
		t.Errorf("empty batch risk = %v, want 0.0", got)
	}
	if got := OverallRiskLevel(0.0); got != model.RiskLow {
		t.Errorf("empty batch level = %q, want bajo", got)
	}
}

func TestOverallRiskScoreSingleCritical(t *testing.T) {
	// One crítica finding at full confidence scores 10.0 and classifies crítico.
	score := OverallRiskScore([]model.TriagedVulnerability{vuln(model.SeverityCritical, model.PriorityP0, 1.0)})
	if score != 10.0 {
		t.Errorf("risk score = %v, want 10.0", score)
	}
	if got := OverallRiskLevel(score); got != model.RiskCritical {
		t.Errorf("risk level = %q, want crítico", got)
	}
}

func TestOverallRiskScoreWeightsAndConfidence(t *testing.T) {
	vulns := []model.TriagedVulnerability{
		vuln(model.SeverityCritical, model.PriorityP0, 0.5), // 5.0
		vuln(model.SeverityHigh, model.PriorityP1, 1.0),     // 7.0
		vuln(model.SeverityInfo, model.PriorityP4, 1.0),     // 0.5
	}
	got := OverallRiskScore(vulns)
	want := (5.0 + 7.0 + 0.5) / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("risk score = %v, want %v", got, want)
	}
}

func TestOverallRiskLevelBands(t *testing.T) {
	tests := []struct {
		score    float64
		expected model.RiskLevel
	}{
		{9.0, model.RiskCritical},
		{8.99, model.RiskHigh},
		{7.0, model.RiskHigh},
		{6.9, model.RiskMedium},
		{4.0, model.RiskMedium},
		{3.9, model.RiskLow},
		{0.0, model.RiskLow},
	}
	for _, tt := range tests {
		if got := OverallRiskLevel(tt.score); got != tt.expected {
			t.Errorf("OverallRiskLevel(%v) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}

func TestDistributionsSumToTotal(t *testing.T) {
	vulns := []model.TriagedVulnerability{
		vuln(model.SeverityCritical, model.PriorityP0, 1),
		vuln(model.SeverityHigh, model.PriorityP1, 1),
		vuln(model.SeverityHigh, model.PriorityP1, 1),
		vuln(model.SeverityMedium, model.PriorityP2, 1),
		vuln(model.SeverityInfo, model.PriorityP4, 1),
		// Out-of-vocabulary values must still land in a bucket.
		vuln(model.Severity("weird"), model.Priority("PX"), 1),
	}

	sev := SeverityDistribution(vulns)
	pri := PriorityDistribution(vulns)

	sumSev, sumPri := 0, 0
	for _, n := range sev {
		sumSev += n
	}
	for _, n := range pri {
		sumPri += n
	}
	if sumSev != len(vulns) {
		t.Errorf("severity distribution sums to %d, want %d", sumSev, len(vulns))
	}
	if sumPri != len(vulns) {
		t.Errorf("priority distribution sums to %d, want %d", sumPri, len(vulns))
	}

	if sev[model.SeverityHigh] != 2 {
		t.Errorf("alta count = %d, want 2", sev[model.SeverityHigh])
	}
	// Unrecognized severity defaults into media, unrecognized priority into P2.
	if sev[model.SeverityMedium] != 2 {
		t.Errorf("media count = %d, want 2", sev[model.SeverityMedium])
	}
	if pri[model.PriorityP2] != 2 {
		t.Errorf("P2 count = %d, want 2", pri[model.PriorityP2])
	}

	// All five buckets present even when empty.
	if len(sev) != 5 || len(pri) != 5 {
		t.Errorf("distributions must carry all buckets: %d severities, %d priorities", len(sev), len(pri))
	}
}
