package triage

import "github.com/b45t3rr/genai-triage/internal/model"

// Severity weights for batch risk. The informational weight is 0.5; see
// DESIGN.md for why the 1.0 variant was dropped.
var riskWeight = map[model.Severity]float64{
	model.SeverityCritical: 10.0,
	model.SeverityHigh:     7.0,
	model.SeverityMedium:   4.0,
	model.SeverityLow:      2.0,
	model.SeverityInfo:     0.5,
}

// OverallRiskScore computes the batch risk score in [0,10]: each
// vulnerability contributes its severity weight scaled by its own confidence,
// averaged over the batch. An empty batch scores 0.0.
func OverallRiskScore(vulns []model.TriagedVulnerability) float64 {
	if len(vulns) == 0 {
		return 0.0
	}

	total := 0.0
	for _, v := range vulns {
		weight, ok := riskWeight[v.TriageSeverity]
		if !ok {
			weight = 1.0
		}
		total += weight * v.Confidence
	}

	avg := total / float64(len(vulns))
	if avg > 10.0 {
		avg = 10.0
	}
	return avg
}

// OverallRiskLevel classifies a batch risk score. The bands are coarser than
// per-item severity thresholds: there is no batch "informational" level.
func OverallRiskLevel(score float64) model.RiskLevel {
	switch {
	case score >= 9.0:
		return model.RiskCritical
	case score >= 7.0:
		return model.RiskHigh
	case score >= 4.0:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// SeverityDistribution counts vulnerabilities per canonical severity. Every
// bucket is present in the result, so the counts always sum to len(vulns).
func SeverityDistribution(vulns []model.TriagedVulnerability) map[model.Severity]int {
	dist := make(map[model.Severity]int, 5)
	for _, s := range model.Severities() {
		dist[s] = 0
	}
	for _, v := range vulns {
		dist[model.MapSeverity(string(v.TriageSeverity))]++
	}
	return dist
}

// PriorityDistribution counts vulnerabilities per remediation tier.
func PriorityDistribution(vulns []model.TriagedVulnerability) map[model.Priority]int {
	dist := make(map[model.Priority]int, 5)
	for _, p := range model.Priorities() {
		dist[p] = 0
	}
	for _, v := range vulns {
		dist[model.MapPriority(string(v.Priority))]++
	}
	return dist
}
