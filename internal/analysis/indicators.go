package analysis

import "github.com/b45t3rr/genai-triage/internal/model"

// TechnicalIndicators summarizes a report for downstream quality assessment.
type TechnicalIndicators struct {
	TotalFindings        int            `json:"total_findings"`
	SeverityDistribution map[string]int `json:"severity_distribution"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	HasProofOfConcept    int            `json:"has_proof_of_concept"`
	EndpointsTested      int            `json:"endpoints_tested"`
	CredentialsUsed      int            `json:"credentials_used"`
	OpenObservations     int            `json:"open_observations"`
}

// Indicators extracts the technical indicators of a security report.
func Indicators(report *model.SecurityReport) TechnicalIndicators {
	return TechnicalIndicators{
		TotalFindings:        len(report.Findings),
		SeverityDistribution: severityDistribution(report.Findings),
		CategoryDistribution: categoryDistribution(report.Findings),
		HasProofOfConcept:    countWithPoC(report.Findings),
		EndpointsTested:      len(report.TechnicalData.TestedEndpoints),
		CredentialsUsed:      len(report.TechnicalData.CredentialsUsed),
		OpenObservations:     len(report.TechnicalData.OpenObservations),
	}
}

// severityDistribution pre-populates every canonical bucket so consumers see
// explicit zeros. Unrecognized severities count as media.
func severityDistribution(findings []model.Finding) map[string]int {
	distribution := make(map[string]int, 5)
	for _, sev := range model.Severities() {
		distribution[string(sev)] = 0
	}
	for _, f := range findings {
		distribution[string(NormalizeSeverity(f.Severity))]++
	}
	return distribution
}

func categoryDistribution(findings []model.Finding) map[string]int {
	distribution := map[string]int{}
	for _, f := range findings {
		distribution[f.Category]++
	}
	return distribution
}

func countWithPoC(findings []model.Finding) int {
	count := 0
	for _, f := range findings {
		if f.ProofOfConcept != "" {
			count++
		}
	}
	return count
}
