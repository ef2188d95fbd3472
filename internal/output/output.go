package output

import (
	"fmt"
	"io"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/pipeline"
)

// Formatter renders each result kind the CLI commands produce.
type Formatter interface {
	FormatPDFAnalysis(analysis *pipeline.PDFAnalysis, w io.Writer) error
	FormatTriage(report *model.TriageReport, w io.Writer) error
	FormatAnalysis(result *pipeline.ConsolidatedResult, w io.Writer) error
	FormatValidation(report *agent.ValidationReport, w io.Writer) error
}

func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "human":
		return &HumanFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ShouldFail reports whether the triage batch contains a vulnerability at
// one of the given severities.
func ShouldFail(report *model.TriageReport, failOnSeverities []string) bool {
	severitySet := make(map[model.Severity]bool, len(failOnSeverities))
	for _, sev := range failOnSeverities {
		severitySet[model.MapSeverity(sev)] = true
	}

	for _, vuln := range report.Vulnerabilities {
		if severitySet[vuln.TriageSeverity] {
			return true
		}
	}
	return false
}

// ShouldFailValidation reports whether a validation run confirmed a
// vulnerability at one of the given severities. An empty severity list fails
// on any confirmed vulnerability.
func ShouldFailValidation(report *agent.ValidationReport, failOnSeverities []string) bool {
	if len(failOnSeverities) == 0 {
		return report.Confirmed > 0
	}
	severitySet := make(map[model.Severity]bool, len(failOnSeverities))
	for _, sev := range failOnSeverities {
		severitySet[model.MapSeverity(sev)] = true
	}

	for _, vuln := range report.Vulnerabilities {
		if vuln.Status == agent.StatusVulnerable && severitySet[model.MapSeverity(vuln.Severity)] {
			return true
		}
	}
	return false
}
