package agent

import (
	"fmt"
	"time"

	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/parser"
)

// ValidationStatus is the verdict of a validation agent for one reported
// vulnerability.
type ValidationStatus string

const (
	StatusVulnerable    ValidationStatus = "vulnerable"
	StatusNotVulnerable ValidationStatus = "no vulnerable"
	StatusError         ValidationStatus = "error"
)

// ValidatedVulnerability is one validation verdict. Payload and
// ServerResponse are only populated by dynamic validation.
type ValidatedVulnerability struct {
	ID             string           `json:"id"`
	Name           string           `json:"nombre"`
	Status         ValidationStatus `json:"estado"`
	Severity       string           `json:"severidad"`
	Details        string           `json:"detalles"`
	Evidence       string           `json:"evidencia"`
	Payload        string           `json:"payload_usado,omitempty"`
	ServerResponse string           `json:"respuesta_servidor,omitempty"`
}

// ValidationReport aggregates the verdicts of one validation run.
type ValidationReport struct {
	Reported        int                      `json:"vulnerabilidades_reportadas"`
	Confirmed       int                      `json:"vulnerabilidades_vulnerables"`
	Timestamp       time.Time                `json:"timestamp"`
	AnalysisType    string                   `json:"tipo_analisis"`
	Vulnerabilities []ValidatedVulnerability `json:"vulnerabilidades"`
}

func buildValidationReport(analysisType string, vulns []ValidatedVulnerability) *ValidationReport {
	confirmed := 0
	for _, v := range vulns {
		if v.Status == StatusVulnerable {
			confirmed++
		}
	}
	return &ValidationReport{
		Reported:        len(vulns),
		Confirmed:       confirmed,
		Timestamp:       time.Now(),
		AnalysisType:    analysisType,
		Vulnerabilities: vulns,
	}
}

// verdictFromResponse maps a decoded validation response onto a verdict,
// folding the model's "no_vulnerable" spelling onto the canonical status.
func verdictFromResponse(parsed, finding map[string]any, number int) ValidatedVulnerability {
	status := StatusNotVulnerable
	switch parser.StringField(parsed, "estado") {
	case "vulnerable":
		status = StatusVulnerable
	case "no_vulnerable", "no vulnerable":
		status = StatusNotVulnerable
	default:
		status = StatusError
	}

	return ValidatedVulnerability{
		ID:             orText(parser.StringField(parsed, "id"), findingID(finding, number)),
		Name:           orText(parser.StringField(parsed, "nombre"), findingName(finding, number)),
		Status:         status,
		Severity:       string(model.MapSeverity(parser.StringField(finding, "severidad", "severity"))),
		Details:        parser.StringField(finding, "descripcion", "description"),
		Evidence:       parser.StringField(parsed, "evidencia"),
		Payload:        parser.StringField(parsed, "payload_usado"),
		ServerResponse: parser.StringField(parsed, "respuesta_servidor"),
	}
}

// errorVerdict is recorded when an item's validation call or parse fails.
func errorVerdict(finding map[string]any, number int, cause error) ValidatedVulnerability {
	return ValidatedVulnerability{
		ID:       findingID(finding, number),
		Name:     findingName(finding, number),
		Status:   StatusError,
		Severity: string(model.MapSeverity(parser.StringField(finding, "severidad", "severity"))),
		Details:  parser.StringField(finding, "descripcion", "description"),
		Evidence: "Error durante la validación: " + cause.Error(),
	}
}

func findingID(finding map[string]any, number int) string {
	if id := parser.StringField(finding, "id"); id != "" {
		return id
	}
	return fmt.Sprintf("VULN-%03d", number)
}

func findingName(finding map[string]any, number int) string {
	return orText(parser.StringField(finding, "nombre", "name"), fmt.Sprintf("Vulnerabilidad %d", number))
}
