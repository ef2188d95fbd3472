package validate

import (
	"fmt"
	"strings"

	"github.com/b45t3rr/genai-triage/internal/model"
)

// TriageReport validates a triage report: per-vulnerability invariants,
// summary consistency (distribution sums must equal the total, exactly) and
// score ranges.
func TriageReport(report *model.TriageReport) (bool, []string) {
	var errs []string
	errs = append(errs, triagedVulnerabilityErrors(report.Vulnerabilities)...)
	errs = append(errs, summaryErrors(report)...)
	errs = append(errs, triageConsistencyErrors(report)...)
	return len(errs) == 0, errs
}

func triagedVulnerabilityErrors(vulns []model.TriagedVulnerability) []string {
	if len(vulns) == 0 {
		return []string{"El reporte de triage debe contener al menos una vulnerabilidad"}
	}

	canonicalSeverity := make(map[model.Severity]bool, 5)
	for _, s := range model.Severities() {
		canonicalSeverity[s] = true
	}
	canonicalPriority := make(map[model.Priority]bool, 5)
	for _, p := range model.Priorities() {
		canonicalPriority[p] = true
	}

	var errs []string
	for i, v := range vulns {
		n := i + 1

		if strings.TrimSpace(v.Name) == "" {
			errs = append(errs, fmt.Sprintf("Vulnerabilidad %d: El nombre es obligatorio", n))
		}
		if !canonicalSeverity[v.TriageSeverity] {
			errs = append(errs, fmt.Sprintf("Vulnerabilidad %d: Severidad de triage '%s' fuera del vocabulario canónico", n, v.TriageSeverity))
		}
		if !canonicalPriority[v.Priority] {
			errs = append(errs, fmt.Sprintf("Vulnerabilidad %d: Prioridad '%s' fuera del vocabulario canónico", n, v.Priority))
		}
		if v.Confidence < 0 || v.Confidence > 1 {
			errs = append(errs, fmt.Sprintf("Vulnerabilidad %d: El score de confianza debe estar entre 0 y 1", n))
		}
		if v.SeverityScore < 0 || v.SeverityScore > 10 {
			errs = append(errs, fmt.Sprintf("Vulnerabilidad %d: El score de severidad debe estar entre 0 y 10", n))
		}
		if len(v.Recommendations) == 0 {
			errs = append(errs, fmt.Sprintf("Vulnerabilidad %d: Debe tener al menos una recomendación", n))
		}
		for j, ev := range v.Evidence {
			if strings.TrimSpace(ev.Description) == "" {
				errs = append(errs, fmt.Sprintf("Vulnerabilidad %d, Evidencia %d: La descripción es obligatoria", n, j+1))
			}
		}
	}
	return errs
}

func summaryErrors(report *model.TriageReport) []string {
	var errs []string

	sevSum := 0
	for sev, count := range report.SeverityDistribution {
		if count < 0 {
			errs = append(errs, fmt.Sprintf("El conteo de vulnerabilidades '%s' no puede ser negativo", sev))
		}
		sevSum += count
	}
	if sevSum != report.TotalVulnerabilities {
		errs = append(errs, fmt.Sprintf("Inconsistencia en conteos: total (%d) != suma de severidades (%d)", report.TotalVulnerabilities, sevSum))
	}

	priSum := 0
	for pri, count := range report.PriorityDistribution {
		if count < 0 {
			errs = append(errs, fmt.Sprintf("El conteo de prioridad '%s' no puede ser negativo", pri))
		}
		priSum += count
	}
	if priSum != report.TotalVulnerabilities {
		errs = append(errs, fmt.Sprintf("Inconsistencia en conteos: total (%d) != suma de prioridades (%d)", report.TotalVulnerabilities, priSum))
	}

	if report.RiskScore < 0 || report.RiskScore > 10 {
		errs = append(errs, "El score de riesgo debe estar entre 0 y 10")
	}

	return errs
}

// triageConsistencyErrors cross-checks the declared distribution against the
// vulnerabilities actually present.
func triageConsistencyErrors(report *model.TriageReport) []string {
	actual := make(map[model.Severity]int, 5)
	for _, v := range report.Vulnerabilities {
		actual[model.MapSeverity(string(v.TriageSeverity))]++
	}

	var errs []string
	for _, sev := range model.Severities() {
		declared := report.SeverityDistribution[sev]
		if declared != actual[sev] {
			errs = append(errs, fmt.Sprintf("Conteo de vulnerabilidades '%s' inconsistente: esperado %d, actual %d", sev, declared, actual[sev]))
		}
	}
	return errs
}
