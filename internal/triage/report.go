package triage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/b45t3rr/genai-triage/internal/model"
)

// AgentVersion is stamped into every generated triage report.
const AgentVersion = "1.0.0"

// BuildReport assembles the canonical triage report for a batch: identifier,
// distributions, batch risk, executive summary, general recommendations and
// the ordered remediation plan.
func BuildReport(sourceTitle string, vulns []model.TriagedVulnerability, config map[string]string) *model.TriageReport {
	now := time.Now()
	severityDist := SeverityDistribution(vulns)
	priorityDist := PriorityDistribution(vulns)
	riskScore := OverallRiskScore(vulns)

	if config == nil {
		config = map[string]string{}
	}
	if _, ok := config["criterios_severidad"]; !ok {
		config["criterios_severidad"] = "Basado en evidencia real e impacto"
	}
	if _, ok := config["criterios_prioridad"]; !ok {
		config["criterios_prioridad"] = "P0-P4 basado en urgencia e impacto"
	}
	config["fecha_analisis"] = now.Format(time.RFC3339)

	return &model.TriageReport{
		ID:                     fmt.Sprintf("triage_%s_%s", now.Format("20060102_150405"), uuid.NewString()[:8]),
		GeneratedAt:            now,
		SourceReport:           sourceTitle,
		Summary:                executiveSummary(vulns, severityDist, priorityDist),
		TotalVulnerabilities:   len(vulns),
		SeverityDistribution:   severityDist,
		PriorityDistribution:   priorityDist,
		Vulnerabilities:        vulns,
		GeneralRecommendations: generalRecommendations(vulns),
		RemediationPlan:        RemediationPlan(vulns),
		OverallRisk:            OverallRiskLevel(riskScore),
		RiskScore:              riskScore,
		AgentVersion:           AgentVersion,
		TriageConfig:           config,
	}
}

func executiveSummary(vulns []model.TriagedVulnerability, sev map[model.Severity]int, pri map[model.Priority]int) string {
	urgent := pri[model.PriorityP0] + pri[model.PriorityP1]
	return fmt.Sprintf(
		"Análisis de triage completado para %d vulnerabilidades identificadas. "+
			"Se encontraron %d vulnerabilidades críticas y %d de severidad alta. "+
			"%d vulnerabilidades requieren atención inmediata o urgente (P0-P1). "+
			"El análisis se basó en evidencia real y contexto del entorno para asignar severidades y prioridades precisas.",
		len(vulns), sev[model.SeverityCritical], sev[model.SeverityHigh], urgent)
}

func generalRecommendations(vulns []model.TriagedVulnerability) []string {
	recs := []string{
		"Implementar un proceso de revisión de seguridad en el ciclo de desarrollo",
		"Establecer monitoreo continuo de vulnerabilidades",
		"Capacitar al equipo de desarrollo en prácticas de codificación segura",
	}

	critical := 0
	manual := 0
	for _, v := range vulns {
		if v.TriageSeverity == model.SeverityCritical {
			critical++
		}
		if v.RequiresManualReview {
			manual++
		}
	}

	if critical > 0 {
		recs = append([]string{fmt.Sprintf("URGENTE: Abordar inmediatamente las %d vulnerabilidades críticas identificadas", critical)}, recs...)
	}
	if manual > 0 {
		recs = append(recs, fmt.Sprintf("Realizar validación manual de %d vulnerabilidades que requieren revisión adicional", manual))
	}
	return recs
}
