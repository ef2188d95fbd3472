package pipeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/b45t3rr/genai-triage/internal/model"
)

// ExecutiveSummary is the decision-maker view of a consolidated analysis.
type ExecutiveSummary struct {
	File                    string          `json:"archivo_analizado"`
	AnalyzedAt              time.Time       `json:"fecha_analisis"`
	TotalVulnerabilities    int             `json:"total_vulnerabilidades"`
	CriticalVulnerabilities int             `json:"vulnerabilidades_criticas"`
	HighVulnerabilities     int             `json:"vulnerabilidades_altas"`
	OverallRisk             model.RiskLevel `json:"riesgo_general"`
	RiskScore               float64         `json:"score_riesgo"`
	OverallQuality          float64         `json:"calidad_general"`
	Summary                 string          `json:"resumen"`
}

// QualityAssessment aggregates the quality signals of both phases.
type QualityAssessment struct {
	OverallQuality     float64  `json:"calidad_general"`
	PDFValidationScore float64  `json:"score_validacion_pdf"`
	CoverageScore      float64  `json:"score_cobertura"`
	AverageConfidence  float64  `json:"confianza_promedio"`
	IsValid            bool     `json:"reporte_valido"`
	ValidationErrors   []string `json:"errores_validacion"`
}

// RiskAssessment summarizes the triage batch risk.
type RiskAssessment struct {
	OverallRisk          model.RiskLevel        `json:"riesgo_general"`
	RiskScore            float64                `json:"score_riesgo"`
	SeverityDistribution map[model.Severity]int `json:"distribucion_severidad"`
	PriorityDistribution map[model.Priority]int `json:"distribucion_prioridad"`
}

// PriorityItem is one entry of the top-priorities list.
type PriorityItem struct {
	Rank       int            `json:"orden"`
	ID         string         `json:"id_vulnerabilidad"`
	Name       string         `json:"nombre"`
	Severity   model.Severity `json:"severidad"`
	Priority   model.Priority `json:"prioridad"`
	Confidence float64        `json:"confianza"`
}

// ConsolidatedRecommendations groups the actionable output.
type ConsolidatedRecommendations struct {
	TopPriorities          []PriorityItem `json:"principales_prioridades"`
	NextSteps              []string       `json:"proximos_pasos"`
	GeneralRecommendations []string       `json:"recomendaciones_generales"`
}

// RunMetadata records provenance of a consolidated run.
type RunMetadata struct {
	Provider          string    `json:"proveedor"`
	Model             string    `json:"modelo"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingSeconds float64   `json:"tiempo_procesamiento_segundos"`
	Version           string    `json:"version"`
}

// DetailedAnalysis keeps the full per-phase results for auditing.
type DetailedAnalysis struct {
	PDF    *PDFAnalysis        `json:"analisis_pdf"`
	Triage *model.TriageReport `json:"analisis_triage"`
}

// ConsolidatedResult is the complete outcome of the analyze use case.
type ConsolidatedResult struct {
	ExecutiveSummary ExecutiveSummary             `json:"resumen_ejecutivo"`
	DetailedAnalysis DetailedAnalysis             `json:"analisis_detallado"`
	Quality          QualityAssessment            `json:"evaluacion_calidad"`
	Risk             RiskAssessment               `json:"evaluacion_riesgo"`
	Recommendations  *ConsolidatedRecommendations `json:"recomendaciones,omitempty"`
	Metadata         RunMetadata                  `json:"metadata"`
}

// maxTopPriorities caps the priority list in the consolidated output.
const maxTopPriorities = 5

// Consolidate merges a PDF analysis and its triage report into one result.
// Overall quality weighs document validation at 0.4 and coverage and triage
// confidence at 0.3 each, all on a 0-10 scale.
func Consolidate(pdfAnalysis *PDFAnalysis, triageReport *model.TriageReport, meta RunMetadata) *ConsolidatedResult {
	avgConfidence := averageConfidence(triageReport.Vulnerabilities)
	overallQuality := round2(0.4*pdfAnalysis.Quality.ValidationScore +
		0.3*pdfAnalysis.Quality.CoverageScore +
		0.3*(avgConfidence*10))

	critical := triageReport.SeverityDistribution[model.SeverityCritical]
	high := triageReport.SeverityDistribution[model.SeverityHigh]

	return &ConsolidatedResult{
		ExecutiveSummary: ExecutiveSummary{
			File:                    pdfAnalysis.File,
			AnalyzedAt:              meta.Timestamp,
			TotalVulnerabilities:    triageReport.TotalVulnerabilities,
			CriticalVulnerabilities: critical,
			HighVulnerabilities:     high,
			OverallRisk:             triageReport.OverallRisk,
			RiskScore:               triageReport.RiskScore,
			OverallQuality:          overallQuality,
			Summary:                 triageReport.Summary,
		},
		DetailedAnalysis: DetailedAnalysis{PDF: pdfAnalysis, Triage: triageReport},
		Quality: QualityAssessment{
			OverallQuality:     overallQuality,
			PDFValidationScore: pdfAnalysis.Quality.ValidationScore,
			CoverageScore:      pdfAnalysis.Quality.CoverageScore,
			AverageConfidence:  round2(avgConfidence),
			IsValid:            pdfAnalysis.Quality.IsValid,
			ValidationErrors:   pdfAnalysis.Quality.ValidationErrors,
		},
		Risk: RiskAssessment{
			OverallRisk:          triageReport.OverallRisk,
			RiskScore:            triageReport.RiskScore,
			SeverityDistribution: triageReport.SeverityDistribution,
			PriorityDistribution: triageReport.PriorityDistribution,
		},
		Recommendations: &ConsolidatedRecommendations{
			TopPriorities:          topPriorities(triageReport.Vulnerabilities),
			NextSteps:              nextSteps(pdfAnalysis, triageReport, avgConfidence),
			GeneralRecommendations: triageReport.GeneralRecommendations,
		},
		Metadata: meta,
	}
}

func averageConfidence(vulns []model.TriagedVulnerability) float64 {
	if len(vulns) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range vulns {
		total += v.Confidence
	}
	return total / float64(len(vulns))
}

var severityRank = map[model.Severity]int{
	model.SeverityCritical: 5,
	model.SeverityHigh:     4,
	model.SeverityMedium:   3,
	model.SeverityLow:      2,
	model.SeverityInfo:     1,
}

// topPriorities orders vulnerabilities by severity, then confidence, and
// keeps the first five.
func topPriorities(vulns []model.TriagedVulnerability) []PriorityItem {
	sorted := make([]model.TriagedVulnerability, len(vulns))
	copy(sorted, vulns)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := severityRank[sorted[i].TriageSeverity], severityRank[sorted[j].TriageSeverity]
		if ri != rj {
			return ri > rj
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})

	if len(sorted) > maxTopPriorities {
		sorted = sorted[:maxTopPriorities]
	}
	items := make([]PriorityItem, 0, len(sorted))
	for i, v := range sorted {
		items = append(items, PriorityItem{
			Rank:       i + 1,
			ID:         v.ID,
			Name:       v.Name,
			Severity:   v.TriageSeverity,
			Priority:   v.Priority,
			Confidence: v.Confidence,
		})
	}
	return items
}

func nextSteps(pdfAnalysis *PDFAnalysis, triageReport *model.TriageReport, avgConfidence float64) []string {
	steps := []string{}
	if !pdfAnalysis.Quality.IsValid {
		steps = append(steps, "Revisar y corregir errores en el reporte original")
	}
	if pdfAnalysis.Quality.CoverageScore < 7 {
		steps = append(steps, "Ampliar el alcance de las pruebas de seguridad")
	}
	if critical := triageReport.SeverityDistribution[model.SeverityCritical]; critical > 0 {
		steps = append(steps, fmt.Sprintf("Remediar inmediatamente %d vulnerabilidades críticas", critical))
	}
	if avgConfidence < 0.7 {
		steps = append(steps, "Realizar validación adicional de vulnerabilidades con baja confianza")
	}
	if suggested := len(pdfAnalysis.Quality.SuggestedTests); suggested > 0 {
		steps = append(steps, fmt.Sprintf("Considerar %d tipos de pruebas adicionales identificadas", suggested))
	}
	return steps
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
