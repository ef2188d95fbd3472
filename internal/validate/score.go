package validate

import (
	"fmt"

	"github.com/b45t3rr/genai-triage/internal/model"
)

// Score rates the overall quality of a security report in [0,10]. Invalid
// reports lose half a point per violation (penalty capped at 8); valid
// reports start at 8.0 and earn up to four half-point completeness bonuses.
func Score(report *model.SecurityReport) float64 {
	valid, errs := SecurityReport(report)

	if !valid {
		penalty := float64(len(errs)) * 0.5
		if penalty > 8.0 {
			penalty = 8.0
		}
		score := 10.0 - penalty
		if score < 0 {
			score = 0.0
		}
		return score
	}

	score := 8.0
	if len(report.Findings) >= 5 {
		score += 0.5
	}
	if len(report.Recommendations) >= len(report.Findings) {
		score += 0.5
	}
	if withPoC(report.Findings)*2 >= len(report.Findings) {
		score += 0.5
	}
	if categoryCount(report.Findings) >= 3 {
		score += 0.5
	}
	if score > 10.0 {
		score = 10.0
	}
	return score
}

// SuggestImprovements emits rule-based hints for raising report quality.
// These are suggestions, not validation errors.
func SuggestImprovements(report *model.SecurityReport) []string {
	suggestions := []string{}

	if len(report.Findings) < 3 {
		suggestions = append(suggestions, "Considerar realizar pruebas adicionales para identificar más vulnerabilidades")
	}
	if float64(withPoC(report.Findings)) < float64(len(report.Findings))*0.7 {
		suggestions = append(suggestions, "Agregar más evidencia técnica (proof of concept) a los hallazgos")
	}
	if len(report.Recommendations) < len(report.Findings) {
		suggestions = append(suggestions, "Agregar recomendaciones específicas para cada hallazgo identificado")
	}
	if categoryCount(report.Findings) < 3 {
		suggestions = append(suggestions, "Ampliar el alcance de las pruebas para cubrir más categorías de vulnerabilidades")
	}

	critical := 0
	for _, f := range report.Findings {
		if model.MapSeverity(f.Severity) == model.SeverityCritical {
			critical++
		}
	}
	if critical == 0 {
		suggestions = append(suggestions, "Verificar si existen vulnerabilidades críticas que puedan haberse pasado por alto")
	}

	return suggestions
}

// TriageScore rates a triage report in [0,10] with the same penalty scheme
// as Score.
func TriageScore(report *model.TriageReport) float64 {
	valid, errs := TriageReport(report)
	if !valid {
		penalty := float64(len(errs)) * 0.5
		if penalty > 8.0 {
			penalty = 8.0
		}
		score := 10.0 - penalty
		if score < 0 {
			score = 0.0
		}
		return score
	}

	score := 8.0
	if len(report.Vulnerabilities) > 0 {
		withEvidence := 0
		for _, v := range report.Vulnerabilities {
			if len(v.Evidence) > 0 {
				withEvidence++
			}
		}
		if withEvidence == len(report.Vulnerabilities) {
			score += 1.0
		}
		if len(report.RemediationPlan) == len(report.Vulnerabilities) {
			score += 1.0
		}
	}
	if score > 10.0 {
		score = 10.0
	}
	return score
}

func withPoC(findings []model.Finding) int {
	count := 0
	for _, f := range findings {
		if f.ProofOfConcept != "" {
			count++
		}
	}
	return count
}

func categoryCount(findings []model.Finding) int {
	seen := map[string]bool{}
	for _, f := range findings {
		if f.Category != "" {
			seen[f.Category] = true
		}
	}
	return len(seen)
}

// Describe formats a validation verdict for log lines.
func Describe(valid bool, errs []string) string {
	if valid {
		return "reporte válido"
	}
	return fmt.Sprintf("reporte inválido (%d errores)", len(errs))
}
