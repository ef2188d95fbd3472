package analysis

import (
	"strings"

	"github.com/b45t3rr/genai-triage/internal/model"
)

// CoverageScore rates how thoroughly a report covers the tested surface, in
// [0,10]. Each component saturates independently so no single dimension can
// dominate the score.
func CoverageScore(report *model.SecurityReport) float64 {
	score := 0.0

	score += capped(float64(len(report.Findings))*0.5, 3.0)
	score += capped(float64(len(categoryDistribution(report.Findings)))*0.4, 2.0)
	score += capped(float64(len(report.TechnicalData.TestedEndpoints))*0.2, 2.0)
	score += capped(float64(countWithPoC(report.Findings))*0.5, 2.0)
	score += capped(float64(len(report.Recommendations))*0.2, 1.0)

	return capped(score, 10.0)
}

func capped(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

// SuggestAdditionalTests proposes follow-up tests based on the categories
// already found. Sparse reports additionally get general-purpose hints.
func SuggestAdditionalTests(report *model.SecurityReport) []string {
	categories := map[string]bool{}
	for _, f := range report.Findings {
		categories[strings.ToLower(f.Category)] = true
	}

	var suggestions []string

	if categories["sql injection"] {
		suggestions = append(suggestions,
			"Realizar pruebas de blind SQL injection",
			"Verificar protecciones contra NoSQL injection")
	}
	if categories["xss"] {
		suggestions = append(suggestions,
			"Probar XSS en diferentes contextos (atributos, JavaScript)",
			"Verificar Content Security Policy (CSP)")
	}
	if categories["authentication"] {
		suggestions = append(suggestions,
			"Probar ataques de fuerza bruta",
			"Verificar políticas de contraseñas",
			"Probar bypass de autenticación")
	}
	if categories["authorization"] {
		suggestions = append(suggestions,
			"Probar escalación de privilegios",
			"Verificar controles de acceso horizontal")
	}

	if len(report.Findings) < 3 {
		suggestions = append(suggestions,
			"Realizar análisis de código estático",
			"Probar configuraciones de seguridad del servidor",
			"Verificar manejo de errores y información sensible")
	}

	return suggestions
}
