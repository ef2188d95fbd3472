// Package validate checks structural and consistency invariants of security
// and triage reports. Violations are collected as human-readable messages,
// never raised: the caller decides whether an invalid report is fatal.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/b45t3rr/genai-triage/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern   = regexp.MustCompile(`^https?://[\w.-]+(?:\.[\w.-]+)+[\w\-._~:/?#\[\]@!$&'()*+,;=.]*$`)
	ipPattern    = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
)

// dateLayouts covers the formats extraction typically produces for the
// document date. Unparseable dates only fail the presence check.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
}

// SecurityReport validates a document-level report. It returns whether the
// report is valid along with every violation found.
func SecurityReport(report *model.SecurityReport) (bool, []string) {
	var errs []string
	errs = append(errs, documentErrors(report.Document)...)
	errs = append(errs, findingErrors(report.Findings)...)
	errs = append(errs, recommendationErrors(report.Recommendations)...)
	errs = append(errs, technicalDataErrors(report.TechnicalData)...)
	errs = append(errs, consistencyErrors(report)...)
	return len(errs) == 0, errs
}

func documentErrors(doc model.DocumentMetadata) []string {
	var errs []string

	title := strings.TrimSpace(doc.Title)
	switch {
	case title == "":
		errs = append(errs, "El título del documento es obligatorio")
	case len([]rune(title)) < 5:
		errs = append(errs, "El título del documento debe tener al menos 5 caracteres")
	}

	if strings.TrimSpace(doc.Author) == "" {
		errs = append(errs, "El autor del documento es obligatorio")
	} else if strings.Contains(doc.Author, "@") && !emailPattern.MatchString(doc.Author) {
		errs = append(errs, "El formato del email del autor no es válido")
	}

	if strings.TrimSpace(doc.Date) == "" {
		errs = append(errs, "La fecha de creación es obligatoria")
	} else if when, ok := parseDate(doc.Date); ok && when.After(time.Now()) {
		errs = append(errs, "La fecha de creación no puede ser futura")
	}

	return errs
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if when, err := time.Parse(layout, raw); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}

func findingErrors(findings []model.Finding) []string {
	if len(findings) == 0 {
		return []string{"El reporte debe contener al menos un hallazgo"}
	}

	validSeverities := make(map[string]bool, 5)
	for _, s := range model.Severities() {
		validSeverities[string(s)] = true
	}

	var errs []string
	for i, f := range findings {
		n := i + 1

		name := strings.TrimSpace(f.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Sprintf("Hallazgo %d: El nombre es obligatorio", n))
		case len([]rune(name)) < 3:
			errs = append(errs, fmt.Sprintf("Hallazgo %d: El nombre debe tener al menos 3 caracteres", n))
		}

		desc := strings.TrimSpace(f.Description)
		switch {
		case desc == "":
			errs = append(errs, fmt.Sprintf("Hallazgo %d: La descripción es obligatoria", n))
		case len([]rune(desc)) < 20:
			errs = append(errs, fmt.Sprintf("Hallazgo %d: La descripción debe tener al menos 20 caracteres", n))
		}

		if strings.TrimSpace(f.Category) == "" {
			errs = append(errs, fmt.Sprintf("Hallazgo %d: La categoría es obligatoria", n))
		}

		if !validSeverities[strings.ToLower(strings.TrimSpace(f.Severity))] {
			errs = append(errs, fmt.Sprintf("Hallazgo %d: Severidad '%s' no es válida. Debe ser una de: crítica, alta, media, baja, informativa", n, f.Severity))
		}

		if strings.TrimSpace(f.Impact) == "" {
			errs = append(errs, fmt.Sprintf("Hallazgo %d: El impacto es obligatorio", n))
		}
	}
	return errs
}

func recommendationErrors(recs []model.Recommendation) []string {
	if len(recs) == 0 {
		return []string{"El reporte debe contener al menos una recomendación"}
	}

	var errs []string
	for i, rec := range recs {
		desc := strings.TrimSpace(rec.Description)
		switch {
		case desc == "":
			errs = append(errs, fmt.Sprintf("Recomendación %d: No puede estar vacía", i+1))
		case len([]rune(desc)) < 10:
			errs = append(errs, fmt.Sprintf("Recomendación %d: Debe tener al menos 10 caracteres", i+1))
		}
	}
	return errs
}

func technicalDataErrors(data model.TechnicalData) []string {
	var errs []string

	if len(data.TestedEndpoints) == 0 {
		errs = append(errs, "Debe especificar al menos un endpoint de prueba")
	} else {
		for i, endpoint := range data.TestedEndpoints {
			trimmed := strings.TrimSpace(endpoint)
			if trimmed == "" {
				errs = append(errs, fmt.Sprintf("Endpoint %d: No puede estar vacío", i+1))
				continue
			}
			host := strings.SplitN(trimmed, ":", 2)[0]
			if !urlPattern.MatchString(trimmed) && !ipPattern.MatchString(host) {
				errs = append(errs, fmt.Sprintf("Endpoint %d: '%s' no tiene un formato válido de URL o IP", i+1, endpoint))
			}
		}
	}

	if len(data.ToolsUsed) == 0 {
		errs = append(errs, "Debe especificar al menos una herramienta utilizada")
	}

	return errs
}

func consistencyErrors(report *model.SecurityReport) []string {
	var errs []string

	findings := len(report.Findings)
	recs := len(report.Recommendations)

	if float64(recs) < float64(findings)*0.5 {
		errs = append(errs, fmt.Sprintf("Pocas recomendaciones (%d) para la cantidad de hallazgos (%d)", recs, findings))
	}

	critical := 0
	for _, f := range report.Findings {
		if model.MapSeverity(f.Severity) == model.SeverityCritical {
			critical++
		}
	}
	if critical > 0 && recs < critical {
		errs = append(errs, "Los hallazgos críticos requieren recomendaciones específicas")
	}

	return errs
}
