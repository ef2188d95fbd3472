package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/pipeline"
)

// HumanFormatter renders results for terminal reading.
type HumanFormatter struct{}

func (f *HumanFormatter) FormatPDFAnalysis(analysis *pipeline.PDFAnalysis, w io.Writer) error {
	s := GetStyles()
	width := TerminalWidth()

	banner(w, s, width, "ANÁLISIS DE DOCUMENTO")
	fmt.Fprintf(w, "Archivo:     %s\n", analysis.File)
	if analysis.Document != nil && analysis.Document.PageCount > 0 {
		fmt.Fprintf(w, "Páginas:     %d\n", analysis.Document.PageCount)
	}
	fmt.Fprintf(w, "Hallazgos:   %d\n", len(analysis.Report.Findings))
	fmt.Fprintf(w, "\n")

	renderQualityBox(w, s, analysis.Quality)
	fmt.Fprintf(w, "\n")

	if analysis.Report.ExecutiveSummary != "" {
		fmt.Fprintf(w, "%s\n", s.SectionTitle.Render("Resumen ejecutivo"))
		fmt.Fprintf(w, "%s\n\n", wrap(analysis.Report.ExecutiveSummary, DefaultWrapWidth))
	}

	if len(analysis.Report.Findings) > 0 {
		section(w, s, width, "HALLAZGOS")
		for i, finding := range analysis.Report.Findings {
			if i > 0 {
				rule(w, s, width)
			}
			severity := model.MapSeverity(finding.Severity)
			fmt.Fprintf(w, "%s %s  %s\n",
				s.GetSeverityText(severity).Render(SeverityDot),
				s.GetSeverityBadge(severity).Render(strings.ToUpper(finding.Severity)),
				s.FindingHeader.Render(finding.Name))
			if finding.Category != "" {
				fmt.Fprintf(w, "Categoría:   %s\n", finding.Category)
			}
			if finding.Description != "" {
				fmt.Fprintf(w, "%s\n", wrap(finding.Description, DefaultWrapWidth))
			}
			if finding.ProofOfConcept != "" {
				fmt.Fprintf(w, "\n%s\n", s.SubsectionTitle.Render("PoC"))
				renderSnippet(w, s, finding.ProofOfConcept)
			}
			fmt.Fprintf(w, "\n")
		}
	}

	if len(analysis.Quality.ValidationErrors) > 0 {
		fmt.Fprintf(w, "%s\n", s.WarningText.Render("Problemas de validación:"))
		for _, e := range analysis.Quality.ValidationErrors {
			fmt.Fprintf(w, "  %s %s\n", IconPointer, e)
		}
		fmt.Fprintf(w, "\n")
	}
	if len(analysis.Quality.SuggestedTests) > 0 {
		fmt.Fprintf(w, "%s\n", s.SectionTitle.Render("Pruebas adicionales sugeridas"))
		for _, t := range analysis.Quality.SuggestedTests {
			fmt.Fprintf(w, "  %s %s\n", IconPointer, t)
		}
		fmt.Fprintf(w, "\n")
	}

	footer(w, s, width)
	return nil
}

func (f *HumanFormatter) FormatTriage(report *model.TriageReport, w io.Writer) error {
	s := GetStyles()
	width := TerminalWidth()

	banner(w, s, width, "RESULTADOS DE TRIAGE")
	fmt.Fprintf(w, "Reporte:     %s\n", s.ReportID.Render(report.ID))
	fmt.Fprintf(w, "Origen:      %s\n", report.SourceReport)
	fmt.Fprintf(w, "Riesgo:      %s (%.1f/10)\n",
		s.GetRiskText(report.OverallRisk).Render(strings.ToUpper(string(report.OverallRisk))),
		report.RiskScore)
	fmt.Fprintf(w, "\n")

	renderSeverityDashboard(w, s, report.TotalVulnerabilities, report.SeverityDistribution)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "%s\n%s\n\n", s.SectionTitle.Render("Resumen"), wrap(report.Summary, DefaultWrapWidth))

	if len(report.Vulnerabilities) > 0 {
		section(w, s, width, "VULNERABILIDADES")
		for i, vuln := range report.Vulnerabilities {
			if i > 0 {
				rule(w, s, width)
			}
			renderTriagedVulnerability(w, s, vuln)
		}
	}

	if len(report.RemediationPlan) > 0 {
		section(w, s, width, "PLAN DE REMEDIACIÓN")
		for _, item := range report.RemediationPlan {
			severity := item.Severity
			fmt.Fprintf(w, "%2d. %s [%s] %s  %s\n",
				item.Rank,
				s.GetSeverityText(severity).Render(SeverityDot),
				item.Priority,
				s.Bold.Render(item.Name),
				s.MutedText.Render(item.EstimatedTime))
		}
		fmt.Fprintf(w, "\n")
	}

	if len(report.GeneralRecommendations) > 0 {
		fmt.Fprintf(w, "%s\n", s.SectionTitle.Render("Recomendaciones generales"))
		for _, rec := range report.GeneralRecommendations {
			fmt.Fprintf(w, "  %s %s\n", IconPointer, wrap(rec, DefaultWrapWidth-4))
		}
		fmt.Fprintf(w, "\n")
	}

	footer(w, s, width)
	return nil
}

func (f *HumanFormatter) FormatAnalysis(result *pipeline.ConsolidatedResult, w io.Writer) error {
	s := GetStyles()
	width := TerminalWidth()

	banner(w, s, width, "ANÁLISIS CONSOLIDADO")
	es := result.ExecutiveSummary
	fmt.Fprintf(w, "Archivo:     %s\n", es.File)
	fmt.Fprintf(w, "Riesgo:      %s (%.1f/10)\n",
		s.GetRiskText(es.OverallRisk).Render(strings.ToUpper(string(es.OverallRisk))), es.RiskScore)
	fmt.Fprintf(w, "Calidad:     %.1f/10\n", es.OverallQuality)
	fmt.Fprintf(w, "Hallazgos:   %d (%d críticos, %d altos)\n",
		es.TotalVulnerabilities, es.CriticalVulnerabilities, es.HighVulnerabilities)
	fmt.Fprintf(w, "\n%s\n\n", wrap(es.Summary, DefaultWrapWidth))

	fmt.Fprintf(w, "%s\n", s.SectionTitle.Render("Calidad del análisis"))
	q := result.Quality
	fmt.Fprintf(w, "  Validación PDF:    %s\n", scoreBar(s, q.PDFValidationScore))
	fmt.Fprintf(w, "  Cobertura:         %s\n", scoreBar(s, q.CoverageScore))
	fmt.Fprintf(w, "  Confianza media:   %s %.2f\n", GetConfidenceIcon(q.AverageConfidence), q.AverageConfidence)
	if !q.IsValid {
		fmt.Fprintf(w, "  %s\n", s.WarningText.Render("El reporte de origen tiene problemas de validación"))
	}
	fmt.Fprintf(w, "\n")

	if result.Recommendations == nil {
		footer(w, s, width)
		return nil
	}

	if len(result.Recommendations.TopPriorities) > 0 {
		section(w, s, width, "PRINCIPALES PRIORIDADES")
		for _, item := range result.Recommendations.TopPriorities {
			fmt.Fprintf(w, "%2d. %s [%s] %s  %s\n",
				item.Rank,
				s.GetSeverityText(item.Severity).Render(SeverityDot),
				item.Priority,
				s.Bold.Render(item.Name),
				s.MutedText.Render(fmt.Sprintf("confianza %.2f", item.Confidence)))
		}
		fmt.Fprintf(w, "\n")
	}

	if len(result.Recommendations.NextSteps) > 0 {
		fmt.Fprintf(w, "%s\n", s.SectionTitle.Render("Próximos pasos"))
		for _, step := range result.Recommendations.NextSteps {
			fmt.Fprintf(w, "  %s %s\n", IconPointer, wrap(step, DefaultWrapWidth-4))
		}
		fmt.Fprintf(w, "\n")
	}

	footer(w, s, width)
	return nil
}

func (f *HumanFormatter) FormatValidation(report *agent.ValidationReport, w io.Writer) error {
	s := GetStyles()
	width := TerminalWidth()

	title := "VALIDACIÓN ESTÁTICA"
	if report.AnalysisType == "dinamico" {
		title = "VALIDACIÓN DINÁMICA"
	}
	banner(w, s, width, title)
	fmt.Fprintf(w, "Reportadas:  %d\n", report.Reported)
	confirmed := fmt.Sprintf("%d", report.Confirmed)
	if report.Confirmed > 0 {
		confirmed = s.ErrorText.Render(confirmed)
	} else {
		confirmed = s.SuccessText.Render(confirmed)
	}
	fmt.Fprintf(w, "Confirmadas: %s\n\n", confirmed)

	for i, vuln := range report.Vulnerabilities {
		if i > 0 {
			rule(w, s, width)
		}
		icon := s.SuccessText.Render(IconSuccess)
		if vuln.Status == agent.StatusVulnerable {
			icon = s.ErrorText.Render(IconFailure)
		} else if vuln.Status == agent.StatusError {
			icon = s.WarningText.Render("?")
		}
		severity := model.MapSeverity(vuln.Severity)
		fmt.Fprintf(w, "%s %s  %s [%s]\n", icon,
			s.GetSeverityBadge(severity).Render(strings.ToUpper(vuln.Severity)),
			s.FindingHeader.Render(vuln.Name), vuln.Status)
		if vuln.Evidence != "" {
			fmt.Fprintf(w, "Evidencia:   %s\n", wrap(vuln.Evidence, DefaultWrapWidth))
		}
		if vuln.Payload != "" {
			fmt.Fprintf(w, "Payload:     %s\n", vuln.Payload)
		}
		if vuln.ServerResponse != "" {
			fmt.Fprintf(w, "Respuesta:   %s\n", truncate(vuln.ServerResponse, 200))
		}
		fmt.Fprintf(w, "\n")
	}

	footer(w, s, width)
	return nil
}

func renderTriagedVulnerability(w io.Writer, s *Styles, vuln model.TriagedVulnerability) {
	fmt.Fprintf(w, "%s %s  %s\n",
		s.GetSeverityText(vuln.TriageSeverity).Render(SeverityDot),
		s.GetSeverityBadge(vuln.TriageSeverity).Render(strings.ToUpper(string(vuln.TriageSeverity))),
		s.FindingHeader.Render(vuln.Name))
	fmt.Fprintf(w, "ID:          %s\n", vuln.ID)
	fmt.Fprintf(w, "Prioridad:   %s\n", vuln.Priority)
	fmt.Fprintf(w, "Confianza:   %s %.2f\n", GetConfidenceIcon(vuln.Confidence), vuln.Confidence)
	if vuln.OriginalSeverity != "" && !strings.EqualFold(vuln.OriginalSeverity, string(vuln.TriageSeverity)) {
		fmt.Fprintf(w, "Severidad reportada: %s\n", s.MutedText.Render(vuln.OriginalSeverity))
	}
	if vuln.RequiresManualReview {
		fmt.Fprintf(w, "%s\n", s.WarningText.Render("Requiere validación manual"))
	}
	if vuln.SeverityJustification != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", s.SubsectionTitle.Render("Justificación"),
			wrap(vuln.SeverityJustification, DefaultWrapWidth))
	}
	if vuln.RealImpact != "" {
		fmt.Fprintf(w, "\n%s\n%s\n", s.SubsectionTitle.Render("Impacto real"),
			wrap(vuln.RealImpact, DefaultWrapWidth))
	}

	for _, ev := range vuln.Evidence {
		fmt.Fprintf(w, "\n%s %s\n", s.SubsectionTitle.Render("Evidencia:"), ev.Description)
		if ev.Content != "" {
			renderSnippet(w, s, ev.Content)
		}
		if ev.Location != "" {
			fmt.Fprintf(w, "%s %s\n", s.MutedText.Render("Ubicación:"), s.LocationFg.Render(ev.Location))
		}
	}

	if len(vuln.Recommendations) > 0 {
		fmt.Fprintf(w, "\n%s\n", s.SubsectionTitle.Render("Recomendaciones"))
		for _, rec := range vuln.Recommendations {
			fmt.Fprintf(w, "  %s [%s] %s\n", IconPointer, rec.Type, wrap(rec.Description, DefaultWrapWidth-10))
		}
	}
	fmt.Fprintf(w, "\n")
}

// renderSeverityDashboard draws the distribution box, worst severities
// first.
func renderSeverityDashboard(w io.Writer, s *Styles, total int, dist map[model.Severity]int) {
	width := 46

	top := "┌" + strings.Repeat("─", width-2) + "┐"
	bottom := "└" + strings.Repeat("─", width-2) + "┘"
	divider := "├" + strings.Repeat("─", width-2) + "┤"

	fmt.Fprintf(w, "%s\n", top)
	boxLine(w, width, fmt.Sprintf("Total de vulnerabilidades: %d", total))
	fmt.Fprintf(w, "%s\n", divider)

	for _, sev := range model.Severities() {
		count := dist[sev]
		if count == 0 {
			continue
		}
		label := fmt.Sprintf("%s %s: %d", SeverityDot, sev, count)
		pad := width - 4 - runewidth.StringWidth(label)
		if pad < 0 {
			pad = 0
		}
		fmt.Fprintf(w, "│ %s%s │\n",
			s.GetSeverityText(sev).Render(label), strings.Repeat(" ", pad))
	}
	fmt.Fprintf(w, "%s\n", bottom)
}

func renderQualityBox(w io.Writer, s *Styles, q pipeline.QualityMetrics) {
	width := 46
	fmt.Fprintf(w, "┌%s┐\n", strings.Repeat("─", width-2))
	boxLine(w, width, fmt.Sprintf("Validación: %.1f/10", q.ValidationScore))
	boxLine(w, width, fmt.Sprintf("Cobertura:  %.1f/10", q.CoverageScore))
	status := "válido"
	if !q.IsValid {
		status = "con observaciones"
	}
	boxLine(w, width, "Estado:     "+status)
	fmt.Fprintf(w, "└%s┘\n", strings.Repeat("─", width-2))
}

// boxLine pads content to the box width, accounting for wide runes.
func boxLine(w io.Writer, width int, content string) {
	pad := width - 4 - runewidth.StringWidth(content)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(w, "│ %s%s │\n", content, strings.Repeat(" ", pad))
}

func renderSnippet(w io.Writer, s *Styles, content string) {
	for i, line := range HighlightSnippet(content) {
		fmt.Fprintf(w, "%s %s\n", s.CodeLineNumber.Render(fmt.Sprintf("%d", i+1)), line)
	}
}

// scoreBar renders a ten-segment bar for a 0-10 score.
func scoreBar(s *Styles, score float64) string {
	full := int(score)
	if full < 0 {
		full = 0
	}
	if full > 10 {
		full = 10
	}
	bar := s.ProgressFull.Render(strings.Repeat("█", full)) +
		s.ProgressEmpty.Render(strings.Repeat("░", 10-full))
	return fmt.Sprintf("%s %.1f/10", bar, score)
}

func banner(w io.Writer, s *Styles, width int, title string) {
	line := strings.Repeat("═", width)
	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "  %s\n", s.HeaderBanner.Render(title))
	fmt.Fprintf(w, "%s\n\n", line)
}

func section(w io.Writer, s *Styles, width int, title string) {
	line := strings.Repeat("─", width)
	fmt.Fprintf(w, "%s\n", line)
	fmt.Fprintf(w, "  %s\n", s.SectionTitle.Render(title))
	fmt.Fprintf(w, "%s\n\n", line)
}

func rule(w io.Writer, s *Styles, width int) {
	fmt.Fprintf(w, "%s\n", s.FooterSeparator.Render(strings.Repeat("─", width)))
}

func footer(w io.Writer, s *Styles, width int) {
	fmt.Fprintf(w, "%s\n\n", s.FooterSeparator.Render(strings.Repeat("═", width)))
}

// wrap folds text at word boundaries to the given width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		wl := runewidth.StringWidth(word)
		if lineLen > 0 && lineLen+1+wl > width {
			b.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += wl
	}
	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "…"
}
