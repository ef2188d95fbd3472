package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/cli"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/pipeline"
)

func plainStyles(t *testing.T) {
	t.Helper()
	cli.InitColors(cli.ColorModeNever)
	SyncStylesWithColorMode()
	t.Cleanup(func() {
		cli.InitColors(cli.ColorModeAuto)
		SyncStylesWithColorMode()
	})
}

func triageFixture() *model.TriageReport {
	return &model.TriageReport{
		ID:                   "triage_20240315_103000_ab12cd34",
		GeneratedAt:          time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		SourceReport:         "Pentest Portal Clientes",
		Summary:              "Análisis de triage completado para 2 vulnerabilidades identificadas.",
		TotalVulnerabilities: 2,
		SeverityDistribution: map[model.Severity]int{model.SeverityCritical: 1, model.SeverityLow: 1},
		PriorityDistribution: map[model.Priority]int{model.PriorityP0: 1, model.PriorityP3: 1},
		Vulnerabilities: []model.TriagedVulnerability{
			{
				ID:                    "VULN-001",
				Name:                  "Inyección SQL en login",
				TriageSeverity:        model.SeverityCritical,
				SeverityJustification: "PoC funcional con acceso a datos",
				Priority:              model.PriorityP0,
				Confidence:            0.9,
				Evidence: []model.Evidence{
					{Type: model.EvidenceHTTPResponse, Description: "Bypass de login", Content: "SELECT * FROM users WHERE name = '' OR '1'='1'"},
				},
				Recommendations: []model.TriageRecommendation{
					{Type: model.RecommendationImmediate, Description: "Usar consultas parametrizadas"},
				},
			},
			{
				ID:                   "VULN-002",
				Name:                 "Cabeceras ausentes",
				TriageSeverity:       model.SeverityLow,
				Priority:             model.PriorityP3,
				Confidence:           0.4,
				RequiresManualReview: true,
			},
		},
		GeneralRecommendations: []string{"Establecer monitoreo continuo de vulnerabilidades"},
		RemediationPlan: []model.PlanItem{
			{Rank: 1, VulnerabilityID: "VULN-001", Name: "Inyección SQL en login", Priority: model.PriorityP0, Severity: model.SeverityCritical, EstimatedTime: "24-48 horas"},
		},
		OverallRisk: model.RiskCritical,
		RiskScore:   9.2,
	}
}

func TestGetFormatter(t *testing.T) {
	if _, err := GetFormatter("human"); err != nil {
		t.Errorf("human: %v", err)
	}
	if _, err := GetFormatter("json"); err != nil {
		t.Errorf("json: %v", err)
	}
	if _, err := GetFormatter("sarif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestShouldFail(t *testing.T) {
	report := triageFixture()
	if !ShouldFail(report, []string{"crítica"}) {
		t.Error("crítica present, should fail")
	}
	if !ShouldFail(report, []string{"critical"}) {
		t.Error("English alias should match the canonical severity")
	}
	if ShouldFail(report, []string{"alta"}) {
		t.Error("no alta vulnerabilities, should pass")
	}
	if ShouldFail(report, nil) {
		t.Error("empty severity list should never fail")
	}
}

func TestShouldFailValidation(t *testing.T) {
	report := &agent.ValidationReport{
		Confirmed: 1,
		Vulnerabilities: []agent.ValidatedVulnerability{
			{Status: agent.StatusVulnerable, Severity: "alta"},
			{Status: agent.StatusNotVulnerable, Severity: "crítica"},
		},
	}
	if !ShouldFailValidation(report, nil) {
		t.Error("confirmed vulnerability with empty list should fail")
	}
	if !ShouldFailValidation(report, []string{"alta"}) {
		t.Error("confirmed alta should fail")
	}
	if ShouldFailValidation(report, []string{"crítica"}) {
		t.Error("the crítica finding was not confirmed, should pass")
	}
}

func TestHumanFormatTriage(t *testing.T) {
	plainStyles(t)

	var buf bytes.Buffer
	if err := (&HumanFormatter{}).FormatTriage(triageFixture(), &buf); err != nil {
		t.Fatalf("FormatTriage: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"RESULTADOS DE TRIAGE",
		"triage_20240315_103000_ab12cd34",
		"Inyección SQL en login",
		"CRÍTICA",
		"Requiere validación manual",
		"PLAN DE REMEDIACIÓN",
		"Usar consultas parametrizadas",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestHumanFormatValidation(t *testing.T) {
	plainStyles(t)

	report := &agent.ValidationReport{
		Reported:     2,
		Confirmed:    1,
		AnalysisType: "dinamico",
		Vulnerabilities: []agent.ValidatedVulnerability{
			{ID: "VULN-001", Name: "Inyección SQL", Status: agent.StatusVulnerable, Severity: "crítica", Evidence: "Bypass confirmado", Payload: "' OR '1'='1"},
			{ID: "VULN-002", Name: "XSS reflejado", Status: agent.StatusNotVulnerable, Severity: "media", Evidence: "Entrada codificada correctamente"},
		},
	}

	var buf bytes.Buffer
	if err := (&HumanFormatter{}).FormatValidation(report, &buf); err != nil {
		t.Fatalf("FormatValidation: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "VALIDACIÓN DINÁMICA") {
		t.Error("missing dynamic banner")
	}
	if !strings.Contains(out, "' OR '1'='1") {
		t.Error("missing payload")
	}
}

func TestHumanFormatAnalysis(t *testing.T) {
	plainStyles(t)

	result := &pipeline.ConsolidatedResult{
		ExecutiveSummary: pipeline.ExecutiveSummary{
			File:                 "informe.pdf",
			TotalVulnerabilities: 2,
			OverallRisk:          model.RiskHigh,
			RiskScore:            7.5,
			OverallQuality:       8.1,
			Summary:              "Resumen del análisis.",
		},
		Quality: pipeline.QualityAssessment{PDFValidationScore: 9, CoverageScore: 6.5, AverageConfidence: 0.75, IsValid: true},
		Recommendations: &pipeline.ConsolidatedRecommendations{
			TopPriorities: []pipeline.PriorityItem{{Rank: 1, ID: "VULN-001", Name: "Inyección SQL", Severity: model.SeverityCritical, Priority: model.PriorityP0, Confidence: 0.9}},
			NextSteps:     []string{"Atender de inmediato las vulnerabilidades críticas identificadas"},
		},
	}

	var buf bytes.Buffer
	if err := (&HumanFormatter{}).FormatAnalysis(result, &buf); err != nil {
		t.Fatalf("FormatAnalysis: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ANÁLISIS CONSOLIDADO", "PRINCIPALES PRIORIDADES", "Próximos pasos"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestJSONFormatterKeepsPayloadsReadable(t *testing.T) {
	report := &agent.ValidationReport{
		Vulnerabilities: []agent.ValidatedVulnerability{
			{Payload: "<script>alert(1)</script>"},
		},
	}
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).FormatValidation(report, &buf); err != nil {
		t.Fatalf("FormatValidation: %v", err)
	}
	if !strings.Contains(buf.String(), "<script>") {
		t.Error("HTML escaping should be disabled")
	}
}

func TestWrap(t *testing.T) {
	out := wrap("uno dos tres cuatro cinco", 10)
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func TestScoreBarClamps(t *testing.T) {
	plainStyles(t)
	if got := scoreBar(GetStyles(), 12); !strings.Contains(got, "12.0/10") {
		t.Errorf("scoreBar = %q", got)
	}
	if got := scoreBar(GetStyles(), -1); !strings.Contains(got, "░░░░░░░░░░") {
		t.Errorf("scoreBar = %q", got)
	}
}

func TestGetConfidenceIcon(t *testing.T) {
	if GetConfidenceIcon(0.9) != IconSuccess {
		t.Error("high confidence should map to the success icon")
	}
	if GetConfidenceIcon(0.6) != "~" {
		t.Error("medium confidence should map to ~")
	}
	if GetConfidenceIcon(0.1) != "?" {
		t.Error("low confidence should map to ?")
	}
}
