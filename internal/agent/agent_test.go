package agent

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/b45t3rr/genai-triage/internal/model"
)

// stubProvider returns canned responses in call order, or err on every call
// when set.
type stubProvider struct {
	responses []string
	err       error
	calls     int
	queries   []string
}

func (s *stubProvider) Generate(_ context.Context, _, query string) (string, error) {
	s.queries = append(s.queries, query)
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	resp := s.responses[(s.calls-1)%len(s.responses)]
	return resp, nil
}

func (s *stubProvider) Name() string  { return "stub" }
func (s *stubProvider) Model() string { return "stub-model" }

func rawReport() map[string]any {
	return map[string]any{
		"documento": map[string]any{"titulo": "Pentest Portal Clientes"},
		"hallazgos_principales": []any{
			map[string]any{
				"id":                        "VULN-001",
				"nombre":                    "Inyección SQL en login",
				"descripcion":               "El parámetro username se concatena en la consulta",
				"severidad":                 "crítica",
				"impacto":                   "alto",
				"detailed_proof_of_concept": "' OR '1'='1' -- devuelve todos los usuarios",
			},
			map[string]any{
				"nombre":      "Cabeceras de seguridad ausentes",
				"descripcion": "Faltan X-Frame-Options y CSP",
				"severidad":   "baja",
				"impacto":     "bajo",
			},
		},
		"datos_tecnicos": map[string]any{
			"endpoints_pruebas": []any{"https://app.example.com/login", "/api/users"},
			"credenciales_utilizadas": map[string]any{
				"admin": map[string]any{"usuario": "admin", "contrasena": "admin123"},
			},
		},
	}
}

const triageResponse = `{
  "vulnerabilidad_id": "llm-id-1",
  "severidad_triage": "alta",
  "justificacion_severidad": "PoC funcional con acceso a datos",
  "prioridad": "P1",
  "justificacion_prioridad": "Sistema expuesto a internet",
  "evidencias": [
    {"tipo_evidencia": "respuesta_http", "descripcion": "Bypass de login", "contenido": "' OR '1'='1", "criticidad_evidencia": "alta"}
  ],
  "impacto_real": "Acceso completo a la base de usuarios",
  "probabilidad_explotacion": "alta",
  "recomendaciones": [
    {"tipo": "inmediata", "descripcion": "Usar consultas parametrizadas", "pasos_implementacion": ["Migrar a prepared statements"], "recursos_necesarios": ["1 desarrollador"], "impacto_implementacion": "bajo"}
  ],
  "confianza_analisis": 0.9,
  "requiere_validacion_manual": false
}`

func TestTriageAgentAnalyze(t *testing.T) {
	provider := &stubProvider{responses: []string{triageResponse}}
	agent := NewTriageAgent(provider)

	report, err := agent.Analyze(context.Background(), rawReport())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("calls = %d, want one per finding", provider.calls)
	}
	if report.SourceReport != "Pentest Portal Clientes" {
		t.Errorf("SourceReport = %q", report.SourceReport)
	}
	if report.TotalVulnerabilities != 2 {
		t.Fatalf("TotalVulnerabilities = %d", report.TotalVulnerabilities)
	}

	first := report.Vulnerabilities[0]
	if first.ID != "VULN-001" {
		t.Errorf("ID = %q, want the original finding id", first.ID)
	}
	// One http-response evidence at high criticality: enhancement recomputes
	// confidence as 0.5 + 0.2*1.5, overriding the model's 0.9.
	if math.Abs(first.Confidence-0.8) > 1e-9 {
		t.Errorf("Confidence = %v, want recomputed 0.8", first.Confidence)
	}
	if len(first.Recommendations) != 1 || first.Recommendations[0].Type != model.RecommendationImmediate {
		t.Errorf("Recommendations = %+v", first.Recommendations)
	}
}

func TestTriageAgentUsesResponseIDWhenFindingHasNone(t *testing.T) {
	provider := &stubProvider{responses: []string{triageResponse}}
	agent := NewTriageAgent(provider)

	report, err := agent.Analyze(context.Background(), rawReport())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if got := report.Vulnerabilities[1].ID; got != "llm-id-1" {
		t.Errorf("ID = %q, want the response id", got)
	}
}

func TestTriageAgentFallbackOnProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("rate limited")}
	agent := NewTriageAgent(provider)

	report, err := agent.Analyze(context.Background(), rawReport())
	if err != nil {
		t.Fatalf("Analyze: %v, want fallback records instead of an error", err)
	}
	for _, v := range report.Vulnerabilities {
		if !v.RequiresManualReview {
			t.Errorf("%s: RequiresManualReview = false", v.Name)
		}
		if v.Confidence != 0.1 {
			t.Errorf("%s: Confidence = %v, want 0.1", v.Name, v.Confidence)
		}
		if v.TriageSeverity != model.SeverityMedium || v.Priority != model.PriorityP2 {
			t.Errorf("%s: severity/priority = %s/%s", v.Name, v.TriageSeverity, v.Priority)
		}
		if !strings.HasPrefix(v.ID, "vuln_") {
			t.Errorf("%s: ID = %q", v.Name, v.ID)
		}
	}
}

func TestTriageAgentFallbackOnMalformedResponse(t *testing.T) {
	provider := &stubProvider{responses: []string{"lo siento, no puedo ayudar con eso"}}
	agent := NewTriageAgent(provider)

	report, err := agent.Analyze(context.Background(), rawReport())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !report.Vulnerabilities[0].RequiresManualReview {
		t.Error("malformed response should degrade to a manual-review record")
	}
}

func TestTriageAgentNoFindings(t *testing.T) {
	agent := NewTriageAgent(&stubProvider{responses: []string{triageResponse}})
	if _, err := agent.Analyze(context.Background(), map[string]any{}); err == nil {
		t.Fatal("expected error for a report without findings")
	}
}

func TestTriageAgentProgress(t *testing.T) {
	provider := &stubProvider{responses: []string{triageResponse}}
	agent := NewTriageAgent(provider)

	var seen []int
	agent.OnProgress = func(current, total int, _ string) {
		if total != 2 {
			t.Errorf("total = %d", total)
		}
		seen = append(seen, current)
	}
	if _, err := agent.Analyze(context.Background(), rawReport()); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("progress sequence = %v", seen)
	}
}

func TestTriageAgentCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agent := NewTriageAgent(&stubProvider{responses: []string{triageResponse}})
	if _, err := agent.Analyze(ctx, rawReport()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSourceTitleDefault(t *testing.T) {
	if got := sourceTitle(map[string]any{}); got != "Reporte de seguridad" {
		t.Errorf("sourceTitle = %q", got)
	}
}

func TestVerdictFromResponseStatusMapping(t *testing.T) {
	finding := map[string]any{"nombre": "XSS reflejado", "severidad": "alta"}
	tests := []struct {
		estado string
		want   ValidationStatus
	}{
		{"vulnerable", StatusVulnerable},
		{"no_vulnerable", StatusNotVulnerable},
		{"no vulnerable", StatusNotVulnerable},
		{"quizás", StatusError},
		{"", StatusError},
	}
	for _, tt := range tests {
		parsed := map[string]any{"estado": tt.estado}
		if got := verdictFromResponse(parsed, finding, 1).Status; got != tt.want {
			t.Errorf("estado %q: Status = %q, want %q", tt.estado, got, tt.want)
		}
	}
}

func TestVerdictDefaultsIDAndName(t *testing.T) {
	v := verdictFromResponse(map[string]any{"estado": "vulnerable"}, map[string]any{}, 3)
	if v.ID != "VULN-003" {
		t.Errorf("ID = %q", v.ID)
	}
	if v.Name != "Vulnerabilidad 3" {
		t.Errorf("Name = %q", v.Name)
	}
}

func TestBuildValidationReportCounts(t *testing.T) {
	report := buildValidationReport("estatico", []ValidatedVulnerability{
		{Status: StatusVulnerable},
		{Status: StatusNotVulnerable},
		{Status: StatusVulnerable},
		{Status: StatusError},
	})
	if report.Reported != 4 || report.Confirmed != 2 {
		t.Errorf("Reported/Confirmed = %d/%d, want 4/2", report.Reported, report.Confirmed)
	}
	if report.AnalysisType != "estatico" {
		t.Errorf("AnalysisType = %q", report.AnalysisType)
	}
	if report.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestReportEndpointsStripsHost(t *testing.T) {
	endpoints := reportEndpoints(rawReport())
	if len(endpoints) != 2 {
		t.Fatalf("endpoints = %v", endpoints)
	}
	if endpoints[0] != "/login" {
		t.Errorf("endpoints[0] = %q, want path only", endpoints[0])
	}
	if endpoints[1] != "/api/users" {
		t.Errorf("endpoints[1] = %q", endpoints[1])
	}
}

func TestReportCredentials(t *testing.T) {
	creds := reportCredentials(rawReport())
	if len(creds) != 1 {
		t.Fatalf("creds = %v", creds)
	}
	if !strings.Contains(creds[0], "admin") || !strings.Contains(creds[0], "admin123") {
		t.Errorf("creds[0] = %q", creds[0])
	}
}

func TestReportCredentialsMissingBlock(t *testing.T) {
	if creds := reportCredentials(map[string]any{}); creds != nil {
		t.Errorf("creds = %v, want nil", creds)
	}
}
