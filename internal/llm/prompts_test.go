package llm

import (
	"strings"
	"testing"

	"github.com/b45t3rr/genai-triage/internal/config"
)

func testConfig() *config.Config {
	return config.Defaults()
}

func TestTriageQueryDefaults(t *testing.T) {
	query := TriageQuery(TriageQueryInput{Number: 3})

	for _, want := range []string{
		"VULNERABILIDAD #3 PARA TRIAGE:",
		"- Nombre/Categoría: No especificada",
		"- Descripción: No disponible",
		"- Severidad Original: No especificada",
		"- Impacto Reportado: No especificado",
		"No se proporcionó evidencia detallada",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query should contain %q", want)
		}
	}
	if strings.Contains(query, "PAYLOAD UTILIZADO") {
		t.Error("empty payload must not render a payload section")
	}
}

func TestTriageQueryOptionalSections(t *testing.T) {
	query := TriageQuery(TriageQueryInput{
		Number:         1,
		Name:           "SQL Injection",
		Severity:       "alta",
		Evidence:       "' OR 1=1 --",
		Payload:        "id=1' UNION SELECT null--",
		ServerResponse: "HTTP/1.1 500 Internal Server Error",
	})

	if !strings.Contains(query, "**PAYLOAD UTILIZADO:**\nid=1' UNION SELECT null--") {
		t.Error("payload section missing")
	}
	if !strings.Contains(query, "**RESPUESTA DEL SERVIDOR:**\nHTTP/1.1 500") {
		t.Error("server response section missing")
	}
	if !strings.Contains(query, "- Nombre/Categoría: SQL Injection") {
		t.Error("name missing")
	}
}

func TestPromptsDeclareCanonicalVocabulary(t *testing.T) {
	for _, want := range []string{
		`"crítica", "alta", "media", "baja", "informativa"`,
		"P0|P1|P2|P3|P4",
		"código|respuesta_http|archivo|configuración|base_datos",
		"inmediata|correctiva|preventiva|mitigación",
	} {
		if !strings.Contains(TriageSystemPrompt, want) {
			t.Errorf("triage prompt should declare %q", want)
		}
	}
	if !strings.Contains(ExtractionPrompt, "hallazgos_principales") {
		t.Error("extraction prompt should name the findings key")
	}
	if !strings.Contains(ExtractionPrompt, "ÚNICAMENTE con el JSON") {
		t.Error("extraction prompt should demand JSON-only output")
	}
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("openai", "gpt-5-nano", 0.1)
	b := cacheKey("openai", "gpt-5-nano", 0.1)
	if a != b {
		t.Errorf("identical settings must share a key: %q vs %q", a, b)
	}
	if a == cacheKey("openai", "gpt-5-nano", 0.2) {
		t.Error("temperature must differentiate cache keys")
	}
	if a == cacheKey("xai", "gpt-5-nano", 0.1) {
		t.Error("provider must differentiate cache keys")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	cfg := testConfig()
	f := NewFactory(cfg)
	if _, err := f.Provider(t.Context(), "mistral"); err == nil {
		t.Error("unknown provider should error")
	}
}

func TestFactoryRejectsMissingKey(t *testing.T) {
	cfg := testConfig()
	f := NewFactory(cfg)
	if _, err := f.Provider(t.Context(), "openai"); err == nil {
		t.Error("provider without API key should error")
	}
}

func TestCompatOpts(t *testing.T) {
	withBase := compatOpts(config.ProviderConfig{APIKey: "sk-test", BaseURL: "http://localhost:11434/v1"})
	if len(withBase) != 2 {
		t.Errorf("compatOpts with base URL = %d options, want API key and base URL", len(withBase))
	}

	withoutBase := compatOpts(config.ProviderConfig{APIKey: "sk-test"})
	if len(withoutBase) != 1 {
		t.Errorf("compatOpts without base URL = %d options, want only the API key", len(withoutBase))
	}
}

func TestInitAppUnsupportedProvider(t *testing.T) {
	if _, err := initApp(t.Context(), "mistral", config.ProviderConfig{APIKey: "sk-test"}); err == nil {
		t.Error("unsupported provider should error")
	}
}
