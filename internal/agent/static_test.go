package agent

import (
	"strings"
	"testing"

	"github.com/b45t3rr/genai-triage/internal/scan"
)

func scanFixture() []scan.SemgrepFinding {
	return []scan.SemgrepFinding{
		{CheckID: "python.lang.security.audit.formatted-sql-query", Path: "app/db.py", Line: 42, Message: "Detected SQL statement built via string formatting", Severity: "ERROR", Snippet: `cur.execute("SELECT * FROM users WHERE name = '%s'" % name)`},
		{CheckID: "python.flask.security.xss.audit.direct-use-of-jinja2", Path: "app/views.py", Line: 10, Message: "Possible XSS through unescaped template", Severity: "WARNING"},
		{CheckID: "generic.secrets.security.detected-generic-secret", Path: "config.py", Line: 3, Message: "Hardcoded secret detected", Severity: "WARNING"},
	}
}

func TestRelatedResultsMatchesCategoryWords(t *testing.T) {
	finding := map[string]any{
		"nombre":    "Inyección SQL en búsqueda",
		"categoria": "Sql Injection",
	}
	related := relatedResults(finding, scanFixture())
	if len(related) < 1 {
		t.Fatal("expected at least the sql result")
	}
	if related[0].CheckID != "python.lang.security.audit.formatted-sql-query" {
		t.Errorf("related[0] = %q", related[0].CheckID)
	}
}

func TestRelatedResultsFallsBackToGenericKeywords(t *testing.T) {
	// A finding with no category still picks up results matching the
	// generic vulnerability-class keywords.
	finding := map[string]any{"nombre": "Fallo"}
	related := relatedResults(finding, scanFixture())
	for _, r := range related {
		if r.CheckID == "generic.secrets.security.detected-generic-secret" {
			t.Errorf("secret result matched no keyword but was included")
		}
	}
}

func TestRelatedResultsCap(t *testing.T) {
	results := make([]scan.SemgrepFinding, 0, 25)
	for i := 0; i < 25; i++ {
		results = append(results, scan.SemgrepFinding{CheckID: "rules.sql-injection", Message: "sql"})
	}
	related := relatedResults(map[string]any{"categoria": "Sql Injection"}, results)
	if len(related) != maxRelatedFindings {
		t.Errorf("len = %d, want %d", len(related), maxRelatedFindings)
	}
}

func TestFormatScanResults(t *testing.T) {
	out := formatScanResults(scanFixture()[:1])
	if !strings.Contains(out, "app/db.py:42") {
		t.Errorf("missing location: %q", out)
	}
	if !strings.Contains(out, "Código:") {
		t.Errorf("missing snippet line: %q", out)
	}
	if formatScanResults(nil) != "" {
		t.Error("empty input should format to empty string")
	}
}
