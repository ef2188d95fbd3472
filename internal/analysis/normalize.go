// Package analysis holds the document-level security analysis rules:
// finding normalization, automatic categorization, technical indicators and
// testing coverage scoring.
package analysis

import (
	"strings"

	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/parser"
)

// severityAliases is matched by containment, in order, so that free-form
// values like "Severidad: Alta" still normalize. Order matters: longer and
// more specific aliases come first.
var severityAliases = []struct {
	alias string
	sev   model.Severity
}{
	{"crítica", model.SeverityCritical},
	{"critica", model.SeverityCritical},
	{"critical", model.SeverityCritical},
	{"informativa", model.SeverityInfo},
	{"informational", model.SeverityInfo},
	{"info", model.SeverityInfo},
	{"alta", model.SeverityHigh},
	{"high", model.SeverityHigh},
	{"media", model.SeverityMedium},
	{"medium", model.SeverityMedium},
	{"baja", model.SeverityLow},
	{"low", model.SeverityLow},
}

// NormalizeSeverity maps a free-form severity string onto the canonical
// vocabulary. Unknown values fall back to media.
func NormalizeSeverity(raw string) model.Severity {
	clean := strings.ToLower(strings.TrimSpace(raw))
	for _, entry := range severityAliases {
		if strings.Contains(clean, entry.alias) {
			return entry.sev
		}
	}
	return model.SeverityMedium
}

// NormalizeFinding turns a raw extracted finding into a model.Finding with a
// canonical severity and, when the extraction left the category empty, an
// automatically classified one.
func NormalizeFinding(raw map[string]any) model.Finding {
	name := parser.StringField(raw, "nombre", "name", "titulo")
	if name == "" {
		name = "Vulnerabilidad sin nombre"
	}

	description := parser.StringField(raw, "descripcion", "description")

	category := parser.StringField(raw, "categoria", "category")
	if category == "" {
		category = ClassifyCategory(name, description)
	}

	impact := parser.StringField(raw, "impacto", "impact")
	if impact == "" {
		impact = "No especificado"
	}

	return model.Finding{
		ID:             parser.StringField(raw, "id", "id_vulnerabilidad"),
		Name:           name,
		Category:       category,
		Description:    description,
		Severity:       string(NormalizeSeverity(parser.StringField(raw, "severidad", "severity"))),
		Impact:         impact,
		ProofOfConcept: parser.StringField(raw, "detailed_proof_of_concept", "evidencia", "poc"),
	}
}
