package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/b45t3rr/genai-triage/internal/llm"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/parser"
	"github.com/b45t3rr/genai-triage/internal/triage"
)

// ProgressFunc is invoked once per vulnerability as a batch advances.
type ProgressFunc func(current, total int, name string)

// TriageAgent runs the triage batch: one LLM call per finding, domain
// enhancement on every result, then report assembly. A failed item never
// aborts the batch; it degrades to a low-confidence record flagged for
// manual review.
type TriageAgent struct {
	provider llm.Provider

	// OnProgress, when set, receives batch progress updates.
	OnProgress ProgressFunc
}

func NewTriageAgent(p llm.Provider) *TriageAgent {
	return &TriageAgent{provider: p}
}

// Analyze triages every finding of a raw report and assembles the batch
// report. It returns an error only when the report carries no findings at
// all or the context is canceled.
func (a *TriageAgent) Analyze(ctx context.Context, report map[string]any) (*model.TriageReport, error) {
	findings, sourceKey, err := parser.Findings(report)
	if err != nil {
		return nil, err
	}
	logging.L().Debugw("starting triage batch", "source", parser.DescribeSource(sourceKey, len(findings)))

	vulns := make([]model.TriagedVulnerability, 0, len(findings))
	for i, finding := range findings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := parser.StringField(finding, "nombre", "name")
		if a.OnProgress != nil {
			a.OnProgress(i+1, len(findings), name)
		}

		vuln, err := a.triageOne(ctx, finding, i+1)
		if err != nil {
			logging.L().Warnw("triage failed for finding, recording fallback",
				"index", i+1, "name", name, "error", err)
			vuln = fallbackVulnerability(finding, i+1, err)
		}
		vulns = append(vulns, vuln)
	}

	config := map[string]string{
		"proveedor": a.provider.Name(),
		"modelo":    a.provider.Model(),
	}
	return triage.BuildReport(sourceTitle(report), vulns, config), nil
}

func (a *TriageAgent) triageOne(ctx context.Context, finding map[string]any, number int) (model.TriagedVulnerability, error) {
	query := llm.TriageQuery(llm.TriageQueryInput{
		Number:         number,
		Name:           parser.StringField(finding, "nombre", "name"),
		Description:    parser.StringField(finding, "descripcion", "description"),
		Severity:       parser.StringField(finding, "severidad", "severity"),
		Impact:         parser.StringField(finding, "impacto", "impact"),
		Status:         parser.StringField(finding, "estado"),
		Evidence:       parser.EvidenceText(finding),
		Payload:        parser.StringField(finding, "payload_usado"),
		ServerResponse: parser.StringField(finding, "respuesta_servidor"),
	})

	resp, err := a.provider.Generate(ctx, llm.TriageSystemPrompt, query)
	if err != nil {
		return model.TriagedVulnerability{}, fmt.Errorf("triage request: %w", err)
	}
	parsed, err := parser.DecodeMap(resp)
	if err != nil {
		return model.TriagedVulnerability{}, fmt.Errorf("triage response: %w", err)
	}

	vuln := vulnerabilityFromResponse(parsed, finding, number)
	return triage.Enhance(vuln, triage.EnhanceInput{
		OriginalImpact:    parser.StringField(finding, "impacto", "impact"),
		BusinessImpact:    model.MapImpact(parser.StringField(finding, "impacto", "impact")),
		HasProofOfConcept: parser.StringField(finding, "detailed_proof_of_concept") != "",
	}), nil
}

// vulnerabilityFromResponse builds the triaged entity from the decoded model
// output, defaulting every missing field so noisy responses still yield a
// complete record.
func vulnerabilityFromResponse(parsed, finding map[string]any, number int) model.TriagedVulnerability {
	id := parser.StringField(finding, "id")
	if id == "" {
		id = parser.StringField(parsed, "vulnerabilidad_id")
	}
	if id == "" {
		id = uuid.NewString()
	}

	evidence := make([]model.Evidence, 0)
	for _, ev := range parser.MapSlice(parsed["evidencias"]) {
		evidence = append(evidence, model.Evidence{
			Type:        evidenceType(parser.StringField(ev, "tipo_evidencia")),
			Description: parser.StringField(ev, "descripcion"),
			Content:     parser.StringField(ev, "contenido"),
			Location:    parser.StringField(ev, "ubicacion"),
			Criticality: model.MapImpact(parser.StringField(ev, "criticidad_evidencia")),
		})
	}

	recs := make([]model.TriageRecommendation, 0)
	for _, rec := range parser.MapSlice(parsed["recomendaciones"]) {
		recs = append(recs, model.TriageRecommendation{
			Type:                 recommendationType(parser.StringField(rec, "tipo")),
			Description:          parser.StringField(rec, "descripcion"),
			Steps:                parser.StringSlice(rec["pasos_implementacion"]),
			Resources:            parser.StringSlice(rec["recursos_necesarios"]),
			ImplementationImpact: model.MapImpact(parser.StringField(rec, "impacto_implementacion")),
		})
	}

	return model.TriagedVulnerability{
		ID:                    id,
		Name:                  orText(parser.StringField(finding, "nombre", "name"), fmt.Sprintf("Vulnerabilidad %d", number)),
		OriginalDescription:   parser.StringField(finding, "descripcion", "description"),
		OriginalSeverity:      parser.StringField(finding, "severidad", "severity"),
		TriageSeverity:        model.MapSeverity(orText(parser.StringField(parsed, "severidad_triage"), "media")),
		SeverityJustification: parser.StringField(parsed, "justificacion_severidad"),
		Priority:              model.MapPriority(orText(parser.StringField(parsed, "prioridad"), "P2")),
		PriorityJustification: parser.StringField(parsed, "justificacion_prioridad"),
		Evidence:              evidence,
		RealImpact:            parser.StringField(parsed, "impacto_real"),
		ExploitProbability:    model.MapExploitProbability(parser.StringField(parsed, "probabilidad_explotacion")),
		Recommendations:       recs,
		TriagedAt:             time.Now(),
		Confidence:            parser.Float(parsed, "confianza_analisis", 0.8),
		RequiresManualReview:  parser.Bool(parsed, "requiere_validacion_manual", false),
		Notes:                 parser.StringField(parsed, "notas_adicionales"),
	}
}

// fallbackVulnerability is recorded when an item's triage call or parse
// fails. Low confidence plus the manual-review flag make the degradation
// visible downstream.
func fallbackVulnerability(finding map[string]any, number int, cause error) model.TriagedVulnerability {
	return model.TriagedVulnerability{
		ID:                    fmt.Sprintf("vuln_%d_%s", number, uuid.NewString()[:8]),
		Name:                  orText(parser.StringField(finding, "nombre", "name"), fmt.Sprintf("Vulnerabilidad %d", number)),
		OriginalDescription:   parser.StringField(finding, "descripcion", "description"),
		OriginalSeverity:      parser.StringField(finding, "severidad", "severity"),
		TriageSeverity:        model.SeverityMedium,
		SeverityJustification: "Análisis automático no disponible, requiere revisión manual",
		Priority:              model.PriorityP2,
		PriorityJustification: "Prioridad por defecto asignada debido a error en el análisis",
		Evidence:              []model.Evidence{},
		RealImpact:            "No se pudo determinar automáticamente",
		ExploitProbability:    model.ExploitMedium,
		Recommendations:       []model.TriageRecommendation{},
		TriagedAt:             time.Now(),
		Confidence:            0.1,
		RequiresManualReview:  true,
		Notes:                 fmt.Sprintf("Error durante el análisis: %v", cause),
	}
}

func evidenceType(raw string) model.EvidenceType {
	if raw == "" {
		return model.EvidenceType("desconocido")
	}
	return model.EvidenceType(raw)
}

func recommendationType(raw string) model.RecommendationType {
	switch raw {
	case string(model.RecommendationImmediate), string(model.RecommendationCorrective),
		string(model.RecommendationPreventive), string(model.RecommendationMitigation):
		return model.RecommendationType(raw)
	}
	return model.RecommendationCorrective
}

// sourceTitle resolves the document title of a raw report for report lineage.
func sourceTitle(report map[string]any) string {
	if doc, ok := report["documento"].(map[string]any); ok {
		if title := parser.StringField(doc, "titulo", "title"); title != "" {
			return title
		}
	}
	return "Reporte de seguridad"
}

func orText(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
