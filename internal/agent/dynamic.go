package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/b45t3rr/genai-triage/internal/llm"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/parser"
	"github.com/b45t3rr/genai-triage/internal/probe"
)

// maxProbedEndpoints caps how many reported endpoints are exercised per
// vulnerability.
const maxProbedEndpoints = 5

// DynamicAgent replays reported vulnerabilities against a live target and
// lets the LLM judge the recorded HTTP transcripts.
type DynamicAgent struct {
	provider llm.Provider
	prober   *probe.Prober

	OnProgress ProgressFunc
}

func NewDynamicAgent(p llm.Provider, prober *probe.Prober) *DynamicAgent {
	return &DynamicAgent{provider: p, prober: prober}
}

// Validate checks target availability once, then probes and judges every
// finding of the raw report. An unreachable target aborts the run; a failed
// item does not.
func (a *DynamicAgent) Validate(ctx context.Context, report map[string]any) (*ValidationReport, error) {
	findings, sourceKey, err := parser.Findings(report)
	if err != nil {
		return nil, err
	}
	if err := a.prober.CheckAvailability(ctx); err != nil {
		return nil, fmt.Errorf("objetivo no disponible en %s: %w", a.prober.BaseURL(), err)
	}
	logging.L().Debugw("starting dynamic validation",
		"source", parser.DescribeSource(sourceKey, len(findings)), "target", a.prober.BaseURL())

	credentials := reportCredentials(report)
	endpoints := reportEndpoints(report)

	verdicts := make([]ValidatedVulnerability, 0, len(findings))
	for i, finding := range findings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.OnProgress != nil {
			a.OnProgress(i+1, len(findings), findingName(finding, i+1))
		}

		verdict, err := a.validateOne(ctx, finding, i+1, endpoints, credentials)
		if err != nil {
			logging.L().Warnw("dynamic validation failed for finding",
				"index", i+1, "error", err)
			verdict = errorVerdict(finding, i+1, err)
		}
		verdicts = append(verdicts, verdict)
	}

	return buildValidationReport("dinamico", verdicts), nil
}

func (a *DynamicAgent) validateOne(ctx context.Context, finding map[string]any, number int, endpoints, credentials []string) (ValidatedVulnerability, error) {
	transcripts := a.runProbes(ctx, finding, endpoints)

	query := llm.DynamicValidationQuery(llm.TriageQueryInput{
		Number:      number,
		Name:        parser.StringField(finding, "nombre", "name"),
		Description: parser.StringField(finding, "descripcion", "description"),
		Severity:    parser.StringField(finding, "severidad", "severity"),
		Impact:      parser.StringField(finding, "impacto", "impact"),
		Evidence:    parser.EvidenceText(finding),
	}, a.prober.BaseURL(), transcripts, credentials)

	resp, err := a.provider.Generate(ctx, llm.DynamicValidationPrompt, query)
	if err != nil {
		return ValidatedVulnerability{}, fmt.Errorf("validation request: %w", err)
	}
	parsed, err := parser.DecodeMap(resp)
	if err != nil {
		return ValidatedVulnerability{}, fmt.Errorf("validation response: %w", err)
	}
	return verdictFromResponse(parsed, finding, number), nil
}

// runProbes executes the HTTP probes for one finding: the base URL, the
// reported endpoints, and a payload replay when the finding carries one.
func (a *DynamicAgent) runProbes(ctx context.Context, finding map[string]any, endpoints []string) []string {
	transcripts := []string{a.prober.Get(ctx, "/").Describe()}

	for i, ep := range endpoints {
		if i == maxProbedEndpoints {
			break
		}
		transcripts = append(transcripts, a.prober.Get(ctx, ep).Describe())
	}

	if payload := parser.StringField(finding, "payload_usado"); payload != "" {
		path := "/"
		if len(endpoints) > 0 {
			path = endpoints[0]
		}
		transcripts = append(transcripts, a.prober.Post(ctx, path, payload).Describe())
	}
	return transcripts
}

// reportEndpoints pulls the tested endpoints out of the raw report, keeping
// only path components so probes stay on the configured target.
func reportEndpoints(report map[string]any) []string {
	tech, _ := report["datos_tecnicos"].(map[string]any)
	if tech == nil {
		return nil
	}
	raw := parser.StringSlice(tech["endpoints_pruebas"])
	endpoints := make([]string, 0, len(raw))
	for _, ep := range raw {
		if idx := strings.Index(ep, "://"); idx >= 0 {
			rest := ep[idx+3:]
			if slash := strings.Index(rest, "/"); slash >= 0 {
				ep = rest[slash:]
			} else {
				ep = "/"
			}
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints
}

// reportCredentials formats the report's test credentials for the judge
// query.
func reportCredentials(report map[string]any) []string {
	tech, _ := report["datos_tecnicos"].(map[string]any)
	if tech == nil {
		return nil
	}
	raw, _ := tech["credenciales_utilizadas"].(map[string]any)
	creds := make([]string, 0, len(raw))
	for role, v := range raw {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		creds = append(creds, fmt.Sprintf("%s: usuario %q, contraseña %q",
			role,
			parser.StringField(entry, "usuario", "user"),
			parser.StringField(entry, "contrasena", "password")))
	}
	sort.Strings(creds)
	return creds
}
