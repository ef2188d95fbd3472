package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/b45t3rr/genai-triage/internal/llm"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/parser"
	"github.com/b45t3rr/genai-triage/internal/scan"
)

// maxRelatedFindings caps the static-analysis context per vulnerability so
// the validation query stays within model limits.
const maxRelatedFindings = 10

// StaticAgent confirms reported vulnerabilities against the application's
// source code using semgrep results as evidence and the LLM as judge.
type StaticAgent struct {
	provider llm.Provider
	scanner  *scan.Semgrep

	OnProgress ProgressFunc
}

func NewStaticAgent(p llm.Provider, scanner *scan.Semgrep) *StaticAgent {
	return &StaticAgent{provider: p, scanner: scanner}
}

// Validate scans sourcePath once and then judges every finding of the raw
// report against the scan results. A failed item is recorded with an error
// verdict; the batch always completes.
func (a *StaticAgent) Validate(ctx context.Context, report map[string]any, sourcePath string) (*ValidationReport, error) {
	findings, sourceKey, err := parser.Findings(report)
	if err != nil {
		return nil, err
	}
	logging.L().Debugw("starting static validation",
		"source", parser.DescribeSource(sourceKey, len(findings)), "path", sourcePath)

	scanResults, err := a.scanner.Run(ctx, sourcePath)
	if err != nil {
		return nil, fmt.Errorf("static scan: %w", err)
	}
	logging.L().Debugw("static scan complete", "results", len(scanResults))

	verdicts := make([]ValidatedVulnerability, 0, len(findings))
	for i, finding := range findings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.OnProgress != nil {
			a.OnProgress(i+1, len(findings), findingName(finding, i+1))
		}

		verdict, err := a.validateOne(ctx, finding, i+1, scanResults)
		if err != nil {
			logging.L().Warnw("static validation failed for finding",
				"index", i+1, "error", err)
			verdict = errorVerdict(finding, i+1, err)
		}
		verdicts = append(verdicts, verdict)
	}

	return buildValidationReport("estatico", verdicts), nil
}

func (a *StaticAgent) validateOne(ctx context.Context, finding map[string]any, number int, scanResults []scan.SemgrepFinding) (ValidatedVulnerability, error) {
	related := relatedResults(finding, scanResults)
	query := llm.StaticValidationQuery(llm.TriageQueryInput{
		Number:      number,
		Name:        parser.StringField(finding, "nombre", "name"),
		Description: parser.StringField(finding, "descripcion", "description"),
		Severity:    parser.StringField(finding, "severidad", "severity"),
		Impact:      parser.StringField(finding, "impacto", "impact"),
		Evidence:    parser.EvidenceText(finding),
	}, formatScanResults(related))

	resp, err := a.provider.Generate(ctx, llm.StaticValidationPrompt, query)
	if err != nil {
		return ValidatedVulnerability{}, fmt.Errorf("validation request: %w", err)
	}
	parsed, err := parser.DecodeMap(resp)
	if err != nil {
		return ValidatedVulnerability{}, fmt.Errorf("validation response: %w", err)
	}
	return verdictFromResponse(parsed, finding, number), nil
}

// relevanceKeywords are matched against semgrep rule IDs and messages to
// select the scan results that plausibly relate to a reported vulnerability.
var relevanceKeywords = []string{"sql", "xss", "csrf", "injection", "auth", "path", "traversal"}

// relatedResults selects the scan results relevant to a finding: its
// category words first, then the generic vulnerability-class keywords.
func relatedResults(finding map[string]any, results []scan.SemgrepFinding) []scan.SemgrepFinding {
	keywords := make([]string, 0, len(relevanceKeywords)+4)
	category := strings.ToLower(parser.StringField(finding, "categoria", "category"))
	name := strings.ToLower(parser.StringField(finding, "nombre", "name"))
	for _, word := range strings.Fields(category + " " + name) {
		if len(word) > 3 {
			keywords = append(keywords, word)
		}
	}
	keywords = append(keywords, relevanceKeywords...)

	related := make([]scan.SemgrepFinding, 0, maxRelatedFindings)
	for _, res := range results {
		haystack := strings.ToLower(res.CheckID + " " + res.Message)
		for _, kw := range keywords {
			if strings.Contains(haystack, kw) {
				related = append(related, res)
				break
			}
		}
		if len(related) == maxRelatedFindings {
			break
		}
	}
	return related
}

func formatScanResults(results []scan.SemgrepFinding) string {
	if len(results) == 0 {
		return ""
	}
	var b strings.Builder
	for _, res := range results {
		fmt.Fprintf(&b, "- [%s] %s en %s: %s\n", res.Severity, res.CheckID, res.Location(), res.Message)
		if res.Snippet != "" {
			fmt.Fprintf(&b, "  Código: %s\n", strings.TrimSpace(res.Snippet))
		}
	}
	return b.String()
}
