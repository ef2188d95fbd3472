package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/llm"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/store"
	"github.com/b45t3rr/genai-triage/internal/validate"
)

// AnalyzePipeline chains extraction, triage and consolidation, then exports
// the results.
type AnalyzePipeline struct {
	pdf      *PDFPipeline
	triage   *agent.TriageAgent
	store    store.Store
	provider llm.Provider
	version  string
}

func NewAnalyzePipeline(pdf *PDFPipeline, triageAgent *agent.TriageAgent, st store.Store, provider llm.Provider, version string) *AnalyzePipeline {
	return &AnalyzePipeline{pdf: pdf, triage: triageAgent, store: st, provider: provider, version: version}
}

// Triage runs extraction plus the triage batch, without consolidation. A
// .json input is taken as an already-extracted report and skips the PDF
// phase, so the returned analysis is nil.
func (p *AnalyzePipeline) Triage(ctx context.Context, path string) (*model.TriageReport, *PDFAnalysis, error) {
	var pdfAnalysis *PDFAnalysis
	var raw map[string]any

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var err error
		raw, err = loadExtractedReport(path)
		if err != nil {
			return nil, nil, err
		}
	} else {
		var err error
		pdfAnalysis, err = p.pdf.Run(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		raw = pdfAnalysis.Raw
	}

	triageReport, err := p.triage.Analyze(ctx, raw)
	if err != nil {
		return nil, nil, fmt.Errorf("triage: %w", err)
	}

	if valid, errs := validate.TriageReport(triageReport); !valid {
		logging.L().Warnw("triage report has consistency issues", "errors", errs)
	}
	return triageReport, pdfAnalysis, nil
}

// loadExtractedReport reads a previously extracted report from a JSON file.
func loadExtractedReport(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return raw, nil
}

// Run executes the full analysis and writes the consolidated result and the
// executive summary next to each other. Returns the result and the exported
// file paths.
func (p *AnalyzePipeline) Run(ctx context.Context, path string) (*ConsolidatedResult, []string, error) {
	start := time.Now()

	triageReport, pdfAnalysis, err := p.Triage(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	result := Consolidate(pdfAnalysis, triageReport, RunMetadata{
		Provider:          p.provider.Name(),
		Model:             p.provider.Model(),
		Timestamp:         time.Now(),
		ProcessingSeconds: roundSeconds(time.Since(start)),
		Version:           p.version,
	})
	if p.pdf.SkipSuggestions {
		result.Recommendations = nil
	}

	paths, err := p.export(path, result)
	if err != nil {
		return nil, nil, err
	}
	logging.L().Infow("analysis complete",
		"vulnerabilities", result.ExecutiveSummary.TotalVulnerabilities,
		"risk", result.ExecutiveSummary.OverallRisk,
		"quality", result.ExecutiveSummary.OverallQuality,
		"exports", paths)
	return result, paths, nil
}

// export persists the complete analysis and a standalone executive summary.
func (p *AnalyzePipeline) export(sourcePath string, result *ConsolidatedResult) ([]string, error) {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	completePath, err := p.store.SaveJSON(base+"_complete_analysis", result)
	if err != nil {
		return nil, fmt.Errorf("exporting complete analysis: %w", err)
	}

	summary := struct {
		ExecutiveSummary ExecutiveSummary             `json:"resumen_ejecutivo"`
		Recommendations  *ConsolidatedRecommendations `json:"recomendaciones,omitempty"`
	}{result.ExecutiveSummary, result.Recommendations}

	summaryPath, err := p.store.SaveJSON(base+"_executive_summary", summary)
	if err != nil {
		return nil, fmt.Errorf("exporting executive summary: %w", err)
	}
	return []string{completePath, summaryPath}, nil
}
