// Package pipeline wires the agents, validators and stores into the
// use cases the CLI commands invoke.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/analysis"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/pdf"
	"github.com/b45t3rr/genai-triage/internal/validate"
)

// QualityMetrics qualifies how complete and trustworthy one extracted report
// is.
type QualityMetrics struct {
	IsValid             bool                         `json:"is_valid"`
	ValidationErrors    []string                     `json:"validation_errors"`
	ValidationScore     float64                      `json:"validation_score"`
	CoverageScore       float64                      `json:"coverage_score"`
	TechnicalIndicators analysis.TechnicalIndicators `json:"technical_indicators"`
	SuggestedTests      []string                     `json:"suggested_additional_tests"`
}

// PDFAnalysis is the outcome of the read-pdf use case.
type PDFAnalysis struct {
	File              string                `json:"archivo"`
	Document          *pdf.Document         `json:"documento_fuente"`
	Report            *model.SecurityReport `json:"analisis"`
	Quality           QualityMetrics        `json:"metricas_calidad"`
	ProcessingSeconds float64               `json:"tiempo_procesamiento_segundos"`

	// Raw preserves extraction fields the typed model does not carry; the
	// triage and validation batches read findings from it.
	Raw map[string]any `json:"-"`
}

// PDFPipeline extracts a structured report from a PDF and scores its
// quality.
type PDFPipeline struct {
	reader    pdf.Reader
	extractor *agent.Extractor

	// SkipSuggestions leaves the suggested-tests list empty. Set by the
	// CLI's --no-suggestions flag.
	SkipSuggestions bool
}

func NewPDFPipeline(reader pdf.Reader, extractor *agent.Extractor) *PDFPipeline {
	return &PDFPipeline{reader: reader, extractor: extractor}
}

func (p *PDFPipeline) Run(ctx context.Context, path string) (*PDFAnalysis, error) {
	start := time.Now()

	doc, err := p.reader.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	logging.L().Infow("document read", "path", path, "pages", doc.PageCount, "bytes", len(doc.Content))

	report, raw, err := p.extractor.Extract(ctx, doc.Content)
	if err != nil {
		return nil, err
	}

	valid, errs := validate.SecurityReport(report)
	quality := QualityMetrics{
		IsValid:             valid,
		ValidationErrors:    errs,
		ValidationScore:     validate.Score(report),
		CoverageScore:       analysis.CoverageScore(report),
		TechnicalIndicators: analysis.Indicators(report),
	}
	if !p.SkipSuggestions {
		quality.SuggestedTests = analysis.SuggestAdditionalTests(report)
	}
	logging.L().Infow("report extracted",
		"findings", len(report.Findings),
		"valid", valid,
		"validation_score", quality.ValidationScore,
		"coverage_score", quality.CoverageScore)

	return &PDFAnalysis{
		File:              path,
		Document:          doc,
		Report:            report,
		Quality:           quality,
		ProcessingSeconds: roundSeconds(time.Since(start)),
		Raw:               raw,
	}, nil
}

// roundSeconds reports a duration in seconds with two decimals.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
