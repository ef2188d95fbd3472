package agent

import (
	"context"
	"fmt"

	"github.com/b45t3rr/genai-triage/internal/analysis"
	"github.com/b45t3rr/genai-triage/internal/llm"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/parser"
)

// Extractor turns the raw text of a security document into a structured
// report via LLM extraction.
type Extractor struct {
	provider llm.Provider
}

func NewExtractor(p llm.Provider) *Extractor {
	return &Extractor{provider: p}
}

// Extract runs the extraction prompt over the document text and returns both
// the typed report and the raw decoded object. The raw map preserves fields
// the typed model does not know about, which the validation agents read
// directly.
func (e *Extractor) Extract(ctx context.Context, content string) (*model.SecurityReport, map[string]any, error) {
	logging.L().Debugw("extracting structured report",
		"provider", e.provider.Name(),
		"model", e.provider.Model(),
		"content_bytes", len(content))

	resp, err := e.provider.Generate(ctx, llm.ExtractionPrompt, content)
	if err != nil {
		return nil, nil, fmt.Errorf("extraction request: %w", err)
	}

	raw, err := parser.DecodeMap(resp)
	if err != nil {
		return nil, nil, fmt.Errorf("extraction response: %w", err)
	}
	report, err := parser.Decode[model.SecurityReport](resp)
	if err != nil {
		return nil, nil, fmt.Errorf("extraction response: %w", err)
	}

	normalizeFindings(report)
	logging.L().Debugw("extraction complete", "findings", len(report.Findings))
	return report, raw, nil
}

// normalizeFindings folds severities onto the canonical vocabulary and
// classifies findings the extractor left uncategorized.
func normalizeFindings(report *model.SecurityReport) {
	for i := range report.Findings {
		f := &report.Findings[i]
		f.Severity = string(analysis.NormalizeSeverity(f.Severity))
		if f.Category == "" {
			f.Category = analysis.ClassifyCategory(f.Name, f.Description)
		}
	}
}
