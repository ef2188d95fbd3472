package output

import (
	"encoding/json"
	"io"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/model"
	"github.com/b45t3rr/genai-triage/internal/pipeline"
)

// JSONFormatter emits results as pretty-printed JSON. HTML escaping is off
// so payloads stay readable.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatPDFAnalysis(analysis *pipeline.PDFAnalysis, w io.Writer) error {
	return writeJSON(w, analysis)
}

func (f *JSONFormatter) FormatTriage(report *model.TriageReport, w io.Writer) error {
	return writeJSON(w, report)
}

func (f *JSONFormatter) FormatAnalysis(result *pipeline.ConsolidatedResult, w io.Writer) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatValidation(report *agent.ValidationReport, w io.Writer) error {
	return writeJSON(w, report)
}

func writeJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
