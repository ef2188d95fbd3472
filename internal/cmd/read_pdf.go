package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/llm"
	"github.com/b45t3rr/genai-triage/internal/output"
	"github.com/b45t3rr/genai-triage/internal/pdf"
	"github.com/b45t3rr/genai-triage/internal/pipeline"
)

var readPDFCmd = &cobra.Command{
	Use:   "read-pdf <report.pdf>",
	Short: "Extract structured findings from a PDF security report",
	Long:  `Convert a PDF pentest report into a structured document, extract its findings with an LLM and score the report's quality and coverage.`,
	Example: `  $ genai-triage read-pdf informe.pdf
  $ genai-triage read-pdf informe.pdf --format json
  $ genai-triage read-pdf informe.pdf --provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportPath := args[0]
		if err := checkReportPath(reportPath); err != nil {
			return err
		}

		ctx, cancel := NewSignalContext()
		defer cancel()

		provider, err := getProvider(ctx)
		if err != nil {
			return err
		}

		pipe := newPDFPipeline(provider)
		analysis, err := pipe.Run(ctx, reportPath)
		if err != nil {
			return handleRunError(ctx, err)
		}

		formatter, err := output.GetFormatter(format)
		if err != nil {
			return err
		}
		if err := formatter.FormatPDFAnalysis(analysis, os.Stdout); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return nil
	},
}

// newPDFPipeline wires the poppler reader and the extraction agent from the
// loaded configuration.
func newPDFPipeline(provider llm.Provider) *pipeline.PDFPipeline {
	reader := pdf.NewPopplerReader(cfg.PDFToTextPath, cfg.MaxFileSize())
	return pipeline.NewPDFPipeline(reader, agent.NewExtractor(provider))
}

func init() {
	rootCmd.AddCommand(readPDFCmd)
}
