package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/cli"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/output"
	"github.com/b45t3rr/genai-triage/internal/pipeline"
	"github.com/b45t3rr/genai-triage/internal/store"
)

var noSuggestions bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <report.pdf>",
	Short: "Run the full analysis pipeline on a PDF security report",
	Long:  `Run extraction and triage on a PDF report, consolidate both results into a single quality and risk assessment, and export the consolidated analysis plus an executive summary as JSON files.`,
	Example: `  $ genai-triage analyze informe.pdf
  $ genai-triage analyze informe.pdf --output-dir results/
  $ genai-triage analyze informe.pdf --format json --fail-on crítica`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportPath := args[0]
		if err := checkReportPath(reportPath); err != nil {
			return err
		}

		failOnSeverities, err := getFailOn()
		if err != nil {
			return err
		}

		ctx, cancel := NewSignalContext()
		defer cancel()

		provider, err := getProvider(ctx)
		if err != nil {
			return err
		}

		triageAgent := agent.NewTriageAgent(provider)
		finish := trackProgress(&triageAgent.OnProgress, "Analyzing findings")
		defer finish()

		pdfPipe := newPDFPipeline(provider)
		pdfPipe.SkipSuggestions = noSuggestions

		pipe := pipeline.NewAnalyzePipeline(pdfPipe, triageAgent, store.NewFileStore(cfg.OutputDir), provider, version)
		result, files, err := pipe.Run(ctx, reportPath)
		if err != nil {
			return handleRunError(ctx, err)
		}
		finish()

		formatter, err := output.GetFormatter(format)
		if err != nil {
			return err
		}
		if err := formatter.FormatAnalysis(result, os.Stdout); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		if pdfAnalysis := result.DetailedAnalysis.PDF; pdfAnalysis != nil && !pdfAnalysis.Quality.IsValid {
			cli.PrintWarning("el informe PDF no pasó la validación estructural, revise los resultados con cautela")
		}
		for _, f := range files {
			fmt.Fprintf(os.Stderr, "Saved %s\n", f)
		}

		if output.ShouldFail(result.DetailedAnalysis.Triage, failOnSeverities) {
			logging.Sync()
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&noSuggestions, "no-suggestions", false, "Skip suggesting additional tests for uncovered areas")
	rootCmd.AddCommand(analyzeCmd)
}
