package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/output"
	"github.com/b45t3rr/genai-triage/internal/probe"
)

var dynamicScanCmd = &cobra.Command{
	Use:   "dynamic-scan <report.pdf> <target-url>",
	Short: "Validate reported vulnerabilities against a running target",
	Long:  `Extract the findings from a PDF report and validate each one against a live application, probing the endpoints and payloads the report describes and judging the responses with an LLM.`,
	Example: `  $ genai-triage dynamic-scan informe.pdf http://localhost:8080
  $ genai-triage dynamic-scan informe.pdf https://staging.example.com --format json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportPath := args[0]
		if err := checkReportPath(reportPath); err != nil {
			return err
		}

		failOnSeverities, err := getFailOn()
		if err != nil {
			return err
		}

		prober, err := probe.New(args[1])
		if err != nil {
			return err
		}

		ctx, cancel := NewSignalContext()
		defer cancel()

		provider, err := getProvider(ctx)
		if err != nil {
			return err
		}

		analysis, err := newPDFPipeline(provider).Run(ctx, reportPath)
		if err != nil {
			return handleRunError(ctx, err)
		}

		validator := agent.NewDynamicAgent(provider, prober)
		finish := trackProgress(&validator.OnProgress, "Probing findings")
		defer finish()

		report, err := validator.Validate(ctx, analysis.Raw)
		if err != nil {
			return handleRunError(ctx, err)
		}
		finish()

		formatter, err := output.GetFormatter(format)
		if err != nil {
			return err
		}
		if err := formatter.FormatValidation(report, os.Stdout); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		if output.ShouldFailValidation(report, failOnSeverities) {
			logging.Sync()
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dynamicScanCmd)
}
