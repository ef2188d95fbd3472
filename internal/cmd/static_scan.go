package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/output"
	"github.com/b45t3rr/genai-triage/internal/scan"
)

var staticScanCmd = &cobra.Command{
	Use:   "static-scan <report.pdf> <source-path-or-repo-url>",
	Short: "Validate reported vulnerabilities against source code",
	Long:  `Extract the findings from a PDF report and validate each one against the application source code, correlating them with semgrep results. Remote repositories are cloned into a temporary directory.`,
	Example: `  $ genai-triage static-scan informe.pdf ./src
  $ genai-triage static-scan informe.pdf https://github.com/org/app.git
  $ genai-triage static-scan informe.pdf ./src --fail-on alta,crítica`,
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

		ctx, cancel := NewSignalContext()
		defer cancel()

		target, err := scan.ResolveTarget(ctx, args[1])
		if err != nil {
			return handleRunError(ctx, err)
		}
		defer target.Cleanup()

		provider, err := getProvider(ctx)
		if err != nil {
			return err
		}

		analysis, err := newPDFPipeline(provider).Run(ctx, reportPath)
		if err != nil {
			return handleRunError(ctx, err)
		}

		validator := agent.NewStaticAgent(provider, scan.NewSemgrep(cfg.SemgrepPath))
		finish := trackProgress(&validator.OnProgress, "Validating findings")
		defer finish()

		report, err := validator.Validate(ctx, analysis.Raw, target.Path)
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
	rootCmd.AddCommand(staticScanCmd)
}
