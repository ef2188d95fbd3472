package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/b45t3rr/genai-triage/internal/agent"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/output"
	"github.com/b45t3rr/genai-triage/internal/pipeline"
	"github.com/b45t3rr/genai-triage/internal/progress"
	"github.com/b45t3rr/genai-triage/internal/store"
)

var triageCmd = &cobra.Command{
	Use:   "triage <report.pdf|report.json>",
	Short: "Triage the findings of a security report",
	Long:  `Triage each finding of a report with an LLM: severity, priority, business risk, evidence confidence and a remediation plan. Accepts a PDF report or a previously extracted JSON report, which skips the extraction phase.`,
	Example: `  $ genai-triage triage informe.pdf
  $ genai-triage triage informe_extraido.json
  $ genai-triage triage informe.pdf --format json
  $ genai-triage triage informe.pdf --fail-on alta,crítica --exit-code 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportPath := args[0]
		if err := checkTriageInput(reportPath); err != nil {
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
		finish := trackProgress(&triageAgent.OnProgress, "Triaging findings")
		defer finish()

		pipe := pipeline.NewAnalyzePipeline(newPDFPipeline(provider), triageAgent, store.NewFileStore(cfg.OutputDir), provider, version)
		report, _, err := pipe.Triage(ctx, reportPath)
		if err != nil {
			return handleRunError(ctx, err)
		}
		finish()

		formatter, err := output.GetFormatter(format)
		if err != nil {
			return err
		}
		if err := formatter.FormatTriage(report, os.Stdout); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		if output.ShouldFail(report, failOnSeverities) {
			logging.Sync()
			os.Exit(exitCode)
		}
		return nil
	},
}

// checkTriageInput accepts the configured report extensions plus previously
// extracted JSON reports.
func checkTriageInput(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return checkReportPath(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("report %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("report %s is a directory", path)
	}
	return nil
}

// trackProgress hooks a lazily created progress bar into an agent's progress
// callback. The bar is created on the first update, once the total is known.
// The returned function clears the bar and is safe to call more than once.
func trackProgress(hook *agent.ProgressFunc, description string) func() {
	var tracker *progress.Tracker
	started := false
	*hook = func(current, total int, name string) {
		if !started {
			started = true
			tracker = progress.NewTracker(total, description, noProgress)
		}
		tracker.Step(name)
	}
	return func() {
		tracker.Finish()
		tracker = nil
	}
}

func init() {
	rootCmd.AddCommand(triageCmd)
}
