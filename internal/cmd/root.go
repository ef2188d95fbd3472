package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/b45t3rr/genai-triage/internal/cli"
	"github.com/b45t3rr/genai-triage/internal/config"
	"github.com/b45t3rr/genai-triage/internal/llm"
	"github.com/b45t3rr/genai-triage/internal/logging"
	"github.com/b45t3rr/genai-triage/internal/output"
	"github.com/charmbracelet/lipgloss"
)

const (
	themeAuto  = "auto"
	themeDark  = "dark"
	themeLight = "light"
)

var (
	cfgFile      string
	providerName string
	outputDir    string
	format       string
	noProgress   bool
	failOn       []string
	exitCode     int
	debug        bool
	colorFlag    string
	themeFlag    string

	version = "dev"
	commit  = "none"
	date    = "unknown"

	// cfg is populated by PersistentPreRunE before any RunE executes.
	cfg *config.Config
)

// validFormats contains the valid output format strings.
var validFormats = []string{"human", "json"}

var rootCmd = &cobra.Command{
	Use:     "genai-triage",
	Short:   "Security report triage powered by LLM agents",
	Long:    `CLI that reads pentest reports in PDF, triages the findings with LLM agents and validates them against source code or a running target.`,
	Version: version,
	// Errors are printed once, styled, by Execute.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch mode := cli.ColorMode(colorFlag); mode {
		case cli.ColorModeAuto, cli.ColorModeAlways, cli.ColorModeNever:
			cli.InitColors(mode)
		default:
			return fmt.Errorf("invalid --color value %q: must be auto, always or never", colorFlag)
		}
		switch themeFlag {
		case themeDark:
			lipgloss.SetHasDarkBackground(true)
		case themeLight:
			lipgloss.SetHasDarkBackground(false)
		case themeAuto:
		default:
			return fmt.Errorf("invalid --theme value %q: must be auto, dark or light", themeFlag)
		}
		output.SyncStylesWithColorMode()

		if _, err := output.GetFormatter(format); err != nil {
			return fmt.Errorf("invalid --format value %q: must be one of %v", format, validFormats)
		}

		// 0 defeats --fail-on, >255 is invalid POSIX.
		if exitCode < 1 || exitCode > 255 {
			return fmt.Errorf("invalid --exit-code value %d: must be between 1 and 255", exitCode)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if debug {
			cfg.Debug = true
		}
		if outputDir != "" {
			cfg.OutputDir = outputDir
		}
		return logging.Init(cfg.Debug)
	},
}

// SetVersion records build metadata injected at link time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func Execute() error {
	defer logging.Sync()
	err := rootCmd.Execute()
	if err != nil {
		cli.PrintError(err.Error())
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", os.Getenv("GENAI_CONFIG"), "Path to a YAML configuration file (env: GENAI_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", os.Getenv("DEFAULT_MODEL_PROVIDER"), "LLM provider: openai, xai, gemini, deepseek, anthropic (env: DEFAULT_MODEL_PROVIDER)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "Directory where exported JSON results are written")
	rootCmd.PersistentFlags().StringVar(&format, "format", getEnvOrDefault("GENAI_FORMAT", "human"), "Output format: human, json")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "Disable progress indicators")
	rootCmd.PersistentFlags().StringSliceVar(&failOn, "fail-on", []string{"crítica"}, "Fail build on severity levels (comma-separated): informativa, baja, media, alta, crítica")
	rootCmd.PersistentFlags().IntVar(&exitCode, "exit-code", 1, "Exit code to return when build fails")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", string(cli.ColorModeAuto), "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&themeFlag, "theme", themeAuto, "Color theme for terminal background: auto, dark, light")

	SetupHelp(rootCmd)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// severityTokens lists the fail-on spellings accepted on the command line.
// Both the canonical Spanish vocabulary and the usual English names work;
// the output layer folds them before comparing.
var severityTokens = map[string]bool{
	"crítica": true, "critica": true, "critical": true,
	"alta": true, "high": true,
	"media": true, "medium": true, "moderate": true,
	"baja": true, "low": true,
	"informativa": true, "info": true, "informational": true,
}

func getFailOn() ([]string, error) {
	for _, raw := range failOn {
		if !severityTokens[strings.ToLower(strings.TrimSpace(raw))] {
			return nil, fmt.Errorf("invalid --fail-on severity %q: must be one of informativa, baja, media, alta, crítica", raw)
		}
	}
	return failOn, nil
}

// getProvider resolves the configured LLM provider for this invocation.
func getProvider(ctx context.Context) (llm.Provider, error) {
	return llm.NewFactory(cfg).Provider(ctx, providerName)
}

// checkReportPath validates the report argument before any work starts.
func checkReportPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("report %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("report %s is a directory", path)
	}
	if ext := filepath.Ext(path); !cfg.SupportsExtension(ext) {
		return fmt.Errorf("unsupported report type %q (supported: %s)", ext, strings.Join(cfg.SupportedExtensions, ", "))
	}
	return nil
}
