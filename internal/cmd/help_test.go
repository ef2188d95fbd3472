package cmd

import (
	"strings"
	"testing"

	"github.com/b45t3rr/genai-triage/internal/cli"
	"github.com/b45t3rr/genai-triage/internal/output"
)

func TestStyleHelpOutputWithoutColors(t *testing.T) {
	cli.InitColors(cli.ColorModeNever)
	output.SyncStylesWithColorMode()
	t.Cleanup(func() {
		cli.InitColors(cli.ColorModeAuto)
		output.SyncStylesWithColorMode()
	})

	in := "Usage:\n  genai-triage triage <report.pdf>\n\nFlags:\n  --fail-on strings\n"
	if got := styleHelpOutput(in); got != in {
		t.Errorf("styleHelpOutput() altered text with colors disabled:\n%s", got)
	}
}

func TestStyledUsageTemplateFallsBackWithoutColors(t *testing.T) {
	cli.InitColors(cli.ColorModeNever)
	t.Cleanup(func() { cli.InitColors(cli.ColorModeAuto) })

	if got := styledUsageTemplate(); got != defaultUsageTemplate() {
		t.Error("styledUsageTemplate() should fall back to the default template when colors are off")
	}
}

func TestRootCommandTree(t *testing.T) {
	want := []string{"read-pdf", "triage", "analyze", "static-scan", "dynamic-scan"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestSubcommandExamplesUseBinaryName(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Example == "" {
			continue
		}
		if !strings.Contains(c.Example, "genai-triage") {
			t.Errorf("command %q examples should reference the binary name", c.Name())
		}
	}
}
