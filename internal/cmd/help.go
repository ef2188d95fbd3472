// Package cmd implements the genai-triage CLI commands.
package cmd

import (
	"bytes"
	"io"
	"regexp"

	"github.com/b45t3rr/genai-triage/internal/cli"
	"github.com/b45t3rr/genai-triage/internal/output"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// SetupHelp installs a styled help renderer on the root command. Subcommands
// inherit the help function, so one call covers the whole tree.
func SetupHelp(cmd *cobra.Command) {
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		// --help bypasses PersistentPreRunE, so colors must be resolved here.
		initColorsForHelp(c)

		out := c.OutOrStdout()
		buf := new(bytes.Buffer)
		c.SetOut(buf)
		c.SetUsageTemplate(styledUsageTemplate())
		defaultHelp(c, args)
		c.SetOut(out)

		_, _ = io.WriteString(out, styleHelpOutput(buf.String()))
	})
}

// styledUsageTemplate is Cobra's stock template with bold section headers
// when colors are on.
func styledUsageTemplate() string {
	if !cli.ColorsEnabled() {
		return defaultUsageTemplate()
	}

	heading := output.GetStyles().HelpHeading
	bold := func(s string) string { return heading.Render(s) }

	return bold("Usage:") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

` + bold("Aliases:") + `
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

` + bold("Examples:") + `
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}

` + bold("Available Commands:") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

` + bold("Flags:") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

` + bold("Global Flags:") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

func defaultUsageTemplate() string {
	return (&cobra.Command{}).UsageTemplate()
}

// initColorsForHelp resolves color mode from the --color and --theme flags
// when they were set explicitly; otherwise the detection done at startup
// stands.
func initColorsForHelp(cmd *cobra.Command) {
	if cli.ColorsForced() {
		return
	}

	flags := cmd.Root().PersistentFlags()
	colorOverride := flags.Lookup("color")
	if colorOverride == nil || !colorOverride.Changed {
		return
	}

	switch mode := cli.ColorMode(colorOverride.Value.String()); mode {
	case cli.ColorModeAuto, cli.ColorModeAlways, cli.ColorModeNever:
		cli.InitColors(mode)
	}

	if themeOverride := flags.Lookup("theme"); themeOverride != nil && themeOverride.Changed {
		switch themeOverride.Value.String() {
		case themeDark:
			lipgloss.SetHasDarkBackground(true)
		case themeLight:
			lipgloss.SetHasDarkBackground(false)
		}
	}

	output.SyncStylesWithColorMode()
}

var (
	helpCommandRe   = regexp.MustCompile(`(?m)^(  )([a-z][-a-z0-9]*)(\s{2,})(.*)$`)
	helpLongFlagRe  = regexp.MustCompile(`(--[a-z][-a-z0-9]*)`)
	helpShortFlagRe = regexp.MustCompile(`(\s)(-[a-zA-Z])([,\s])`)
)

// styleHelpOutput colors command names and flags in rendered help text.
func styleHelpOutput(s string) string {
	if !cli.ColorsEnabled() {
		return s
	}

	styles := output.GetStyles()

	s = helpCommandRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := helpCommandRe.FindStringSubmatch(match)
		if len(parts) == 5 {
			return parts[1] + styles.HelpCommand.Render(parts[2]) + parts[3] + parts[4]
		}
		return match
	})

	s = helpLongFlagRe.ReplaceAllStringFunc(s, func(match string) string {
		return styles.HelpFlag.Render(match)
	})

	s = helpShortFlagRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := helpShortFlagRe.FindStringSubmatch(match)
		if len(parts) == 4 {
			return parts[1] + styles.HelpFlag.Render(parts[2]) + parts[3]
		}
		return match
	})

	return s
}
