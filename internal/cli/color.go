// Package cli holds terminal helpers shared by the commands: colored
// stderr messages with TTY detection and styled error rendering.
package cli

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ColorMode is the value of the --color flag.
type ColorMode string

const (
	ColorModeAuto   ColorMode = "auto"
	ColorModeAlways ColorMode = "always"
	ColorModeNever  ColorMode = "never"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[93m"
	ansiBold   = "\033[1m"
)

var (
	colorsEnabled = true
	colorsForced  = false
)

// InitColors resolves the color state once flags are parsed. always wins over
// everything, including NO_COLOR; never turns colors off; auto falls back to
// checking NO_COLOR, TERM=dumb and finally whether stderr is a terminal.
func InitColors(mode ColorMode) {
	colorsForced = mode == ColorModeAlways
	switch mode {
	case ColorModeAlways:
		colorsEnabled = true
	case ColorModeNever:
		colorsEnabled = false
	default:
		colorsEnabled = autoDetect()
	}
}

func autoDetect() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "dumb") {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// ColorsEnabled reports whether colors are currently active.
func ColorsEnabled() bool { return colorsEnabled }

// ColorsForced reports whether --color=always bypassed TTY detection.
func ColorsForced() bool { return colorsForced }

// label renders a bold, colored message prefix such as "Error:". With colors
// off it returns the prefix untouched.
func label(color, prefix string) string {
	if !colorsEnabled {
		return prefix
	}
	return ansiBold + color + prefix + ansiReset
}

// PrintError writes "Error: <message>" to stderr.
func PrintError(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", label(ansiRed, "Error:"), msg)
}

// PrintErrorf is PrintError with fmt.Sprintf formatting.
func PrintErrorf(format string, args ...interface{}) {
	PrintError(fmt.Sprintf(format, args...))
}

// PrintWarning writes "Warning: <message>" to stderr.
func PrintWarning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", label(ansiYellow, "Warning:"), msg)
}

// PrintWarningf is PrintWarning with fmt.Sprintf formatting.
func PrintWarningf(format string, args ...interface{}) {
	PrintWarning(fmt.Sprintf(format, args...))
}
