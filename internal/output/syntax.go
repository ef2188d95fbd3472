package output

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/b45t3rr/genai-triage/internal/cli"
)

// GetLexer picks a chroma lexer for an evidence snippet. Evidence has no
// filename, so content analysis decides; unrecognized content falls back to
// plaintext.
func GetLexer(content string) chroma.Lexer {
	lexer := lexers.Analyse(content)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	// Coalesce merges adjacent tokens of the same type for cleaner output
	return chroma.Coalesce(lexer)
}

// GetChromaStyle returns the chroma style based on terminal theme settings.
// Returns nil when colors are disabled.
func GetChromaStyle() *chroma.Style {
	if !cli.ColorsEnabled() {
		return nil
	}
	if lipgloss.HasDarkBackground() {
		return styles.Get("monokai")
	}
	return styles.Get("github")
}

// HighlightSnippet tokenizes and highlights an evidence snippet, returning
// lines with ANSI formatting. Returns plain lines if colors are disabled or
// highlighting fails.
func HighlightSnippet(content string) []string {
	style := GetChromaStyle()
	if style == nil {
		return strings.Split(content, "\n")
	}

	lexer := GetLexer(content)
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return strings.Split(content, "\n")
	}

	var buf bytes.Buffer
	if err := getTerminalFormatter().Format(&buf, style, iterator); err != nil {
		return strings.Split(content, "\n")
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

// getTerminalFormatter returns the chroma formatter matching the terminal
// color depth.
func getTerminalFormatter() chroma.Formatter {
	switch lipgloss.ColorProfile() {
	case termenv.TrueColor:
		return formatters.Get("terminal16m")
	case termenv.ANSI256:
		return formatters.Get("terminal256")
	default:
		return formatters.Get("terminal")
	}
}
