package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Details      []string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

type levelStyle struct {
	symbol string
	attr   color.Attribute
}

var levelStyles = map[ErrorLevel]levelStyle{
	ErrorLevelError:   {"✗", color.FgRed},
	ErrorLevelWarning: {"!", color.FgYellow},
	ErrorLevelInfo:    {"i", color.FgCyan},
}

// FormatError renders a message with optional details, suggestions and help
// commands:
//
//	✗ TYPE NOT FOUND: app.OrderWorkfow
//	   No declaration for type 'app.OrderWorkfow'.
//
//	   Did you mean: app.OrderWorkflow?
//
//	   → List declared types: sugar types
func FormatError(opts ErrorOptions) string {
	style, ok := levelStyles[opts.Level]
	if !ok {
		style = levelStyles[ErrorLevelError]
	}
	header := paint(opts.NoColor, style.attr, color.Bold)
	body := paint(opts.NoColor, style.attr)

	var b strings.Builder
	if opts.Context != "" {
		header.Fprintf(&b, "%s %s: %s\n", style.symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		header.Fprintf(&b, "%s %s\n", style.symbol, opts.Problem)
	}

	for _, d := range opts.Details {
		body.Fprintf(&b, "   %s\n", d)
	}

	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		paint(opts.NoColor, color.FgYellow).Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		help := paint(opts.NoColor, color.FgCyan)
		for _, cmd := range opts.HelpCommands {
			help.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted message to w
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	return paint(noColor, color.FgGreen, color.Bold).Sprintf("✓ %s", message)
}

// TypeNotFoundError reports a type without a declaration
func TypeNotFoundError(typeName string, suggestions []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:     "type not found",
		Problem:     typeName,
		Details:     []string{fmt.Sprintf("No declaration for type '%s'.", typeName)},
		Suggestions: suggestions,
		HelpCommands: []string{
			"List declared types: sugar types",
			"Load more declarations: sugar --declarations <file> ...",
		},
		NoColor: noColor,
	})
}

// KindNotFoundError reports an unknown attribute kind name
func KindNotFoundError(kindName string, suggestions []string, known []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context:     "unknown kind",
		Problem:     kindName,
		Details:     []string{"Known kinds: " + strings.Join(known, ", ")},
		Suggestions: suggestions,
		NoColor:     noColor,
	})
}

// DeclarationError reports declaration files that failed to load or validate.
// Each problem is listed on its own line.
func DeclarationError(problems []string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context: "invalid declarations",
		Problem: fmt.Sprintf("%d problem(s)", len(problems)),
		Details: problems,
		HelpCommands: []string{
			"Check declarations: sugar types",
		},
		NoColor: noColor,
	})
}

// ConfigError reports an unusable configuration
func ConfigError(message string, noColor bool) string {
	return FormatError(ErrorOptions{
		Context: "configuration error",
		Problem: message,
		HelpCommands: []string{
			"View config: cat sugar.yml",
			"Get help: sugar --help",
		},
		NoColor: noColor,
	})
}

// Warning creates a warning message
func Warning(message string, noColor bool) string {
	return FormatError(ErrorOptions{Level: ErrorLevelWarning, Problem: message, NoColor: noColor})
}
