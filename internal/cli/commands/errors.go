package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conduit-lang/sugar/internal/cli/ui"
)

// Prompting hooks, replaced in tests.
var (
	interactive = ui.Interactive
	selectType  = ui.SelectType
)

type unknownTypeError struct {
	name       string
	candidates []string
}

func (e *unknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.name)
}

type unknownKindError struct {
	name       string
	candidates []string
}

func (e *unknownKindError) Error() string {
	return fmt.Sprintf("unknown kind %q", e.name)
}

type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }

func (e *configError) Unwrap() error { return e.err }

type declarationError struct {
	problems []string
}

func (e *declarationError) Error() string {
	return "invalid declarations: " + strings.Join(e.problems, "; ")
}

// problemsOf splits a joined error into one message per line.
func problemsOf(err error) []string {
	var lines []string
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// renderError writes err to w in the CLI's error style.
func renderError(w io.Writer, err error, noColor bool) {
	var (
		typeErr *unknownTypeError
		kindErr *unknownKindError
		cfgErr  *configError
		declErr *declarationError
	)

	switch {
	case errors.As(err, &typeErr):
		fmt.Fprint(w, ui.TypeNotFoundError(typeErr.name, ui.FindSimilar(typeErr.name, typeErr.candidates, nil), noColor))
	case errors.As(err, &kindErr):
		fmt.Fprint(w, ui.KindNotFoundError(kindErr.name, ui.FindSimilar(kindErr.name, kindErr.candidates, nil), kindErr.candidates, noColor))
	case errors.As(err, &cfgErr):
		fmt.Fprint(w, ui.ConfigError(cfgErr.Error(), noColor))
	case errors.As(err, &declErr):
		fmt.Fprint(w, ui.DeclarationError(declErr.problems, noColor))
	default:
		ui.WriteError(w, ui.ErrorOptions{Problem: "Error: " + err.Error(), NoColor: noColor})
	}
}
