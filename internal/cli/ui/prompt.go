package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// Interactive reports whether stdin and stdout are terminals, so prompting is
// possible.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// SelectType asks the user to pick one of names.
func SelectType(message string, names []string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("no types declared")
	}

	var selected string
	prompt := &survey.Select{
		Message:  message,
		Options:  names,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", fmt.Errorf("type selection cancelled: %w", err)
	}
	return selected, nil
}
