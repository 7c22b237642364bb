package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/jwulff/briefcast/internal/config"
	"github.com/jwulff/briefcast/internal/generation"
)

// promptConfirm is a test hook for replacing the confirmation prompt.
var promptConfirm = defaultPromptConfirm

func defaultPromptConfirm(in io.Reader, out io.Writer, question string) bool {
	if !isTerminal(in) {
		return false
	}

	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithInput(in).WithOutput(out).Run()

	if err != nil {
		return false
	}
	return confirmed
}

// requestAnswers holds the generate form values.
type requestAnswers struct {
	Name     string
	Voice    string
	Language string
}

// promptRequest asks for whatever the flags left empty.
func promptRequest(in io.Reader, out io.Writer, initial requestAnswers) (requestAnswers, error) {
	answers := initial

	langOptions := make([]huh.Option[string], 0, len(generation.Languages))
	for _, l := range generation.Languages {
		langOptions = append(langOptions, huh.NewOption(l.String(), l.Code()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Podcast name").
				Description("Topic or title for the brief").
				Placeholder("Daily Market Brief").
				Value(&answers.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Voice").
				Options(huh.NewOptions(config.Voices...)...).
				Value(&answers.Voice),
			huh.NewSelect[string]().
				Title("Language").
				Options(langOptions...).
				Value(&answers.Language),
		),
	).
		WithInput(in).
		WithOutput(out)

	if err := form.Run(); err != nil {
		return requestAnswers{}, fmt.Errorf("prompt: %w", err)
	}
	return answers, nil
}
