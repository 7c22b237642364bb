package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jwulff/briefcast/internal/app"
	"github.com/jwulff/briefcast/internal/config"
	"github.com/jwulff/briefcast/internal/playback"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal UI (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, ctx)
		},
	}
}

func runTUI(cmd *cobra.Command, ctx *commandContext) error {
	defer ctx.close()
	if err := ctx.acquireLock(); err != nil {
		return err
	}
	ctrl, err := ctx.controller(cmd)
	if err != nil {
		return err
	}
	cfg := ctx.config
	logger := ctx.ensureLogger()

	model := app.New(app.Options{
		Controller:      ctrl,
		Prober:          playback.FFprobe{Binary: cfg.Playback.FFprobe},
		Player:          ctx.player(),
		BaseURL:         cfg.Service.BaseURL,
		TickInterval:    cfg.TickInterval(),
		Voices:          config.Voices,
		DefaultVoice:    cfg.Workflow.DefaultVoice,
		DefaultLanguage: cfg.Language(),
		Context:         cmd.Context(),
		Logger:          logger,
	})

	logger.Info("tui starting", "demo", cfg.Service.Demo, "base_url", cfg.Service.BaseURL)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
