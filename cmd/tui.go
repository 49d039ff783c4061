package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mica/internal/services"
	"github.com/desertthunder/mica/internal/shared"
	"github.com/desertthunder/mica/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive artist browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	if path := r.config.Log.File; path != "" {
		fileLogger, err := shared.NewFileLogger(path)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		fileLogger.SetLevel(r.logger.GetLevel())
		r.SetLogger(fileLogger)
	}

	var player services.Player
	if cmd.Bool("demo") {
		player = services.NewDemoPlayer()
	} else if player, err = r.newPlayer(r); err != nil {
		return err
	}
	defer player.Disconnect()

	model := ui.NewModel(ctx, ui.Options{
		Player:       player,
		Catalog:      catalog,
		Logger:       r.logger,
		TickInterval: r.config.Player.Tick(),
		SeekStep:     r.config.Player.Step(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
