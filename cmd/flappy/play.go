package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Space/Up/W/Click  - Flap (and start a run)
  P/Esc             - Pause
  Q/Ctrl+C          - Quit

The terminal belongs to the game while it runs, so logs are only written
when --log-file is given.`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) error {
	var w io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger, err := newLogger(w, "flappy")
	if err != nil {
		return err
	}

	game, err := registry.Create("flappy", registry.Options{ConfigPath: flagConfig, Logger: logger})
	if err != nil {
		return err
	}

	width, height := 80, 24
	if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = tw, th
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if err := tui.Run(game, cfg, logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
