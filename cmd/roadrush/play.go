package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/road-rush/internal/core"
	"github.com/vovakirdan/road-rush/internal/platform/tui"
	"github.com/vovakirdan/road-rush/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Road Rush in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/WASD - Steer (up/down at half speed)
  Enter/Space - Start
  P/Esc       - Pause
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - 5 lives
  normal - 3 lives, levels up every threshold
  hard   - 2 lives, faster traffic from the start
  fixed  - No progression, stays at the initial level

Every finished run is recorded in the journal (see 'roadrush runs').

Examples:
  roadrush play
  roadrush play --difficulty hard
  roadrush play --seed 42 --log-file roadrush.log
  roadrush play --config ./my-road.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Name recorded with each run")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadSettings()
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	// The terminal belongs to the game; logs go to the file or nowhere.
	var logOut io.Writer = io.Discard
	if logFile != nil {
		defer logFile.Close()
		logOut = logFile
	}
	logger, err := newLogger(logOut, "roadrush")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Info("starting", "preset", preset, "seed", flagSeed, "fps", flagFPS)
	runErr := tui.Run(cfg, store, rt, tui.RunInfo{Player: flagPlayer, Preset: string(preset)}, logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
