package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"skyshield/internal/config"
	"skyshield/internal/core"
	"skyshield/internal/platform/tui"
	"skyshield/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play skyshield",
	Long: `Start a local session.

Controls:
  Mouse        - Steer the shield
  Arrows/WASD  - Steer the shield (overrides the mouse while held)
  Enter        - Start from the menu
  P/Esc        - Pause / resume
  R            - Restart (after game over)
  1/2/3        - Shield size: small / normal / large
  [ / ]        - Pointer sensitivity down / up
  V            - Debug overlay
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, ramps to max
  normal - Start at 30% difficulty, ramps to max
  hard   - Start at 70% difficulty, ramps to max
  fixed  - No ramp, stays at the config's initial level

Examples:
  skyshield play
  skyshield play --difficulty hard
  skyshield play --config ./my-skyshield.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&gameCfg, config.DifficultyPreset(flagDifficulty))
	}

	rt := core.DefaultConfig()
	rt.FrameRate = flagFPS
	rt.Seed = flagSeed

	// Get terminal size early
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Play without persistence rather than refusing to start.
		fmt.Fprintf(os.Stderr, "Warning: scores disabled: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(rt, gameCfg, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
