// skyshield is a terminal arcade survival game: keep a fragile ascending
// balloon clear of procedurally spawned obstacles with a pointer-steered
// shield. Any contact ends the run.
//
// Usage:
//
//	skyshield play              - Play locally
//	skyshield scores            - Show best runs
//	skyshield serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set display frame rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.skyshield/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyshield",
	Short: "Skyshield - Keep the balloon alive in your terminal",
	Long: `Skyshield is a single-input survival game. A balloon climbs on its own,
ever faster; you steer a deflector shield with the mouse or arrow keys and
knock falling debris, spikes, rotors, sweepers and shards out of its path.
One touch on the balloon ends the run.

Examples:
  skyshield play
  skyshield play --difficulty hard
  skyshield scores
  skyshield serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyshield/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
