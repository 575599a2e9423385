package commands

import (
	"github.com/spf13/cobra"

	"github.com/ayazhan/wrkt/internal/config"
	"github.com/ayazhan/wrkt/internal/db"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg is loaded once per process by initDB
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wrkt",
	Short: "A terminal workout session tracker",
	Long: `wrkt tracks workout sessions the way a sports watch does.
Start a session, watch live distance, energy and heart rate readings,
and keep every finished workout in a local log you can export as FIT files.`,
}

// initDB loads the configuration and opens the workout database
func initDB() {
	cfg = config.Load()
	if err := db.Initialize(cfg.DBPath); err != nil {
		panic(err) // For now, panic on DB init failure
	}
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
