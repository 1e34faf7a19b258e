package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jask/multitimer/internal/cmd"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "multitimer",
		Short: "Run several countdown timers at once",
		Long: `Multitimer keeps an ordered list of labelled countdowns in a terminal UI.
Timers can be paused, reset and deleted; finished ones ring the bell and are
recorded in a local journal.`,
		Version:      version,
		SilenceUsage: true,
		RunE:         cmd.RunTUI,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/multitimer/config.toml)")
	rootCmd.Flags().StringArray("timer", nil, "Timer to start with as label=seconds (repeatable)")

	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewHistoryCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
