package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	dbPathFlag string
	userFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "jrny",
	Short: "Track goals as step-by-step journeys",
	Long: `jrny tracks goals as journeys: an ordered plan of steps checked off
in sequence, with progress and status derived from the plan.

New journeys get a plan generated by the configured AI provider in the
background. Steps must be completed in order; unchecking a step also unchecks
every step after it.

Run 'jrny open <id>' for the interactive journey view.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "Database file (overrides storage.path)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User ID (overrides user.id)")

	rootCmd.AddCommand(journeyCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(storiesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
