package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/jrny/internal/config"
	"github.com/ShayCichocki/jrny/internal/state"
	"github.com/ShayCichocki/jrny/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and where jrny keeps its data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("jrny version %s\n", version.Build())
			return err
		}
		if dbPathFlag != "" {
			cfg.Storage.Path = dbPathFlag
		}
		printVersion(os.Stdout, cfg, config.GetUserConfigPath(), config.GetProjectConfigPath())
		return nil
	},
}

// printVersion prints the build line followed by the resolved config and
// database locations. It does not open the database.
func printVersion(w io.Writer, cfg *config.Config, userConfig, projectConfig string) {
	fmt.Fprintf(w, "jrny version %s\n", version.Build())
	if projectConfig == "" {
		projectConfig = "none"
	}
	dbPath := cfg.Storage.Path
	if dbPath == "" {
		dbPath = state.DefaultDBPath()
	}
	driver := cfg.Storage.Driver
	if driver == "" {
		driver = state.DriverPureGo
	}
	fmt.Fprintf(w, "  config:   %s (project: %s)\n", userConfig, projectConfig)
	fmt.Fprintf(w, "  database: %s (driver %s)\n", dbPath, driver)
}
