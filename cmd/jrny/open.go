package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/internal/tui"
	"github.com/ShayCichocki/jrny/internal/watch"
)

var openNoWatch bool

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open the interactive journey view",
	Long: `Open a journey in the terminal view.

Steps are checked off with space or enter. The view refreshes when another
jrny process changes the database, unless ui.watch is false or --no-watch is
given. Opening the view counts as a daily login for the streak.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().BoolVar(&openNoWatch, "no-watch", false, "Do not refresh on database changes")
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.streak().RecordLogin(ctx); err != nil {
		a.logger.Log("record login: %v", err)
	}

	toasts := tui.NewToastNotifier(16)
	coord := a.coordinator(toasts)
	j, err := coord.Load(ctx, args[0])
	if err != nil {
		return err
	}
	defer coord.Release()

	opts := tui.Options{
		Coordinator: coord,
		Toasts:      toasts,
		Logger:      a.logger,
	}
	if a.cfg.UI.Watch && !openNoWatch {
		w, err := watch.New(a.db.Path(), a.cfg.UI.WatchDebounce, a.logger)
		if err != nil {
			a.logger.Log("watch disabled: %v", err)
		} else {
			defer w.Close()
			opts.Changes = w.Changes()
		}
	}

	deleted, err := tui.Run(ctx, opts)
	if err != nil {
		return err
	}
	if deleted {
		if err := a.stories().Forget(ctx, j.ID); err != nil {
			a.logger.Log("forget story %s: %v", j.ID, err)
		}
		printStatus("✓", fmt.Sprintf("Deleted journey %q", j.Title), color.FgGreen)
		return nil
	}

	if final := coord.Snapshot(); final != nil && coord.Gone() {
		return fmt.Errorf("journey %s: %w", final.ID, journey.ErrJourneyNotFound)
	}
	return nil
}
