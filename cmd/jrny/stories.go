package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/jrny/internal/journey"
)

var storiesCmd = &cobra.Command{
	Use:   "stories [id]",
	Short: "Show today's daily tasks",
	Long: `Without arguments, list the Active journeys that have daily tasks and
whether they were viewed today. With a journey ID, print its daily tasks and
mark them viewed for today.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStories,
}

func runStories(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tracker := a.stories()

	if len(args) == 1 {
		j, err := a.db.GetJourney(ctx, args[0])
		if err != nil {
			return err
		}
		if j == nil {
			return fmt.Errorf("journey %s: %w", args[0], journey.ErrJourneyNotFound)
		}
		color.New(color.Bold).Println(j.Title)
		if len(j.DailyTasks) == 0 {
			fmt.Println("  No daily tasks.")
			return nil
		}
		for _, t := range j.DailyTasks {
			fmt.Printf("  • %s\n", t)
		}
		return tracker.MarkViewed(ctx, j.ID)
	}

	all, err := a.db.ListJourneys(ctx, a.cfg.User.ID)
	if err != nil {
		return err
	}
	list := journey.StoryJourneys(all)
	if len(list) == 0 {
		fmt.Println("No daily tasks today. Check off a step to make a journey Active.")
		return nil
	}

	ids := make([]string, len(list))
	for i, j := range list {
		ids[i] = j.ID
	}
	viewed, err := tracker.ViewedToday(ctx, ids)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(viewed))
	for _, id := range viewed {
		seen[id] = true
	}

	for _, j := range list {
		marker := color.New(color.FgMagenta, color.Bold).Sprint("●")
		if seen[j.ID] {
			marker = color.HiBlackString("○")
		}
		fmt.Printf("%s %s  %s (%d tasks)\n", marker, j.ID, j.Title, len(j.DailyTasks))
	}
	return nil
}
