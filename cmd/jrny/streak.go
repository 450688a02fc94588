package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var streakRecord bool

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your daily login streak",
	Long: `Show the number of consecutive days jrny was opened and a calendar of
active days this month. Opening a journey view counts as a login; use
--record to count one without opening a journey.`,
	Args: cobra.NoArgs,
	RunE: runStreak,
}

func init() {
	streakCmd.Flags().BoolVar(&streakRecord, "record", false, "Record a login for today first")
}

func runStreak(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tracker := a.streak()
	var count int
	if streakRecord {
		count, err = tracker.RecordLogin(ctx)
	} else {
		count, err = tracker.Current(ctx)
	}
	if err != nil {
		return err
	}

	unit := "days"
	if count == 1 {
		unit = "day"
	}
	fmt.Printf("Streak: %s\n\n", color.New(color.Bold, color.FgYellow).Sprintf("%d %s", count, unit))

	now := time.Now()
	active, err := tracker.ActiveInMonth(ctx, now.Year(), now.Month())
	if err != nil {
		return err
	}
	printCalendar(os.Stdout, now, active)
	return nil
}

// printCalendar prints a Monday-first month grid with active days highlighted.
func printCalendar(w io.Writer, now time.Time, active []int) {
	isActive := make(map[int]bool, len(active))
	for _, d := range active {
		isActive[d] = true
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	days := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7

	fmt.Fprintf(w, "%s\n", first.Format("January 2006"))
	fmt.Fprintln(w, "Mo Tu We Th Fr Sa Su")
	fmt.Fprint(w, strings.Repeat("   ", offset))
	hit := color.New(color.FgGreen, color.Bold)
	for d := 1; d <= days; d++ {
		cell := fmt.Sprintf("%2d", d)
		switch {
		case isActive[d]:
			cell = hit.Sprint(cell)
		case d == now.Day():
			cell = color.New(color.Underline).Sprint(cell)
		}
		fmt.Fprint(w, cell)
		if (offset+d)%7 == 0 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, " ")
		}
	}
	if (offset+days)%7 != 0 {
		fmt.Fprintln(w)
	}
}
