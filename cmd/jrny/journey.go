package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/pkg/models"
)

var (
	createDescription string
	createDuration    string
	createPriority    string
	createEndDate     string
	createNoPlan      bool

	listAll bool

	deleteYes bool
)

var journeyCmd = &cobra.Command{
	Use:     "journey",
	Aliases: []string{"j"},
	Short:   "Create, inspect and update journeys",
}

var journeyCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a journey and generate its plan",
	Long: `Create a journey. The journey is saved immediately as Planned with an
empty plan; the configured AI provider then generates the plan steps and
daily tasks. Generation failures never fail creation.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runJourneyCreate,
}

var journeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journeys, newest first",
	Long: `List your journeys, newest first.

By default only Active journeys are shown. Use --all to include Planned and
Completed journeys.`,
	Args: cobra.NoArgs,
	RunE: runJourneyList,
}

var journeyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a journey and its plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runJourneyShow,
}

var journeyToggleCmd = &cobra.Command{
	Use:   "toggle <id> <step>",
	Short: "Check or uncheck a plan step (1-based)",
	Long: `Toggle a plan step, counted from 1.

Checking a step requires every earlier step to be checked. Unchecking a step
also unchecks every later step.`,
	Args: cobra.ExactArgs(2),
	RunE: runJourneyToggle,
}

var journeyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a journey",
	Args:  cobra.ExactArgs(1),
	RunE:  runJourneyDelete,
}

var journeyStatusCmd = &cobra.Command{
	Use:   "status <id> <Planned|Active|Completed>",
	Short: "Set a journey's status",
	Long: `Set a journey's status explicitly. Completing every step does not mark a
journey Completed; use this command to do so.`,
	Args: cobra.ExactArgs(2),
	RunE: runJourneyStatus,
}

func init() {
	journeyCreateCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Longer description of the goal")
	journeyCreateCmd.Flags().StringVar(&createDuration, "duration", "", "How long the journey should take, e.g. \"3 months\"")
	journeyCreateCmd.Flags().StringVarP(&createPriority, "priority", "p", "", "Low, Medium or High")
	journeyCreateCmd.Flags().StringVar(&createEndDate, "end", "", "Target end date (YYYY-MM-DD)")
	journeyCreateCmd.Flags().BoolVar(&createNoPlan, "no-plan", false, "Skip plan generation")

	journeyListCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include Planned and Completed journeys")

	journeyDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	journeyCmd.AddCommand(journeyCreateCmd)
	journeyCmd.AddCommand(journeyListCmd)
	journeyCmd.AddCommand(journeyShowCmd)
	journeyCmd.AddCommand(journeyToggleCmd)
	journeyCmd.AddCommand(journeyDeleteCmd)
	journeyCmd.AddCommand(journeyStatusCmd)
	journeyCmd.AddCommand(journeyExportCmd)
	journeyCmd.AddCommand(journeyImportCmd)
}

func runJourneyCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	form, err := buildForm(strings.Join(args, " "), createDescription, createDuration, createPriority, createEndDate)
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.creator(ctx, !createNoPlan)
	j, err := c.Create(ctx, form)
	if err != nil {
		return err
	}
	printStatus("✓", fmt.Sprintf("Created journey %s", j.ID), color.FgGreen)

	if !createNoPlan {
		fmt.Println("Generating plan...")
		c.Wait()
	}

	stored, err := a.db.GetJourney(ctx, j.ID)
	if err != nil {
		return err
	}
	if stored != nil {
		fmt.Println()
		printJourney(os.Stdout, stored)
	}
	return nil
}

// buildForm validates command-line input for a new journey.
func buildForm(title, description, duration, priority, endDate string) (models.JourneyForm, error) {
	form := models.JourneyForm{
		Title:       title,
		Description: description,
		Duration:    duration,
	}

	p, err := parsePriority(priority)
	if err != nil {
		return form, err
	}
	form.Priority = p

	if endDate != "" {
		end, err := time.ParseInLocation("2006-01-02", endDate, time.Local)
		if err != nil {
			return form, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", endDate)
		}
		form.EndDate = &end
	}
	return form, nil
}

// parsePriority accepts priorities in any case.
func parsePriority(s string) (models.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "low":
		return models.PriorityLow, nil
	case "medium":
		return models.PriorityMedium, nil
	case "high":
		return models.PriorityHigh, nil
	default:
		return "", fmt.Errorf("invalid priority %q: use Low, Medium or High", s)
	}
}

// parseStatus accepts statuses in any case.
func parseStatus(s string) (models.JourneyStatus, error) {
	for _, st := range []models.JourneyStatus{models.JourneyPlanned, models.JourneyActive, models.JourneyCompleted} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status %q: use Planned, Active or Completed", s)
}

// parseStepArg converts a 1-based step number to a plan index.
func parseStepArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid step %q: use a number from 1", s)
	}
	return n - 1, nil
}

func runJourneyList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	all, err := a.db.ListJourneys(ctx, a.cfg.User.ID)
	if err != nil {
		return err
	}
	list := all
	if !listAll {
		list = journey.ActiveJourneys(all)
	}

	if len(list) == 0 {
		if len(all) > 0 {
			fmt.Printf("No active journeys (%d in total, use --all to see them).\n", len(all))
			return nil
		}
		fmt.Println("No journeys yet. Run 'jrny journey create <title>' to start one.")
		return nil
	}

	printJourneyTable(os.Stdout, list)
	return nil
}

func printJourneyTable(w io.Writer, list []models.Journey) {
	fmt.Fprintf(w, "%-36s  %-9s  %4s  %s\n", "ID", "STATUS", "DONE", "TITLE")
	for _, j := range list {
		fmt.Fprintf(w, "%-36s  %s  %3d%%  %s\n",
			j.ID, statusColor(j.Status).Sprintf("%-9s", j.Status), j.Progress, j.Title)
	}
}

func runJourneyShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	j, err := a.db.GetJourney(ctx, args[0])
	if err != nil {
		return err
	}
	if j == nil {
		return fmt.Errorf("journey %s: %w", args[0], journey.ErrJourneyNotFound)
	}
	printJourney(os.Stdout, j)
	return nil
}

// printJourney prints the journey header and its numbered plan.
func printJourney(w io.Writer, j *models.Journey) {
	bold := color.New(color.Bold)
	bold.Fprintln(w, j.Title)
	if j.Description != "" {
		fmt.Fprintln(w, j.Description)
	}
	fmt.Fprintf(w, "  ID:       %s\n", j.ID)
	fmt.Fprintf(w, "  Status:   %s\n", statusColor(j.Status).Sprint(j.Status))
	completed, total := journey.Counts(j.Plan)
	fmt.Fprintf(w, "  Progress: %d%% (%d/%d steps)\n", j.Progress, completed, total)
	if j.Priority != "" {
		fmt.Fprintf(w, "  Priority: %s\n", j.Priority)
	}
	if j.Duration != "" {
		fmt.Fprintf(w, "  Duration: %s\n", j.Duration)
	}
	if j.EndDate != nil {
		fmt.Fprintf(w, "  Ends:     %s\n", j.EndDate.Local().Format("2006-01-02"))
	}

	fmt.Fprintln(w)
	if first, ok := journey.FirstStep(j.Plan); !ok {
		fmt.Fprintln(w, "  No plan steps yet.")
	} else if completed == 0 {
		fmt.Fprintf(w, "  Start here: %s\n\n", first.Text)
	}
	next := journey.NextUncompletedStep(j.Plan)
	for i, step := range j.Plan {
		switch {
		case step.Completed:
			fmt.Fprintf(w, "  %2d. %s %s\n", i+1, color.GreenString("[x]"), step.Text)
		case i == next:
			fmt.Fprintf(w, "  %2d. [ ] %s\n", i+1, step.Text)
		default:
			fmt.Fprintf(w, "  %2d. %s\n", i+1, color.HiBlackString("[ ] "+step.Text))
		}
	}

	if len(j.DailyTasks) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Daily tasks")
		for _, t := range j.DailyTasks {
			fmt.Fprintf(w, "  • %s\n", t)
		}
	}
}

func statusColor(s models.JourneyStatus) *color.Color {
	switch s {
	case models.JourneyActive:
		return color.New(color.FgYellow)
	case models.JourneyCompleted:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgCyan)
	}
}

func runJourneyToggle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	index, err := parseStepArg(args[1])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := toggleStep(ctx, a.coordinator(lineNotifier{out: os.Stdout}), args[0], index)
	if err != nil {
		return err
	}
	switch res.Outcome {
	case journey.OutcomeApplied:
		step := res.Journey.Plan[index]
		verb := "Unchecked"
		if step.Completed {
			verb = "Checked"
		}
		printStatus("✓", fmt.Sprintf("%s %q (%d%%, %s)", verb, step.Text, res.Journey.Progress, res.Journey.Status), color.FgGreen)
	case journey.OutcomeRolledBack:
		return res.Err
	}
	return nil
}

// toggleStep loads the journey into c and toggles one step.
func toggleStep(ctx context.Context, c *journey.Coordinator, id string, index int) (journey.ToggleResult, error) {
	if _, err := c.Load(ctx, id); err != nil {
		return journey.ToggleResult{}, err
	}
	defer c.Release()
	return c.ToggleStep(ctx, index)
}

func runJourneyDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	c := a.coordinator(lineNotifier{out: os.Stdout})
	j, err := c.Load(ctx, args[0])
	if err != nil {
		return err
	}
	if !deleteYes && !confirm(os.Stdin, fmt.Sprintf("Delete %q?", j.Title)) {
		fmt.Println("Cancelled.")
		return nil
	}
	if err := c.Delete(ctx); err != nil {
		return err
	}
	if err := a.stories().Forget(ctx, j.ID); err != nil {
		a.logger.Log("forget story %s: %v", j.ID, err)
	}
	return nil
}

// confirm asks a yes/no question on r, defaulting to no.
func confirm(r io.Reader, question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var answer string
	fmt.Fscanln(r, &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func runJourneyStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	status, err := parseStatus(args[1])
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.db.SetStatus(ctx, args[0], status); err != nil {
		return err
	}
	printStatus("✓", fmt.Sprintf("Journey %s is now %s", args[0], status), color.FgGreen)
	return nil
}
