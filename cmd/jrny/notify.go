package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/ShayCichocki/jrny/internal/journey"
)

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	fprintStatus(os.Stdout, symbol, message, colorAttr)
}

func fprintStatus(w io.Writer, symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}

// lineNotifier prints coordinator notifications as colored terminal lines.
type lineNotifier struct {
	out io.Writer
}

func (n lineNotifier) PrerequisiteBlocked(_ string, _ int, stepText string) {
	fprintStatus(n.out, "!", journey.BlockedStep{Text: stepText}.Message(), color.FgYellow)
}

func (n lineNotifier) SaveFailed(_ string, err error) {
	fprintStatus(n.out, "✗", fmt.Sprintf("Could not save your progress: %v", err), color.FgRed)
}

func (n lineNotifier) PlanSaved(string) {}

func (n lineNotifier) JourneyDeleted(id string) {
	fprintStatus(n.out, "✓", fmt.Sprintf("Deleted journey %s", id), color.FgGreen)
}

var _ journey.Notifier = lineNotifier{}
