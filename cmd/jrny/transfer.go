package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/internal/state"
	"github.com/ShayCichocki/jrny/pkg/models"
)

var exportOut string

var journeyExportCmd = &cobra.Command{
	Use:   "export [id...]",
	Short: "Export journeys as YAML",
	Long: `Export journeys as YAML. With no IDs, every journey of the current user
is exported. The output can be read back with 'jrny journey import'.`,
	RunE: runJourneyExport,
}

var journeyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import journeys from YAML",
	Long: `Import journeys written by 'jrny journey export'. Journeys keep their IDs
and replace any existing journey with the same ID. Plans written as plain
lists of strings are accepted. Use - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runJourneyImport,
}

func init() {
	journeyExportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to file instead of stdout")
}

// exportFile is the YAML document written by export.
type exportFile struct {
	Journeys []models.Journey `yaml:"journeys"`
}

func runJourneyExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	w := io.Writer(os.Stdout)
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	n, err := exportJourneys(ctx, a.db, a.cfg.User.ID, args, w)
	if err != nil {
		return err
	}
	if exportOut != "" {
		printStatus("✓", fmt.Sprintf("Exported %d journeys to %s", n, exportOut), color.FgGreen)
	}
	return nil
}

// exportJourneys writes the selected journeys, or all of the user's, as YAML.
func exportJourneys(ctx context.Context, db *state.DB, userID string, ids []string, w io.Writer) (int, error) {
	var out exportFile
	if len(ids) == 0 {
		list, err := db.ListJourneys(ctx, userID)
		if err != nil {
			return 0, err
		}
		out.Journeys = list
	}
	for _, id := range ids {
		j, err := db.GetJourney(ctx, id)
		if err != nil {
			return 0, err
		}
		if j == nil {
			return 0, fmt.Errorf("journey %s: %w", id, journey.ErrJourneyNotFound)
		}
		out.Journeys = append(out.Journeys, *j)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode journeys: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("encode journeys: %w", err)
	}
	return len(out.Journeys), nil
}

func runJourneyImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	r := io.Reader(os.Stdin)
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := importJourneys(ctx, a.db, a.cfg.User.ID, r)
	if err != nil {
		return err
	}
	printStatus("✓", fmt.Sprintf("Imported %d journeys", n), color.FgGreen)
	return nil
}

// importJourneys reads an export document and stores every journey in it.
// Journeys without an owner are assigned to userID; a missing status is
// derived from the plan.
func importJourneys(ctx context.Context, db *state.DB, userID string, r io.Reader) (int, error) {
	var in exportFile
	if err := yaml.NewDecoder(r).Decode(&in); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("decode journeys: %w", err)
	}

	for i := range in.Journeys {
		j := &in.Journeys[i]
		if j.UserID == "" {
			j.UserID = userID
		}
		if j.Status == "" {
			j.Status = journey.StatusForPlan(models.JourneyPlanned, j.Plan)
		}
		if err := db.ImportJourney(ctx, j); err != nil {
			return i, fmt.Errorf("import journey %q: %w", j.Title, err)
		}
	}
	return len(in.Journeys), nil
}
