package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ShayCichocki/jrny/internal/journey"
	"github.com/ShayCichocki/jrny/pkg/models"
)

const journeyColumns = `id, user_id, title, description, status, progress, priority,
	length_of_time, end_date, ai_generated_plan, daily_tasks, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateJourney inserts a journey. An empty ID is replaced with a new UUID,
// zero timestamps with the current time, and an empty status with Planned.
func (db *DB) CreateJourney(ctx context.Context, j *models.Journey) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = models.JourneyPlanned
	}
	if !j.Status.Valid() {
		return fmt.Errorf("create journey: invalid status %q", j.Status)
	}
	if j.Plan == nil {
		j.Plan = models.Plan{}
	}
	if err := journey.CheckPlan(j.Plan); err != nil {
		return fmt.Errorf("create journey: %w", err)
	}
	now := db.clock()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = j.CreatedAt
	}
	j.Progress = journey.Progress(j.Plan)
	j.Status = journey.StatusForPlan(j.Status, j.Plan)

	plan, tasks, err := encodeContent(j.Plan, j.DailyTasks)
	if err != nil {
		return fmt.Errorf("create journey: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO journeys (`+journeyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, j.ID, j.UserID, j.Title, nullString(j.Description), string(j.Status), j.Progress,
		nullString(string(j.Priority)), nullString(j.Duration), formatNullableTime(j.EndDate),
		plan, tasks, formatTime(j.CreatedAt), formatTime(j.UpdatedAt))
	if err != nil {
		return fmt.Errorf("create journey: %w", err)
	}
	return nil
}

// GetJourney retrieves a journey by ID. It returns nil and no error when
// the journey does not exist.
func (db *DB) GetJourney(ctx context.Context, id string) (*models.Journey, error) {
	row := db.QueryRow(ctx, `SELECT `+journeyColumns+` FROM journeys WHERE id = ?`, id)

	j, err := scanJourney(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get journey: %w", err)
	}
	return j, nil
}

// ListJourneys returns the user's journeys, newest first.
func (db *DB) ListJourneys(ctx context.Context, userID string) ([]models.Journey, error) {
	rows, err := db.Query(ctx, `
		SELECT `+journeyColumns+` FROM journeys
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	defer rows.Close()

	var journeys []models.Journey
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journey: %w", err)
		}
		journeys = append(journeys, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journeys: %w", err)
	}
	return journeys, nil
}

// UpdatePlan stores a new plan for the journey and recomputes its progress
// and status in the same transaction.
func (db *DB) UpdatePlan(ctx context.Context, id string, plan models.Plan) error {
	if plan == nil {
		plan = models.Plan{}
	}
	encoded, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	now := formatTime(db.clock())

	err = db.Transaction(ctx, func(tx *sql.Tx) error {
		var current models.JourneyStatus
		err := tx.QueryRowContext(ctx, `SELECT status FROM journeys WHERE id = ?`, id).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return journey.ErrJourneyNotFound
		}
		if err != nil {
			return err
		}

		completed, total := journey.Counts(plan)
		_, err = tx.ExecContext(ctx, `
			UPDATE journeys SET ai_generated_plan = ?, progress = ?, status = ?, updated_at = ?
			WHERE id = ?
		`, string(encoded), journey.Progress(plan), string(journey.NextStatus(current, completed, total)), now, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("update plan for journey %s: %w", id, err)
	}
	return nil
}

// SetGeneratedContent stores a generated plan and daily tasks. Fields that
// already hold content are left alone, so a late generation never replaces
// a plan the user has started working on.
func (db *DB) SetGeneratedContent(ctx context.Context, id string, plan models.Plan, dailyTasks []string) error {
	encodedPlan, encodedTasks, err := encodeContent(plan, dailyTasks)
	if err != nil {
		return fmt.Errorf("set generated content: %w", err)
	}
	now := formatTime(db.clock())

	err = db.Transaction(ctx, func(tx *sql.Tx) error {
		var existingPlan, existingTasks string
		err := tx.QueryRowContext(ctx,
			`SELECT ai_generated_plan, daily_tasks FROM journeys WHERE id = ?`, id,
		).Scan(&existingPlan, &existingTasks)
		if errors.Is(err, sql.ErrNoRows) {
			return journey.ErrJourneyNotFound
		}
		if err != nil {
			return err
		}

		current, err := decodePlan(existingPlan)
		if err != nil {
			return err
		}
		if len(current) == 0 && len(plan) > 0 {
			if _, err := tx.ExecContext(ctx, `
				UPDATE journeys SET ai_generated_plan = ?, progress = ?, updated_at = ? WHERE id = ?
			`, encodedPlan, journey.Progress(plan), now, id); err != nil {
				return err
			}
		}

		tasks, err := decodeTasks(existingTasks)
		if err != nil {
			return err
		}
		if len(tasks) == 0 && len(dailyTasks) > 0 {
			if _, err := tx.ExecContext(ctx, `
				UPDATE journeys SET daily_tasks = ?, updated_at = ? WHERE id = ?
			`, encodedTasks, now, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set generated content for journey %s: %w", id, err)
	}
	return nil
}

// SetStatus sets the journey status explicitly. This is the only way a
// journey becomes Completed.
func (db *DB) SetStatus(ctx context.Context, id string, status models.JourneyStatus) error {
	if !status.Valid() {
		return fmt.Errorf("set status: invalid status %q", status)
	}
	result, err := db.Exec(ctx, `UPDATE journeys SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(db.clock()), id)
	if err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return requireAffected(result, id)
}

// DeleteJourney deletes a journey by ID.
func (db *DB) DeleteJourney(ctx context.Context, id string) error {
	result, err := db.Exec(ctx, "DELETE FROM journeys WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete journey: %w", err)
	}
	return requireAffected(result, id)
}

// ImportJourney inserts or replaces a journey as given, keeping its ID and
// timestamps. Progress and status are recomputed from the plan, and a plan
// that breaks the prerequisite invariant is rejected.
func (db *DB) ImportJourney(ctx context.Context, j *models.Journey) error {
	if j.ID == "" {
		return db.CreateJourney(ctx, j)
	}
	if !j.Status.Valid() {
		return fmt.Errorf("import journey: invalid status %q", j.Status)
	}
	j.Plan = models.MigratePlan(j.Plan)
	if err := journey.CheckPlan(j.Plan); err != nil {
		return fmt.Errorf("import journey %s: %w", j.ID, err)
	}
	j.Progress = journey.Progress(j.Plan)
	j.Status = journey.StatusForPlan(j.Status, j.Plan)
	if j.CreatedAt.IsZero() {
		j.CreatedAt = db.clock()
	}
	if j.UpdatedAt.IsZero() {
		j.UpdatedAt = j.CreatedAt
	}

	plan, tasks, err := encodeContent(j.Plan, j.DailyTasks)
	if err != nil {
		return fmt.Errorf("import journey: %w", err)
	}

	_, err = db.Exec(ctx, `
		INSERT OR REPLACE INTO journeys (`+journeyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, j.ID, j.UserID, j.Title, nullString(j.Description), string(j.Status), j.Progress,
		nullString(string(j.Priority)), nullString(j.Duration), formatNullableTime(j.EndDate),
		plan, tasks, formatTime(j.CreatedAt), formatTime(j.UpdatedAt))
	if err != nil {
		return fmt.Errorf("import journey: %w", err)
	}
	return nil
}

func scanJourney(row rowScanner) (*models.Journey, error) {
	var j models.Journey
	var description, priority, duration, endDate sql.NullString
	var plan, tasks, createdAt, updatedAt string

	err := row.Scan(&j.ID, &j.UserID, &j.Title, &description, &j.Status, &j.Progress,
		&priority, &duration, &endDate, &plan, &tasks, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	j.Description = description.String
	j.Priority = models.Priority(priority.String)
	j.Duration = duration.String
	j.EndDate = parseNullableTime(endDate)
	if j.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("journey %s: created_at: %w", j.ID, err)
	}
	if j.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("journey %s: updated_at: %w", j.ID, err)
	}

	if j.Plan, err = decodePlan(plan); err != nil {
		return nil, fmt.Errorf("journey %s: %w", j.ID, err)
	}
	if j.DailyTasks, err = decodeTasks(tasks); err != nil {
		return nil, fmt.Errorf("journey %s: %w", j.ID, err)
	}
	return &j, nil
}

// decodePlan accepts both the object format and legacy string lists.
func decodePlan(s string) (models.Plan, error) {
	if s == "" {
		return models.Plan{}, nil
	}
	var plan models.Plan
	if err := json.Unmarshal([]byte(s), &plan); err != nil {
		return nil, err
	}
	return models.MigratePlan(plan), nil
}

func decodeTasks(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var tasks []string
	if err := json.Unmarshal([]byte(s), &tasks); err != nil {
		return nil, fmt.Errorf("decode daily tasks: %w", err)
	}
	return tasks, nil
}

func encodeContent(plan models.Plan, tasks []string) (string, string, error) {
	if plan == nil {
		plan = models.Plan{}
	}
	if tasks == nil {
		tasks = []string{}
	}
	p, err := json.Marshal(plan)
	if err != nil {
		return "", "", fmt.Errorf("encode plan: %w", err)
	}
	t, err := json.Marshal(tasks)
	if err != nil {
		return "", "", fmt.Errorf("encode daily tasks: %w", err)
	}
	return string(p), string(t), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("journey %s: %w", id, journey.ErrJourneyNotFound)
	}
	return nil
}
