package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ShayCichocki/jrny/pkg/models"
)

// ErrNoJSON is returned when a model response holds no JSON payload.
var ErrNoJSON = errors.New("no JSON found in response")

// planResponse accepts both the current and the older field names.
type planResponse struct {
	Plan            models.Plan `json:"plan"`
	AIGeneratedPlan models.Plan `json:"aiGeneratedPlan"`
	DailyTasks      []string    `json:"dailyTasks"`
	DailyTasksSnake []string    `json:"daily_tasks"`
}

// ParseResponse extracts a plan breakdown from a model response. The JSON
// may be wrapped in prose or a code fence. A bare array is read as the plan.
// Plan entries may be strings or {"text": ...} objects.
func ParseResponse(response string) (*models.PlanBreakdown, error) {
	objStart := strings.Index(response, "{")
	objEnd := strings.LastIndex(response, "}")
	arrStart := strings.Index(response, "[")
	arrEnd := strings.LastIndex(response, "]")

	if objStart != -1 && objEnd > objStart && (arrStart == -1 || objStart < arrStart) {
		var parsed planResponse
		if err := json.Unmarshal([]byte(response[objStart:objEnd+1]), &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal plan response: %w", err)
		}
		plan := parsed.Plan
		if len(plan) == 0 {
			plan = parsed.AIGeneratedPlan
		}
		tasks := parsed.DailyTasks
		if len(tasks) == 0 {
			tasks = parsed.DailyTasksSnake
		}
		return &models.PlanBreakdown{Plan: cleanTexts(plan.Texts()), DailyTasks: cleanTexts(tasks)}, nil
	}

	if arrStart != -1 && arrEnd > arrStart {
		var plan models.Plan
		if err := json.Unmarshal([]byte(response[arrStart:arrEnd+1]), &plan); err != nil {
			return nil, fmt.Errorf("unmarshal plan list: %w", err)
		}
		return &models.PlanBreakdown{Plan: cleanTexts(plan.Texts())}, nil
	}

	return nil, fmt.Errorf("%w (got %d chars): %q", ErrNoJSON, len(response), previewText(response, 200))
}

// previewText cuts s to at most limit bytes without splitting a rune.
func previewText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "... (truncated)"
}

func cleanTexts(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
