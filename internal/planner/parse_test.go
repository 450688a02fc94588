package planner

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ShayCichocki/jrny/pkg/models"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantPlan  []string
		wantTasks []string
	}{
		{
			name:      "bare object",
			response:  `{"plan": ["Buy shoes", "Run 1k"], "dailyTasks": ["Stretch"]}`,
			wantPlan:  []string{"Buy shoes", "Run 1k"},
			wantTasks: []string{"Stretch"},
		},
		{
			name:      "object in code fence with prose",
			response:  "Here you go:\n```json\n{\"plan\": [\"a\"], \"dailyTasks\": [\"b\"]}\n```\nGood luck!",
			wantPlan:  []string{"a"},
			wantTasks: []string{"b"},
		},
		{
			name:     "older field name with step objects",
			response: `{"aiGeneratedPlan": [{"text": "a", "completed": false}, {"text": "b", "completed": false}]}`,
			wantPlan: []string{"a", "b"},
		},
		{
			name:      "snake case daily tasks",
			response:  `{"plan": ["a"], "daily_tasks": ["t1", "t2"]}`,
			wantPlan:  []string{"a"},
			wantTasks: []string{"t1", "t2"},
		},
		{
			name:     "bare array",
			response: `Steps: ["one", "two", "three"]`,
			wantPlan: []string{"one", "two", "three"},
		},
		{
			name:     "blank entries dropped",
			response: `{"plan": ["a", "  ", ""], "dailyTasks": []}`,
			wantPlan: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.response)
			if err != nil {
				t.Fatalf("ParseResponse error: %v", err)
			}
			if strings.Join(got.Plan, "|") != strings.Join(tt.wantPlan, "|") {
				t.Errorf("Plan = %v, want %v", got.Plan, tt.wantPlan)
			}
			if strings.Join(got.DailyTasks, "|") != strings.Join(tt.wantTasks, "|") {
				t.Errorf("DailyTasks = %v, want %v", got.DailyTasks, tt.wantTasks)
			}
		})
	}
}

func TestParseResponse_Errors(t *testing.T) {
	if _, err := ParseResponse("I cannot help with that."); !errors.Is(err, ErrNoJSON) {
		t.Errorf("prose error = %v, want ErrNoJSON", err)
	}
	if _, err := ParseResponse(`{"plan": "not a list"}`); err == nil {
		t.Error("expected error for non-list plan")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(models.PlanRequest{
		Title:       "Learn piano",
		Description: "Play a song by summer",
		Priority:    models.PriorityHigh,
		Duration:    "6 months",
	})

	for _, want := range []string{"Goal: Learn piano", "Details: Play a song by summer", "Priority: High", "Time frame: 6 months"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	minimal := BuildPrompt(models.PlanRequest{Title: "Read more"})
	if strings.Contains(minimal, "Priority:") || strings.Contains(minimal, "Details:") {
		t.Errorf("empty fields rendered:\n%s", minimal)
	}
}

func TestParseResponse_PreviewKeepsRunesWhole(t *testing.T) {
	response := strings.Repeat("a", 199) + strings.Repeat("é", 10)
	_, err := ParseResponse(response)
	if !errors.Is(err, ErrNoJSON) {
		t.Fatalf("error = %v, want ErrNoJSON", err)
	}
	msg := err.Error()
	if !utf8.ValidString(msg) {
		t.Errorf("error message is not valid UTF-8: %q", msg)
	}
	if strings.Contains(msg, "é") {
		t.Errorf("preview kept a rune past the limit: %q", msg)
	}
	if !strings.Contains(msg, "(truncated)") {
		t.Errorf("preview not marked truncated: %q", msg)
	}

	if got := previewText("héllo", 2); got != "h... (truncated)" {
		t.Errorf("previewText = %q", got)
	}
	if got := previewText("short", 200); got != "short" {
		t.Errorf("previewText = %q", got)
	}
}
