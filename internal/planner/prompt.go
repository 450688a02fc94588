package planner

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/jrny/pkg/models"
)

const systemPrompt = `You are a goal coach. You break a personal goal into a short, ordered plan
of concrete steps and suggest a few small daily tasks that keep momentum.

Rules:
- Steps are sequential: each step assumes the previous ones are done.
- Between 4 and 10 steps, each one sentence, imperative mood.
- Between 2 and 5 daily tasks, each doable in under 30 minutes.
- Respond with ONLY a JSON object, no prose, in this exact shape:
{"plan": ["step one", "step two"], "dailyTasks": ["task one", "task two"]}`

// BuildPrompt renders the user message for a plan request.
func BuildPrompt(req models.PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Goal: %s\n", req.Title)
	if req.Description != "" {
		fmt.Fprintf(&b, "Details: %s\n", req.Description)
	}
	if req.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", req.Priority)
	}
	if req.Duration != "" {
		fmt.Fprintf(&b, "Time frame: %s\n", req.Duration)
	}
	b.WriteString("\nReturn the plan and daily tasks as JSON.")
	return b.String()
}
