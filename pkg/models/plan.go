package models

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// PlanStep is a single checklist item of a journey plan.
type PlanStep struct {
	// Text is the human-readable description of the step.
	Text string `json:"text" yaml:"text"`
	// Completed reports whether the user has checked the step off.
	Completed bool `json:"completed" yaml:"completed"`
}

// Plan is the ordered checklist of a journey. Order is significant: step i
// is a prerequisite of step i+1.
type Plan []PlanStep

// Clone returns a deep copy of the plan. A nil plan clones to an empty plan.
func (p Plan) Clone() Plan {
	out := make(Plan, len(p))
	copy(out, p)
	return out
}

// Equal reports whether two plans hold the same steps in the same order.
func (p Plan) Equal(other Plan) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// CompletedCount returns the number of completed steps.
func (p Plan) CompletedCount() int {
	n := 0
	for _, s := range p {
		if s.Completed {
			n++
		}
	}
	return n
}

// Texts returns the step texts in order.
func (p Plan) Texts() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Text
	}
	return out
}

// PlanFromTexts builds a fresh plan where every step is incomplete.
func PlanFromTexts(texts []string) Plan {
	plan := make(Plan, 0, len(texts))
	for _, t := range texts {
		plan = append(plan, PlanStep{Text: t})
	}
	return plan
}

// MigratePlan normalizes any persisted plan shape into a Plan.
//
// Accepted shapes are nil, []string (legacy format), Plan / []PlanStep, and
// the generic []any produced by JSON or YAML decoding. In a generic list,
// strings become incomplete steps, objects are kept as already migrated (a
// missing "text" reads as empty), and anything else is dropped.
func MigratePlan(raw any) Plan {
	switch v := raw.(type) {
	case nil:
		return Plan{}
	case Plan:
		if v == nil {
			return Plan{}
		}
		return v
	case []PlanStep:
		if v == nil {
			return Plan{}
		}
		return Plan(v)
	case []string:
		return PlanFromTexts(v)
	case []any:
		plan := make(Plan, 0, len(v))
		for _, item := range v {
			if step, ok := stepFromAny(item); ok {
				plan = append(plan, step)
			}
		}
		return plan
	default:
		return Plan{}
	}
}

func stepFromAny(item any) (PlanStep, bool) {
	switch e := item.(type) {
	case string:
		return PlanStep{Text: e}, true
	case PlanStep:
		return e, true
	case map[string]any:
		text, _ := e["text"].(string)
		completed, _ := e["completed"].(bool)
		return PlanStep{Text: text, Completed: completed}, true
	default:
		return PlanStep{}, false
	}
}

// UnmarshalJSON decodes both the current object format and the legacy
// string-list format.
func (p *Plan) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}
	if raw == nil {
		*p = Plan{}
		return nil
	}
	if _, ok := raw.([]any); !ok {
		return fmt.Errorf("decode plan: expected a list, got %T", raw)
	}
	*p = MigratePlan(raw)
	return nil
}

// UnmarshalYAML decodes both the current object format and the legacy
// string-list format.
func (p *Plan) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		if node.Tag == "!!null" {
			*p = Plan{}
			return nil
		}
		return fmt.Errorf("decode plan: expected a sequence at line %d", node.Line)
	}
	var raw []any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}
	*p = MigratePlan(raw)
	return nil
}
