package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zen-systems/taskgate/pkg/intent"
	"github.com/zen-systems/taskgate/pkg/planner"
	"github.com/zen-systems/taskgate/pkg/tool"
)

const planningSystemPrompt = "You are a task planner for a tool-running agent. " +
	"Complete the partial plan by filling every null argument and adding any missing steps. " +
	`Return ONLY JSON: {"steps":[{"tool":"...","args":{...}}]}.`

// buildPlanningPrompt renders the structured model-assist prompt: the
// classified intent, the partial plan and the available tool names.
func buildPlanningPrompt(c intent.Classification, p planner.Plan, input string) string {
	partial, _ := json.MarshalIndent(p.Steps, "", "  ")

	var sb strings.Builder
	fmt.Fprintf(&sb, "User request:\n%s\n\n", input)
	fmt.Fprintf(&sb, "Detected intent: %s (confidence %.2f)\n\n", c.Intent, c.Confidence)
	fmt.Fprintf(&sb, "Partial plan:\n%s\n\n", partial)
	fmt.Fprintf(&sb, "Available tools: %s\n", strings.Join(tool.Names(), ", "))
	return sb.String()
}

type planPayload struct {
	Steps []struct {
		Tool string         `json:"tool"`
		Args map[string]any `json:"args"`
	} `json:"steps"`
}

// parsePlanSteps extracts the first well-formed JSON object from model
// output and converts it into plan steps. Code fences and surrounding
// prose are tolerated.
func parsePlanSteps(content string) ([]planner.Step, error) {
	for idx := strings.IndexByte(content, '{'); idx >= 0; {
		var payload planPayload
		dec := json.NewDecoder(strings.NewReader(content[idx:]))
		if err := dec.Decode(&payload); err == nil && len(payload.Steps) > 0 {
			steps := make([]planner.Step, 0, len(payload.Steps))
			for _, s := range payload.Steps {
				if s.Tool == "" {
					return nil, fmt.Errorf("plan step missing tool name")
				}
				steps = append(steps, planner.Step{Tool: s.Tool, Args: s.Args})
			}
			return steps, nil
		}

		next := strings.IndexByte(content[idx+1:], '{')
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return nil, fmt.Errorf("no well-formed plan object in model output")
}
