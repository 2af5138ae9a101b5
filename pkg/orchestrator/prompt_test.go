package orchestrator

import (
	"strings"
	"testing"

	"github.com/zen-systems/taskgate/pkg/intent"
	"github.com/zen-systems/taskgate/pkg/planner"
)

func TestParsePlanStepsPlainJSON(t *testing.T) {
	steps, err := parsePlanSteps(`{"steps":[{"tool":"read_file","args":{"path":"a.txt"}}]}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(steps) != 1 || steps[0].Tool != "read_file" || steps[0].Args["path"] != "a.txt" {
		t.Fatalf("unexpected steps: %+v", steps)
	}
}

func TestParsePlanStepsWithProseAndFences(t *testing.T) {
	content := "Sure! Here's the plan:\n```json\n" +
		`{"steps":[{"tool":"run_command","args":{"command":"npm test"}}]}` +
		"\n```\nLet me know if you need more."
	steps, err := parsePlanSteps(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(steps) != 1 || steps[0].Tool != "run_command" {
		t.Fatalf("unexpected steps: %+v", steps)
	}
}

func TestParsePlanStepsSkipsMalformedObjects(t *testing.T) {
	content := `{"oops": } {"steps":[{"tool":"list_directory","args":{"path":"."}}]}`
	steps, err := parsePlanSteps(content)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(steps) != 1 || steps[0].Tool != "list_directory" {
		t.Fatalf("unexpected steps: %+v", steps)
	}
}

func TestParsePlanStepsRejectsGarbage(t *testing.T) {
	if _, err := parsePlanSteps("no json here"); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := parsePlanSteps(`{"steps":[]}`); err == nil {
		t.Fatal("empty step list is not a usable plan")
	}
	if _, err := parsePlanSteps(`{"steps":[{"args":{}}]}`); err == nil {
		t.Fatal("step without tool name must be rejected")
	}
}

func TestBuildPlanningPrompt(t *testing.T) {
	c := intent.Classification{Intent: intent.TaskFileWrite, Confidence: 0.5}
	p := planner.Plan{Intent: intent.TaskFileWrite, Steps: []planner.Step{
		{Tool: "create_file", Args: map[string]any{"path": "a.txt", "content": nil}},
	}}

	prompt := buildPlanningPrompt(c, p, "write a file about cats")
	for _, want := range []string{"file_write", "create_file", "run_command", "write a file about cats"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
