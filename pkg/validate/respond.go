package validate

import (
	"fmt"
	"strings"

	"github.com/zen-systems/taskgate/pkg/intent"
	"github.com/zen-systems/taskgate/pkg/planner"
	"github.com/zen-systems/taskgate/pkg/tool"
)

// Respond renders the user-facing response text for a finished plan. The
// success template is used iff validation passed; the error templates fold
// the validation diagnostics into the text. This path never calls a model.
func Respond(id intent.TaskType, outcome Outcome, last tool.StepResult, p planner.Plan) string {
	if outcome.Valid {
		return successResponse(id, last, p)
	}
	return errorResponse(id, outcome, last)
}

func successResponse(id intent.TaskType, last tool.StepResult, p planner.Plan) string {
	switch id {
	case intent.TaskFileRead:
		return fmt.Sprintf("Contents of %s:\n\n%s", last.StringField("path"), last.StringField("content"))

	case intent.TaskFileWrite, intent.TaskFileEdit:
		return fmt.Sprintf("Updated %s.", last.StringField("path"))

	case intent.TaskShellCommand, intent.TaskTesting:
		out := strings.TrimSpace(last.StringField("stdout"))
		if out == "" {
			return fmt.Sprintf("Command `%s` completed.", last.StringField("command"))
		}
		return fmt.Sprintf("Command `%s` completed:\n\n%s", last.StringField("command"), out)

	case intent.TaskHTTPRequest:
		status, _ := last.IntField("status")
		return fmt.Sprintf("%s %s returned %d:\n\n%s",
			last.StringField("method"), last.StringField("url"), status, last.StringField("body"))

	case intent.TaskSearch:
		count, _ := last.IntField("count")
		return fmt.Sprintf("Found %d match(es) for %q.", count, last.StringField("pattern"))

	default:
		return fmt.Sprintf("Done (%s).", planner.Describe(p))
	}
}

func errorResponse(id intent.TaskType, outcome Outcome, last tool.StepResult) string {
	var sb strings.Builder

	switch id {
	case intent.TaskFileRead:
		sb.WriteString("Could not read the requested file")
	case intent.TaskFileWrite, intent.TaskFileEdit:
		sb.WriteString("Could not write the requested file")
	case intent.TaskShellCommand, intent.TaskTesting:
		fmt.Fprintf(&sb, "Command `%s` failed", last.StringField("command"))
	case intent.TaskHTTPRequest:
		fmt.Fprintf(&sb, "Request to %s failed", last.StringField("url"))
	case intent.TaskSearch:
		sb.WriteString("Search failed")
	default:
		sb.WriteString("The task did not complete")
	}

	if outcome.Reason != "" {
		fmt.Fprintf(&sb, " (%s)", outcome.Reason)
	}
	sb.WriteString(".")

	if last.Error != "" {
		fmt.Fprintf(&sb, "\n%s", last.Error)
	}
	if stderr := strings.TrimSpace(last.StringField("stderr")); stderr != "" {
		fmt.Fprintf(&sb, "\n%s", stderr)
	}
	for key, value := range outcome.Details {
		if key == "stderr" || key == "error" {
			continue // already rendered above
		}
		fmt.Fprintf(&sb, "\n%s: %v", key, value)
	}

	return sb.String()
}
