// Package validate holds the per-intent result validators and response
// templates. Both dispatch over a closed switch on the intent with an
// explicit default arm; there are no string-keyed registries to typo into.
package validate

import (
	"fmt"

	"github.com/zen-systems/taskgate/pkg/intent"
	"github.com/zen-systems/taskgate/pkg/tool"
)

// Outcome is the deterministic verdict for the final step of a plan.
type Outcome struct {
	Valid   bool           `json:"valid"`
	Reason  string         `json:"reason,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Check validates the last step result for the given intent. Unknown
// intents fall through to the default validator, which trusts the step's
// success flag.
func Check(id intent.TaskType, last tool.StepResult) Outcome {
	switch id {
	case intent.TaskFileRead:
		return checkFileRead(last)
	case intent.TaskFileWrite, intent.TaskFileEdit:
		return checkSuccessFlag(last)
	case intent.TaskShellCommand, intent.TaskTesting:
		return checkCommand(last)
	case intent.TaskHTTPRequest:
		return checkHTTP(last)
	default:
		return checkSuccessFlag(last)
	}
}

func checkFileRead(last tool.StepResult) Outcome {
	if !last.Success {
		return executionFailure(last)
	}
	if last.StringField("content") == "" {
		return Outcome{Valid: false, Reason: "empty_content"}
	}
	return Outcome{Valid: true}
}

func checkCommand(last tool.StepResult) Outcome {
	if !last.Success && last.Error != "" {
		return executionFailure(last)
	}
	if code, ok := last.IntField("exit_code"); ok && code != 0 {
		return Outcome{
			Valid:   false,
			Reason:  fmt.Sprintf("exit_code_%d", code),
			Details: map[string]any{"stderr": last.StringField("stderr")},
		}
	}
	if !last.Success {
		return Outcome{Valid: false, Reason: "command_failed"}
	}
	return Outcome{Valid: true}
}

func checkHTTP(last tool.StepResult) Outcome {
	if !last.Success && last.Error != "" {
		return executionFailure(last)
	}
	if status, ok := last.IntField("status"); ok && status >= 400 {
		return Outcome{
			Valid:   false,
			Reason:  fmt.Sprintf("http_status_%d", status),
			Details: map[string]any{"status": status},
		}
	}
	if !last.Success {
		return Outcome{Valid: false, Reason: "request_failed"}
	}
	return Outcome{Valid: true}
}

func checkSuccessFlag(last tool.StepResult) Outcome {
	if !last.Success {
		return executionFailure(last)
	}
	return Outcome{Valid: true}
}

func executionFailure(last tool.StepResult) Outcome {
	o := Outcome{Valid: false, Reason: "execution_error"}
	if last.Error != "" {
		o.Details = map[string]any{"error": last.Error}
	}
	return o
}
