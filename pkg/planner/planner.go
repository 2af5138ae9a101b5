package planner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zen-systems/taskgate/pkg/intent"
)

// Step is a single tool invocation. Args may carry nil placeholders for
// values the planner could not fill deterministically; the model-assisted
// planning stage is responsible for populating them, and executors must
// reject a step whose required arg is still nil.
type Step struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// Plan is an ordered list of tool invocations for one classified intent.
type Plan struct {
	Intent        intent.TaskType `json:"intent"`
	Steps         []Step          `json:"steps"`
	RequiresModel bool            `json:"requires_model_for_planning"`
}

var (
	reSearchPhrase = regexp.MustCompile(`(?i)\b(?:search|find|grep|look for|locate)\b\s+(?:for\s+)?['"]?([^'"]+?)['"]?\s+(?:in|across|within)\s+(\S+)`)
	reRunTests     = regexp.MustCompile(`(?i)\brun\b.{0,40}\btests?\b`)
	reHTTPVerb     = regexp.MustCompile(`(?i)\b(post|put|delete|patch|head)\b`)
)

// Build turns a classification and the raw request into a deterministic
// plan. The decision tree is keyed by intent; when a branch cannot finish
// without generative help it flags RequiresModel instead of guessing.
func Build(c intent.Classification, text string) Plan {
	p := Plan{Intent: c.Intent}

	switch c.Intent {
	case intent.TaskFileRead:
		if len(c.Entities.FilePaths) > 0 {
			p.Steps = append(p.Steps, Step{Tool: "read_file", Args: map[string]any{"path": c.Entities.FilePaths[0]}})
		} else {
			// No path to read; list the directory and let the model pick.
			p.Steps = append(p.Steps, Step{Tool: "list_directory", Args: map[string]any{"path": "."}})
			p.RequiresModel = true
		}

	case intent.TaskFileWrite:
		args := map[string]any{"path": nil, "content": nil}
		if len(c.Entities.FilePaths) > 0 {
			args["path"] = c.Entities.FilePaths[0]
		}
		p.Steps = append(p.Steps, Step{Tool: "create_file", Args: args})
		p.RequiresModel = true // content generation always needs a model

	case intent.TaskFileEdit:
		path := any(nil)
		if len(c.Entities.FilePaths) > 0 {
			path = c.Entities.FilePaths[0]
		}
		p.Steps = append(p.Steps,
			Step{Tool: "read_file", Args: map[string]any{"path": path}},
			Step{Tool: "edit_file", Args: map[string]any{"path": path, "edits": nil}},
		)
		p.RequiresModel = true // edit content is unknown until the file is seen

	case intent.TaskShellCommand:
		switch {
		case len(c.Entities.GitOps) > 0:
			op := c.Entities.GitOps[0]
			command := "git " + op.Operation
			if op.Args != "" {
				command += " " + op.Args
			}
			p.Steps = append(p.Steps, Step{Tool: "run_command", Args: map[string]any{"command": command}})
		case len(c.Entities.Packages) > 0:
			installer := "pip install"
			if strings.Contains(strings.ToLower(text), "npm") {
				installer = "npm install"
			}
			command := installer + " " + strings.Join(c.Entities.Packages, " ")
			p.Steps = append(p.Steps, Step{Tool: "run_command", Args: map[string]any{"command": command}})
		default:
			p.RequiresModel = true
		}

	case intent.TaskHTTPRequest:
		if len(c.Entities.URLs) > 0 {
			p.Steps = append(p.Steps, Step{Tool: "http_request", Args: map[string]any{
				"url":    c.Entities.URLs[0],
				"method": parseHTTPMethod(text),
			}})
		} else {
			p.RequiresModel = true
		}

	case intent.TaskSearch:
		if m := reSearchPhrase.FindStringSubmatch(text); m != nil {
			p.Steps = append(p.Steps, Step{Tool: "search_files", Args: map[string]any{
				"pattern": strings.TrimSpace(m[1]),
				"path":    m[2],
			}})
		} else {
			p.RequiresModel = true
		}

	case intent.TaskTesting:
		if reRunTests.MatchString(text) {
			p.Steps = append(p.Steps, Step{Tool: "run_command", Args: map[string]any{"command": "npm test"}})
		} else {
			// Writing or designing tests is generative work.
			p.RequiresModel = true
		}

	default:
		p.RequiresModel = true
	}

	return p
}

// parseHTTPMethod finds an explicit verb keyword in the text, defaulting
// to GET.
func parseHTTPMethod(text string) string {
	if m := reHTTPVerb.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return "GET"
}

// Describe renders a short human-readable summary of the plan.
func Describe(p Plan) string {
	if len(p.Steps) == 0 {
		return fmt.Sprintf("%s: no deterministic steps", p.Intent)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:", p.Intent)
	for i, step := range p.Steps {
		fmt.Fprintf(&sb, " %d) %s", i+1, step.Tool)
	}
	return sb.String()
}
