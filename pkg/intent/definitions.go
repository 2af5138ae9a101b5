package intent

import "regexp"

// TaskType identifies a supported task category.
type TaskType string

// Known task types. TaskUnknown is only ever produced by the classifier,
// never scored.
const (
	TaskFileRead     TaskType = "file_read"
	TaskFileWrite    TaskType = "file_write"
	TaskFileEdit     TaskType = "file_edit"
	TaskCodeAnalysis TaskType = "code_analysis"
	TaskShellCommand TaskType = "shell_command"
	TaskHTTPRequest  TaskType = "http_request"
	TaskSearch       TaskType = "search"
	TaskTesting      TaskType = "testing"
	TaskUnknown      TaskType = "unknown"
)

// Definition is one immutable row of the classification table.
type Definition struct {
	ID          TaskType
	Patterns    []*regexp.Regexp
	Keywords    []string
	Tools       []string
	EntityBoost float64
}

// definitions is compiled once at package init. Table order is significant:
// the scorer's stable sort preserves it for exact confidence ties.
var definitions = []Definition{
	{
		ID: TaskFileRead,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(read|show|display|view|cat|open)\b.{0,60}\b(file|contents?)\b`),
			regexp.MustCompile(`(?i)\bwhat(?:'s| is) in\b`),
		},
		Keywords:    []string{"read", "show", "display", "view", "file", "content"},
		Tools:       []string{"read_file", "list_directory"},
		EntityBoost: 0.2,
	},
	{
		ID: TaskFileWrite,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(write|create|save|generate)\b.{0,60}\bfile\b`),
			regexp.MustCompile(`(?i)\bnew file\b`),
		},
		Keywords:    []string{"write", "create", "save", "generate", "file"},
		Tools:       []string{"create_file"},
		EntityBoost: 0.2,
	},
	{
		ID: TaskFileEdit,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(edit|modify|update|change|fix|refactor)\b.{0,60}\b(file|code)\b`),
		},
		Keywords:    []string{"edit", "modify", "update", "change", "fix"},
		Tools:       []string{"read_file", "edit_file"},
		EntityBoost: 0.2,
	},
	{
		ID: TaskCodeAnalysis,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(analyze|explain|review|understand)\b.{0,60}\b(code|function|class|file)\b`),
			regexp.MustCompile(`(?i)\bwhat does\b.{0,60}\bdo\b`),
		},
		Keywords:    []string{"analyze", "explain", "review", "code", "function"},
		Tools:       []string{"read_file", "search_files"},
		EntityBoost: 0.2,
	},
	{
		ID: TaskShellCommand,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bgit\s+[a-z]+`),
			regexp.MustCompile(`(?i)\b(run|execute)\b.{0,60}\b(command|script)\b`),
			regexp.MustCompile(`(?i)\b(npm|yarn|pip|cargo|make|docker)\b`),
		},
		Keywords:    []string{"git", "command", "run", "shell", "terminal", "install", "npm", "execute"},
		Tools:       []string{"run_command"},
		EntityBoost: 0.2,
	},
	{
		ID: TaskHTTPRequest,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(fetch|get|post|put|delete|call|request)\b.{0,80}https?://`),
			regexp.MustCompile(`(?i)https?://\S+`),
		},
		Keywords:    []string{"http", "api", "fetch", "request", "url", "endpoint"},
		Tools:       []string{"http_request"},
		EntityBoost: 0.25,
	},
	{
		ID: TaskSearch,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(search|find|grep|look for|locate)\b`),
			regexp.MustCompile(`(?i)\b(search|find|grep|look for|locate)\b.{0,80}\b(in|across|within)\b`),
		},
		Keywords:    []string{"search", "find", "grep", "locate", "look"},
		Tools:       []string{"search_files"},
		EntityBoost: 0,
	},
	{
		ID: TaskTesting,
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\brun\b.{0,40}\btests?\b`),
			regexp.MustCompile(`(?i)\b(unit|integration) tests?\b`),
		},
		Keywords:    []string{"test", "testing", "spec", "coverage"},
		Tools:       []string{"run_command"},
		EntityBoost: 0,
	},
}

// Definitions returns the classification table in scoring order.
func Definitions() []Definition {
	return definitions
}

// Lookup returns the definition for a task type, if one exists.
func Lookup(id TaskType) (Definition, bool) {
	for _, def := range definitions {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
