package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Executor runs a named tool with its arguments. Implementations may
// return an error instead of a result; the orchestrator folds either
// outcome into a step result rather than propagating.
type Executor interface {
	Execute(ctx context.Context, name string, args map[string]any) (map[string]any, error)
}

var (
	// ErrUnknownTool is returned for tool names outside the registry.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrUnresolvedArg is returned when a required argument is still a
	// nil placeholder at execution time.
	ErrUnresolvedArg = errors.New("unresolved argument")
)

// requiredArgs maps each tool to the arguments that must be present and
// non-nil before it may run.
var requiredArgs = map[string][]string{
	"read_file":      {"path"},
	"create_file":    {"path", "content"},
	"edit_file":      {"path", "edits"},
	"list_directory": {"path"},
	"run_command":    {"command"},
	"http_request":   {"url", "method"},
	"search_files":   {"pattern", "path"},
}

// Names returns the known tool names in sorted order.
func Names() []string {
	names := make([]string, 0, len(requiredArgs))
	for name := range requiredArgs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkArgs validates that every required argument is present and filled.
func checkArgs(name string, args map[string]any) error {
	required, ok := requiredArgs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	for _, key := range required {
		v, present := args[key]
		if !present || v == nil {
			return fmt.Errorf("%w: %s.%s", ErrUnresolvedArg, name, key)
		}
	}
	return nil
}

// stringArg extracts a string argument after checkArgs has passed.
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string, got %T", key, args[key])
	}
	return v, nil
}
