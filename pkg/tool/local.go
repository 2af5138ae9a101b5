package tool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Local executes tools against the local filesystem, shell and network.
// Relative paths are resolved under the working directory and may not
// escape it; absolute paths are used as given.
type Local struct {
	root       string
	httpClient *http.Client
}

// NewLocal creates a local executor rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{
		root:       dir,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Execute dispatches to the named tool. Results carry a "success" flag by
// convention; expected tool failures (nonzero exits, HTTP error statuses)
// are results, not errors.
func (l *Local) Execute(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	if err := checkArgs(name, args); err != nil {
		return nil, err
	}

	switch name {
	case "read_file":
		return l.readFile(args)
	case "create_file":
		return l.createFile(args)
	case "edit_file":
		return l.editFile(args)
	case "list_directory":
		return l.listDirectory(args)
	case "run_command":
		return l.runCommand(ctx, args)
	case "http_request":
		return l.httpRequest(ctx, args)
	case "search_files":
		return l.searchFiles(args)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// resolve joins a relative path against the root and refuses escapes.
// Absolute paths pass through untouched.
func (l *Local) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	full := filepath.Join(l.root, path)
	rel, err := filepath.Rel(l.root, full)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %s escapes the working directory", path)
	}
	return full, nil
}

func (l *Local) readFile(args map[string]any) (map[string]any, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return map[string]any{"success": true, "path": path, "content": string(data)}, nil
}

func (l *Local) createFile(args map[string]any) (map[string]any, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	content, err := stringArg(args, "content")
	if err != nil {
		return nil, err
	}
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return map[string]any{"success": true, "path": path, "bytes": len(content)}, nil
}

// editFile applies whole-string replacements. Each edit is a map with
// "old" and "new" keys; the model-assisted planner produces them.
func (l *Local) editFile(args map[string]any) (map[string]any, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	edits, ok := args["edits"].([]any)
	if !ok {
		return nil, fmt.Errorf("argument edits must be a list, got %T", args["edits"])
	}
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	content := string(data)
	applied := 0
	for _, raw := range edits {
		edit, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		oldText, _ := edit["old"].(string)
		newText, _ := edit["new"].(string)
		if oldText == "" || !strings.Contains(content, oldText) {
			continue
		}
		content = strings.Replace(content, oldText, newText, 1)
		applied++
	}

	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return map[string]any{"success": true, "path": path, "edits_applied": applied}, nil
}

func (l *Local) listDirectory(args map[string]any) (map[string]any, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(full)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	return map[string]any{"success": true, "path": path, "entries": names}, nil
}

func (l *Local) runCommand(ctx context.Context, args map[string]any) (map[string]any, error) {
	command, err := stringArg(args, "command")
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = l.root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if runErr != nil {
		exitErr, ok := runErr.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("run %q: %w", command, runErr)
		}
		exitCode = exitErr.ExitCode()
	}

	return map[string]any{
		"success":     exitCode == 0,
		"command":     command,
		"stdout":      stdout.String(),
		"stderr":      stderr.String(),
		"exit_code":   exitCode,
		"duration_ms": duration.Milliseconds(),
	}, nil
}

func (l *Local) httpRequest(ctx context.Context, args map[string]any) (map[string]any, error) {
	url, err := stringArg(args, "url")
	if err != nil {
		return nil, err
	}
	method, err := stringArg(args, "method")
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if raw, ok := args["body"].(string); ok && raw != "" {
		body = strings.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"success": resp.StatusCode < 400,
		"url":     url,
		"method":  method,
		"status":  resp.StatusCode,
		"body":    string(data),
	}, nil
}

func (l *Local) searchFiles(args map[string]any) (map[string]any, error) {
	pattern, err := stringArg(args, "pattern")
	if err != nil {
		return nil, err
	}
	path, err := stringArg(args, "path")
	if err != nil {
		return nil, err
	}
	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	var matches []map[string]any
	walkErr := filepath.WalkDir(full, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil // unreadable files are skipped, not fatal
		}
		for i, line := range strings.Split(string(data), "\n") {
			if strings.Contains(line, pattern) {
				rel, _ := filepath.Rel(l.root, p)
				matches = append(matches, map[string]any{
					"file": rel,
					"line": i + 1,
					"text": strings.TrimSpace(line),
				})
			}
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("search %s: %w", path, walkErr)
	}

	return map[string]any{
		"success": true,
		"pattern": pattern,
		"matches": matches,
		"count":   len(matches),
	}, nil
}
