package tool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestReadAndCreateFile(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)
	ctx := context.Background()

	res, err := l.Execute(ctx, "create_file", map[string]any{"path": "notes/a.txt", "content": "hello"})
	if err != nil {
		t.Fatalf("create_file: %v", err)
	}
	if res["success"] != true {
		t.Fatalf("unexpected result: %v", res)
	}

	res, err = l.Execute(ctx, "read_file", map[string]any{"path": "notes/a.txt"})
	if err != nil {
		t.Fatalf("read_file: %v", err)
	}
	if res["content"] != "hello" {
		t.Fatalf("unexpected content: %v", res)
	}
}

func TestUnresolvedArgRejected(t *testing.T) {
	l := NewLocal(t.TempDir())

	_, err := l.Execute(context.Background(), "create_file", map[string]any{"path": "a.txt", "content": nil})
	if !errors.Is(err, ErrUnresolvedArg) {
		t.Fatalf("expected ErrUnresolvedArg, got %v", err)
	}

	_, err = l.Execute(context.Background(), "read_file", map[string]any{})
	if !errors.Is(err, ErrUnresolvedArg) {
		t.Fatalf("expected ErrUnresolvedArg for missing arg, got %v", err)
	}
}

func TestUnknownToolRejected(t *testing.T) {
	l := NewLocal(t.TempDir())
	_, err := l.Execute(context.Background(), "launch_rocket", map[string]any{})
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestEditFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "m.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLocal(dir)

	edits := []any{map[string]any{"old": "package main", "new": "package app"}}
	res, err := l.Execute(context.Background(), "edit_file", map[string]any{"path": "m.go", "edits": edits})
	if err != nil {
		t.Fatalf("edit_file: %v", err)
	}
	if res["edits_applied"] != 1 {
		t.Fatalf("unexpected result: %v", res)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "m.go"))
	if !strings.Contains(string(data), "package app") {
		t.Fatalf("edit not applied: %s", data)
	}
}

func TestListDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewLocal(dir).Execute(context.Background(), "list_directory", map[string]any{"path": "."})
	if err != nil {
		t.Fatalf("list_directory: %v", err)
	}
	entries := res["entries"].([]string)
	if len(entries) != 2 {
		t.Fatalf("unexpected entries: %v", entries)
	}
}

func TestRunCommandCapturesFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}
	l := NewLocal(t.TempDir())

	res, err := l.Execute(context.Background(), "run_command", map[string]any{"command": "echo boom >&2; exit 1"})
	if err != nil {
		t.Fatalf("nonzero exit must be a result, not an error: %v", err)
	}
	if res["success"] != false || res["exit_code"] != 1 {
		t.Fatalf("unexpected result: %v", res)
	}
	if !strings.Contains(res["stderr"].(string), "boom") {
		t.Fatalf("stderr not captured: %v", res)
	}
}

func TestSearchFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.go"), []byte("x\n// TODO fix\ny\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewLocal(dir).Execute(context.Background(), "search_files", map[string]any{"pattern": "TODO", "path": "."})
	if err != nil {
		t.Fatalf("search_files: %v", err)
	}
	if res["count"] != 1 {
		t.Fatalf("unexpected result: %v", res)
	}
}

func TestPathEscapeRejected(t *testing.T) {
	l := NewLocal(t.TempDir())
	_, err := l.Execute(context.Background(), "read_file", map[string]any{"path": "../../etc/passwd"})
	if err == nil {
		t.Fatal("expected escape rejection")
	}
}

func TestAbsolutePathAllowed(t *testing.T) {
	other := t.TempDir()
	target := filepath.Join(other, "abs.txt")
	if err := os.WriteFile(target, []byte("rooted"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	// Extracted entities include /-rooted tokens, so absolute paths are
	// taken as given rather than re-rooted under the workdir.
	l := NewLocal(t.TempDir())
	res, err := l.Execute(context.Background(), "read_file", map[string]any{"path": target})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res["content"] != "rooted" {
		t.Fatalf("unexpected result: %v", res)
	}
}
