package evidence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zen-systems/taskgate/pkg/intent"
	"github.com/zen-systems/taskgate/pkg/orchestrator"
	"github.com/zen-systems/taskgate/pkg/tool"
)

// RunRecord captures run-level metadata for one orchestration call.
type RunRecord struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Input         string             `json:"input"`
	Intent        string             `json:"intent"`
	Confidence    float64            `json:"confidence"`
	Deterministic bool               `json:"deterministic"`
	Response      string             `json:"response"`
	Error         string             `json:"error,omitempty"`
	Trace         orchestrator.Trace `json:"trace,omitempty"`
}

// Writer writes run records and step results to disk.
type Writer struct {
	baseDir string
	runDir  string
}

// NewWriter creates a new evidence writer rooted at baseDir/runID.
func NewWriter(baseDir, runID string) (*Writer, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if runID == "" {
		return nil, fmt.Errorf("run ID is required")
	}

	runDir := filepath.Join(baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(runDir, "steps"), 0755); err != nil {
		return nil, err
	}

	return &Writer{baseDir: baseDir, runDir: runDir}, nil
}

// NewRunID returns a sortable run identifier: a UTC timestamp plus a
// short random suffix to keep concurrent runs from colliding.
func NewRunID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return time.Now().UTC().Format("20060102T150405Z") + "-" + suffix
}

// RunDir returns the run directory path.
func (w *Writer) RunDir() string {
	return w.runDir
}

// WriteRun writes run metadata to run.json.
func (w *Writer) WriteRun(record RunRecord) error {
	return writeJSON(filepath.Join(w.runDir, "run.json"), record)
}

// WriteSteps writes each step result to steps/NN-<tool>.json in
// execution order.
func (w *Writer) WriteSteps(results []tool.StepResult) error {
	for i, r := range results {
		name := fmt.Sprintf("%02d-%s.json", i+1, r.Tool)
		if err := writeJSON(filepath.Join(w.runDir, "steps", name), r); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult persists a full orchestration result under baseDir using a
// fresh run ID, and returns the run directory.
func WriteResult(baseDir, input string, res *orchestrator.Result) (string, error) {
	writer, err := NewWriter(baseDir, NewRunID())
	if err != nil {
		return "", err
	}

	record := RunRecord{
		ID:            filepath.Base(writer.runDir),
		Timestamp:     time.Now().UTC(),
		Input:         input,
		Intent:        string(intent.TaskUnknown),
		Deterministic: res.Deterministic,
		Response:      res.Response,
		Error:         res.Err,
		Trace:         res.Trace,
	}
	// Runs that fail before classification carry no Classification.
	if c := res.Classification; c != nil {
		record.Intent = string(c.Intent)
		record.Confidence = c.Confidence
	}
	if err := writer.WriteRun(record); err != nil {
		return "", err
	}
	if err := writer.WriteSteps(res.Results); err != nil {
		return "", err
	}
	return writer.RunDir(), nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
