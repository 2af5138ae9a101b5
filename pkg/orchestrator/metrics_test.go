package orchestrator

import (
	"context"
	"fmt"
	"testing"

	"github.com/zen-systems/taskgate/pkg/intent"
)

func TestSnapshotRatesMatchCounters(t *testing.T) {
	exec := &fakeExecutor{results: map[string]map[string]any{
		"run_command": {"success": true, "exit_code": 0, "command": "git status"},
		"read_file":   {"success": true, "path": "a.txt", "content": "x"},
	}}
	o := New(exec)

	o.Process(context.Background(), "git status")
	o.Process(context.Background(), "read file a.txt")
	o.Process(context.Background(), "npm test") // degrades without a model

	snap := o.Metrics()
	if snap.TotalTasks != 3 || snap.DeterministicTasks != 2 || snap.ModelFallbacks != 1 {
		t.Fatalf("unexpected counters: %+v", snap)
	}

	wantDet := fmt.Sprintf("%.1f%%", float64(snap.DeterministicTasks)/float64(snap.TotalTasks)*100)
	if snap.DeterministicRate != wantDet {
		t.Fatalf("deterministic rate %s, want %s", snap.DeterministicRate, wantDet)
	}
	wantFall := fmt.Sprintf("%.1f%%", float64(snap.ModelFallbacks)/float64(snap.TotalTasks)*100)
	if snap.ModelFallbackRate != wantFall {
		t.Fatalf("fallback rate %s, want %s", snap.ModelFallbackRate, wantFall)
	}
	if snap.DeterministicRate != "66.7%" {
		t.Fatalf("unexpected rate: %s", snap.DeterministicRate)
	}
}

func TestSnapshotZeroGuard(t *testing.T) {
	o := New(&fakeExecutor{})
	snap := o.Metrics()
	if snap.DeterministicRate != "0.0%" || snap.ModelFallbackRate != "0.0%" {
		t.Fatalf("division guard failed: %+v", snap)
	}
}

func TestByIntentCountsEveryCall(t *testing.T) {
	exec := &fakeExecutor{results: map[string]map[string]any{
		"run_command": {"success": true, "exit_code": 0, "command": "git status"},
	}}
	o := New(exec)

	o.Process(context.Background(), "git status")
	o.Process(context.Background(), "git status")
	o.Process(context.Background(), "hello there")

	snap := o.Metrics()
	if snap.ByIntent[intent.TaskShellCommand] != 2 {
		t.Fatalf("unexpected by-intent counts: %+v", snap.ByIntent)
	}
	if snap.ByIntent[intent.TaskUnknown] != 1 {
		t.Fatalf("unknown not counted: %+v", snap.ByIntent)
	}
}

func TestSnapshotDoesNotMutate(t *testing.T) {
	o := New(&fakeExecutor{})
	before := o.Metrics()
	after := o.Metrics()
	if before.TotalTasks != after.TotalTasks || before.DeterministicRate != after.DeterministicRate {
		t.Fatalf("snapshot mutated state: %+v vs %+v", before, after)
	}
}
