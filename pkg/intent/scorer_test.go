package intent

import (
	"math"
	"testing"
)

func TestScoreFileRead(t *testing.T) {
	candidates := Score("read file src/agent.js")
	if len(candidates) == 0 {
		t.Fatal("expected candidates")
	}
	top := candidates[0]
	if top.Intent != TaskFileRead {
		t.Fatalf("expected file_read, got %s", top.Intent)
	}
	// One pattern, two keywords, file path boost.
	if math.Abs(top.Confidence-0.7) > 1e-9 {
		t.Fatalf("confidence mismatch: got %.2f want 0.70", top.Confidence)
	}
	if top.PatternMatches != 1 || top.KeywordMatches != 2 {
		t.Fatalf("unexpected match counts: %+v", top)
	}
	if len(top.Entities.FilePaths) != 1 || top.Entities.FilePaths[0] != "src/agent.js" {
		t.Fatalf("unexpected entities: %+v", top.Entities)
	}
}

func TestScoreSortedDescendingStableTies(t *testing.T) {
	candidates := Score("read file src/agent.js")
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Confidence > candidates[i-1].Confidence {
			t.Fatalf("candidates not sorted: %+v", candidates)
		}
	}

	// file_edit and code_analysis both score only the path boost; the tie
	// must keep definition-table order.
	var tied []TaskType
	for _, c := range candidates {
		if math.Abs(c.Confidence-0.2) < 1e-9 {
			tied = append(tied, c.Intent)
		}
	}
	if len(tied) != 2 || tied[0] != TaskFileEdit || tied[1] != TaskCodeAnalysis {
		t.Fatalf("tie order not preserved: %v", tied)
	}
}

func TestScoreGitStatus(t *testing.T) {
	candidates := Score("git status")
	if len(candidates) != 1 || candidates[0].Intent != TaskShellCommand {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
	// Pattern + git keyword + git op boost.
	if math.Abs(candidates[0].Confidence-0.6) > 1e-9 {
		t.Fatalf("confidence mismatch: got %.2f want 0.60", candidates[0].Confidence)
	}
}

func TestScoreClampsAtOne(t *testing.T) {
	text := "fetch get request http api url endpoint https://api.example.com/data"
	candidates := Score(text)
	if candidates[0].Intent != TaskHTTPRequest {
		t.Fatalf("expected http_request, got %s", candidates[0].Intent)
	}
	if candidates[0].Confidence != 1.0 {
		t.Fatalf("expected clamp at 1.0, got %.2f", candidates[0].Confidence)
	}
}

func TestScoreDropsZeroScores(t *testing.T) {
	for _, c := range Score("read file src/agent.js") {
		if c.Confidence <= 0 {
			t.Fatalf("zero-score candidate leaked: %+v", c)
		}
	}
}

func TestScoreRangeProperty(t *testing.T) {
	inputs := []string{
		"read file src/agent.js",
		"git status",
		"npm test",
		"fetch https://example.com/a.json and save it to a file",
		"search for TODO in src",
		"",
	}
	for _, in := range inputs {
		for _, c := range Score(in) {
			if c.Confidence < 0 || c.Confidence > 1 {
				t.Fatalf("confidence out of range for %q: %+v", in, c)
			}
		}
	}
}
