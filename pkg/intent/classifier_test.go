package intent

import (
	"reflect"
	"testing"
)

func TestClassifyDeterministicFileRead(t *testing.T) {
	c := Classify("read file src/agent.js", DefaultThreshold)
	if c.Intent != TaskFileRead {
		t.Fatalf("expected file_read, got %s", c.Intent)
	}
	if c.NeedsModel {
		t.Fatalf("expected deterministic classification: %+v", c)
	}
	if c.Reason != ReasonDeterministicMatch {
		t.Fatalf("unexpected reason: %s", c.Reason)
	}
	if c.Confidence < DefaultThreshold {
		t.Fatalf("deterministic match below threshold: %.2f", c.Confidence)
	}
}

func TestClassifyNoPatternMatch(t *testing.T) {
	c := Classify("hello there", DefaultThreshold)
	if c.Intent != TaskUnknown || !c.NeedsModel || c.Reason != ReasonNoPatternMatch {
		t.Fatalf("unexpected classification: %+v", c)
	}
	if c.Confidence != 0 {
		t.Fatalf("expected zero confidence, got %.2f", c.Confidence)
	}
}

func TestClassifyLowConfidence(t *testing.T) {
	c := Classify("please handle the file", DefaultThreshold)
	if !c.NeedsModel || c.Reason != ReasonLowConfidence {
		t.Fatalf("unexpected classification: %+v", c)
	}
	// The top intent is still reported as a hint.
	if c.Intent != TaskFileRead {
		t.Fatalf("expected file_read hint, got %s", c.Intent)
	}
}

func TestClassifyAmbiguousTopScores(t *testing.T) {
	c := Classify("view the file parser.go and explain the code", DefaultThreshold)
	if c.Reason != ReasonAmbiguousTopScores {
		t.Fatalf("expected ambiguous_top_scores, got %s (%+v)", c.Reason, c)
	}
	if !c.NeedsModel {
		t.Fatal("ambiguous classification must need a model")
	}
	if c.Confidence < DefaultThreshold {
		t.Fatalf("ambiguity requires confidence above threshold, got %.2f", c.Confidence)
	}
	if c.Intent != TaskFileRead {
		t.Fatalf("tie should keep table order, got %s", c.Intent)
	}
}

func TestClassifyTopCandidatesCapped(t *testing.T) {
	c := Classify("read file src/agent.js", DefaultThreshold)
	if len(c.TopCandidates) > 3 {
		t.Fatalf("expected at most 3 candidates, got %d", len(c.TopCandidates))
	}
	if len(c.TopCandidates) == 0 || c.TopCandidates[0].Intent != c.Intent {
		t.Fatalf("first candidate should match intent: %+v", c.TopCandidates)
	}
}

func TestClassifyPure(t *testing.T) {
	a := Classify("git status", DefaultThreshold)
	b := Classify("git status", DefaultThreshold)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("classification not pure:\n%+v\n%+v", a, b)
	}
}

func TestClassifyInvariant(t *testing.T) {
	inputs := []string{
		"read file src/agent.js",
		"git status",
		"npm test",
		"please handle the file",
		"view the file parser.go and explain the code",
		"hello there",
	}
	for _, in := range inputs {
		c := Classify(in, DefaultThreshold)
		if !c.NeedsModel {
			if c.Reason != ReasonDeterministicMatch {
				t.Fatalf("%q: deterministic without deterministic_match reason", in)
			}
			if c.Confidence < DefaultThreshold {
				t.Fatalf("%q: deterministic below threshold", in)
			}
		}
	}
}
