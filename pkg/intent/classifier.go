package intent

import "github.com/zen-systems/taskgate/pkg/entity"

// DefaultThreshold is the confidence required for a deterministic match.
const DefaultThreshold = 0.4

// ambiguityMargin is the minimum lead the top candidate needs over the
// runner-up before the match counts as deterministic.
const ambiguityMargin = 0.1

// Reason explains a classification outcome.
type Reason string

const (
	ReasonNoPatternMatch     Reason = "no_pattern_match"
	ReasonDeterministicMatch Reason = "deterministic_match"
	ReasonAmbiguousTopScores Reason = "ambiguous_top_scores"
	ReasonLowConfidence      Reason = "low_confidence"
)

// Classification is the classifier's verdict for one input.
// Invariant: NeedsModel == false implies Reason == deterministic_match and
// Confidence >= the threshold used.
type Classification struct {
	Intent        TaskType        `json:"intent"`
	Confidence    float64         `json:"confidence"`
	NeedsModel    bool            `json:"needs_model"`
	Reason        Reason          `json:"reason"`
	Tools         []string        `json:"tools,omitempty"`
	Entities      entity.Entities `json:"entities"`
	TopCandidates []Candidate     `json:"top_candidates,omitempty"`
}

// Classify scores the text and applies the threshold and ambiguity rules.
// Pure and synchronous; identical input and threshold always yield the
// identical classification.
func Classify(text string, threshold float64) Classification {
	candidates := Score(text)
	if len(candidates) == 0 {
		return Classification{
			Intent:     TaskUnknown,
			Confidence: 0,
			NeedsModel: true,
			Reason:     ReasonNoPatternMatch,
		}
	}

	top := candidates[0]
	c := Classification{
		Intent:        top.Intent,
		Confidence:    top.Confidence,
		Tools:         top.Tools,
		Entities:      top.Entities,
		TopCandidates: topN(candidates, 3),
	}

	if top.Confidence < threshold {
		// The intent is still reported, but only as a hint.
		c.NeedsModel = true
		c.Reason = ReasonLowConfidence
		return c
	}

	if len(candidates) > 1 && top.Confidence-candidates[1].Confidence < ambiguityMargin {
		c.NeedsModel = true
		c.Reason = ReasonAmbiguousTopScores
		return c
	}

	c.NeedsModel = false
	c.Reason = ReasonDeterministicMatch
	return c
}

func topN(candidates []Candidate, n int) []Candidate {
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates
}
