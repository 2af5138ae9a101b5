package intent

import (
	"sort"
	"strings"

	"github.com/zen-systems/taskgate/pkg/entity"
)

// Score weights. Raw sums are clamped to 1.0; scores are deliberately not
// normalized across task types, so near-ties between types carry signal.
const (
	patternWeight = 0.3
	keywordWeight = 0.1
)

// Candidate is one scored task type.
type Candidate struct {
	Intent          TaskType        `json:"intent"`
	Confidence      float64         `json:"confidence"`
	PatternMatches  int             `json:"pattern_matches"`
	KeywordMatches  int             `json:"keyword_matches"`
	Tools           []string        `json:"tools,omitempty"`
	Entities        entity.Entities `json:"entities"`
}

// Score extracts entities from the text and scores it against every task
// type definition. Candidates with confidence 0 are dropped; the rest are
// sorted descending by confidence with exact ties keeping table order.
func Score(text string) []Candidate {
	ents := entity.Extract(text)
	lower := strings.ToLower(text)

	var candidates []Candidate
	for _, def := range definitions {
		patterns := 0
		for _, re := range def.Patterns {
			if re.MatchString(text) {
				patterns++
			}
		}

		keywords := 0
		for _, kw := range def.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				keywords++
			}
		}

		score := float64(patterns)*patternWeight + float64(keywords)*keywordWeight
		if boostApplies(def.ID, ents) {
			score += def.EntityBoost
		}
		if score > 1.0 {
			score = 1.0
		}
		if score <= 0 {
			continue
		}

		candidates = append(candidates, Candidate{
			Intent:         def.ID,
			Confidence:     score,
			PatternMatches: patterns,
			KeywordMatches: keywords,
			Tools:          def.Tools,
			Entities:       ents,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	return candidates
}

// boostApplies reports whether a populated entity category makes the task
// type more likely. The boost is one-time, never scaled by match count.
func boostApplies(id TaskType, ents entity.Entities) bool {
	switch id {
	case TaskFileRead, TaskFileWrite, TaskFileEdit, TaskCodeAnalysis:
		return len(ents.FilePaths) > 0
	case TaskHTTPRequest:
		return len(ents.URLs) > 0
	case TaskShellCommand:
		return len(ents.GitOps) > 0 || len(ents.Packages) > 0
	default:
		return false
	}
}
