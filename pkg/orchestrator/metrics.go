package orchestrator

import (
	"fmt"

	"github.com/zen-systems/taskgate/pkg/adapter"
	"github.com/zen-systems/taskgate/pkg/intent"
)

// Metrics holds the mutable counters owned by one Orchestrator instance.
// They start at zero at construction, are mutated once per Process call
// and are never reset automatically. The struct is not safe for
// concurrent Process calls on the same instance.
type Metrics struct {
	TotalTasks            int64
	DeterministicTasks    int64
	ModelFallbacks        int64
	ModelCallsForPlanning int64
	ModelCallsForResponse int64
	Errors                int64
	PromptTokens          int64
	CompletionTokens      int64
	ByIntent              map[intent.TaskType]int64
}

func newMetrics() Metrics {
	return Metrics{ByIntent: make(map[intent.TaskType]int64)}
}

func (m *Metrics) addUsage(u *adapter.Usage) {
	if u == nil {
		return
	}
	m.PromptTokens += u.PromptTokens
	m.CompletionTokens += u.CompletionTokens
}

// Snapshot is a derived, read-only view of the metrics.
type Snapshot struct {
	TotalTasks            int64                     `json:"total_tasks"`
	DeterministicTasks    int64                     `json:"deterministic_tasks"`
	ModelFallbacks        int64                     `json:"model_fallbacks"`
	ModelCallsForPlanning int64                     `json:"model_calls_for_planning"`
	ModelCallsForResponse int64                     `json:"model_calls_for_response"`
	Errors                int64                     `json:"errors"`
	PromptTokens          int64                     `json:"prompt_tokens"`
	CompletionTokens      int64                     `json:"completion_tokens"`
	ByIntent              map[intent.TaskType]int64 `json:"by_intent"`
	DeterministicRate     string                    `json:"deterministic_rate"`
	ModelFallbackRate     string                    `json:"model_fallback_rate"`
}

// Snapshot derives percentage rates without mutating the counters. The
// denominator floors at 1 so a fresh instance reports 0.0% rates.
func (m *Metrics) Snapshot() Snapshot {
	denom := m.TotalTasks
	if denom == 0 {
		denom = 1
	}

	byIntent := make(map[intent.TaskType]int64, len(m.ByIntent))
	for k, v := range m.ByIntent {
		byIntent[k] = v
	}

	return Snapshot{
		TotalTasks:            m.TotalTasks,
		DeterministicTasks:    m.DeterministicTasks,
		ModelFallbacks:        m.ModelFallbacks,
		ModelCallsForPlanning: m.ModelCallsForPlanning,
		ModelCallsForResponse: m.ModelCallsForResponse,
		Errors:                m.Errors,
		PromptTokens:          m.PromptTokens,
		CompletionTokens:      m.CompletionTokens,
		ByIntent:              byIntent,
		DeterministicRate:     fmt.Sprintf("%.1f%%", float64(m.DeterministicTasks)/float64(denom)*100),
		ModelFallbackRate:     fmt.Sprintf("%.1f%%", float64(m.ModelFallbacks)/float64(denom)*100),
	}
}
