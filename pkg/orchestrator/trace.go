package orchestrator

// State names one stage of the workflow state machine.
type State string

const (
	StateInit          State = "init"
	StateClassifying   State = "classifying"
	StatePlanning      State = "planning"
	StateModelFallback State = "model_fallback"
	StateExecuting     State = "executing"
	StateValidating    State = "validating"
	StateResponding    State = "responding"
	StateComplete      State = "complete"
	StateError         State = "error"
)

// TraceEntry records one pipeline stage reached during a Process call.
type TraceEntry struct {
	State State          `json:"state"`
	Info  map[string]any `json:"info,omitempty"`
}

// Trace is the append-only, per-call record of stages. It is never shared
// across calls.
type Trace []TraceEntry

func (t *Trace) add(state State, info map[string]any) {
	*t = append(*t, TraceEntry{State: state, Info: info})
}
