package tool

// StepResult records one executed plan step, in execution order.
// Exactly one of Result and Error is meaningful: executor errors are folded
// into Error with Success false, never propagated.
type StepResult struct {
	Tool    string         `json:"tool"`
	Args    map[string]any `json:"args"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Success bool           `json:"success"`
}

// StringField returns a string value from the step's result map.
func (r StepResult) StringField(key string) string {
	if r.Result == nil {
		return ""
	}
	s, _ := r.Result[key].(string)
	return s
}

// IntField returns an integer value from the step's result map; JSON
// round-trips turn numbers into float64, so both are accepted.
func (r StepResult) IntField(key string) (int, bool) {
	if r.Result == nil {
		return 0, false
	}
	switch v := r.Result[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
