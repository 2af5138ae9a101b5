// Package orchestrator drives the workflow state machine: classification,
// deterministic planning, optional model assistance, execution, validation
// and response templating, with per-instance metrics.
package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zen-systems/taskgate/pkg/adapter"
	"github.com/zen-systems/taskgate/pkg/intent"
	"github.com/zen-systems/taskgate/pkg/planner"
	"github.com/zen-systems/taskgate/pkg/tool"
	"github.com/zen-systems/taskgate/pkg/validate"
)

// Orchestrator sequences one request through the pipeline. An instance
// owns its metrics; Process is not safe for concurrent calls on the same
// instance because counter updates are plain increments.
type Orchestrator struct {
	executor   tool.Executor
	model      adapter.Adapter // optional; nil disables all model paths
	threshold  float64
	maxRetries int // accepted for config compatibility, never consulted
	logger     *zap.Logger
	metrics    Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithModelAdapter sets the optional model adapter.
func WithModelAdapter(a adapter.Adapter) Option {
	return func(o *Orchestrator) { o.model = a }
}

// WithThreshold overrides the classification confidence threshold.
func WithThreshold(threshold float64) Option {
	return func(o *Orchestrator) { o.threshold = threshold }
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithMaxRetries records a retry budget. No execution path consults it;
// the option exists so configurations carrying the key construct cleanly.
func WithMaxRetries(n int) Option {
	return func(o *Orchestrator) { o.maxRetries = n }
}

// New creates an orchestrator around a tool executor.
func New(executor tool.Executor, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		executor:  executor,
		threshold: intent.DefaultThreshold,
		logger:    zap.NewNop(),
		metrics:   newMetrics(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Metrics returns a snapshot of the instance counters.
func (o *Orchestrator) Metrics() Snapshot {
	return o.metrics.Snapshot()
}

// Result is the outcome of one Process call. Err is a message, never a
// raw error: Process absorbs every failure into the result.
type Result struct {
	Response       string                 `json:"response"`
	Deterministic  bool                   `json:"deterministic"`
	Classification *intent.Classification `json:"classification,omitempty"`
	Plan           *planner.Plan          `json:"plan,omitempty"`
	Results        []tool.StepResult      `json:"results,omitempty"`
	Validation     *validate.Outcome      `json:"validation,omitempty"`
	Metrics        Snapshot               `json:"metrics"`
	Trace          Trace                  `json:"trace"`
	Err            string                 `json:"error,omitempty"`
}

// Process runs one request through the full pipeline. It never returns an
// error and never panics; anything unexpected becomes an error result and
// bumps the error counter.
func (o *Orchestrator) Process(ctx context.Context, input string) (res Result) {
	state := StateInit
	var trace Trace
	trace.add(StateInit, map[string]any{"input_length": len(input)})

	o.metrics.TotalTasks++

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("panic in pipeline", zap.Any("recovered", r), zap.String("state", string(state)))
			res = o.fail(state, fmt.Errorf("%v", r), &trace, nil)
		}
	}()

	state = StateClassifying
	c := intent.Classify(input, o.threshold)
	o.metrics.ByIntent[c.Intent]++ // once per call, regardless of outcome
	trace.add(state, map[string]any{
		"intent":      c.Intent,
		"confidence":  c.Confidence,
		"needs_model": c.NeedsModel,
		"reason":      c.Reason,
	})
	o.logger.Debug("classified request",
		zap.String("intent", string(c.Intent)),
		zap.Float64("confidence", c.Confidence),
		zap.String("reason", string(c.Reason)))

	if c.NeedsModel && c.Reason == intent.ReasonNoPatternMatch {
		state = StateModelFallback
		return o.modelFallback(ctx, state, input, c, &trace)
	}

	state = StatePlanning
	p := planner.Build(c, input)
	trace.add(state, map[string]any{
		"steps":          len(p.Steps),
		"requires_model": p.RequiresModel,
	})

	modelAssisted := false
	if p.RequiresModel {
		if o.model == nil {
			response := fmt.Sprintf(
				"I detected a %s task (confidence %.2f) but completing it needs a generative model, and none is configured. "+
					"Set a model adapter in the configuration to enable model-assisted planning.",
				c.Intent, c.Confidence)
			trace.add(StateComplete, map[string]any{"degraded": "planning_requires_model"})
			o.metrics.ModelFallbacks++
			return o.finish(response, false, &c, &p, nil, nil, trace, "")
		}
		modelAssisted = true
		o.assistPlan(ctx, c, &p, input, &trace)
	}

	state = StateExecuting
	results := o.executeSteps(ctx, p, &trace)

	state = StateValidating
	var last tool.StepResult
	var outcome validate.Outcome
	if len(results) == 0 {
		outcome = validate.Outcome{Valid: false, Reason: "no_steps_executed"}
	} else {
		last = results[len(results)-1]
		outcome = validate.Check(c.Intent, last)
	}
	trace.add(state, map[string]any{"valid": outcome.Valid, "reason": outcome.Reason})

	state = StateResponding
	response := validate.Respond(c.Intent, outcome, last, p)
	trace.add(state, map[string]any{"length": len(response)})

	state = StateComplete
	trace.add(state, nil)

	deterministic := !modelAssisted
	if deterministic {
		o.metrics.DeterministicTasks++
	} else {
		o.metrics.ModelFallbacks++
	}
	return o.finish(response, deterministic, &c, &p, results, &outcome, trace, "")
}

// assistPlan makes exactly one model call to fill the plan's gaps. Any
// failure keeps the original partial plan; this path never aborts the call.
func (o *Orchestrator) assistPlan(ctx context.Context, c intent.Classification, p *planner.Plan, input string, trace *Trace) {
	o.metrics.ModelCallsForPlanning++

	resp, err := o.model.Complete(ctx, planningSystemPrompt, buildPlanningPrompt(c, *p, input))
	if err != nil {
		o.logger.Warn("model-assisted planning failed, keeping partial plan",
			zap.Error(err), zap.Bool("transient", adapter.IsTransient(err)))
		trace.add(StatePlanning, map[string]any{"model_assist": "error"})
		return
	}
	o.metrics.addUsage(resp.Usage)

	steps, err := parsePlanSteps(resp.Content)
	if err != nil {
		o.logger.Warn("model plan unparseable, keeping partial plan", zap.Error(err))
		trace.add(StatePlanning, map[string]any{"model_assist": "unparseable"})
		return
	}

	p.Steps = steps
	trace.add(StatePlanning, map[string]any{"model_assist": "revised", "steps": len(steps)})
}

// executeSteps runs the plan sequentially, in order, without
// short-circuiting: a failed step is recorded and the loop continues.
func (o *Orchestrator) executeSteps(ctx context.Context, p planner.Plan, trace *Trace) []tool.StepResult {
	results := make([]tool.StepResult, 0, len(p.Steps))
	failures := 0

	for _, step := range p.Steps {
		sr := tool.StepResult{Tool: step.Tool, Args: step.Args}
		out, err := o.executor.Execute(ctx, step.Tool, step.Args)
		if err != nil {
			sr.Error = err.Error()
			failures++
			o.logger.Debug("step failed", zap.String("tool", step.Tool), zap.Error(err))
		} else {
			sr.Result = out
			success, ok := out["success"].(bool)
			sr.Success = !ok || success // absent flag counts as success
			if !sr.Success {
				failures++
			}
		}
		results = append(results, sr)
	}

	trace.add(StateExecuting, map[string]any{"steps": len(results), "failures": failures})
	return results
}

// modelFallback delegates the whole input to the model adapter, or
// explains how to enable one.
func (o *Orchestrator) modelFallback(ctx context.Context, state State, input string, c intent.Classification, trace *Trace) Result {
	if o.model == nil {
		o.metrics.ModelFallbacks++
		trace.add(state, map[string]any{"delegated": false})
		response := fmt.Sprintf(
			"I could not match this request to a known task type (confidence %.2f). "+
				"Configure a model adapter to let a generative model handle requests like this.",
			c.Confidence)
		return o.finish(response, false, &c, nil, nil, nil, *trace, "")
	}

	o.metrics.ModelCallsForResponse++
	resp, err := o.model.RunGeneral(ctx, input)
	if err != nil {
		o.logger.Warn("model fallback failed",
			zap.Error(err), zap.Bool("transient", adapter.IsTransient(err)))
		return o.fail(state, err, trace, &c)
	}
	o.metrics.addUsage(resp.Usage)

	o.metrics.ModelFallbacks++
	trace.add(state, map[string]any{"delegated": true, "adapter": o.model.Name()})
	trace.add(StateComplete, nil)
	return o.finish(resp.Content, false, &c, nil, nil, nil, *trace, "")
}

// fail converts any escaped error into a generic error result. Callers of
// Process never see a raw error.
func (o *Orchestrator) fail(state State, err error, trace *Trace, c *intent.Classification) Result {
	o.metrics.Errors++
	trace.add(StateError, map[string]any{"state": state, "error": err.Error()})
	response := fmt.Sprintf("Error in %s: %v", state, err)
	return o.finish(response, false, c, nil, nil, nil, *trace, err.Error())
}

func (o *Orchestrator) finish(
	response string,
	deterministic bool,
	c *intent.Classification,
	p *planner.Plan,
	results []tool.StepResult,
	outcome *validate.Outcome,
	trace Trace,
	errMsg string,
) Result {
	return Result{
		Response:       response,
		Deterministic:  deterministic,
		Classification: c,
		Plan:           p,
		Results:        results,
		Validation:     outcome,
		Metrics:        o.metrics.Snapshot(),
		Trace:          trace,
		Err:            errMsg,
	}
}
