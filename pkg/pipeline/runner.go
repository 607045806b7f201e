package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Status is the driver's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusHalted    Status = "halted"
)

// Pipeline is an ordered sequence of steps (stages and concurrent
// groups) sharing one named-result store per run.
type Pipeline[P any] struct {
	Name        string
	Description string
	Steps       []Step[P]
}

// New builds a pipeline from ordered steps.
func New[P any](name string, steps ...Step[P]) *Pipeline[P] {
	return &Pipeline[P]{Name: name, Steps: steps}
}

// RunOptions configures pipeline execution.
type RunOptions struct {
	// Logf receives progress lines. Nil disables progress output.
	Logf func(format string, args ...any)
}

// RunResult captures a finished run.
type RunResult struct {
	Status     Status
	Store      *Store
	LastStep   string
	FailedStep string
	Err        error
	Duration   time.Duration
}

// Final returns the content of the last completed step.
func (r *RunResult) Final() (map[string]any, bool) {
	if r.LastStep == "" {
		return nil, false
	}
	return r.Store.Get(r.LastStep)
}

// Validate checks the pipeline's static shape: at least one step,
// unique step and member names, and non-empty groups.
func (p *Pipeline[P]) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("pipeline %q has no steps", p.Name)
	}
	seen := make(map[string]bool)
	for _, step := range p.Steps {
		name := step.StepName()
		if name == "" {
			return fmt.Errorf("pipeline %q has an unnamed step", p.Name)
		}
		if seen[name] {
			return fmt.Errorf("pipeline %q has duplicate step name %q", p.Name, name)
		}
		seen[name] = true

		group, ok := step.(Group[P])
		if !ok {
			continue
		}
		if len(group.Stages) == 0 {
			return fmt.Errorf("group %q has no member stages", name)
		}
		for _, member := range group.Stages {
			if member.Name == "" {
				return fmt.Errorf("group %q has an unnamed member", name)
			}
			if seen[member.Name] {
				return fmt.Errorf("pipeline %q has duplicate stage name %q", p.Name, member.Name)
			}
			seen[member.Name] = true
		}
	}
	return nil
}

// Run executes the steps in order, within a group concurrently, and
// halts the whole pipeline on the first halting result. There are no
// retries at this layer.
func (p *Pipeline[P]) Run(ctx context.Context, params P, opts RunOptions) (*RunResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	start := time.Now()
	result := &RunResult{Status: StatusRunning, Store: NewStore()}

	for _, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			result.Status = StatusHalted
			result.FailedStep = step.StepName()
			result.Err = err
			result.Duration = time.Since(start)
			return result, nil
		}

		name := step.StepName()
		logf("→ %s", name)
		stepStart := time.Now()
		stageResult := step.execute(ctx, params, result.Store)

		if err := result.Store.put(name, stageResult.Content); err != nil {
			return nil, err
		}
		result.LastStep = name
		logf("  %s finished in %s (ok=%t)", name, time.Since(stepStart).Round(time.Millisecond), stageResult.Succeeded)

		if stageResult.Halt {
			result.Status = StatusHalted
			result.FailedStep = name
			result.Err = stepError(step, stageResult)
			result.Duration = time.Since(start)
			return result, nil
		}
	}

	result.Status = StatusCompleted
	result.Duration = time.Since(start)
	return result, nil
}

func stepError[P any](step Step[P], res StageResult) error {
	if group, ok := step.(Group[P]); ok {
		if msgs := group.errorMessages(res.Content); len(msgs) > 0 {
			return fmt.Errorf("step %q halted: %s", group.Name, strings.Join(msgs, "; "))
		}
	}
	if msg := res.ErrorMessage(); msg != "" {
		return fmt.Errorf("step %q halted: %s", step.StepName(), msg)
	}
	return fmt.Errorf("step %q halted", step.StepName())
}
