package pipeline

import "context"

// StageFunc is the unit of work contract. A stage reads the pipeline's
// original input params and any upstream results from the store, and
// returns one StageResult. P is the pipeline's input parameter type.
type StageFunc[P any] func(ctx context.Context, params P, store *Store) StageResult

// Stage is a named StageFunc.
type Stage[P any] struct {
	Name string
	Run  StageFunc[P]
}

// NewStage pairs a name with an executor.
func NewStage[P any](name string, run StageFunc[P]) Stage[P] {
	return Stage[P]{Name: name, Run: run}
}

// Step is one sequenced unit of a pipeline: a single stage or a
// concurrent group of stages.
type Step[P any] interface {
	StepName() string
	execute(ctx context.Context, params P, store *Store) StageResult
}

// StepName returns the stage name.
func (s Stage[P]) StepName() string {
	return s.Name
}

func (s Stage[P]) execute(ctx context.Context, params P, store *Store) StageResult {
	if s.Run == nil {
		return Failf("stage %q has no executor", s.Name)
	}
	return s.Run(ctx, params, store)
}
