package pipeline

import (
	"context"
	"sync"
)

// Group runs a fixed set of data-independent stages concurrently and
// joins them all before the pipeline proceeds. Each member's content is
// recorded under its own name inside the group's content, success or
// failure, so a failing sibling never discards a successful member's
// output.
type Group[P any] struct {
	Name   string
	Stages []Stage[P]
}

// NewGroup builds a concurrent group from member stages.
func NewGroup[P any](name string, stages ...Stage[P]) Group[P] {
	return Group[P]{Name: name, Stages: stages}
}

// StepName returns the group name.
func (g Group[P]) StepName() string {
	return g.Name
}

// execute launches every member, waits for all of them, and aggregates:
// the group succeeds only if every member succeeded, and halts if any
// member halted.
func (g Group[P]) execute(ctx context.Context, params P, store *Store) StageResult {
	results := make([]StageResult, len(g.Stages))

	var wg sync.WaitGroup
	for i, stage := range g.Stages {
		wg.Add(1)
		go func(i int, stage Stage[P]) {
			defer wg.Done()
			results[i] = stage.execute(ctx, params, store)
		}(i, stage)
	}
	wg.Wait()

	content := make(map[string]any, len(g.Stages))
	succeeded := true
	halt := false
	for i, stage := range g.Stages {
		content[stage.Name] = results[i].Content
		succeeded = succeeded && results[i].Succeeded
		halt = halt || results[i].Halt
	}

	return StageResult{Content: content, Succeeded: succeeded, Halt: halt}
}

// errorMessages collects member failure messages from a completed
// group's content, in member declaration order.
func (g Group[P]) errorMessages(content map[string]any) []string {
	var msgs []string
	for _, stage := range g.Stages {
		member, ok := content[stage.Name].(map[string]any)
		if !ok {
			continue
		}
		if msg, ok := member[ErrorKey].(string); ok {
			msgs = append(msgs, stage.Name+": "+msg)
		}
	}
	return msgs
}
