// Package pipeline provides a small multi-stage workflow engine: named
// stages run sequentially, concurrent groups run their members side by
// side and join before the pipeline proceeds, and every stage output is
// recorded in a run-scoped store under the stage's name.
package pipeline

import "fmt"

// ErrorKey marks a stage's content as an error payload.
const ErrorKey = "error"

// StageResult is the unit exchanged between stages.
type StageResult struct {
	// Content holds the stage's named outputs, or {ErrorKey: message}
	// when the stage failed.
	Content map[string]any

	// Succeeded is false when Content carries an error marker or the
	// stage explicitly signaled failure.
	Succeeded bool

	// Halt stops the pipeline after this stage completes.
	Halt bool
}

// Success returns a non-halting successful result with the given content.
func Success(content map[string]any) StageResult {
	return StageResult{Content: content, Succeeded: true}
}

// Failure returns a halting error result. Stages never degrade silently:
// every failure path produces a descriptive message.
func Failure(msg string) StageResult {
	return StageResult{
		Content:   map[string]any{ErrorKey: msg},
		Succeeded: false,
		Halt:      true,
	}
}

// Failf is Failure with formatting.
func Failf(format string, args ...any) StageResult {
	return Failure(fmt.Sprintf(format, args...))
}

// ErrorMessage returns the error marker message, if any.
func (r StageResult) ErrorMessage() string {
	if r.Content == nil {
		return ""
	}
	if msg, ok := r.Content[ErrorKey].(string); ok {
		return msg
	}
	return ""
}
