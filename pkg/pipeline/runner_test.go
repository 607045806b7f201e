package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestPipelineRunCompletes(t *testing.T) {
	var order []string
	record := func(name string, result StageResult) Stage[string] {
		return NewStage(name, func(context.Context, string, *Store) StageResult {
			order = append(order, name)
			return result
		})
	}

	p := New("test",
		record("first", Success(map[string]any{"n": 1})),
		record("second", Success(map[string]any{"n": 2})),
	)

	result, err := p.Run(context.Background(), "input", RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", result.Status, StatusCompleted)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("execution order = %v", order)
	}

	final, ok := result.Final()
	if !ok || final["n"] != 2 {
		t.Errorf("Final() = %v, want second stage content", final)
	}
}

func TestPipelineHaltStopsLaterSteps(t *testing.T) {
	ran := false
	p := New("test",
		constStage("broken", Failure("stage exploded")),
		NewStage("after", func(context.Context, string, *Store) StageResult {
			ran = true
			return Success(nil)
		}),
	)

	result, err := p.Run(context.Background(), "", RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Status != StatusHalted {
		t.Errorf("Status = %q, want %q", result.Status, StatusHalted)
	}
	if result.FailedStep != "broken" {
		t.Errorf("FailedStep = %q, want %q", result.FailedStep, "broken")
	}
	if result.Err == nil || !strings.Contains(result.Err.Error(), "stage exploded") {
		t.Errorf("Err = %v, want the stage's message", result.Err)
	}
	if ran {
		t.Error("steps after a halt must not run")
	}

	// The failed stage's error content is still recorded.
	content, ok := result.Store.Get("broken")
	if !ok || content[ErrorKey] != "stage exploded" {
		t.Errorf("halted stage content = %v", content)
	}
}

func TestPipelineGroupHaltNamesMembers(t *testing.T) {
	p := New("test",
		NewGroup("pair",
			constStage("healthy", Success(nil)),
			constStage("sick", Failure("bad domain")),
		),
	)

	result, err := p.Run(context.Background(), "", RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusHalted {
		t.Fatalf("Status = %q, want halted", result.Status)
	}
	if result.Err == nil || !strings.Contains(result.Err.Error(), "sick: bad domain") {
		t.Errorf("Err = %v, want the member failure named", result.Err)
	}
}

func TestPipelineValidateRejectsDuplicates(t *testing.T) {
	p := New("test",
		constStage("dup", Success(nil)),
		constStage("dup", Success(nil)),
	)
	if err := p.Validate(); err == nil {
		t.Error("Validate should reject duplicate step names")
	}

	p = New("test",
		constStage("top", Success(nil)),
		NewGroup("group", constStage("top", Success(nil))),
	)
	if err := p.Validate(); err == nil {
		t.Error("Validate should reject a member name colliding with a step name")
	}

	p = New("test", NewGroup[string]("empty"))
	if err := p.Validate(); err == nil {
		t.Error("Validate should reject an empty group")
	}

	p = New[string]("test")
	if err := p.Validate(); err == nil {
		t.Error("Validate should reject a pipeline with no steps")
	}
}

func TestPipelineCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New("test", constStage("a", Success(nil)))
	result, err := p.Run(ctx, "", RunOptions{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != StatusHalted {
		t.Errorf("Status = %q, want halted on canceled context", result.Status)
	}
	if result.Err == nil {
		t.Error("Err should carry the context error")
	}
}
