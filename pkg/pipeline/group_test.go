package pipeline

import (
	"context"
	"strings"
	"testing"
)

func constStage(name string, result StageResult) Stage[string] {
	return NewStage(name, func(context.Context, string, *Store) StageResult {
		return result
	})
}

func TestGroupJoinsAllMembers(t *testing.T) {
	group := NewGroup("pair",
		constStage("winner", Success(map[string]any{"value": 42})),
		constStage("loser", Failure("boom")),
	)

	result := group.execute(context.Background(), "", NewStore())

	if result.Succeeded {
		t.Error("group with a failed member should not report success")
	}
	if !result.Halt {
		t.Error("group with a halting member should halt")
	}

	// The winning member's output survives the sibling failure.
	winner, ok := result.Content["winner"].(map[string]any)
	if !ok || winner["value"] != 42 {
		t.Errorf("winner content = %v, want value 42", result.Content["winner"])
	}
	loser, ok := result.Content["loser"].(map[string]any)
	if !ok || loser[ErrorKey] != "boom" {
		t.Errorf("loser content = %v, want error marker", result.Content["loser"])
	}
}

func TestGroupAllSucceed(t *testing.T) {
	group := NewGroup("pair",
		constStage("a", Success(map[string]any{"n": 1})),
		constStage("b", Success(map[string]any{"n": 2})),
	)

	result := group.execute(context.Background(), "", NewStore())
	if !result.Succeeded || result.Halt {
		t.Errorf("all-success group: Succeeded=%t Halt=%t", result.Succeeded, result.Halt)
	}
}

func TestGroupErrorMessages(t *testing.T) {
	group := NewGroup("pair",
		constStage("a", Success(nil)),
		constStage("b", Failure("bad input")),
	)
	result := group.execute(context.Background(), "", NewStore())

	msgs := group.errorMessages(result.Content)
	if len(msgs) != 1 {
		t.Fatalf("errorMessages = %v, want one entry", msgs)
	}
	if !strings.Contains(msgs[0], "b: bad input") {
		t.Errorf("message %q should name the failed member", msgs[0])
	}
}
