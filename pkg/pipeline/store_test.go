package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestStoreRequireMissingStage(t *testing.T) {
	store := NewStore()

	_, err := store.Require("never_ran")
	if err == nil {
		t.Fatal("Require should fail for a stage that never completed")
	}

	var missing *MissingDependencyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingDependencyError, got %T", err)
	}
	if missing.Stage != "never_ran" {
		t.Errorf("Stage = %q, want %q", missing.Stage, "never_ran")
	}
}

func TestStoreRequireErrorMarker(t *testing.T) {
	store := NewStore()
	if err := store.put("broken", map[string]any{ErrorKey: "upstream exploded"}); err != nil {
		t.Fatal(err)
	}

	_, err := store.Require("broken")
	if err == nil {
		t.Fatal("Require should fail when the stage recorded an error")
	}
	if !strings.Contains(err.Error(), "upstream exploded") {
		t.Errorf("error %q should carry the upstream message", err)
	}
}

func TestStoreRequireMissingKeys(t *testing.T) {
	store := NewStore()
	if err := store.put("partial", map[string]any{"present": 1}); err != nil {
		t.Fatal(err)
	}

	_, err := store.Require("partial", "present", "absent", "also_absent")
	if err == nil {
		t.Fatal("Require should fail when required keys are absent")
	}
	if !strings.Contains(err.Error(), "absent, also_absent") {
		t.Errorf("error %q should list the missing keys", err)
	}
}

func TestStoreRequirePreservesValues(t *testing.T) {
	store := NewStore()
	urls := []string{"https://a.example", "https://b.example"}
	if err := store.put("mapped", map[string]any{"urls": urls, "total": 2}); err != nil {
		t.Fatal(err)
	}

	content, err := store.Require("mapped", "urls", "total")
	if err != nil {
		t.Fatalf("Require: %v", err)
	}

	// Values come back as the structured types the stage stored.
	got, ok := content["urls"].([]string)
	if !ok {
		t.Fatalf("urls stored as %T, want []string", content["urls"])
	}
	if len(got) != 2 || got[0] != "https://a.example" {
		t.Errorf("unexpected urls: %v", got)
	}
}

func TestStoreGetFromGroup(t *testing.T) {
	store := NewStore()
	err := store.put("group", map[string]any{
		"member_a": map[string]any{"value": 1},
		"member_b": map[string]any{ErrorKey: "failed"},
	})
	if err != nil {
		t.Fatal(err)
	}

	content, ok := store.GetFromGroup("group", "member_a")
	if !ok {
		t.Fatal("GetFromGroup should find member_a")
	}
	if content["value"] != 1 {
		t.Errorf("unexpected member content: %v", content)
	}

	if _, ok := store.GetFromGroup("group", "no_such_member"); ok {
		t.Error("GetFromGroup should not find an absent member")
	}
	if _, ok := store.GetFromGroup("no_such_group", "member_a"); ok {
		t.Error("GetFromGroup should not find an absent group")
	}
}

func TestStoreRequireFromGroup(t *testing.T) {
	store := NewStore()
	err := store.put("group", map[string]any{
		"ok":     map[string]any{"value": "x"},
		"broken": map[string]any{ErrorKey: "member failed"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.RequireFromGroup("group", "ok", "value"); err != nil {
		t.Errorf("RequireFromGroup on healthy member: %v", err)
	}

	_, err = store.RequireFromGroup("group", "broken")
	if err == nil || !strings.Contains(err.Error(), "member failed") {
		t.Errorf("RequireFromGroup on failed member = %v, want member error", err)
	}

	_, err = store.RequireFromGroup("group", "absent")
	if err == nil || !strings.Contains(err.Error(), "group") {
		t.Errorf("RequireFromGroup on absent member = %v, want missing dependency", err)
	}

	_, err = store.RequireFromGroup("absent_group", "ok")
	if err == nil {
		t.Error("RequireFromGroup on absent group should fail")
	}
}

func TestStoreWriteOnce(t *testing.T) {
	store := NewStore()
	if err := store.put("stage", map[string]any{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if err := store.put("stage", map[string]any{"a": 2}); err == nil {
		t.Error("second put for the same name should fail")
	}
}

func TestStoreNamesSorted(t *testing.T) {
	store := NewStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.put(name, map[string]any{}); err != nil {
			t.Fatal(err)
		}
	}

	names := store.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}
