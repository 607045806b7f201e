package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zen-systems/dealbook/pkg/adapter"
)

type offering struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Features []string `json:"features"`
}

type offeringsResult struct {
	Offerings []offering `json:"offerings"`
}

func TestRunPrependsInstructions(t *testing.T) {
	var seen string
	mock := adapter.NewMockAdapterWithResponses(nil, "ok")
	rt := NewRuntime(captureAdapter{inner: mock, prompt: &seen})

	ag := Agent{Name: "test", Model: "mock-1", Instructions: "Do the thing."}
	if _, err := rt.Run(context.Background(), ag, "input text"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !strings.HasPrefix(seen, "Do the thing.\n\n") {
		t.Errorf("prompt should start with the instructions, got %q", seen)
	}
	if !strings.HasSuffix(seen, "input text") {
		t.Errorf("prompt should end with the input, got %q", seen)
	}
}

func TestRunWrapsAdapterError(t *testing.T) {
	mock := adapter.NewMockAdapter()
	mock.Err = errors.New("provider down")
	rt := NewRuntime(mock)

	_, err := rt.Run(context.Background(), Agent{Name: "broken"}, "x")
	if err == nil {
		t.Fatal("Run should fail when the adapter fails")
	}

	var invErr *InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("expected InvocationError, got %T", err)
	}
	if invErr.Agent != "broken" {
		t.Errorf("Agent = %q, want %q", invErr.Agent, "broken")
	}
	if !strings.Contains(err.Error(), "provider down") {
		t.Errorf("error %q should carry the adapter error", err)
	}
}

func TestRunTypedDecodesJSON(t *testing.T) {
	payload := `{"offerings": [{"name": "Widget", "category": "tools", "features": ["fast"]}]}`
	ag := Agent{Name: "extractor", Instructions: "extract"}
	rt := NewRuntime(adapter.NewMockAdapterWithResponses(
		map[string]string{"extract\n\ncontent": payload}, ""))

	result, err := RunTyped[offeringsResult](context.Background(), rt, ag, "content")
	if err != nil {
		t.Fatalf("RunTyped: %v", err)
	}
	if len(result.Offerings) != 1 || result.Offerings[0].Name != "Widget" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestRunTypedToleratesCodeFence(t *testing.T) {
	payload := "```json\n{\"offerings\": [{\"name\": \"Widget\"}]}\n```"
	ag := Agent{Name: "extractor", Instructions: "extract"}
	rt := NewRuntime(adapter.NewMockAdapterWithResponses(
		map[string]string{"extract\n\ncontent": payload}, ""))

	result, err := RunTyped[offeringsResult](context.Background(), rt, ag, "content")
	if err != nil {
		t.Fatalf("RunTyped: %v", err)
	}
	if len(result.Offerings) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestRunTypedRejectsNonJSON(t *testing.T) {
	ag := Agent{Name: "extractor", Instructions: "extract"}
	rt := NewRuntime(adapter.NewMockAdapterWithResponses(
		map[string]string{"extract\n\ncontent": "Sure! Here are the offerings I found."}, ""))

	_, err := RunTyped[offeringsResult](context.Background(), rt, ag, "content")
	if err == nil {
		t.Fatal("RunTyped should fail on non-JSON output")
	}
	if !strings.Contains(err.Error(), "declared shape") {
		t.Errorf("error %q should report the shape mismatch", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"fenced with tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced no tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.in); got != tt.want {
				t.Errorf("StripCodeFence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// captureAdapter records the prompt passed through to the inner adapter.
type captureAdapter struct {
	inner  adapter.Adapter
	prompt *string
}

func (a captureAdapter) Name() string     { return a.inner.Name() }
func (a captureAdapter) Models() []string { return a.inner.Models() }

func (a captureAdapter) Generate(ctx context.Context, model, prompt string) (*adapter.Response, error) {
	*a.prompt = prompt
	return a.inner.Generate(ctx, model, prompt)
}
