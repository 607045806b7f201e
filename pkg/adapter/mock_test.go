package adapter

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMockAdapterExactMatch(t *testing.T) {
	mock := NewMockAdapterWithResponses(map[string]string{
		"known prompt": "known answer",
	}, "")

	resp, err := mock.Generate(context.Background(), "mock-1", "known prompt")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "known answer" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Adapter != "mock" || resp.Model != "mock-1" {
		t.Errorf("metadata = %q/%q", resp.Adapter, resp.Model)
	}
}

func TestMockAdapterDefaultResponse(t *testing.T) {
	mock := NewMockAdapter()

	resp, err := mock.Generate(context.Background(), "", "anything")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(resp.Content, "anything") {
		t.Errorf("default response %q should echo the prompt", resp.Content)
	}
	if resp.Model != "mock-1" {
		t.Errorf("Model = %q, want the default model filled in", resp.Model)
	}
}

func TestMockAdapterInjectedError(t *testing.T) {
	mock := NewMockAdapter()
	mock.Err = errors.New("injected")

	if _, err := mock.Generate(context.Background(), "mock-1", "x"); err == nil {
		t.Error("Generate should surface the injected error")
	}
}
