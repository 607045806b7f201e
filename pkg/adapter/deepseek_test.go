package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeepSeekAdapterRequiresKey(t *testing.T) {
	if _, err := NewDeepSeekAdapter(""); err == nil {
		t.Error("NewDeepSeekAdapter should reject an empty key")
	}
}

func TestDeepSeekGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req deepseekRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "deepseek-chat" || len(req.Messages) != 1 {
			t.Errorf("request = %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"model": "deepseek-chat",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hello back"}},
			},
			"usage": map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
		})
	}))
	defer server.Close()

	a, err := NewDeepSeekAdapter("test-key")
	if err != nil {
		t.Fatal(err)
	}
	a.baseURL = server.URL

	resp, err := a.Generate(context.Background(), "deepseek-chat", "hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Content != "hello back" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Usage == nil || resp.Usage.TotalTokens != 5 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
}

func TestDeepSeekGenerateStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	a, err := NewDeepSeekAdapter("test-key")
	if err != nil {
		t.Fatal(err)
	}
	a.baseURL = server.URL

	_, err = a.Generate(context.Background(), "deepseek-chat", "hello")
	if err == nil {
		t.Fatal("Generate should fail on a 503")
	}

	var adapterErr *AdapterError
	if !errors.As(err, &adapterErr) || adapterErr.Status != 503 {
		t.Errorf("error = %v, want AdapterError with status 503", err)
	}
	if !IsTransient(err) {
		t.Error("a 503 should be transient")
	}
}
