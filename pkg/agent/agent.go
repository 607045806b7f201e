// Package agent binds a fixed instruction set and declared output shape
// to an LLM adapter. Agent values are immutable configuration built once
// at startup and passed into the stages that need them.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zen-systems/dealbook/pkg/adapter"
)

// Agent describes one extraction or synthesis task.
type Agent struct {
	Name         string
	Model        string
	Instructions string
}

// Runtime executes agents against a configured adapter.
type Runtime struct {
	adapter adapter.Adapter
}

// NewRuntime creates a runtime bound to an adapter.
func NewRuntime(a adapter.Adapter) *Runtime {
	return &Runtime{adapter: a}
}

// InvocationError reports a failed agent call.
type InvocationError struct {
	Agent string
	Err   error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("agent %q invocation failed: %v", e.Agent, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Run invokes the agent with the given input and returns free-form text.
func (rt *Runtime) Run(ctx context.Context, ag Agent, input string) (string, error) {
	prompt := ag.Instructions + "\n\n" + input
	resp, err := rt.adapter.Generate(ctx, ag.Model, prompt)
	if err != nil {
		return "", &InvocationError{Agent: ag.Name, Err: err}
	}
	return resp.Content, nil
}

// RunTyped invokes the agent and decodes its output into the declared
// shape T. The agent's instructions must demand a JSON-only response;
// models that wrap the payload in a code fence are tolerated.
func RunTyped[T any](ctx context.Context, rt *Runtime, ag Agent, input string) (T, error) {
	var out T

	text, err := rt.Run(ctx, ag, input)
	if err != nil {
		return out, err
	}

	raw := StripCodeFence(text)
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, &InvocationError{
			Agent: ag.Name,
			Err:   fmt.Errorf("output does not match declared shape: %w", err),
		}
	}
	return out, nil
}

// StripCodeFence removes a surrounding markdown code fence, if present,
// and returns the inner payload trimmed.
func StripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (```json).
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
