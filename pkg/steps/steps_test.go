package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zen-systems/dealbook/pkg/adapter"
	"github.com/zen-systems/dealbook/pkg/agent"
	"github.com/zen-systems/dealbook/pkg/firecrawl"
	"github.com/zen-systems/dealbook/pkg/intel"
	"github.com/zen-systems/dealbook/pkg/pipeline"
)

// scriptRule maps a prompt substring to a canned response.
type scriptRule struct {
	match string
	reply string
}

// scriptedAdapter answers prompts by substring matching against the
// agents' instruction text.
type scriptedAdapter struct {
	rules []scriptRule
}

func (a *scriptedAdapter) Name() string     { return "scripted" }
func (a *scriptedAdapter) Models() []string { return []string{"scripted-1"} }

func (a *scriptedAdapter) Generate(_ context.Context, model, prompt string) (*adapter.Response, error) {
	for _, rule := range a.rules {
		if strings.Contains(prompt, rule.match) {
			return &adapter.Response{Content: rule.reply, Adapter: "scripted", Model: model}, nil
		}
	}
	return nil, fmt.Errorf("no scripted response matches prompt")
}

func newDeps(a adapter.Adapter) *Deps {
	return &Deps{
		LLM:                      agent.NewRuntime(a),
		Models:                   intel.ModelConfig{Default: "m", Fast: "m", Extraction: "m"},
		MaxURLsToScrape:          15,
		MaxURLsForPrioritization: 200,
	}
}

// fakeScraper points a firecrawl client at a local test server.
func fakeScraper(t *testing.T, handler http.Handler) *firecrawl.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return firecrawl.NewClient(
		firecrawl.WithAPIKey("test-key"),
		firecrawl.WithBaseURL(server.URL),
		firecrawl.WithBatchPolling(time.Millisecond, time.Second),
	)
}

// seedStage emits fixed content under a stage name.
func seedStage(name string, content map[string]any) pipeline.Stage[Params] {
	return pipeline.NewStage(name, func(context.Context, Params, *pipeline.Store) pipeline.StageResult {
		return pipeline.Success(content)
	})
}

// runStep executes seed steps followed by the step under test and
// returns the finished run.
func runStep(t *testing.T, params Params, step pipeline.Step[Params], seeds ...pipeline.Step[Params]) *pipeline.RunResult {
	t.Helper()
	all := append(append([]pipeline.Step[Params]{}, seeds...), step)
	result, err := pipeline.New("test", all...).Run(context.Background(), params, pipeline.RunOptions{})
	if err != nil {
		t.Fatalf("pipeline run: %v", err)
	}
	return result
}

// mustContent fetches a stage's content from a finished run and fails
// the test if the run halted before producing it.
func mustContent(t *testing.T, result *pipeline.RunResult, name string) map[string]any {
	t.Helper()
	if result.Status == pipeline.StatusHalted {
		t.Fatalf("pipeline halted at %s: %v", result.FailedStep, result.Err)
	}
	content, ok := result.Store.Get(name)
	if !ok {
		t.Fatalf("no content for stage %q", name)
	}
	return content
}
