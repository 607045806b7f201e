package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/zen-systems/dealbook/pkg/adapter"
	"github.com/zen-systems/dealbook/pkg/agent"
	"github.com/zen-systems/dealbook/pkg/config"
	"github.com/zen-systems/dealbook/pkg/firecrawl"
	"github.com/zen-systems/dealbook/pkg/intel"
	"github.com/zen-systems/dealbook/pkg/pipeline"
	"github.com/zen-systems/dealbook/pkg/playbook"
	"github.com/zen-systems/dealbook/pkg/steps"
	"github.com/zen-systems/dealbook/pkg/workflow"
)

var (
	adapterFlag string
	modelFlag   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dealbook",
		Short: "Sales playbook generation from vendor and prospect websites",
		Long: `Dealbook scrapes a vendor and a prospect website, extracts sales
	intelligence with LLM agents, and assembles a complete sales playbook:
	buyer personas, email sequences, talk tracks, and battle cards.`,
	}

	rootCmd.PersistentFlags().StringVar(&adapterFlag, "adapter", "", "override adapter (anthropic, openai, google, deepseek, mock)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "override the default model")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var phaseFlag int
	var outputDir string
	var verboseFlag bool
	var mockFlag bool

	cmd := &cobra.Command{
		Use:   "run [vendor-url] [prospect-url]",
		Short: "Run the playbook generation pipeline",
		Long: `Runs the pipeline against a vendor and a prospect website. Both URLs
	must include the scheme (https://...).

	Use --phase to stop after an earlier stage of the pipeline:
	  1  intelligence gathering (validate, scrape, prioritize, batch scrape)
	  2  adds vendor element extraction
	  3  adds prospect analysis and buyer personas
	  4  full run ending in an assembled playbook (default)

	The final step's output is written as JSON under --output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			phase := workflow.Phase(phaseFlag)
			if mockFlag {
				adapterFlag = "mock"
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			llmAdapter, err := createAdapter(cfg)
			if err != nil {
				return err
			}

			scraper := firecrawl.NewClient(
				firecrawl.WithAPIKey(cfg.FirecrawlAPIKey),
				firecrawl.WithMapLimit(cfg.MaxURLsToMap),
			)
			if !scraper.Available() && llmAdapter.Name() != "mock" {
				return fmt.Errorf("FIRECRAWL_API_KEY is not configured")
			}

			deps := &steps.Deps{
				Scraper:                  scraper,
				LLM:                      agent.NewRuntime(llmAdapter),
				Models:                   modelsFor(llmAdapter, cfg),
				MaxURLsToScrape:          cfg.MaxURLsToScrape,
				MaxURLsForPrioritization: cfg.MaxURLsForPrioritization,
			}
			if verboseFlag {
				deps.Logf = func(format string, args ...any) {
					log.Printf(format, args...)
				}
			}

			p, err := workflow.Build(phase, deps)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "%s %s (%s)\n",
				color.CyanString("Running"), p.Name, llmAdapter.Name())

			result, err := p.Run(context.Background(), steps.Params{
				VendorDomain:   args[0],
				ProspectDomain: args[1],
			}, pipeline.RunOptions{Logf: progressLogf()})
			if err != nil {
				return err
			}

			if result.Status == pipeline.StatusHalted {
				fmt.Fprintf(os.Stderr, "%s pipeline halted at %s\n",
					color.RedString("✗"), result.FailedStep)
				return result.Err
			}

			path, err := savePipelineOutput(result, phase, outputDir)
			if err != nil {
				return fmt.Errorf("failed to save output: %w", err)
			}

			fmt.Fprintf(os.Stderr, "%s %s completed in %s\n",
				color.GreenString("✓"), p.Name, result.Duration.Round(time.Millisecond))
			printRunSummary(result, phase)
			fmt.Printf("Output written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().IntVar(&phaseFlag, "phase", int(workflow.PhasePlaybook), "pipeline phase to run through (1-4)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output", "output directory")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "log per-stage progress detail")
	cmd.Flags().BoolVar(&mockFlag, "mock", false, "use the mock adapter (shorthand for --adapter mock)")

	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available adapters and models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tMODELS\tSTATUS")

			for _, a := range allAdapters() {
				status := "no key"
				if cfg.HasAdapter(a.Name()) || a.Name() == "mock" {
					status = "ready"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", a.Name(), formatList(a.Models()), status)
			}

			return w.Flush()
		},
	}
}

// allAdapters instantiates every adapter with a placeholder key, for
// model listing only.
func allAdapters() []adapter.Adapter {
	anthropic, _ := adapter.NewAnthropicAdapter("-")
	openai, _ := adapter.NewOpenAIAdapter("-")
	google, _ := adapter.NewGoogleAdapter("-")
	deepseek, _ := adapter.NewDeepSeekAdapter("-")
	return []adapter.Adapter{anthropic, deepseek, google, openai, adapter.NewMockAdapter()}
}

// createAdapter builds the LLM adapter selected by --adapter, or the
// configured default.
func createAdapter(cfg *config.Config) (adapter.Adapter, error) {
	name := adapterFlag
	if name == "" {
		name = cfg.DefaultAdapter
	}

	if name != "mock" && !cfg.HasAdapter(name) {
		return nil, fmt.Errorf("no API key configured for adapter %q", name)
	}

	switch name {
	case "anthropic":
		return adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey)
	case "openai":
		return adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey)
	case "google":
		return adapter.NewGoogleAdapter(cfg.GoogleAPIKey)
	case "deepseek":
		return adapter.NewDeepSeekAdapter(cfg.DeepSeekAPIKey)
	case "mock":
		return adapter.NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", name)
	}
}

// modelsFor picks the model set for a run. A --model override replaces
// the default model; when the adapter differs from the configured one,
// the adapter's own models replace the configured names.
func modelsFor(a adapter.Adapter, cfg *config.Config) intel.ModelConfig {
	models := intel.ModelConfig{
		Default:    cfg.DefaultModel,
		Fast:       cfg.FastModel,
		Extraction: cfg.ExtractionModel,
	}

	if adapterFlag != "" && adapterFlag != cfg.DefaultAdapter {
		available := a.Models()
		if len(available) > 0 {
			models.Default = available[0]
			models.Fast = available[len(available)-1]
			models.Extraction = available[len(available)-1]
		}
	}

	if modelFlag != "" {
		models.Default = modelFlag
	}
	return models
}

// savePipelineOutput writes the final step's content. Full runs save
// the playbook document itself; shorter phases save the last stage's
// raw content map.
func savePipelineOutput(result *pipeline.RunResult, phase workflow.Phase, dir string) (string, error) {
	final, ok := result.Final()
	if !ok {
		return "", fmt.Errorf("pipeline produced no output")
	}

	var payload any = final
	if phase == workflow.PhasePlaybook {
		if doc, ok := final["sales_playbook"].(playbook.Document); ok {
			payload = doc
		}
	}

	return playbook.Save(dir, workflow.OutputPrefix(phase), payload)
}

func printRunSummary(result *pipeline.RunResult, phase workflow.Phase) {
	final, ok := result.Final()
	if !ok {
		return
	}

	if phase != workflow.PhasePlaybook {
		if content, ok := result.Store.Get(steps.StageBatchScrape); ok {
			if stats, ok := content["stats"].(map[string]int); ok {
				fmt.Fprintf(os.Stderr, "  vendor pages:   %d (%d chars, %d failed)\n",
					stats["vendor_pages"], stats["vendor_chars"], stats["vendor_failed"])
				fmt.Fprintf(os.Stderr, "  prospect pages: %d (%d chars, %d failed)\n",
					stats["prospect_pages"], stats["prospect_chars"], stats["prospect_failed"])
			}
		}
		return
	}

	doc, ok := final["sales_playbook"].(playbook.Document)
	if !ok {
		return
	}

	bold := color.New(color.Bold)
	bold.Fprintf(os.Stderr, "Playbook %s: %s -> %s\n", doc.ID, doc.VendorName, doc.ProspectName)
	fmt.Fprintf(os.Stderr, "  priority personas: %d\n", len(doc.PriorityPersonas))
	fmt.Fprintf(os.Stderr, "  email sequences:   %d\n", len(doc.EmailSequences))
	fmt.Fprintf(os.Stderr, "  talk tracks:       %d\n", len(doc.TalkTracks))
	fmt.Fprintf(os.Stderr, "  battle cards:      %d\n", len(doc.BattleCards))
}

func progressLogf() func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func formatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for i := 1; i < len(items); i++ {
		result += ", " + items[i]
	}
	return result
}
