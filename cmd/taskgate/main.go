package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zen-systems/taskgate/pkg/adapter"
	"github.com/zen-systems/taskgate/pkg/config"
	"github.com/zen-systems/taskgate/pkg/evidence"
	"github.com/zen-systems/taskgate/pkg/intent"
	"github.com/zen-systems/taskgate/pkg/orchestrator"
	"github.com/zen-systems/taskgate/pkg/planner"
	"github.com/zen-systems/taskgate/pkg/tool"
)

var (
	configFile  string
	adapterFlag string
	modelFlag   string
	debugFlag   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskgate",
		Short: "Deterministic task orchestration with model fallback",
		Long: `Taskgate classifies natural-language task requests against a fixed
	intent table, plans tool calls deterministically, and executes them
	locally. Requests the classifier cannot resolve are delegated to a
	configured model adapter.`,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(intentsCmd())
	rootCmd.AddCommand(modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var jsonFlag bool
	var showTrace bool
	var workdir string
	var threshold float64
	var traceDir string

	cmd := &cobra.Command{
		Use:   "run [request]",
		Short: "Process a task request",
		Long: `Classifies the request, builds a deterministic plan, executes it with
	local tools, and prints the templated response.

	Requests below the classification threshold fall back to the configured
	model adapter. Use --adapter and --model to override the configured
	fallback, or omit both to run in deterministic-only mode.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if workdir != "" {
				cfg.Workdir = workdir
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
			}
			if traceDir != "" {
				cfg.TraceDir = traceDir
			}

			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			opts := []orchestrator.Option{
				orchestrator.WithThreshold(cfg.Threshold),
				orchestrator.WithMaxRetries(cfg.MaxRetries),
				orchestrator.WithLogger(logger),
			}
			model, err := buildAdapter(cfg)
			if err != nil {
				return err
			}
			if model != nil {
				opts = append(opts, orchestrator.WithModelAdapter(model))
			}

			o := orchestrator.New(tool.NewLocal(cfg.Workdir), opts...)
			result := o.Process(context.Background(), input)

			if cfg.TraceDir != "" {
				runDir, err := evidence.WriteResult(cfg.TraceDir, input, &result)
				if err != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to write trace: %v\n", err)
				} else {
					fmt.Fprintf(os.Stderr, "Trace: %s\n", runDir)
				}
			}

			if jsonFlag {
				return printJSON(result)
			}

			if showTrace {
				for _, entry := range result.Trace {
					fmt.Fprintf(os.Stderr, "[%s]", entry.State)
					for k, v := range entry.Info {
						fmt.Fprintf(os.Stderr, " %s=%v", k, v)
					}
					fmt.Fprintln(os.Stderr)
				}
			}

			fmt.Println(result.Response)
			if result.Err != "" {
				return fmt.Errorf("%s", result.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&adapterFlag, "adapter", "", "model adapter for fallback (anthropic, openai, google, ollama, mock)")
	cmd.Flags().StringVar(&modelFlag, "model", "", "override model name")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&showTrace, "show-trace", false, "print the state trace to stderr")
	cmd.Flags().StringVar(&workdir, "workdir", "", "root directory for tool execution")
	cmd.Flags().Float64Var(&threshold, "threshold", intent.DefaultThreshold, "classification confidence threshold")
	cmd.Flags().StringVar(&traceDir, "trace-dir", "", "persist run evidence under this directory")

	return cmd
}

func classifyCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "classify [request]",
		Short: "Classify a request without executing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			return printJSON(intent.Classify(input, threshold))
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", intent.DefaultThreshold, "classification confidence threshold")

	return cmd
}

func planCmd() *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "plan [request]",
		Short: "Show the deterministic plan for a request",
		Long: `Classifies the request and prints the plan that run would execute.
	Unresolved arguments appear as null and would be filled by the model.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}

			c := intent.Classify(input, threshold)
			p := planner.Build(c, input)
			return printJSON(struct {
				Classification intent.Classification `json:"classification"`
				Plan           planner.Plan          `json:"plan"`
			}{c, p})
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", intent.DefaultThreshold, "classification confidence threshold")

	return cmd
}

func intentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "Show the intent classification table",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTENT\tPATTERNS\tKEYWORDS\tTOOLS\tBOOST")

			for _, def := range intent.Definitions() {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%.2f\n",
					def.ID,
					len(def.Patterns),
					strings.Join(def.Keywords, ", "),
					strings.Join(def.Tools, ", "),
					def.EntityBoost)
			}

			return w.Flush()
		},
	}
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List model adapters and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ADAPTER\tMODELS\tSTATUS\tDEFAULT")

			for _, name := range []string{"anthropic", "openai", "google", "ollama", "mock"} {
				status := "no key"
				models := ""
				if cfg.HasAdapter(name) || name == "mock" {
					status = "ready"
					if a, err := buildNamedAdapter(cfg, name, ""); err == nil {
						models = strings.Join(a.Models(), ", ")
					}
				}
				marker := ""
				if name == cfg.Adapter {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, models, status, marker)
			}

			return w.Flush()
		},
	}
}

// readInput returns the request from args, or stdin when none is given.
func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", fmt.Errorf("request is required")
	}
	return input, nil
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}

func buildLogger() (*zap.Logger, error) {
	if debugFlag {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// buildAdapter creates the fallback model adapter, or nil when none is
// configured.
func buildAdapter(cfg *config.Config) (adapter.Adapter, error) {
	name := cfg.Adapter
	if adapterFlag != "" {
		name = adapterFlag
	}
	model := cfg.Model
	if modelFlag != "" {
		model = modelFlag
	}
	return buildNamedAdapter(cfg, name, model)
}

func buildNamedAdapter(cfg *config.Config, name, model string) (adapter.Adapter, error) {
	switch name {
	case "":
		return nil, nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("adapter %q requires ANTHROPIC_API_KEY", name)
		}
		return adapter.NewAnthropicAdapter(cfg.AnthropicAPIKey, model)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("adapter %q requires OPENAI_API_KEY", name)
		}
		return adapter.NewOpenAIAdapter(cfg.OpenAIAPIKey, model)
	case "google":
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("adapter %q requires GOOGLE_API_KEY", name)
		}
		return adapter.NewGoogleAdapter(cfg.GoogleAPIKey, model)
	case "ollama":
		return adapter.NewOllamaAdapter(cfg.OllamaHost, model)
	case "mock":
		return adapter.NewMockAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown adapter %q", name)
	}
}

func printJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
