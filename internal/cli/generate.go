package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/optdoc/optdoc/internal/config"
	"github.com/optdoc/optdoc/internal/engine"
	"github.com/optdoc/optdoc/internal/options"
	"github.com/optdoc/optdoc/internal/render"
)

var (
	pathFlag           string
	outFlag            string
	formatFlag         string
	sortFlag           bool
	prefixFlag         string
	stripPrefixFlag    string
	replaceFlag        []string
	searchFlag         string
	typeFilterFlag     string
	hasDefaultFlag     bool
	hasDescriptionFlag bool
	excludeFlag        []string
	workersFlag        int
	interpolateFlag    bool
	watchFlag          bool
	quietFlag          bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Extract module options and render documentation",
	Long: `Generate scans a directory tree for .nix module files, extracts the
options they declare, merges declarations across files, and renders the
result in the chosen format.

Examples:
  # Document the current directory as markdown on stdout
  optdoc generate

  # Write JSON to a file
  optdoc generate --format json --out options.json

  # Only nginx options with a default value
  optdoc generate --prefix services.nginx --has-default

  # Resolve ${namespace} placeholders while extracting
  optdoc generate --replace namespace=myapp

  # Regenerate on every file change
  optdoc generate --watch --out options.md
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&pathFlag, "path", "p", ".", "Root directory to scan")
	generateCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file (default is stdout)")
	generateCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: markdown, json, html, csv, table")
	generateCmd.Flags().BoolVar(&sortFlag, "sort", true, "Sort options by name")
	generateCmd.Flags().StringVar(&prefixFlag, "prefix", "", "Only include options under this dotted prefix")
	generateCmd.Flags().StringVar(&stripPrefixFlag, "strip-prefix", "", "Remove this dotted prefix from option names")
	generateCmd.Flags().StringArrayVar(&replaceFlag, "replace", nil, "Placeholder replacement as name=value (repeatable)")
	generateCmd.Flags().StringVar(&searchFlag, "search", "", "Only include options whose name or description contains this text")
	generateCmd.Flags().StringVar(&typeFilterFlag, "type-filter", "", "Only include options whose type contains this text")
	generateCmd.Flags().BoolVar(&hasDefaultFlag, "has-default", false, "Only include options with a default value")
	generateCmd.Flags().BoolVar(&hasDescriptionFlag, "has-description", false, "Only include options with a description")
	generateCmd.Flags().StringArrayVar(&excludeFlag, "exclude", nil, "Glob patterns to exclude (repeatable)")
	generateCmd.Flags().IntVar(&workersFlag, "workers", 0, "Number of parallel workers (0 means one per CPU)")
	generateCmd.Flags().BoolVar(&interpolateFlag, "interpolate-values", false, "Apply replacements to defaults and examples too")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		pathFlag = args[0]
	}

	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted! Cancelling...")
		cancel()
	}()

	cfg, err := config.LoadConfigFromDir(pathFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	bindings, err := parseReplacements(replaceFlag)
	if err != nil {
		return err
	}
	for name, value := range cfg.Scan.Replace {
		if _, ok := bindings[name]; !ok {
			bindings[name] = value
		}
	}

	renderer, err := render.New(cfg.Output.Format)
	if err != nil {
		return err
	}

	eng := engine.New(engine.Config{
		RootDir:           pathFlag,
		Exclude:           cfg.Scan.Exclude,
		Workers:           cfg.Scan.Workers,
		Bindings:          bindings,
		InterpolateValues: cfg.Scan.InterpolateValues,
		StripPrefix:       cfg.Output.StripPrefix,
		Sort:              cfg.Output.Sort,
		Filter:            buildFilter(),
		Progress:          NewCLIProgressReporter(quietFlag || watchFlag),
	})

	emit := func(result *engine.Result) error {
		if err := writeOutput(renderer, result, cfg.Output.Path); err != nil {
			return err
		}
		if verbose {
			for _, d := range result.Diagnostics {
				log.Warn("parse diagnostic", "file", d.File, "line", d.Line, "message", d.Message)
			}
		}
		if !quietFlag && cfg.Output.Path != "" {
			fmt.Fprintf(os.Stderr, "%d files processed, %d options found, %d diagnostics\n",
				result.FilesProcessed, len(result.Options), len(result.Diagnostics))
		}
		return nil
	}

	result, err := eng.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("extraction cancelled")
		}
		return fmt.Errorf("extraction failed: %w", err)
	}
	if err := emit(result); err != nil {
		return err
	}

	if watchFlag {
		if cfg.Output.Path == "" {
			return fmt.Errorf("--watch requires --out, refusing to stream to stdout")
		}
		log.Info("watching for changes", "path", pathFlag)
		watcher, err := engine.NewWatcher(eng, func(result *engine.Result) {
			if err := emit(result); err != nil {
				log.Error("failed to write output", "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}

		if err := watcher.Watch(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("watch mode failed: %w", err)
		}
	}

	return nil
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = formatFlag
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Path = outFlag
	}
	if cmd.Flags().Changed("sort") {
		cfg.Output.Sort = sortFlag
	}
	if cmd.Flags().Changed("strip-prefix") {
		cfg.Output.StripPrefix = stripPrefixFlag
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Scan.Exclude = excludeFlag
	}
	if cmd.Flags().Changed("workers") {
		cfg.Scan.Workers = workersFlag
	}
	if cmd.Flags().Changed("interpolate-values") {
		cfg.Scan.InterpolateValues = interpolateFlag
	}
}

// parseReplacements converts repeated name=value flags into a binding map.
func parseReplacements(pairs []string) (map[string]string, error) {
	bindings := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --replace value %q, expected name=value", pair)
		}
		bindings[name] = value
	}
	return bindings, nil
}

// buildFilter combines the filter flags into a single predicate.
// A nil result means no filtering.
func buildFilter() options.Predicate {
	var preds []options.Predicate
	if prefixFlag != "" {
		preds = append(preds, options.PathPrefix(prefixFlag))
	}
	if typeFilterFlag != "" {
		preds = append(preds, options.TypeContains(typeFilterFlag))
	}
	if searchFlag != "" {
		preds = append(preds, options.Search(searchFlag))
	}
	if hasDefaultFlag {
		preds = append(preds, options.HasDefault())
	}
	if hasDescriptionFlag {
		preds = append(preds, options.HasDescription())
	}
	if len(preds) == 0 {
		return nil
	}
	return options.And(preds...)
}

func writeOutput(renderer render.Renderer, result *engine.Result, outPath string) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return renderer.Render(w, result.Options)
}
