package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/agentic-research/grimoire/internal/config"
	"github.com/agentic-research/grimoire/internal/ingest"
	"github.com/agentic-research/grimoire/internal/logger"
	"github.com/agentic-research/grimoire/internal/validate"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
)

var (
	dryRun    bool
	verbose   bool
	workers   int
	rulesPath string
	dbPath    string
	indexPath string
	maxErrors int
	logLevel  string
)

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Convert and validate without writing anything")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print one line per processed file")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Files converted concurrently (default: number of CPUs)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Also write every document to this SQLite compendium")
	rootCmd.Flags().StringVar(&indexPath, "index", "", "Also build a search index in this directory")
	rootCmd.Flags().IntVar(&maxErrors, "max-errors", 10, "Number of errors to print (negative prints all)")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Rule table replacing the built-in one")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
}

var rootCmd = &cobra.Command{
	Use:   "grimoire [source] [output]",
	Short: "Grimoire: convert a tabletop rules library into compendium documents",
	Long: `Grimoire walks a directory of YAML/JSON rules records, classifies each one
by its category path, converts it into a normalized document and writes the
result to a mirrored output tree grouped by collection.

Files that fail to parse or convert are reported and skipped; only a missing
source directory stops the run.`,
	Args:         cobra.RangeArgs(1, 2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dryRun && len(args) < 2 {
			return errors.New("an output directory is required unless --dry-run is set")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		rules, err := cfg.RuleSet()
		if err != nil {
			return err
		}
		v, err := validate.New()
		if err != nil {
			return err
		}

		engine := ingest.NewEngine(osfs.New(args[0]), rules, v)
		engine.Workers = cfg.WorkerCount()
		if err := engine.CheckSource(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if verbose {
			engine.OnFile = func(o ingest.Outcome) {
				_, _ = fmt.Fprintln(out, o)
			}
		}
		if !dryRun {
			sinks, err := openSinks(args[1], cfg)
			if err != nil {
				return err
			}
			engine.Sinks = sinks
		}

		rep, err := engine.Run(cmd.Context())
		closeErr := engine.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return fmt.Errorf("close outputs: %w", closeErr)
		}
		return rep.Print(out, cfg.MaxErrors)
	},
}

// loadConfig reads the environment and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(config.DotEnv)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		if workers < 0 {
			return cfg, fmt.Errorf("--workers must not be negative, got %d", workers)
		}
		cfg.Workers = workers
	}
	if flags.Changed("rules") {
		cfg.Rules = rulesPath
	}
	if flags.Changed("db") {
		cfg.DB = dbPath
	}
	if flags.Changed("index") {
		cfg.Index = indexPath
	}
	if flags.Changed("max-errors") {
		cfg.MaxErrors = maxErrors
	}
	switch {
	case flags.Changed("log-level"):
		cfg.LogLevel = logLevel
	case verbose:
		cfg.LogLevel = "debug"
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger.SetOutput(cmd.ErrOrStderr())
	return cfg, nil
}

// openSinks builds the output tree writer plus the optional compendium and
// search index. Sinks opened before a failure are closed.
func openSinks(output string, cfg config.Config) ([]ingest.Sink, error) {
	sinks := []ingest.Sink{ingest.NewTreeWriter(osfs.New(output))}
	fail := func(err error) ([]ingest.Sink, error) {
		for _, s := range sinks {
			_ = s.Close()
		}
		return nil, err
	}
	if cfg.DB != "" {
		cw, err := ingest.NewCompendiumWriter(cfg.DB)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, cw)
	}
	if cfg.Index != "" {
		iw, err := ingest.NewIndexWriter(cfg.Index)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, iw)
	}
	return sinks, nil
}

// Execute runs the root command. Per-file failures are part of the report;
// only errors that stop the run exit non-zero.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
