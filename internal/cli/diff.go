package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tmsantos/bigdiff/pkg/config"
	"github.com/tmsantos/bigdiff/pkg/engine"
	"github.com/tmsantos/bigdiff/pkg/ignore"
	"github.com/tmsantos/bigdiff/pkg/logging"
	"github.com/tmsantos/bigdiff/pkg/models"
	"github.com/tmsantos/bigdiff/pkg/output"
)

// DiffFlags holds diff command flags
type DiffFlags struct {
	Ignore       []string
	NormalizeEOL bool
	MaxTextSize  string
	DryRun       bool
	Output       string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var diffFlags DiffFlags

// NewDiffCommand creates the diff command
func NewDiffCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff BASE TARGET OUTPUT",
		Short: "Compare two folders and materialize their differences",
		Long: `Compare a base directory (A) against a target directory (B) and write
every difference into the output directory: new files as '.new' copies,
deleted files as '.deleted' copies, and modified text files as annotated
'.modified' diffs. Unchanged files produce no artifact.`,
		Args: cobra.ExactArgs(3),
		RunE: runDiff,
	}

	cmd.Flags().StringSliceVarP(&diffFlags.Ignore, "ignore", "i", []string{}, "glob patterns to ignore (repeatable or comma separated)")
	cmd.Flags().BoolVarP(&diffFlags.NormalizeEOL, "normalize-eol", "E", false, "normalize EOL (CRLF/LF) before text comparison")
	cmd.Flags().StringVarP(&diffFlags.MaxTextSize, "max-text-size", "S", "5MB", "max size for text diff per file (e.g., 5MB, 102400)")
	cmd.Flags().BoolVar(&diffFlags.DryRun, "dry-run", false, "do not write anything; only print a summary of what would be done")
	cmd.Flags().StringVarP(&diffFlags.Output, "output", "o", "", "output format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&diffFlags.LogFile, "log-file", "", "write run logs to file (enables logging)")
	cmd.Flags().StringVar(&diffFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&diffFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration and merge flags over it.
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagsToConfig(cmd.Flags(), cfg)

	// Canonicalize the three roots before anything touches the disk.
	roots, err := resolveRoots(args[0], args[1], args[2])
	if err != nil {
		return err
	}

	classifier, err := ignore.NewClassifier(cfg.Ignore)
	if err != nil {
		return err
	}

	opts := models.Options{
		NormalizeEOL:   cfg.Diff.NormalizeEOL,
		MaxTextSize:    models.ParseSize(cfg.Diff.MaxTextSize),
		IgnorePatterns: cfg.Ignore,
		DryRun:         diffFlags.DryRun,
	}

	logger, err := createLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter(os.Stdout)
	default:
		formatter = output.NewHumanFormatter(os.Stdout)
	}

	eng := engine.New(roots.Base, roots.Target, roots.Output, classifier, opts, logger)

	// The progress bar only makes sense for a human reader on a real run.
	if cfg.Output.Progress && !cfg.Output.Quiet && !diffFlags.DryRun && formatter.Name() == "human" {
		progress := output.NewProgress(os.Stderr)
		defer progress.Finish()
		eng.SetProgress(progress.Update)
	}

	report, err := eng.Run(ctx)
	if err != nil {
		formatter.Error(err)
		os.Exit(report.Status.ExitCode())
	}

	if !cfg.Output.Quiet {
		if err := formatter.Complete(report); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(cfg *config.Config) (logging.Logger, error) {
	var logFile string
	if cfg.Logging.Enabled {
		logFile = cfg.Logging.File
	}
	logFormat := cfg.Logging.Format
	logLevel := cfg.Logging.Level

	// Flags override the config file.
	if diffFlags.LogFile != "" {
		logFile = diffFlags.LogFile
		logFormat = diffFlags.LogFormat
		logLevel = diffFlags.LogLevel
	}

	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   logFile,
		Format: format,
		Level:  logging.ParseLevel(logLevel),
	})
}
