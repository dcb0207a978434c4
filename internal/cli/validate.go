package cli

import (
	"fmt"
	"os"

	"github.com/tmsantos/bigdiff/internal/platform"
	"github.com/tmsantos/bigdiff/pkg/config"
)

// resolvedRoots holds the three canonical directories of one run.
type resolvedRoots struct {
	Base   string
	Target string
	Output string
}

// resolveRoots canonicalizes and validates the three positional paths:
// base and target must be existing, distinct directories; the output
// directory must not be equal to or nested inside either input tree and
// is created when absent. All checks happen before any scanning.
func resolveRoots(baseArg, targetArg, outputArg string) (*resolvedRoots, error) {
	for _, arg := range []string{baseArg, targetArg, outputArg} {
		if err := platform.ValidatePath(arg); err != nil {
			return nil, err
		}
	}

	base, err := canonicalDir(baseArg, "base")
	if err != nil {
		return nil, err
	}
	target, err := canonicalDir(targetArg, "target")
	if err != nil {
		return nil, err
	}

	if base == target {
		return nil, fmt.Errorf("base and target cannot be the same directory: %s", base)
	}

	output := outputArg
	if _, err := os.Stat(outputArg); err == nil {
		output, err = platform.Canonicalize(outputArg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output directory: %w", err)
		}
		if platform.IsWithin(base, output) || platform.IsWithin(target, output) {
			return nil, fmt.Errorf("output directory cannot be inside base or target, nor equal to them: %s", output)
		}
	} else {
		if err := os.MkdirAll(outputArg, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		output, err = platform.Canonicalize(outputArg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output directory: %w", err)
		}
	}

	return &resolvedRoots{Base: base, Target: target, Output: output}, nil
}

// canonicalDir resolves one input root and requires it to be a directory.
func canonicalDir(arg, role string) (string, error) {
	info, err := os.Stat(arg)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%s directory does not exist: %s", role, arg)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access %s directory: %w", role, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s path is not a directory: %s", role, arg)
	}

	canonical, err := platform.Canonicalize(arg)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s directory: %w", role, err)
	}
	return canonical, nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cmd flagChecker, cfg *config.Config) {
	if len(diffFlags.Ignore) > 0 {
		cfg.Ignore = diffFlags.Ignore
	}
	if cmd.Changed("normalize-eol") {
		cfg.Diff.NormalizeEOL = diffFlags.NormalizeEOL
	}
	if cmd.Changed("max-text-size") {
		cfg.Diff.MaxTextSize = diffFlags.MaxTextSize
	}
	if diffFlags.Output != "" {
		cfg.Output.Format = diffFlags.Output
	}

	// Quiet wins over verbose.
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}
}

// flagChecker is the part of a cobra flag set consulted when merging
// flags over file configuration.
type flagChecker interface {
	Changed(name string) bool
}
