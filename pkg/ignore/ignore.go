package ignore

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExcludes are always ignored, regardless of user patterns. They are
// matched against the final path component only.
var defaultExcludes = map[string]bool{
	".git":        true,
	"__pycache__": true,
	".DS_Store":   true,
	"Thumbs.db":   true,
}

// Classifier decides whether a relative path is excluded from a scan.
// It combines the fixed default exclusions with user-supplied glob patterns.
type Classifier struct {
	patterns []string
}

// NewClassifier validates and compiles the given glob patterns.
// An invalid pattern is a configuration error and is reported before any
// scanning takes place.
func NewClassifier(patterns []string) (*Classifier, error) {
	compiled := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		normalized := filepath.ToSlash(p)
		if !doublestar.ValidatePattern(normalized) {
			return nil, fmt.Errorf("invalid glob pattern: %s", p)
		}
		compiled = append(compiled, normalized)
	}
	return &Classifier{patterns: compiled}, nil
}

// Ignored reports whether the given relative path should be excluded.
// Each pattern is matched against both the slash-normalized relative path
// and the bare final component, so users may write either "*.log" or
// "build/*.log" style patterns.
func (c *Classifier) Ignored(relativePath string) bool {
	name := filepath.Base(relativePath)
	if defaultExcludes[name] {
		return true
	}

	normalized := filepath.ToSlash(relativePath)
	for _, pattern := range c.patterns {
		// Patterns are validated in NewClassifier, so Match cannot fail here.
		if matched, _ := doublestar.Match(pattern, normalized); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
