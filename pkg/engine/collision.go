package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveCollision returns candidate unchanged when nothing occupies that
// path, otherwise the first free variant of the form "name (n).ext". Two
// distinct sources can collapse to the same output name once markers are
// appended, and a reused output directory already holds a prior run's
// artifacts; neither may silently overwrite.
func resolveCollision(candidate string) string {
	if _, err := os.Stat(candidate); err != nil {
		return candidate
	}

	ext := filepath.Ext(candidate)
	stem := strings.TrimSuffix(candidate, ext)
	for n := 1; ; n++ {
		next := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Stat(next); err != nil {
			return next
		}
	}
}
