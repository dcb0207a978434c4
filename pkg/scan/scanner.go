package scan

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/tmsantos/bigdiff/pkg/ignore"
)

// Result holds everything a single traversal discovered under one root.
// It is immutable once returned and is never shared between scans.
type Result struct {
	// Root is the absolute scan root.
	Root string

	// Files maps relative paths to absolute paths for every regular file.
	Files map[string]string

	// Dirs is the set of relative paths of every surviving directory.
	// The scan root itself is never included.
	Dirs map[string]struct{}
}

// Scan walks root once, depth first, recording every regular file and
// directory that survives the classifier. Ignored directories are pruned
// before descent, so an ignored subtree is never visited. Symbolic links
// are never followed. Unreadable or vanished entries are skipped; a moving
// filesystem does not abort the scan.
func Scan(ctx context.Context, root string, classifier *ignore.Classifier) (*Result, error) {
	result := &Result{
		Root:  root,
		Files: make(map[string]string),
		Dirs:  make(map[string]struct{}),
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Best effort: skip entries that vanished or cannot be read.
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if classifier.Ignored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir():
			result.Dirs[rel] = struct{}{}
		case d.Type().IsRegular():
			result.Files[rel] = path
		}
		// Symlinks and other non-regular entries are deliberately dropped.

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
