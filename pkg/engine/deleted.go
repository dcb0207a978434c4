package engine

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tmsantos/bigdiff/pkg/logging"
	"github.com/tmsantos/bigdiff/pkg/models"
	"github.com/tmsantos/bigdiff/pkg/scan"
)

const deletedMarker = ".deleted"

// deletedHeads returns the directories present only in the base tree,
// collapsed so that no returned directory is nested under another. Sorting
// by depth first guarantees a parent is considered before any of its
// descendants, so each deleted subtree surfaces exactly once, at its
// shallowest missing directory.
func deletedHeads(base, target *scan.Result) []string {
	var missing []string
	for dir := range base.Dirs {
		if _, ok := target.Dirs[dir]; !ok {
			missing = append(missing, dir)
		}
	}

	sort.Slice(missing, func(i, j int) bool {
		di := strings.Count(filepath.ToSlash(missing[i]), "/")
		dj := strings.Count(filepath.ToSlash(missing[j]), "/")
		if di != dj {
			return di < dj
		}
		return missing[i] < missing[j]
	})

	var heads []string
	for _, dir := range missing {
		nested := false
		for _, head := range heads {
			if isUnder(head, dir) {
				nested = true
				break
			}
		}
		if !nested {
			heads = append(heads, dir)
		}
	}
	return heads
}

// isUnder reports whether dir is a strict descendant of head. Both are
// relative paths from the same scan root.
func isUnder(head, dir string) bool {
	return strings.HasPrefix(dir, head+string(filepath.Separator))
}

// relWithDeletedMarkers rewrites a root-relative path so every component
// carries the deleted marker exactly once.
func relWithDeletedMarkers(rel string) string {
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i, part := range parts {
		parts[i] = part + deletedMarker
	}
	return filepath.Join(parts...)
}

// copyDeletedTree materializes one deleted-directory head: it walks the
// subtree still physically present in the base tree and copies every file
// into the output root, marking every path component from the head down.
// Copies here are best effort: a failed copy is logged and recorded as
// skipped, and the run carries on. The returned set holds the base-relative
// path of every regular file visited under the head, copied or not, so the
// loose-deleted pass does not report any of them a second time.
func (e *Engine) copyDeletedTree(ctx context.Context, headRel string, base *scan.Result, report *models.Report) map[string]struct{} {
	processed := make(map[string]struct{})
	headAbs := filepath.Join(base.Root, headRel)

	filepath.WalkDir(headAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relFromRoot, relErr := filepath.Rel(base.Root, path)
		if relErr != nil {
			return nil
		}

		destPath := filepath.Join(e.outputRoot, relWithDeletedMarkers(relFromRoot))

		if d.IsDir() {
			if mkErr := mkdirAll(destPath); mkErr != nil {
				e.logger.Warn(ctx, "failed to create deleted directory", logging.Fields{
					"path":  relFromRoot,
					"error": mkErr.Error(),
				})
			}
			if relFromRoot == headRel {
				report.Counters.DelDirs++
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		// Every file visited under the head belongs to the subtree, even
		// when its copy is skipped; it must never resurface in the
		// loose-deleted pass.
		processed[relFromRoot] = struct{}{}

		if mkErr := mkdirAll(filepath.Dir(destPath)); mkErr != nil {
			e.recordSkipped(ctx, report, relFromRoot, mkErr)
			return nil
		}

		destPath = resolveCollision(destPath)
		if copyErr := copyFile(path, destPath); copyErr != nil {
			e.recordSkipped(ctx, report, relFromRoot, copyErr)
			return nil
		}

		report.Counters.DelFiles++
		return nil
	})

	return processed
}

// recordSkipped logs a recovered copy failure and remembers it on the
// report so the run can finish as partial instead of pretending success.
func (e *Engine) recordSkipped(ctx context.Context, report *models.Report, rel string, err error) {
	e.logger.Warn(ctx, "skipped deleted file copy", logging.Fields{
		"path":  rel,
		"error": err.Error(),
	})
	report.Skipped = append(report.Skipped, models.SkippedFile{
		RelativePath: rel,
		Error:        err.Error(),
		Timestamp:    time.Now(),
	})
}
