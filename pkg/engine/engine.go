// Package engine orchestrates one comparison run: it scans the base and
// target trees, classifies every file as unchanged, new, deleted or
// modified, and materializes each difference as an artifact under the
// output root. The engine is single threaded; a run either completes, or
// aborts on the first unrecoverable write error leaving a partial output
// tree that a rerun simply extends.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tmsantos/bigdiff/pkg/annotate"
	"github.com/tmsantos/bigdiff/pkg/comment"
	"github.com/tmsantos/bigdiff/pkg/compare"
	"github.com/tmsantos/bigdiff/pkg/ignore"
	"github.com/tmsantos/bigdiff/pkg/logging"
	"github.com/tmsantos/bigdiff/pkg/models"
	"github.com/tmsantos/bigdiff/pkg/scan"
)

const (
	newMarker      = ".new"
	modifiedMarker = ".modified"
	noteSuffix     = ".NOTE.txt"
)

// ProgressFunc receives progress over the common-file comparison phase,
// the only phase whose length is known up front.
type ProgressFunc func(done, total int)

// Engine runs one comparison between two directory trees.
type Engine struct {
	baseRoot   string
	targetRoot string
	outputRoot string
	classifier *ignore.Classifier
	opts       models.Options
	logger     logging.Logger
	progress   ProgressFunc
}

// New creates an engine over canonical roots. The caller is responsible
// for validating the roots beforehand; the engine assumes base and target
// exist and that the output directory is safe to write into.
func New(baseRoot, targetRoot, outputRoot string, classifier *ignore.Classifier, opts models.Options, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		baseRoot:   baseRoot,
		targetRoot: targetRoot,
		outputRoot: outputRoot,
		classifier: classifier,
		opts:       opts,
		logger:     logger,
	}
}

// SetProgress installs a progress callback for the comparison phase.
func (e *Engine) SetProgress(fn ProgressFunc) {
	e.progress = fn
}

// Run executes the comparison. The returned report is always non-nil and
// reflects whatever was accomplished, including on failure.
func (e *Engine) Run(ctx context.Context) (*models.Report, error) {
	report := &models.Report{
		RunID:      uuid.New().String(),
		BasePath:   e.baseRoot,
		TargetPath: e.targetRoot,
		OutputPath: e.outputRoot,
		DryRun:     e.opts.DryRun,
		StartTime:  time.Now(),
	}

	e.logger.Info(ctx, "run started", logging.Fields{
		"run_id":  report.RunID,
		"base":    e.baseRoot,
		"target":  e.targetRoot,
		"output":  e.outputRoot,
		"dry_run": e.opts.DryRun,
	})

	baseScan, err := scan.Scan(ctx, e.baseRoot, e.classifier)
	if err != nil {
		return e.fail(ctx, report, fmt.Errorf("failed to scan base tree: %w", err))
	}
	targetScan, err := scan.Scan(ctx, e.targetRoot, e.classifier)
	if err != nil {
		return e.fail(ctx, report, fmt.Errorf("failed to scan target tree: %w", err))
	}

	report.BaseFilesScanned = len(baseScan.Files)
	report.BaseDirsScanned = len(baseScan.Dirs)
	report.TargetFilesScanned = len(targetScan.Files)
	report.TargetDirsScanned = len(targetScan.Dirs)

	e.logger.Info(ctx, "scans complete", logging.Fields{
		"base_files":   report.BaseFilesScanned,
		"base_dirs":    report.BaseDirsScanned,
		"target_files": report.TargetFilesScanned,
		"target_dirs":  report.TargetDirsScanned,
	})

	if e.opts.DryRun {
		e.countDryRun(baseScan, targetScan, report)
		return e.finish(ctx, report)
	}

	// Deleted subtrees first, so their files are excluded from the loose
	// deleted pass.
	processed := make(map[string]struct{})
	for _, head := range deletedHeads(baseScan, targetScan) {
		for rel := range e.copyDeletedTree(ctx, head, baseScan, report) {
			processed[rel] = struct{}{}
		}
	}

	if err := e.copyLooseDeleted(ctx, baseScan, targetScan, processed, report); err != nil {
		return e.fail(ctx, report, err)
	}
	if err := e.copyNew(ctx, baseScan, targetScan, report); err != nil {
		return e.fail(ctx, report, err)
	}
	if err := e.compareCommon(ctx, baseScan, targetScan, report); err != nil {
		return e.fail(ctx, report, err)
	}

	return e.finish(ctx, report)
}

// countDryRun fills the three dry-run counts without touching content
// or the output directory.
func (e *Engine) countDryRun(base, target *scan.Result, report *models.Report) {
	for rel := range base.Files {
		if _, ok := target.Files[rel]; ok {
			report.DryRunCounts.Common++
		} else {
			report.DryRunCounts.BaseOnly++
		}
	}
	for rel := range target.Files {
		if _, ok := base.Files[rel]; !ok {
			report.DryRunCounts.TargetOnly++
		}
	}
}

// copyLooseDeleted materializes base files whose relative path is gone
// from the target and that were not already covered by a deleted subtree.
// Write errors here are fatal.
func (e *Engine) copyLooseDeleted(ctx context.Context, base, target *scan.Result, processed map[string]struct{}, report *models.Report) error {
	for _, rel := range sortedKeys(base.Files) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := processed[rel]; ok {
			continue
		}
		if _, ok := target.Files[rel]; ok {
			continue
		}

		dst := filepath.Join(e.outputRoot, rel) + deletedMarker
		if err := mkdirAll(filepath.Dir(dst)); err != nil {
			return fmt.Errorf("failed to create output directory for %s: %w", rel, err)
		}
		dst = resolveCollision(dst)
		if err := copyFile(base.Files[rel], dst); err != nil {
			return fmt.Errorf("failed to copy deleted file %s: %w", rel, err)
		}
		report.Counters.DelFiles++
	}
	return nil
}

// copyNew materializes target files absent from the base tree. Write
// errors here are fatal.
func (e *Engine) copyNew(ctx context.Context, base, target *scan.Result, report *models.Report) error {
	for _, rel := range sortedKeys(target.Files) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := base.Files[rel]; ok {
			continue
		}

		dst := filepath.Join(e.outputRoot, rel) + newMarker
		if err := mkdirAll(filepath.Dir(dst)); err != nil {
			return fmt.Errorf("failed to create output directory for %s: %w", rel, err)
		}
		dst = resolveCollision(dst)
		if err := copyFile(target.Files[rel], dst); err != nil {
			return fmt.Errorf("failed to copy new file %s: %w", rel, err)
		}
		report.Counters.NewFiles++
	}
	return nil
}

// compareCommon walks the files present in both trees. Equal content
// produces no artifact; changed content is materialized as an annotated
// text diff or, for binary and oversized files, a raw copy plus a note.
func (e *Engine) compareCommon(ctx context.Context, base, target *scan.Result, report *models.Report) error {
	var common []string
	for rel := range base.Files {
		if _, ok := target.Files[rel]; ok {
			common = append(common, rel)
		}
	}
	sort.Strings(common)

	total := len(common)
	for i, rel := range common {
		if err := ctx.Err(); err != nil {
			return err
		}

		if compare.BytesEqual(base.Files[rel], target.Files[rel]) {
			report.Counters.Same++
		} else if err := e.materializeModified(rel, base.Files[rel], target.Files[rel], report); err != nil {
			return err
		}

		if e.progress != nil {
			e.progress(i+1, total)
		}
	}
	return nil
}

// materializeModified writes the artifact for one changed common file.
func (e *Engine) materializeModified(rel, basePath, targetPath string, report *models.Report) error {
	dst := filepath.Join(e.outputRoot, rel) + modifiedMarker
	if err := mkdirAll(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", rel, err)
	}
	dst = resolveCollision(dst)

	info, err := os.Stat(targetPath)
	if err != nil {
		return fmt.Errorf("failed to stat target file %s: %w", rel, err)
	}
	size := uint64(info.Size())

	if compare.IsProbablyBinary(targetPath) || size > e.opts.MaxTextSize {
		if err := copyFile(targetPath, dst); err != nil {
			return fmt.Errorf("failed to copy modified file %s: %w", rel, err)
		}
		note := fmt.Sprintf("File treated as binary or too large for line diff.\n"+
			"Base origin (A): %q\n"+
			"Target origin (B): %q\n"+
			"Size: %d bytes\n"+
			"Strategy: direct copy from target to '.modified'.\n",
			basePath, targetPath, size)
		if err := os.WriteFile(dst+noteSuffix, []byte(note), 0644); err != nil {
			return fmt.Errorf("failed to write note for %s: %w", rel, err)
		}
		report.Counters.ModBinary++
		return nil
	}

	style := comment.StyleFor(rel)
	annotated, err := annotate.Annotate(basePath, targetPath, style, e.opts.NormalizeEOL)
	if err != nil {
		return fmt.Errorf("failed to annotate %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, []byte(annotated), 0644); err != nil {
		return fmt.Errorf("failed to write diff for %s: %w", rel, err)
	}
	report.Counters.ModText++
	return nil
}

func (e *Engine) finish(ctx context.Context, report *models.Report) (*models.Report, error) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	if len(report.Skipped) > 0 {
		report.Status = models.StatusPartial
	} else {
		report.Status = models.StatusSuccess
	}

	e.logger.Info(ctx, "run finished", logging.Fields{
		"run_id":   report.RunID,
		"status":   string(report.Status),
		"duration": report.Duration.String(),
		"same":     report.Counters.Same,
		"new":      report.Counters.NewFiles,
		"deleted":  report.Counters.DelFiles,
		"skipped":  len(report.Skipped),
	})
	return report, nil
}

func (e *Engine) fail(ctx context.Context, report *models.Report, err error) (*models.Report, error) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Status = models.StatusFailed

	e.logger.Error(ctx, "run aborted", err, logging.Fields{
		"run_id": report.RunID,
	})
	return report, err
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// copyFile copies src to dst, preserving the source's permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
