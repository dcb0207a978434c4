package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tmsantos/bigdiff/pkg/models"
)

// HumanFormatter renders a run summary for a terminal reader.
type HumanFormatter struct {
	writer io.Writer
}

// NewHumanFormatter creates a human-readable formatter writing to w.
// A nil writer defaults to stdout.
func NewHumanFormatter(w io.Writer) *HumanFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &HumanFormatter{writer: w}
}

// Complete renders the six-counter summary, or the three dry-run counts.
func (f *HumanFormatter) Complete(report *models.Report) error {
	if report.DryRun {
		fmt.Fprintf(f.writer, "== DRY RUN ==\n")
		fmt.Fprintf(f.writer, "Files only in Base (would be deleted): %d\n", report.DryRunCounts.BaseOnly)
		fmt.Fprintf(f.writer, "Files only in Target (would be new): %d\n", report.DryRunCounts.TargetOnly)
		fmt.Fprintf(f.writer, "Common files (would be checked): %d\n", report.DryRunCounts.Common)
		return nil
	}

	fmt.Fprintf(f.writer, "== BigDiff: Summary ==\n")
	fmt.Fprintf(f.writer, "Equal (omitted):      %d\n", report.Counters.Same)
	fmt.Fprintf(f.writer, "New (.new):           %d\n", report.Counters.NewFiles)
	fmt.Fprintf(f.writer, "Deleted (.deleted):   %d\n", report.Counters.DelFiles)
	fmt.Fprintf(f.writer, "Modified text:        %d\n", report.Counters.ModText)
	fmt.Fprintf(f.writer, "Modified binary:      %d\n", report.Counters.ModBinary)
	fmt.Fprintf(f.writer, "Deleted dirs:         %d\n", report.Counters.DelDirs)
	fmt.Fprintf(f.writer, "Output at:            %s\n", report.OutputPath)
	fmt.Fprintf(f.writer, "Duration:             %s\n", report.Duration.Round(time.Millisecond))

	if len(report.Skipped) > 0 {
		fmt.Fprintf(f.writer, "\nSkipped copies (%d):\n", len(report.Skipped))
		for _, skipped := range report.Skipped {
			fmt.Fprintf(f.writer, "  %s: %s\n", skipped.RelativePath, skipped.Error)
		}
		fmt.Fprintf(f.writer, "\nStatus: %s\n", report.Status)
	}

	return nil
}

// Error reports a fatal error.
func (f *HumanFormatter) Error(err error) error {
	fmt.Fprintf(f.writer, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name.
func (f *HumanFormatter) Name() string {
	return "human"
}
