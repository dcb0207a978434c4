package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/tmsantos/bigdiff/pkg/models"
)

// JSONFormatter renders the run report as JSON for automation and scripting.
type JSONFormatter struct {
	writer io.Writer
}

// JSONReport is the wire shape of a finished run.
type JSONReport struct {
	RunID      string            `json:"run_id"`
	Status     string            `json:"status"`
	DryRun     bool              `json:"dry_run"`
	Base       string            `json:"base"`
	Target     string            `json:"target"`
	Output     string            `json:"output"`
	StartTime  string            `json:"start_time"`
	Duration   string            `json:"duration"`
	DurationMs int64             `json:"duration_ms"`
	Scanned    JSONScanned       `json:"scanned"`
	Counters   *JSONCounters     `json:"counters,omitempty"`
	DryRunData *JSONDryRunCounts `json:"dry_run_counts,omitempty"`
	Skipped    []JSONSkipped     `json:"skipped,omitempty"`
}

// JSONScanned holds the per-tree scan totals.
type JSONScanned struct {
	BaseFiles   int `json:"base_files"`
	BaseDirs    int `json:"base_dirs"`
	TargetFiles int `json:"target_files"`
	TargetDirs  int `json:"target_dirs"`
}

// JSONCounters holds the six classification counters.
type JSONCounters struct {
	Same      int `json:"same"`
	NewFiles  int `json:"new_files"`
	DelFiles  int `json:"del_files"`
	ModText   int `json:"mod_text"`
	ModBinary int `json:"mod_binary"`
	DelDirs   int `json:"del_dirs"`
}

// JSONDryRunCounts holds the three dry-run counts.
type JSONDryRunCounts struct {
	BaseOnly   int `json:"base_only"`
	TargetOnly int `json:"target_only"`
	Common     int `json:"common"`
}

// JSONSkipped records one recovered copy failure.
type JSONSkipped struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewJSONFormatter creates a JSON formatter writing to w.
// A nil writer defaults to stdout.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONFormatter{writer: w}
}

// Complete renders the final report as indented JSON.
func (f *JSONFormatter) Complete(report *models.Report) error {
	out := JSONReport{
		RunID:      report.RunID,
		Status:     string(report.Status),
		DryRun:     report.DryRun,
		Base:       report.BasePath,
		Target:     report.TargetPath,
		Output:     report.OutputPath,
		StartTime:  report.StartTime.UTC().Format(time.RFC3339),
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		Scanned: JSONScanned{
			BaseFiles:   report.BaseFilesScanned,
			BaseDirs:    report.BaseDirsScanned,
			TargetFiles: report.TargetFilesScanned,
			TargetDirs:  report.TargetDirsScanned,
		},
	}

	if report.DryRun {
		out.DryRunData = &JSONDryRunCounts{
			BaseOnly:   report.DryRunCounts.BaseOnly,
			TargetOnly: report.DryRunCounts.TargetOnly,
			Common:     report.DryRunCounts.Common,
		}
	} else {
		out.Counters = &JSONCounters{
			Same:      report.Counters.Same,
			NewFiles:  report.Counters.NewFiles,
			DelFiles:  report.Counters.DelFiles,
			ModText:   report.Counters.ModText,
			ModBinary: report.Counters.ModBinary,
			DelDirs:   report.Counters.DelDirs,
		}
	}

	for _, skipped := range report.Skipped {
		out.Skipped = append(out.Skipped, JSONSkipped{
			Path:  skipped.RelativePath,
			Error: skipped.Error,
		})
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// Error reports a fatal error as a JSON object.
func (f *JSONFormatter) Error(err error) error {
	encoder := json.NewEncoder(f.writer)
	return encoder.Encode(map[string]string{"error": err.Error()})
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}
