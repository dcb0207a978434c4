package models

import (
	"time"
)

// Report describes the outcome of one comparison run.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string

	// BasePath, TargetPath and OutputPath are the canonical roots.
	BasePath   string
	TargetPath string
	OutputPath string

	// DryRun indicates no artifacts were written.
	DryRun bool

	// Timing of the run.
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Scan totals per tree.
	BaseFilesScanned   int
	BaseDirsScanned    int
	TargetFilesScanned int
	TargetDirsScanned  int

	// Counters holds the six classification counters of a real run.
	Counters Counters

	// DryRunCounts is populated instead of Counters on a dry run.
	DryRunCounts DryRunCounts

	// Skipped lists per-file copy failures that were recovered during
	// deleted-subtree materialization (best effort, run continued).
	Skipped []SkippedFile

	// Status is the overall result.
	Status RunStatus
}

// SkippedFile records one best-effort copy that could not be completed.
type SkippedFile struct {
	RelativePath string
	Error        string
	Timestamp    time.Time
}

// RunStatus represents the overall result of a run.
type RunStatus string

const (
	// StatusSuccess indicates every artifact was materialized.
	StatusSuccess RunStatus = "success"
	// StatusPartial indicates some best-effort copies were skipped.
	StatusPartial RunStatus = "partial"
	// StatusFailed indicates the run aborted on an unrecoverable error.
	StatusFailed RunStatus = "failed"
)

// ExitCode returns the process exit code for the run status.
func (s RunStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}
