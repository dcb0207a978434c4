package models

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// DefaultMaxTextSize is the per-file ceiling for annotated text diffs when
// no valid size is configured: files above it are copied raw.
const DefaultMaxTextSize uint64 = 5_000_000

// Options is the run-scoped configuration of one comparison. It is built
// once before the run and read-only afterwards.
type Options struct {
	// NormalizeEOL rewrites CRLF and lone CR to LF before text diffs.
	NormalizeEOL bool

	// MaxTextSize is the largest target file, in bytes, still rendered as
	// an annotated text diff.
	MaxTextSize uint64

	// IgnorePatterns are the user glob patterns excluded from both scans.
	IgnorePatterns []string

	// DryRun scans and counts without writing any artifact.
	DryRun bool
}

// ParseSize converts a human-readable size string ("5MB", "64KiB",
// "102400") into bytes. Unit suffixes follow the usual decimal/binary
// convention and are case-insensitive; a bare k/m/g suffix reads as the
// decimal unit. Unparseable input falls back to DefaultMaxTextSize.
func ParseSize(s string) uint64 {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	if trimmed == "" {
		return DefaultMaxTextSize
	}

	// humanize understands "kb"/"kib" but not the bare "k" form.
	switch trimmed[len(trimmed)-1] {
	case 'k', 'm', 'g':
		trimmed += "b"
	}

	value, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return DefaultMaxTextSize
	}
	return value
}
