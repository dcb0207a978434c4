// Package annotate renders the annotated diff body for a modified text
// file: the target file's content with every removed base line re-inserted
// (flagged) in its original relative position and every new line marked,
// using a syntax-appropriate comment idiom. The output is a fully
// materialized readable file, not a unified diff.
package annotate

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/encoding/charmap"

	"github.com/tmsantos/bigdiff/pkg/comment"
)

// ReadTextBestEffort reads a file and decodes it as text: strict UTF-8
// first, falling back to Windows-1252, which maps every byte to some
// character and therefore never fails. This is a best-effort policy, not
// encoding detection. With normalizeEOL set, CRLF and lone CR sequences
// are rewritten to LF so EOL convention differences between the two trees
// do not register as changed lines.
func ReadTextBestEffort(path string, normalizeEOL bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	var text string
	if utf8.Valid(data) {
		text = string(data)
	} else {
		decoded, decodeErr := charmap.Windows1252.NewDecoder().Bytes(data)
		if decodeErr != nil {
			// Windows-1252 decoding is total; this branch is unreachable in
			// practice but kept so a library change cannot panic the run.
			return "", fmt.Errorf("failed to decode file: %w", decodeErr)
		}
		text = string(decoded)
	}

	if normalizeEOL {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text, nil
}

// splitLines splits text into lines that each retain their trailing
// newline. The final line of a file without a terminator is represented
// without one, so concatenating the result reproduces the input exactly.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Annotate decodes both files, diffs them line by line, and returns the
// annotated body: equal segments verbatim, deleted segments via the
// style's deleted-line form, inserted segments via its new-line marker,
// all in document order.
func Annotate(basePath, targetPath string, style comment.Style, normalizeEOL bool) (string, error) {
	baseText, err := ReadTextBestEffort(basePath, normalizeEOL)
	if err != nil {
		return "", err
	}
	targetText, err := ReadTextBestEffort(targetPath, normalizeEOL)
	if err != nil {
		return "", err
	}

	baseLines := splitLines(baseText)
	targetLines := splitLines(targetText)

	var output strings.Builder
	matcher := difflib.NewMatcher(baseLines, targetLines)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range targetLines[op.J1:op.J2] {
				output.WriteString(line)
			}
		case 'd':
			for _, line := range baseLines[op.I1:op.I2] {
				output.WriteString(style.DeletedLine(line))
			}
		case 'i':
			for _, line := range targetLines[op.J1:op.J2] {
				output.WriteString(style.MarkNew(line))
			}
		case 'r':
			// A replaced block reads as its deletions followed by its
			// insertions, keeping both sides in their relative position.
			for _, line := range baseLines[op.I1:op.I2] {
				output.WriteString(style.DeletedLine(line))
			}
			for _, line := range targetLines[op.J1:op.J2] {
				output.WriteString(style.MarkNew(line))
			}
		}
	}

	return output.String(), nil
}
