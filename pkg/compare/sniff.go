package compare

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"
)

// sniffSize bounds how much of a file the binary classifier reads.
const sniffSize = 4096

// IsProbablyBinary classifies a file as binary or text from its first
// sniffSize bytes. An unreadable file is treated as binary (fail safe toward
// a raw copy rather than corrupting a diff); an empty file is text; a NUL
// byte or an invalid UTF-8 sample means binary. This is a heuristic, not a
// guarantee: a misclassified file still produces valid output, just in the
// other strategy.
func IsProbablyBinary(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return true
	}
	defer file.Close()

	buffer := make([]byte, sniffSize)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	if n == 0 {
		return false
	}

	sample := buffer[:n]
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	return !utf8.Valid(sample)
}
