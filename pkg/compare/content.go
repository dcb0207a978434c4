// Package compare provides content equality and binary classification for
// files, used to decide whether and how a changed file is materialized.
package compare

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// BytesEqual reports whether two files have byte-identical content, by
// streaming a SHA-256 digest of each side. If either file cannot be opened
// or read, the files are conservatively reported as not equal, forcing the
// modified-file path rather than silently treating a changed file as
// unchanged.
func BytesEqual(path1, path2 string) bool {
	h1, err := hashFile(path1)
	if err != nil {
		return false
	}
	h2, err := hashFile(path2)
	if err != nil {
		return false
	}
	return h1 == h2
}

// hashFile computes the SHA-256 digest of a file's full contents.
func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
