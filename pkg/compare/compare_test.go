package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a file with the given content in dir and returns its path.
func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	return path
}

func TestBytesEqual(t *testing.T) {
	dir := t.TempDir()

	t.Run("IdenticalContent", func(t *testing.T) {
		content := []byte("identical content for digest test")
		p1 := writeFile(t, dir, "eq1.txt", content)
		p2 := writeFile(t, dir, "eq2.txt", content)

		if !BytesEqual(p1, p2) {
			t.Error("BytesEqual() = false, want true")
		}
	})

	t.Run("DifferentContent", func(t *testing.T) {
		p1 := writeFile(t, dir, "diff1.txt", []byte("content1"))
		p2 := writeFile(t, dir, "diff2.txt", []byte("content2"))

		if BytesEqual(p1, p2) {
			t.Error("BytesEqual() = true, want false")
		}
	})

	t.Run("SameSizeDifferentContent", func(t *testing.T) {
		p1 := writeFile(t, dir, "sz1.txt", []byte("abcdefgh"))
		p2 := writeFile(t, dir, "sz2.txt", []byte("12345678"))

		if BytesEqual(p1, p2) {
			t.Error("BytesEqual() = true, want false (content must decide)")
		}
	})

	t.Run("NamesDoNotMatter", func(t *testing.T) {
		// Identical bytes under different names and extensions are equal.
		content := []byte("payload")
		p1 := writeFile(t, dir, "data.bin", content)
		p2 := writeFile(t, dir, "data.txt", content)

		if !BytesEqual(p1, p2) {
			t.Error("BytesEqual() = false, want true (only bytes determine equality)")
		}
	})

	t.Run("MissingFileNotEqual", func(t *testing.T) {
		p1 := writeFile(t, dir, "exists.txt", []byte("content"))

		if BytesEqual(p1, filepath.Join(dir, "missing.txt")) {
			t.Error("BytesEqual() = true, want false for an unreadable side")
		}
		if BytesEqual(filepath.Join(dir, "missing.txt"), p1) {
			t.Error("BytesEqual() = true, want false for an unreadable side")
		}
	})
}

func TestIsProbablyBinary(t *testing.T) {
	dir := t.TempDir()

	t.Run("PlainText", func(t *testing.T) {
		path := writeFile(t, dir, "plain.txt", []byte("hello\nworld\n"))
		if IsProbablyBinary(path) {
			t.Error("IsProbablyBinary() = true, want false for plain text")
		}
	})

	t.Run("EmptyFileIsText", func(t *testing.T) {
		path := writeFile(t, dir, "empty.txt", nil)
		if IsProbablyBinary(path) {
			t.Error("IsProbablyBinary() = true, want false for an empty file")
		}
	})

	t.Run("NulByteIsBinary", func(t *testing.T) {
		path := writeFile(t, dir, "nul.bin", []byte("abc\x00def"))
		if !IsProbablyBinary(path) {
			t.Error("IsProbablyBinary() = false, want true for NUL content")
		}
	})

	t.Run("InvalidUTF8IsBinary", func(t *testing.T) {
		path := writeFile(t, dir, "latin1.dat", []byte{0xff, 0xfe, 0x41, 0x42})
		if !IsProbablyBinary(path) {
			t.Error("IsProbablyBinary() = false, want true for invalid UTF-8")
		}
	})

	t.Run("ValidMultibyteUTF8IsText", func(t *testing.T) {
		path := writeFile(t, dir, "utf8.txt", []byte("héllo wörld ✓\n"))
		if IsProbablyBinary(path) {
			t.Error("IsProbablyBinary() = true, want false for valid UTF-8")
		}
	})

	t.Run("OnlySampleIsInspected", func(t *testing.T) {
		// NUL bytes past the sniff window do not make the file binary.
		content := append(bytes.Repeat([]byte("a"), sniffSize), 0x00)
		path := writeFile(t, dir, "tail-nul.dat", content)
		if IsProbablyBinary(path) {
			t.Error("IsProbablyBinary() = true, want false (NUL is outside the sample)")
		}
	})

	t.Run("MissingFileIsBinary", func(t *testing.T) {
		if !IsProbablyBinary(filepath.Join(dir, "missing.dat")) {
			t.Error("IsProbablyBinary() = false, want true for an unreadable file")
		}
	})
}
