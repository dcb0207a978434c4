package annotate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tmsantos/bigdiff/pkg/comment"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	return path
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"Empty", "", nil},
		{"SingleTerminated", "a\n", []string{"a\n"}},
		{"SingleUnterminated", "a", []string{"a"}},
		{"MultiTerminated", "a\nb\n", []string{"a\n", "b\n"}},
		{"FinalUnterminated", "a\nb", []string{"a\n", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLines(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("splitLines(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
			if strings.Join(got, "") != tt.text {
				t.Errorf("splitLines(%q) does not reassemble to the input", tt.text)
			}
		})
	}
}

func TestReadTextBestEffort(t *testing.T) {
	dir := t.TempDir()

	t.Run("UTF8", func(t *testing.T) {
		path := writeFile(t, dir, "utf8.txt", []byte("héllo\n"))
		got, err := ReadTextBestEffort(path, false)
		if err != nil {
			t.Fatalf("ReadTextBestEffort() error = %v", err)
		}
		if got != "héllo\n" {
			t.Errorf("ReadTextBestEffort() = %q, want %q", got, "héllo\n")
		}
	})

	t.Run("Windows1252Fallback", func(t *testing.T) {
		// 0xE9 is "é" in Windows-1252 but invalid as standalone UTF-8.
		path := writeFile(t, dir, "cp1252.txt", []byte{'c', 'a', 'f', 0xE9, '\n'})
		got, err := ReadTextBestEffort(path, false)
		if err != nil {
			t.Fatalf("ReadTextBestEffort() error = %v", err)
		}
		if got != "café\n" {
			t.Errorf("ReadTextBestEffort() = %q, want %q", got, "café\n")
		}
	})

	t.Run("NormalizeEOL", func(t *testing.T) {
		path := writeFile(t, dir, "eol.txt", []byte("a\r\nb\rc\n"))
		got, err := ReadTextBestEffort(path, true)
		if err != nil {
			t.Fatalf("ReadTextBestEffort() error = %v", err)
		}
		if got != "a\nb\nc\n" {
			t.Errorf("ReadTextBestEffort() = %q, want %q", got, "a\nb\nc\n")
		}
	})

	t.Run("EOLKeptWithoutFlag", func(t *testing.T) {
		path := writeFile(t, dir, "crlf.txt", []byte("a\r\nb\r\n"))
		got, err := ReadTextBestEffort(path, false)
		if err != nil {
			t.Fatalf("ReadTextBestEffort() error = %v", err)
		}
		if got != "a\r\nb\r\n" {
			t.Errorf("ReadTextBestEffort() = %q, want CRLF preserved", got)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := ReadTextBestEffort(filepath.Join(dir, "missing.txt"), false); err == nil {
			t.Error("ReadTextBestEffort() should fail for a missing file")
		}
	})
}

func TestAnnotate_InsertedLine(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.txt", []byte("hello\n"))
	target := writeFile(t, dir, "target.txt", []byte("hello\nworld\n"))

	got, err := Annotate(base, target, comment.StyleFor("notes.txt"), false)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := "hello\nworld # NEW\n"
	if got != want {
		t.Errorf("Annotate() = %q, want %q", got, want)
	}
}

func TestAnnotate_DeletedLine(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.go", []byte("a\nb\nc\n"))
	target := writeFile(t, dir, "target.go", []byte("a\nc\n"))

	got, err := Annotate(base, target, comment.StyleFor("main.go"), false)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := "a\n// DELETED: b\nc\n"
	if got != want {
		t.Errorf("Annotate() = %q, want %q", got, want)
	}
}

func TestAnnotate_ReplacedLine(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.txt", []byte("one\ntwo\nthree\n"))
	target := writeFile(t, dir, "target.txt", []byte("one\n2\nthree\n"))

	got, err := Annotate(base, target, comment.StyleFor("x.txt"), false)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := "one\n# DELETED: two\n2 # NEW\nthree\n"
	if got != want {
		t.Errorf("Annotate() = %q, want %q", got, want)
	}
}

func TestAnnotate_BlockStyle(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.html", []byte("<p>old</p>\n"))
	target := writeFile(t, dir, "target.html", []byte("<p>new</p>\n"))

	got, err := Annotate(base, target, comment.StyleFor("index.html"), false)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := "<!-- DELETED: <p>old</p> -->\n<p>new</p> <!-- NEW -->\n"
	if got != want {
		t.Errorf("Annotate() = %q, want %q", got, want)
	}
}

func TestAnnotate_FinalLineWithoutNewline(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.txt", []byte("a\n"))
	target := writeFile(t, dir, "target.txt", []byte("a\nb"))

	got, err := Annotate(base, target, comment.StyleFor("x.txt"), false)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := "a\nb # NEW"
	if got != want {
		t.Errorf("Annotate() = %q, want no trailing newline added", got)
	}
}

func TestAnnotate_NormalizeEOLPreventsWholesaleChange(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.txt", []byte("a\r\nb\r\n"))
	target := writeFile(t, dir, "target.txt", []byte("a\nb\nc\n"))

	got, err := Annotate(base, target, comment.StyleFor("x.txt"), true)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}
	want := "a\nb\nc # NEW\n"
	if got != want {
		t.Errorf("Annotate() = %q, want %q (only the genuinely new line flagged)", got, want)
	}
}

// TestAnnotate_LosslessSuperposition checks that stripping annotations
// reconstructs both inputs' line sequences: deleted-line markers carry the
// base lines, everything else carries the target lines.
func TestAnnotate_LosslessSuperposition(t *testing.T) {
	dir := t.TempDir()
	baseContent := "alpha\nbeta\ngamma\ndelta\n"
	targetContent := "alpha\nbravo\ngamma\ndelta\nepsilon\n"
	base := writeFile(t, dir, "base.txt", []byte(baseContent))
	target := writeFile(t, dir, "target.txt", []byte(targetContent))

	got, err := Annotate(base, target, comment.StyleFor("x.txt"), false)
	if err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	var fromBase, fromTarget strings.Builder
	for _, line := range splitLines(got) {
		switch {
		case strings.HasPrefix(line, "# DELETED: "):
			fromBase.WriteString(strings.TrimPrefix(line, "# DELETED: "))
		case strings.HasSuffix(line, " # NEW\n"):
			fromTarget.WriteString(strings.TrimSuffix(line, " # NEW\n") + "\n")
		default:
			fromBase.WriteString(line)
			fromTarget.WriteString(line)
		}
	}

	if fromBase.String() != baseContent {
		t.Errorf("base reconstruction = %q, want %q", fromBase.String(), baseContent)
	}
	if fromTarget.String() != targetContent {
		t.Errorf("target reconstruction = %q, want %q", fromTarget.String(), targetContent)
	}
}
