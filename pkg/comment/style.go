// Package comment maps file extensions to the comment idiom used when
// annotating diffs, so deleted and inserted lines are flagged in a syntax
// the annotated file's language would accept.
package comment

import (
	"path/filepath"
	"strings"
)

// Style renders diff annotations in a syntax-appropriate comment idiom.
// There are exactly two variants: LinePrefix for line-oriented comment
// languages and Block for block-comment languages.
type Style interface {
	// DeletedLine rewrites a line removed from the base tree into its
	// flagged form, preserving the original trailing newline if present.
	DeletedLine(line string) string

	// MarkNew appends the inserted-line marker to a line that exists only
	// in the target tree, preserving the original trailing newline.
	MarkNew(line string) string
}

// LinePrefix is the comment style of line-oriented languages ("// ", "# ").
type LinePrefix struct {
	Prefix    string
	NewSuffix string
}

// DeletedLine renders "<prefix>DELETED: <content>".
func (s LinePrefix) DeletedLine(line string) string {
	content, end := splitNewline(line)
	return s.Prefix + "DELETED: " + content + end
}

// MarkNew renders "<content><suffix>".
func (s LinePrefix) MarkNew(line string) string {
	content, end := splitNewline(line)
	return content + s.NewSuffix + end
}

// Block is the comment style of block-comment languages ("<!-- -->", "/* */").
type Block struct {
	Open     string
	Close    string
	NewBlock string
}

// DeletedLine renders "<open> DELETED: <content> <close>".
func (s Block) DeletedLine(line string) string {
	content, end := splitNewline(line)
	return s.Open + " DELETED: " + content + " " + s.Close + end
}

// MarkNew renders "<content> <block>".
func (s Block) MarkNew(line string) string {
	content, end := splitNewline(line)
	return content + " " + s.NewBlock + end
}

// splitNewline separates a line's content from its trailing newline so
// annotations never shift line boundaries or add a terminator where none
// existed (relevant for a file's final line).
func splitNewline(line string) (content, end string) {
	if stripped, ok := strings.CutSuffix(line, "\n"); ok {
		return stripped, "\n"
	}
	return line, ""
}

var (
	slashStyle     = LinePrefix{Prefix: "// ", NewSuffix: " // NEW"}
	hashStyle      = LinePrefix{Prefix: "# ", NewSuffix: " # NEW"}
	dashStyle      = LinePrefix{Prefix: "-- ", NewSuffix: " -- NEW"}
	percentStyle   = LinePrefix{Prefix: "% ", NewSuffix: " % NEW"}
	semicolonStyle = LinePrefix{Prefix: "; ", NewSuffix: " ; NEW"}
	htmlStyle      = Block{Open: "<!--", Close: "-->", NewBlock: "<!-- NEW -->"}
	cBlockStyle    = Block{Open: "/*", Close: "*/", NewBlock: "/* NEW */"}
)

// styleByExt is the fixed extension table. Extensions are lower-cased and
// include the leading dot; anything absent falls back to hashStyle.
var styleByExt = map[string]Style{}

func init() {
	register := func(style Style, exts ...string) {
		for _, ext := range exts {
			styleByExt[ext] = style
		}
	}

	register(slashStyle,
		".c", ".h", ".cpp", ".hpp", ".cc", ".java", ".js", ".ts", ".tsx",
		".cs", ".swift", ".go", ".kt", ".kts", ".scala", ".dart", ".php", ".rs")
	register(hashStyle,
		".py", ".sh", ".rb", ".r", ".ps1", ".toml", ".yaml", ".yml", ".cfg",
		".gitignore", ".dockerignore", ".txt", ".log", ".conf", ".md", ".csv", ".tsv")
	register(dashStyle, ".sql", ".hs", ".lua")
	register(percentStyle, ".tex", ".m")
	register(semicolonStyle, ".ini")
	register(htmlStyle, ".html", ".htm", ".xml", ".xhtml", ".svg")
	register(cBlockStyle, ".css", ".scss", ".less", ".json")
}

// StyleFor returns the comment style for a file path, derived solely from
// its lower-cased extension. A missing or unknown extension falls back to
// the "# " line style.
func StyleFor(path string) Style {
	ext := strings.ToLower(filepath.Ext(path))
	if style, ok := styleByExt[ext]; ok {
		return style
	}
	return hashStyle
}
