// Package lang detects the programming language of a source file from its
// path and content. Detection is heuristic; files whose language cannot be
// established are reported as Unknown and analyzed with empty metrics rather
// than rejected.
package lang

import (
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// Language is a canonical language identifier as reported by detection.
type Language string

// Languages with first-class parser support. Anything else detected by enry
// is still returned verbatim so reports can show it, but only these have a
// registered parser provider.
const (
	Go         Language = "Go"
	Python     Language = "Python"
	Rust       Language = "Rust"
	TypeScript Language = "TypeScript"
	JavaScript Language = "JavaScript"
	Unknown    Language = "unknown"
)

// Detect returns the language of the file at path with the given content.
// It consults extension-based detection first and falls back to content
// classification for ambiguous extensions. Returns Unknown when no language
// can be established.
func Detect(path string, content []byte) Language {
	name := filepath.Base(path)

	detected := enry.GetLanguage(name, content)
	if detected == "" {
		return Unknown
	}

	return Language(detected)
}

// CommentStyle describes the comment markers used by line counting for a
// language. BlockStart/BlockEnd are empty for languages without block
// comments.
type CommentStyle struct {
	LinePrefixes []string
	BlockStart   string
	BlockEnd     string
}

// cStyle covers the C family: Go, Rust, TypeScript, JavaScript, Java, C...
var cStyle = CommentStyle{
	LinePrefixes: []string{"//"},
	BlockStart:   "/*",
	BlockEnd:     "*/",
}

// hashStyle covers Python, Ruby, shell and configuration languages.
var hashStyle = CommentStyle{
	LinePrefixes: []string{"#"},
}

// pythonStyle treats triple-quoted strings at statement level as block
// comments, matching how docstring-heavy files read.
var pythonStyle = CommentStyle{
	LinePrefixes: []string{"#"},
	BlockStart:   `"""`,
	BlockEnd:     `"""`,
}

// Comments returns the comment style for a language. Unrecognized languages
// get the C style, which is the most common convention.
func Comments(language Language) CommentStyle {
	switch language {
	case Python:
		return pythonStyle
	case Go, Rust, TypeScript, JavaScript:
		return cStyle
	default:
		if isHashCommented(language) {
			return hashStyle
		}

		return cStyle
	}
}

// isHashCommented reports whether a language conventionally uses # line
// comments.
func isHashCommented(language Language) bool {
	switch strings.ToLower(string(language)) {
	case "ruby", "perl", "shell", "bash", "yaml", "toml", "makefile", "r", "elixir":
		return true
	default:
		return false
	}
}
