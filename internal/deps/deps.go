// Package deps extracts import/require relationships from a syntax tree.
// The resulting dependency names feed efferent coupling in the metrics
// calculator. Cross-file (afferent) analysis is out of scope.
package deps

import (
	"sort"
	"strings"

	"github.com/gaugeworks/codegauge/internal/syntax"
)

// Extractor pulls the distinct external dependency names out of a tree.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the sorted, deduplicated external dependency names
// imported by the file. Relative imports (./x, ../y) are local and
// excluded. Returns nil for a nil tree.
func (e *Extractor) Extract(tree *syntax.Node) []string {
	if tree == nil {
		return nil
	}

	seen := make(map[string]struct{})

	for _, imp := range tree.FindByKind(syntax.KindImport) {
		name := importName(imp)
		if name == "" || isLocal(name) {
			continue
		}

		seen[name] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// importName resolves the imported path or module name from an import node:
// the path property when set, otherwise the node token, otherwise the first
// literal or identifier child.
func importName(imp *syntax.Node) string {
	if path := imp.Prop(syntax.PropPath); path != "" {
		return trimQuotes(path)
	}

	if imp.Token != "" {
		return trimQuotes(imp.Token)
	}

	for _, child := range imp.Children {
		if child.HasAnyKind(syntax.KindLiteral, syntax.KindIdentifier) && child.Token != "" {
			return trimQuotes(child.Token)
		}
	}

	return ""
}

// isLocal reports whether an import path refers to the importing project
// itself rather than an external dependency.
func isLocal(name string) bool {
	return strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../") || name == "."
}

// trimQuotes strips surrounding string-literal quotes from an import path.
func trimQuotes(s string) string {
	return strings.Trim(s, "\"'`")
}
