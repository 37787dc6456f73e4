package parser

import (
	"context"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gaugeworks/codegauge/internal/lang"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// treeSitterProvider parses one language with its tree-sitter grammar and
// converts the raw tree into the neutral syntax form. A fresh tree-sitter
// parser is created per Parse call, so concurrent Parse calls are safe.
type treeSitterProvider struct {
	grammar *tree_sitter.Language
	kinds   map[string]syntax.Kind
}

// newTreeSitterProvider builds a provider for a supported language.
func newTreeSitterProvider(language lang.Language) *treeSitterProvider {
	switch language {
	case lang.Go:
		return &treeSitterProvider{
			grammar: tree_sitter.NewLanguage(tree_sitter_go.Language()),
			kinds:   goKinds,
		}
	case lang.Python:
		return &treeSitterProvider{
			grammar: tree_sitter.NewLanguage(tree_sitter_python.Language()),
			kinds:   pythonKinds,
		}
	case lang.Rust:
		return &treeSitterProvider{
			grammar: tree_sitter.NewLanguage(tree_sitter_rust.Language()),
			kinds:   rustKinds,
		}
	case lang.TypeScript, lang.JavaScript:
		return &treeSitterProvider{
			grammar: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			kinds:   typescriptKinds,
		}
	default:
		return nil
	}
}

// Parse runs the grammar over the source and converts the result. Grammar
// error nodes become ParseErrors; the tree is returned regardless.
func (p *treeSitterProvider) Parse(ctx context.Context, path string, source []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tsParser := tree_sitter.NewParser()
	defer tsParser.Close()

	if err := tsParser.SetLanguage(p.grammar); err != nil {
		return nil, fmt.Errorf("set grammar: %w", err)
	}

	tree := tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: grammar returned no tree", path)
	}
	defer tree.Close()

	conv := &converter{source: source, kinds: p.kinds}

	root := syntax.NewNode(syntax.KindFile)
	root.Pos = positionOf(tree.RootNode())

	conv.children(tree.RootNode(), root, false)

	return &Result{Tree: root, Errors: conv.errors}, nil
}

// converter walks a tree-sitter tree and emits syntax nodes. Named nodes
// without a kind mapping are transparent: their children attach to the
// nearest mapped ancestor.
type converter struct {
	source []byte
	kinds  map[string]syntax.Kind
	errors []ParseError
}

// children converts every child of a tree-sitter node under the given
// parent. inClass promotes functions to methods.
func (c *converter) children(tsNode *tree_sitter.Node, parent *syntax.Node, inClass bool) {
	count := tsNode.ChildCount()
	for i := uint(0); i < count; i++ {
		c.convert(tsNode.Child(i), parent, inClass)
	}
}

// convert maps one tree-sitter node. Anonymous tokens and unmapped kinds
// produce no node of their own.
func (c *converter) convert(tsNode *tree_sitter.Node, parent *syntax.Node, inClass bool) {
	if tsNode.IsError() || tsNode.IsMissing() {
		c.errors = append(c.errors, ParseError{
			Line:    int(tsNode.StartPosition().Row) + 1,
			Message: fmt.Sprintf("syntax error near %q", snippet(tsNode.Utf8Text(c.source))),
		})
		c.children(tsNode, parent, inClass)

		return
	}

	if !tsNode.IsNamed() {
		return
	}

	kind, mapped := c.kinds[tsNode.Kind()]
	if !mapped {
		c.children(tsNode, parent, inClass)

		return
	}

	if kind == syntax.KindFunction && inClass {
		kind = syntax.KindMethod
	}

	node := syntax.NewNode(kind)
	node.Pos = positionOf(tsNode)

	c.decorate(tsNode, node)
	parent.AddChild(node)

	c.children(tsNode, node, inClass || kind == syntax.KindClass || kind == syntax.KindInterface)
}

// decorate fills tokens and properties that downstream passes key on.
func (c *converter) decorate(tsNode *tree_sitter.Node, node *syntax.Node) {
	switch node.Kind {
	case syntax.KindIdentifier, syntax.KindLiteral, syntax.KindComment:
		node.Token = tsNode.Utf8Text(c.source)
	case syntax.KindFunction, syntax.KindMethod, syntax.KindClass, syntax.KindInterface:
		if name := fieldText(tsNode, "name", c.source); name != "" {
			node.Props = map[string]string{syntax.PropName: name}
		}
	case syntax.KindCall:
		if callee := fieldText(tsNode, "function", c.source); callee != "" {
			node.Props = map[string]string{syntax.PropName: callee}
		}
	case syntax.KindBinaryOp, syntax.KindUnaryOp, syntax.KindAssignment:
		if op := operatorOf(tsNode, c.source); op != "" {
			node.Props = map[string]string{syntax.PropOperator: op}
		}
	case syntax.KindImport:
		if path := importPath(tsNode, c.source); path != "" {
			node.Props = map[string]string{syntax.PropPath: path}
		}
	}
}

// operatorOf reads the operator field, falling back to the first anonymous
// operator token for grammars without the field.
func operatorOf(tsNode *tree_sitter.Node, source []byte) string {
	if op := fieldText(tsNode, "operator", source); op != "" {
		return op
	}

	count := tsNode.ChildCount()
	for i := uint(0); i < count; i++ {
		child := tsNode.Child(i)
		if !child.IsNamed() {
			if token := child.Utf8Text(source); isOperatorToken(token) {
				return token
			}
		}
	}

	return ""
}

// importPath reads the grammar-specific path field of an import node.
func importPath(tsNode *tree_sitter.Node, source []byte) string {
	for _, field := range []string{"path", "source", "argument"} {
		if text := fieldText(tsNode, field, source); text != "" {
			return strings.Trim(text, `"'`)
		}
	}

	return ""
}

// fieldText returns the text of a named field child, or empty.
func fieldText(tsNode *tree_sitter.Node, field string, source []byte) string {
	child := tsNode.ChildByFieldName(field)
	if child == nil {
		return ""
	}

	return child.Utf8Text(source)
}

// isOperatorToken matches assignment and arithmetic operator spellings.
func isOperatorToken(token string) bool {
	switch token {
	case "=", ":=", "+=", "-=", "*=", "/=", "%=", "+", "-", "*", "/", "%",
		"&&", "||", "!", "==", "!=", "<", ">", "<=", ">=":
		return true
	}

	return false
}

// positionOf converts tree-sitter's zero-based rows and columns.
func positionOf(tsNode *tree_sitter.Node) *syntax.Position {
	start := tsNode.StartPosition()
	end := tsNode.EndPosition()

	return &syntax.Position{
		StartLine: uint32(start.Row) + 1,
		StartCol:  uint32(start.Column) + 1,
		EndLine:   uint32(end.Row) + 1,
		EndCol:    uint32(end.Column) + 1,
	}
}

// snippet truncates error context for log-sized messages.
func snippet(text string) string {
	const maxLen = 40

	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > maxLen {
		return text[:maxLen] + "..."
	}

	return text
}
