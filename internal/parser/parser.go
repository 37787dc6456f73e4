// Package parser turns source files into language-neutral syntax trees.
// Grammars are supplied by tree-sitter; a registry maps detected languages
// to a provider.
package parser

import (
	"context"
	"errors"

	"github.com/gaugeworks/codegauge/internal/lang"
	"github.com/gaugeworks/codegauge/internal/syntax"
)

// ErrUnsupportedLanguage is returned when no provider is registered for a
// detected language.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseError records a syntax error surfaced by the grammar. Parse errors do
// not abort analysis; the tree is still returned best-effort.
type ParseError struct {
	Line    int
	Message string
}

// Result is a parsed file: the converted tree plus any syntax errors the
// grammar recovered from.
type Result struct {
	Tree   *syntax.Node
	Errors []ParseError
}

// Provider parses one language family into syntax trees.
type Provider interface {
	Parse(ctx context.Context, path string, source []byte) (*Result, error)
}

// Registry maps languages to providers.
type Registry struct {
	providers map[lang.Language]Provider
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[lang.Language]Provider)}
}

// Default returns a Registry with tree-sitter providers for every supported
// language. JavaScript shares the TypeScript grammar.
func Default() *Registry {
	registry := NewRegistry()

	for _, language := range []lang.Language{
		lang.Go, lang.Python, lang.Rust, lang.TypeScript, lang.JavaScript,
	} {
		registry.Register(language, newTreeSitterProvider(language))
	}

	return registry
}

// Register binds a provider to a language, replacing any previous binding.
func (r *Registry) Register(language lang.Language, provider Provider) {
	r.providers[language] = provider
}

// Lookup returns the provider for a language.
func (r *Registry) Lookup(language lang.Language) (Provider, error) {
	provider, ok := r.providers[language]
	if !ok {
		return nil, ErrUnsupportedLanguage
	}

	return provider, nil
}

// Supports reports whether a language has a registered provider.
func (r *Registry) Supports(language lang.Language) bool {
	_, ok := r.providers[language]

	return ok
}
