package ast

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Grammar is the externally-owned half of spec.md §6.1's parser boundary:
// this module does not ship the SPy grammar (out of scope per spec.md
// §1), so a caller supplies one as an ordinary *sitter.Language.
type Grammar = *sitter.Language

// ParserAdapter wraps a tree-sitter parser configured with a
// caller-supplied Grammar, grounded on the teacher's
// pkg/parser/module_parser.go ModuleParser — same SetLanguage/Parse/
// RootNode sequence, but the language itself is injected rather than
// owned, since the grammar lives outside this module's scope.
type ParserAdapter struct {
	parser *sitter.Parser
	walker func(root *sitter.Node, source []byte) (*RawModule, error)
}

// NewParserAdapter constructs an adapter for the given grammar. walk turns
// a parsed tree-sitter tree into this package's RawModule; it is supplied
// by the caller because the concrete node-kind strings a grammar produces
// ("source_file", "func_def", ...) are defined by that externally-owned
// grammar, not by this module.
func NewParserAdapter(lang Grammar, walk func(root *sitter.Node, source []byte) (*RawModule, error)) (*ParserAdapter, error) {
	if lang == nil {
		return nil, fmt.Errorf("ast: parseradapter: nil grammar")
	}
	p := sitter.NewParser()
	if err := p.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("ast: parseradapter: %w", err)
	}
	return &ParserAdapter{parser: p, walker: walk}, nil
}

func (a *ParserAdapter) Close() {
	if a == nil || a.parser == nil {
		return
	}
	a.parser.Close()
}

// ParseModule parses source with the configured grammar and walks the
// resulting tree-sitter tree into a RawModule via the caller-supplied
// walker, surfacing a syntax error (spec.md §7's ParseError/SyntaxError)
// if the grammar reports a parse error.
func (a *ParserAdapter) ParseModule(path string, source []byte) (*RawModule, error) {
	if a == nil || a.parser == nil {
		return nil, fmt.Errorf("ast: parseradapter: nil parser")
	}
	tree := a.parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("ast: parseradapter: %s: empty parse tree", path)
	}
	if root.HasError() {
		return nil, fmt.Errorf("ast: parseradapter: %s: syntax error", path)
	}

	mod, err := a.walker(root, source)
	if err != nil {
		return nil, fmt.Errorf("ast: parseradapter: %s: %w", path, err)
	}
	mod.Path = path
	return mod, nil
}
