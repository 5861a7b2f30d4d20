// Package symtable implements SPy's scope analysis: the mapping from names
// to Symbols carrying a scope kind, a static type, and a color, per
// spec.md §3.4 and §3.6.
//
// Grounded on original_source/spy/vm/astframe.py's Name/NameLocal/
// NameOuterDirect/NameOuterCell split, which is exactly the local/outer/
// global/cellvar scope-kind distinction spec.md §3.6 names.
package symtable

import "spy/corelang/pkg/object"

// Color is re-exported from pkg/object (see object/color.go for why it
// lives there) so callers working in terms of scopes can spell it
// symtable.Color without reaching into pkg/object directly.
type Color = object.Color

const (
	Blue = object.Blue
	Red  = object.Red
)

// ScopeKind classifies where a name lives relative to the frame looking it
// up, mirroring spy/vm/astframe.py's Name_* dispatch:
//   - Local: declared in the current frame.
//   - Outer: declared in an enclosing frame, captured directly (the
//     enclosing frame is still live, e.g. a nested blue function).
//   - OuterCell: declared in an enclosing frame, captured through a cell
//     because the enclosing frame may have already returned.
//   - Global: a module-level name, resolved through the FQN registry
//     rather than a frame's locals.
type ScopeKind int

const (
	Local ScopeKind = iota
	Outer
	OuterCell
	Global
)

func (k ScopeKind) String() string {
	switch k {
	case Local:
		return "local"
	case Outer:
		return "outer"
	case OuterCell:
		return "outer-cell"
	case Global:
		return "global"
	default:
		return "<unknown scope kind>"
	}
}

// Symbol is one entry of a SymTable: a name's scope kind, its static type
// (nil until inferred), and its color.
type Symbol struct {
	Name       string
	Kind       ScopeKind
	StaticType *object.Type
	Color      Color
}

// SymTable is one lexical scope's name table, with a pointer to its
// enclosing scope (nil at module scope) so lookups can walk outward.
type SymTable struct {
	Parent  *SymTable
	IsFunc  bool // true for function-body scopes, false for module scope
	symbols map[string]*Symbol
}

func New(parent *SymTable, isFunc bool) *SymTable {
	return &SymTable{Parent: parent, IsFunc: isFunc, symbols: make(map[string]*Symbol)}
}

// Declare adds a new local symbol to this scope. It is an error to declare
// the same name twice in one scope.
func (t *SymTable) Declare(name string, staticType *object.Type, color Color) (*Symbol, error) {
	if _, exists := t.symbols[name]; exists {
		return nil, &Redeclared{Name: name}
	}
	sym := &Symbol{Name: name, Kind: Local, StaticType: staticType, Color: color}
	t.symbols[name] = sym
	return sym, nil
}

// Lookup searches this scope and its ancestors for name, classifying the
// result's ScopeKind relative to this scope: Local if found here, Outer if
// found in an enclosing function scope, OuterCell if found in an enclosing
// function scope that is not the immediately enclosing one (so it must be
// captured through a cell since the frame chain may not stay live), and
// Global if found only at module scope (no enclosing SymTable has IsFunc
// true above it... in practice, symbols found past the outermost function
// scope boundary).
func (t *SymTable) Lookup(name string) (*Symbol, ScopeKind, bool) {
	if sym, ok := t.symbols[name]; ok {
		return sym, Local, true
	}
	depth := 0
	for p := t.Parent; p != nil; p = p.Parent {
		if sym, ok := p.symbols[name]; ok {
			if !p.IsFunc {
				return sym, Global, true
			}
			if depth == 0 {
				return sym, Outer, true
			}
			return sym, OuterCell, true
		}
		if p.IsFunc {
			depth++
		}
	}
	return nil, 0, false
}

// Redeclared is returned by Declare when a name is already bound in the
// same scope.
type Redeclared struct {
	Name string
}

func (e *Redeclared) Error() string {
	return "symtable: " + e.Name + " is already declared in this scope"
}
