// Package fqn implements SPy's Fully Qualified Names: the identifiers used
// throughout the compiler core to name every globally visible value
// uniquely, per spec.md §3.1.
//
// An FQN is a tuple of a dotted module path, a symbol name, an optional
// ordered list of (key, value) qualifiers (used to name generic
// instantiations), and an optional numeric disambiguation suffix. Its
// canonical string form is:
//
//	modpath::symbol[k1=v1,k2=v2]#n
//
// grounded on original_source/spy/fqn.py's FQN.fullname property
// ('{modname}::{attr}' plus an optional '#suffix'), generalized with the
// qualifier list spec.md §3.1 calls for and simplified relative to
// fqn_parser.py's fully recursive per-segment qualifiers, which spec.md
// does not ask for.
package fqn

import (
	"fmt"
	"strconv"
	"strings"
)

// Qualifier is one key=value pair inside an FQN's qualifier list, e.g. the
// "T=builtins::i32" in "mymod::Box[T=builtins::i32]".
type Qualifier struct {
	Key   string
	Value string
}

// FQN is an immutable, comparable-by-value identifier. Two FQNs are equal
// iff their canonical String() forms are equal; use Key() as a map key.
type FQN struct {
	Module     string
	Symbol     string
	Qualifiers []Qualifier
	Suffix     int // 0 means "no suffix"
}

// New builds an FQN from its parts. Qualifiers are copied defensively.
func New(module, symbol string, quals []Qualifier, suffix int) FQN {
	var qs []Qualifier
	if len(quals) > 0 {
		qs = make([]Qualifier, len(quals))
		copy(qs, quals)
	}
	return FQN{Module: module, Symbol: symbol, Qualifiers: qs, Suffix: suffix}
}

// Simple builds an FQN with no qualifiers and no suffix, e.g. "builtins::i32".
func Simple(module, symbol string) FQN {
	return FQN{Module: module, Symbol: symbol}
}

// IsZero reports whether f is the zero FQN (no module, no symbol).
func (f FQN) IsZero() bool {
	return f.Module == "" && f.Symbol == "" && f.Suffix == 0 && len(f.Qualifiers) == 0
}

// IsModule reports whether f names a module itself rather than a symbol
// inside one (spy/fqn.py's FQN.is_module: attr is empty).
func (f FQN) IsModule() bool {
	return f.Symbol == ""
}

// WithSuffix returns a copy of f with the given disambiguation suffix.
func (f FQN) WithSuffix(n int) FQN {
	g := f
	g.Suffix = n
	return g
}

// WithQualifiers returns a copy of f with its qualifier list replaced.
func (f FQN) WithQualifiers(qs []Qualifier) FQN {
	g := f
	g.Qualifiers = append([]Qualifier(nil), qs...)
	return g
}

// String renders the canonical form: modpath::symbol[k=v,...]#n
func (f FQN) String() string {
	var b strings.Builder
	b.WriteString(f.Module)
	if f.Symbol != "" {
		b.WriteString("::")
		b.WriteString(f.Symbol)
	}
	if len(f.Qualifiers) > 0 {
		b.WriteByte('[')
		for i, q := range f.Qualifiers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(q.Key)
			b.WriteByte('=')
			b.WriteString(q.Value)
		}
		b.WriteByte(']')
	}
	if f.Suffix != 0 {
		fmt.Fprintf(&b, "#%d", f.Suffix)
	}
	return b.String()
}

// Key returns the string used to compare/hash FQNs; it is simply String(),
// since FQN.String() is already a canonical, information-preserving form.
func (f FQN) Key() string {
	return f.String()
}

// CName renders a C-safe identifier for this FQN, for use by the (external)
// C emitter, mirroring spy/fqn.py's FQN.c_name: every non-alphanumeric
// separator becomes '$'.
func (f FQN) CName() string {
	s := f.String()
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('$')
		}
	}
	return b.String()
}

// Parse parses the canonical string form produced by String(). It is the
// inverse of String() for any FQN that does not contain ',', '[', ']', '#',
// or "::" inside a module/symbol/qualifier component itself.
func Parse(s string) (FQN, error) {
	rest := s
	suffix := 0
	if i := strings.LastIndexByte(rest, '#'); i >= 0 {
		n, err := strconv.Atoi(rest[i+1:])
		if err != nil {
			return FQN{}, fmt.Errorf("fqn: invalid suffix in %q: %w", s, err)
		}
		suffix = n
		rest = rest[:i]
	}

	var quals []Qualifier
	if i := strings.IndexByte(rest, '['); i >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return FQN{}, fmt.Errorf("fqn: unterminated qualifier list in %q", s)
		}
		qualStr := rest[i+1 : len(rest)-1]
		rest = rest[:i]
		if qualStr != "" {
			for _, part := range strings.Split(qualStr, ",") {
				kv := strings.SplitN(part, "=", 2)
				if len(kv) != 2 {
					return FQN{}, fmt.Errorf("fqn: malformed qualifier %q in %q", part, s)
				}
				quals = append(quals, Qualifier{Key: kv[0], Value: kv[1]})
			}
		}
	}

	module, symbol := rest, ""
	if i := strings.Index(rest, "::"); i >= 0 {
		module = rest[:i]
		symbol = rest[i+2:]
	}
	if module == "" {
		return FQN{}, fmt.Errorf("fqn: missing module in %q", s)
	}
	return FQN{Module: module, Symbol: symbol, Qualifiers: quals, Suffix: suffix}, nil
}

// Equal reports whether f and g name the same FQN.
func (f FQN) Equal(g FQN) bool {
	return f.Key() == g.Key()
}
