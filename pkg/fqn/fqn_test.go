package fqn

import "testing"

func TestStringRoundTrip(t *testing.T) {
	cases := []FQN{
		Simple("builtins", "i32"),
		New("mymod", "Box", []Qualifier{{Key: "T", Value: "builtins::i32"}}, 0),
		New("mymod", "f", nil, 2),
		New("mymod", "Box", []Qualifier{{Key: "T", Value: "builtins::i32"}, {Key: "N", Value: "4"}}, 3),
		{Module: "mymod"}, // a module FQN itself
	}
	for _, f := range cases {
		s := f.String()
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		if !got.Equal(f) {
			t.Errorf("round trip mismatch: %q -> %+v, want %+v", s, got, f)
		}
	}
}

func TestIsModule(t *testing.T) {
	mod := FQN{Module: "mymod"}
	if !mod.IsModule() {
		t.Fatalf("expected IsModule() true for %+v", mod)
	}
	sym := Simple("mymod", "f")
	if sym.IsModule() {
		t.Fatalf("expected IsModule() false for %+v", sym)
	}
}

func TestUniquenessByCanonicalForm(t *testing.T) {
	a := Simple("mymod", "f")
	b := Simple("mymod", "f")
	c := a.WithSuffix(1)
	if !a.Equal(b) {
		t.Fatalf("expected equal FQNs for identical module/symbol")
	}
	if a.Equal(c) {
		t.Fatalf("expected distinct FQNs once a suffix is added")
	}
	if a.Key() == c.Key() {
		t.Fatalf("expected distinct map keys for distinct FQNs")
	}
}

func TestCName(t *testing.T) {
	f := New("my.mod", "Box", []Qualifier{{Key: "T", Value: "builtins::i32"}}, 2)
	name := f.CName()
	for _, r := range name {
		isSafe := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '$'
		if !isSafe {
			t.Fatalf("CName() produced unsafe character %q in %q", r, name)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	bad := []string{
		"mymod::f[T=builtins::i32",
		"mymod::f#notanumber",
		"::f",
	}
	for _, s := range bad {
		if _, err := Parse(s); err == nil {
			t.Errorf("expected Parse(%q) to fail", s)
		}
	}
}
