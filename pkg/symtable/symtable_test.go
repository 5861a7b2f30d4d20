package symtable

import (
	"testing"

	"spy/corelang/pkg/object"
)

func TestDeclareAndLookupLocal(t *testing.T) {
	tbl := New(nil, false)
	if _, err := tbl.Declare("x", object.TypeI32, Blue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, kind, ok := tbl.Lookup("x")
	if !ok || kind != Local || sym.StaticType != object.TypeI32 {
		t.Fatalf("expected local lookup to succeed, got %v %v %v", sym, kind, ok)
	}
}

func TestDeclareRejectsDuplicate(t *testing.T) {
	tbl := New(nil, false)
	if _, err := tbl.Declare("x", object.TypeI32, Blue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tbl.Declare("x", object.TypeI32, Blue); err == nil {
		t.Fatalf("expected redeclaration to fail")
	}
}

func TestLookupOuterVsOuterCellVsGlobal(t *testing.T) {
	module := New(nil, false)
	if _, err := module.Declare("g", object.TypeI32, Blue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer := New(module, true)
	if _, err := outer.Declare("o", object.TypeI32, Blue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inner := New(outer, true)

	_, kind, ok := inner.Lookup("o")
	if !ok || kind != Outer {
		t.Fatalf("expected Outer for immediately enclosing func scope, got %v, %v", kind, ok)
	}

	grandchild := New(inner, true)
	_, kind, ok = grandchild.Lookup("o")
	if !ok || kind != OuterCell {
		t.Fatalf("expected OuterCell for a func scope two levels out, got %v, %v", kind, ok)
	}

	_, kind, ok = grandchild.Lookup("g")
	if !ok || kind != Global {
		t.Fatalf("expected Global for a module-scope name, got %v, %v", kind, ok)
	}
}

func TestLookupMissing(t *testing.T) {
	tbl := New(nil, false)
	if _, _, ok := tbl.Lookup("nope"); ok {
		t.Fatalf("expected lookup of an undeclared name to fail")
	}
}
