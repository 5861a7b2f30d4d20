package libspy

import "testing"

func TestLookupKnownEntries(t *testing.T) {
	cases := []string{
		"str::alloc", "str::add", "str::mul", "str::eq", "str::getitem",
		"str::len", "str::hash", "operator::i32_div", "operator::i32_mod",
		"operator::i32_floordiv", "operator::f64_div", "operator::f64_floordiv",
		"operator::f64_mod", "operator::raise", "gc_alloc", "raw_alloc",
		"print_i32", "print_f64", "print_bool", "print_str",
	}
	for _, fqn := range cases {
		if _, ok := Lookup(fqn); !ok {
			t.Errorf("expected libspy contract entry for %q", fqn)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("not::a::thing"); ok {
		t.Fatalf("expected Lookup to fail for unknown FQN")
	}
}

func TestDivPromotesAndModResultMatchesOperands(t *testing.T) {
	div, _ := Lookup("operator::i32_div")
	mod, _ := Lookup("operator::i32_mod")
	if div.Result != "f64" {
		t.Fatalf("expected i32_div to promote to f64, got %q", div.Result)
	}
	if mod.Result != "i32" {
		t.Fatalf("expected i32 mod result, got %q", mod.Result)
	}
}
