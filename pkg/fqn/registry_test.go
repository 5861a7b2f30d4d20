package fqn

import "testing"

func TestRegisterLookup(t *testing.T) {
	r := NewRegistry()
	f := Simple("mymod", "f")
	if err := r.Register(f, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := r.Lookup(f)
	if !ok || v.(int) != 42 {
		t.Fatalf("expected to look up 42, got %v, %v", v, ok)
	}
}

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	f := Simple("mymod", "f")
	if err := r.Register(f, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(f, 42); err != nil {
		t.Fatalf("expected idempotent re-registration to succeed, got %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	r := NewRegistry()
	f := Simple("mymod", "f")
	if err := r.Register(f, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(f, 43); err == nil {
		t.Fatalf("expected registering a different value at the same FQN to fail")
	}
}

func TestUniqueBumpsSuffix(t *testing.T) {
	r := NewRegistry()
	base := Simple("mymod", "tmp")
	if err := r.Register(base, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Unique(base)
	want := base.WithSuffix(1)
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	fqns := []FQN{Simple("m", "a"), Simple("m", "b"), Simple("m", "c")}
	for i, f := range fqns {
		if err := r.Register(f, i); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	all := r.All()
	if len(all) != len(fqns) {
		t.Fatalf("expected %d entries, got %d", len(fqns), len(all))
	}
	for i, f := range fqns {
		if !all[i].Equal(f) {
			t.Errorf("position %d: got %s, want %s", i, all[i], f)
		}
	}
}
