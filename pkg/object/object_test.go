package object

import "testing"

func TestColorMerge(t *testing.T) {
	if Merge(Blue, Blue, Blue) != Blue {
		t.Fatalf("all-blue merge should stay blue")
	}
	if Merge(Blue, Red, Blue) != Red {
		t.Fatalf("any red dependency should make the merge red")
	}
	if Merge() != Blue {
		t.Fatalf("merging zero colors should default to blue")
	}
}

func TestStrHashStableAndNonZero(t *testing.T) {
	s := NewStr("hello")
	h1 := s.Hash()
	h2 := s.Hash()
	if h1 != h2 {
		t.Fatalf("expected stable hash, got %d then %d", h1, h2)
	}
	if h1 == 0 {
		t.Fatalf("expected non-zero hash")
	}
	if h1 == -1 {
		t.Fatalf("expected hash != -1")
	}
	empty := NewStr("")
	if empty.Hash() == 0 {
		t.Fatalf("expected non-zero hash even for the empty string")
	}
	if empty.Hash() == -1 {
		t.Fatalf("expected hash != -1 for the empty string")
	}
}

// TestClampHashSentinelRemapsZeroAndMinusOne exercises the edge case a real
// FNV-1a sum of 0xFFFFFFFF would hit: as an int32 that bit pattern is -1,
// which Hash must remap away from rather than return unmodified.
func TestClampHashSentinelRemapsZeroAndMinusOne(t *testing.T) {
	if got := clampHashSentinel(0); got != 1 {
		t.Fatalf("clampHashSentinel(0) = %d, want 1", got)
	}
	if got := clampHashSentinel(-1); got != 1 {
		t.Fatalf("clampHashSentinel(-1) = %d, want 1", got)
	}
	if got := clampHashSentinel(42); got != 42 {
		t.Fatalf("clampHashSentinel(42) = %d, want 42 (unchanged)", got)
	}
}

func TestStrGetItemBounds(t *testing.T) {
	s := NewStr("abc")
	c, ok := s.GetItem(1)
	if !ok || c.Go() != "b" {
		t.Fatalf("expected 'b', got %v, ok=%v", c, ok)
	}
	if _, ok := s.GetItem(3); ok {
		t.Fatalf("expected out-of-bounds GetItem to fail")
	}
	if c, ok := s.GetItem(-1); !ok || c.Go() != "c" {
		t.Fatalf("expected negative index to wrap to 'c', got %v, ok=%v", c, ok)
	}
}

func TestStrMulNonPositive(t *testing.T) {
	s := NewStr("ab")
	if got := s.Mul(0); got.Go() != "" {
		t.Fatalf("expected empty string for Mul(0), got %q", got.Go())
	}
	if got := s.Mul(-3); got.Go() != "" {
		t.Fatalf("expected empty string for Mul(-3), got %q", got.Go())
	}
	if got := s.Mul(3); got.Go() != "ababab" {
		t.Fatalf("got %q", got.Go())
	}
}

func TestTypeCapabilities(t *testing.T) {
	ty := NewType(TypeI32.FQN(), KindI32)
	fn := NewNativeFunc(TypeI32.FQN(), nil, func(args []Value) (Value, error) { return Bool{Val: true}, nil })
	ty.SetCapability("__add__", fn)
	got, ok := ty.Capability("__add__")
	if !ok || got != fn {
		t.Fatalf("expected to find registered capability")
	}
	if _, ok := ty.Capability("__missing__"); ok {
		t.Fatalf("expected missing capability to report false")
	}
}

func TestStructCopyIsShallow(t *testing.T) {
	def := NewType(TypeVoid.FQN(), KindStruct)
	def.Fields = []FieldLayout{{Name: "x", Type: TypeI32}}
	s := NewStructInstance(def)
	s.Set("x", I32{Val: 10})

	copy := s.Copy()
	copy.Set("x", I32{Val: 20})

	orig, _ := s.Get("x")
	if orig.(I32).Val != 10 {
		t.Fatalf("expected original struct to be unaffected by mutating the copy")
	}
}

func TestPointerCheckedBounds(t *testing.T) {
	var target Value = I32{Val: 7}
	p := &Pointer{ElemType: TypeI32, Mode: Checked, Target: &target, Len: 1}
	if v, ok := p.Deref(0); !ok || v.(I32).Val != 7 {
		t.Fatalf("expected Deref(0) to succeed with value 7")
	}
	if _, ok := p.Deref(1); ok {
		t.Fatalf("expected checked pointer to reject an out-of-range index")
	}
}
