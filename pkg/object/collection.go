package object

import (
	"fmt"
	"sync"

	"spy/corelang/pkg/fqn"
)

// listTypes and tupleTypes memoize List[T]/Tuple[T] type values by element
// FQN, per spec.md §3.3 "Generics are ordinary functions from types to
// types whose results are memoized by argument FQN so that List[i32]
// always returns the same type value."
var (
	collMu     sync.Mutex
	listTypes  = map[string]*Type{}
	tupleTypes = map[string]*Type{}
)

// ListType returns the (memoized) list-of-elem type, e.g. stdlib::list[i32].
func ListType(elem *Type) *Type {
	return memoizedCollType(listTypes, "list", elem)
}

// TupleType returns the (memoized) tuple-of-elem type, e.g. stdlib::tuple[i32].
func TupleType(elem *Type) *Type {
	return memoizedCollType(tupleTypes, "tuple", elem)
}

func memoizedCollType(cache map[string]*Type, sym string, elem *Type) *Type {
	key := elem.FQNVal.String()
	collMu.Lock()
	defer collMu.Unlock()
	if t, ok := cache[key]; ok {
		return t
	}
	kind := KindList
	if sym == "tuple" {
		kind = KindTuple
	}
	t := NewType(fqn.New("stdlib", sym, []fqn.Qualifier{{Key: "T", Value: key}}, 0), kind)
	t.Elem = elem
	cache[key] = t
	return t
}

// List is a mutable, dynamically-resized sequence W-object.
type List struct {
	ElemType *Type
	Elems    []Value
}

func NewList(elem *Type, elems []Value) *List {
	return &List{ElemType: elem, Elems: elems}
}

func (l *List) Type() *Type { return ListType(l.ElemType) }

func (l *List) Len() int32 { return int32(len(l.Elems)) }

// GetItem indexes the list, wrapping a negative index from the end (per
// libspy's str::getitem-style contract, which applies uniformly to every
// sequence's __getitem__ capability, not just Str).
func (l *List) GetItem(i int32) (Value, error) {
	i = wrapIndex(i, len(l.Elems))
	if i < 0 || int(i) >= len(l.Elems) {
		return nil, fmt.Errorf("list index %d out of range (len %d)", i, len(l.Elems))
	}
	return l.Elems[i], nil
}

func (l *List) SetItem(i int32, v Value) error {
	i = wrapIndex(i, len(l.Elems))
	if i < 0 || int(i) >= len(l.Elems) {
		return fmt.Errorf("list index %d out of range (len %d)", i, len(l.Elems))
	}
	l.Elems[i] = v
	return nil
}

func (l *List) Append(v Value) { l.Elems = append(l.Elems, v) }

// Tuple is an immutable fixed-length sequence W-object. Unlike List, every
// element may in principle have a distinct static type; at runtime this
// module treats a Tuple as homogeneous-by-convention and stamps ElemType
// from the first construction site (the vararg-collection case in
// pkg/interp/call.go, where the vararg's declared element type applies).
type Tuple struct {
	ElemType *Type
	Elems    []Value
}

func NewTuple(elem *Type, elems []Value) *Tuple {
	return &Tuple{ElemType: elem, Elems: elems}
}

func (t *Tuple) Type() *Type { return TupleType(t.ElemType) }

func (t *Tuple) Len() int32 { return int32(len(t.Elems)) }

func (t *Tuple) GetItem(i int32) (Value, error) {
	i = wrapIndex(i, len(t.Elems))
	if i < 0 || int(i) >= len(t.Elems) {
		return nil, fmt.Errorf("tuple index %d out of range (len %d)", i, len(t.Elems))
	}
	return t.Elems[i], nil
}

// wrapIndex adds n to i when i is negative, mirroring libspy/src/str.c's
// `if (i < 0) { i += l; }` — spec.md §6.2's negative-index-wraps contract,
// which this object model applies to every sequence, not only Str.
func wrapIndex(i int32, n int) int32 {
	if i < 0 {
		return i + int32(n)
	}
	return i
}
