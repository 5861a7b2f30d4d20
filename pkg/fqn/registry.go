package fqn

import (
	"fmt"
	"sync"
)

// Registry is the process-wide FQN -> value table (spec.md §3.1, §5: "the
// module registry is the one process-wide mutable structure... insertion is
// deterministic and idempotent"). It stores values generically (as `any`)
// so this package stays a dependency-free leaf; pkg/vm layers a
// typed accessor over it for object.Value.
//
// A guarding mutex is kept even though the evaluator itself runs single
// threaded and cooperative (spec.md §5): nothing stops a test or an
// embedder from building more than one VM, or inspecting a registry from a
// goroutine other than the one driving evaluation, and the cost of the
// guard is negligible.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
	order  []FQN
}

func NewRegistry() *Registry {
	return &Registry{values: make(map[string]any)}
}

// Register inserts fqn -> value. Re-registering the same FQN is an error
// unless it is an idempotent no-op: the same key is already bound to an
// equal value, judged by Go `==` on the stored interface values (pointer
// identity for *object.Type and similar pointer values layered on top).
func (r *Registry) Register(f FQN, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := f.Key()
	if existing, ok := r.values[key]; ok {
		if existing == value {
			return nil
		}
		return fmt.Errorf("fqn: %s is already registered with a different value", f)
	}
	r.values[key] = value
	r.order = append(r.order, f)
	return nil
}

func (r *Registry) Lookup(f FQN) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[f.Key()]
	return v, ok
}

func (r *Registry) MustLookup(f FQN) any {
	v, ok := r.Lookup(f)
	if !ok {
		panic(fmt.Sprintf("fqn: %s not registered", f))
	}
	return v
}

// All returns every registered FQN in insertion order, for deterministic
// iteration (dumps, lockfile serialization).
func (r *Registry) All() []FQN {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]FQN, len(r.order))
	copy(out, r.order)
	return out
}

// Unique returns the first of base, base#1, base#2, ... not already
// registered, without registering it. Callers that need a fresh FQN for a
// generic instantiation or desugared helper use this to avoid collisions.
func (r *Registry) Unique(base FQN) FQN {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.values[base.Key()]; !ok {
		return base
	}
	for n := 1; ; n++ {
		candidate := base.WithSuffix(n)
		if _, ok := r.values[candidate.Key()]; !ok {
			return candidate
		}
	}
}
