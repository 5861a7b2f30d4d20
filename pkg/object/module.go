package object

import "spy/corelang/pkg/fqn"

// Module is a W-object representing a loaded SPy module: its FQN and its
// top-level member namespace (functions, types, module-level variables),
// per spec.md §3.1/§3.2.
type Module struct {
	FQNVal  fqn.FQN
	Members map[string]Value
}

func NewModule(f fqn.FQN) *Module {
	return &Module{FQNVal: f, Members: make(map[string]Value)}
}

func (m *Module) Type() *Type { return TypeModule }

func (m *Module) FQN() fqn.FQN { return m.FQNVal }

func (m *Module) Get(name string) (Value, bool) {
	v, ok := m.Members[name]
	return v, ok
}

func (m *Module) Set(name string, v Value) {
	m.Members[name] = v
}
