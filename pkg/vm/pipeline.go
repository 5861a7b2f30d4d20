// Package vm's pipeline.go exposes the three stop-after stages spec.md §2's
// pipeline overview names (parse / analyze / redshift) as plain functions,
// since spec.md §6.4 places the driving CLI out of this module's scope: an
// external caller wires these up, this module only has to make each stage
// independently reachable and testable. Grounded on original_source/spy/
// vm/vm.py's load_module (parse -> analyze -> exec top-level body) and, for
// the idea of exposing each stage as its own entry point an external --stop-
// after flag can target, on the teacher's pkg/driver orchestration shape.
package vm

import (
	"fmt"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/doppler"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/interp"
	"spy/corelang/pkg/object"
)

// ParseOnly runs only the external-grammar parse stage: source bytes to a
// RawModule, spec.md §6.1's parser boundary. It is a thin pass-through over
// adapter.ParseModule so a --stop-after=parse caller has one name to call
// regardless of which pipeline stage it ultimately wants.
func ParseOnly(adapter *ast.ParserAdapter, path string, source []byte) (*ast.RawModule, error) {
	return adapter.ParseModule(path, source)
}

// GlobalSymbols derives the Predeclared globals every module's analysis
// sees without an explicit import: every function/type v already has
// registered (its builtin namespace), keyed by the unqualified name a
// module-level reference uses, per original_source/spy/vm/vm.py injecting
// the builtins module's members into every module's globals.
func GlobalSymbols(v *VM) []ast.Predeclared {
	var out []ast.Predeclared
	for _, f := range v.Registry.All() {
		val, ok := v.LookupGlobal(f)
		if !ok {
			continue
		}
		switch w := val.(type) {
		case object.Func:
			out = append(out, ast.Predeclared{Name: f.Symbol, FQN: f, Type: w.FuncType(), Color: object.Blue})
		case *object.Type:
			out = append(out, ast.Predeclared{Name: f.Symbol, FQN: f, Type: object.TypeType, Color: object.Blue})
		}
	}
	return out
}

// Analyzed runs the parse-then-analyze stages: RawModule to a typed
// top-level statement list, resolving every name and stamping every
// expression's color, per spec.md §3.4/§3.6. This is the last stage that
// does not require a VM to execute anything — it is pure, deterministic
// name/type resolution, matching spec.md §8's analysis-determinism
// property.
func Analyzed(v *VM, modpath string, raw *ast.RawModule) ([]ast.Stmt, error) {
	a := ast.NewAnalyzer(modpath)
	return a.Analyze(raw, GlobalSymbols(v))
}

// LoadAnalyzed runs an analyzed module's top-level body to completion in a
// fresh Frame (spec.md §3.7): every FuncDef/ClassDef statement registers
// itself into v's registry as it executes (pkg/interp's execFuncDef/
// execClassDef), exactly as a nested FuncDef does inside an ordinary
// function. A module-level VarDef does not self-register (pkg/interp's
// execVarDef only ever binds a frame-local, correctly so for a VarDef
// nested inside a function body) — LoadAnalyzed promotes each one from the
// module frame's locals into the registry afterward, the one top-level
// kind that needs this extra publishing step.
func LoadAnalyzed(v *VM, modpath string, body []ast.Stmt) (*object.Module, error) {
	frame := interp.NewFrame(v, nil)
	if _, err := frame.RunFuncBody(body, nil); err != nil {
		return nil, err
	}

	m := object.NewModule(fqn.Simple(modpath, ""))
	for _, stmt := range body {
		switch n := stmt.(type) {
		case *ast.FuncDef:
			if val, ok := v.LookupGlobal(n.FQNVal); ok {
				m.Set(n.FQNVal.Symbol, val)
			}
		case *ast.ClassDef:
			if val, ok := v.LookupGlobal(n.FQNVal); ok {
				m.Set(n.FQNVal.Symbol, val)
			}
		case *ast.VarDef:
			val, ok := frame.Locals[n.Name]
			if !ok {
				continue
			}
			f := fqn.Simple(modpath, n.Name)
			if err := v.RegisterGlobal(f, val); err != nil {
				return nil, fmt.Errorf("vm: load %s: %w", modpath, err)
			}
			m.Set(n.Name, val)
		}
	}
	v.LoadModule(m)
	return m, nil
}

// Redshifted runs the redshift stage on one function already reachable
// through v's registry, returning its fully red residual form (spec.md
// §4.4/§4.5). This is the final named pipeline stage; a C emitter sits
// outside this module entirely (spec.md §6.3/§8 non-goals).
func Redshifted(v *VM, fn *object.ASTFunc) (*object.ASTFunc, error) {
	return doppler.Redshift(v, v.Registry, fn)
}

// Run drives the whole pipeline — parse, analyze, load — for one module's
// source, the shape an external CLI's ordinary (non --stop-after) build
// uses.
func Run(v *VM, adapter *ast.ParserAdapter, modpath, path string, source []byte) (*object.Module, error) {
	raw, err := ParseOnly(adapter, path, source)
	if err != nil {
		return nil, err
	}
	body, err := Analyzed(v, modpath, raw)
	if err != nil {
		return nil, err
	}
	return LoadAnalyzed(v, modpath, body)
}
