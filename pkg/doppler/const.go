// Package doppler implements SPy's redshift pass: a partial evaluator that
// takes a red W_ASTFunc and produces a fully-resolved residual AST in which
// every blue subexpression has been folded to a constant and every operator
// has been resolved to a concrete FQN'd call, per spec.md §4.4/§4.5.
//
// Grounded in full on original_source/spy/doppler.py's DopplerFrame/
// redshift/make_const. Composition, not inheritance: Doppler embeds
// *interp.Frame (see pkg/interp/control.go's package doc for why) and adds
// only the "build a residual expression instead of just evaluating it"
// logic on top — blue subexpressions are still evaluated by calling
// straight into the embedded Frame's EvalExpr/ExecStmt.
package doppler

import (
	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/object"
)

// MakeConst builds the residual AST node representing a known blue value,
// mirroring doppler.py's make_const: primitives become literal nodes,
// everything else becomes an FQNConst naming the value's own FQN (functions,
// types, modules) or a fresh registry entry (see fqnConstFor).
func MakeConst(reg *fqn.Registry, loc errs.Loc, v object.Value) ast.Expr {
	switch w := v.(type) {
	case object.Bool, object.I8, object.I32, object.F64:
		return &ast.Const{Meta: ast.Meta{Loc: loc, StaticType: v.Type(), Color: object.Blue}, Val: v}
	case *object.Str:
		return &ast.StrConst{Meta: ast.Meta{Loc: loc, StaticType: v.Type(), Color: object.Blue}, Val: w.Go()}
	default:
		f := fqnConstFor(reg, v)
		return &ast.FQNConst{Meta: ast.Meta{Loc: loc, StaticType: v.Type(), Color: object.Blue}, FQNVal: f}
	}
}

// fqnConstFor assigns (or reuses) a registry FQN for a non-primitive blue
// value so it can be named in the residual AST, mirroring doppler.py's
// vm.make_fqn_const: functions, types and modules already carry their own
// FQN and reuse it; anything else is interned under a new synthesized
// "doppler::const" entry on every call (fqn.Registry.Unique picks the first
// unused suffix without looking at values, so the same value folded twice
// gets two entries).
func fqnConstFor(reg *fqn.Registry, v object.Value) fqn.FQN {
	if f, ok := fqnOf(v); ok {
		return f
	}
	base := fqn.Simple("doppler", "const")
	f := reg.Unique(base)
	if err := reg.Register(f, v); err != nil {
		// Unique() already found a free slot; Register only fails on a
		// genuine conflict, which Unique's loop rules out by construction.
		panic(err)
	}
	return f
}

func fqnOf(v object.Value) (fqn.FQN, bool) {
	switch w := v.(type) {
	case object.Func:
		return w.FuncFQN(), true
	case *object.Type:
		return w.FQN(), true
	case *object.Module:
		return w.FQN(), true
	default:
		return fqn.FQN{}, false
	}
}
