package doppler

import (
	"fmt"
	"strings"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/interp"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/ops"
	"spy/corelang/pkg/symtable"
)

// binOpName/cmpOpName mirror pkg/interp/eval.go's operator-name tables
// (kept as a separate, small copy here rather than exporting interp's,
// since pkg/ops.Dispatch's opName vocabulary is what both packages key
// off of, not an interp-specific detail).
var binOpName = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "truediv", "//": "floordiv", "%": "mod",
}

var cmpOpName = map[string]string{
	"==": "eq", "!=": "ne", "<": "lt", "<=": "le", ">": "gt", ">=": "ge",
}

// Doppler performs redshift on one W_ASTFunc at a time. It embeds
// *interp.Frame so every blue subexpression is evaluated by the ordinary
// interpreter; Doppler's own methods (ShiftStmt/ShiftExpr) only add the
// "and if it's red, build a residual node instead" behavior.
type Doppler struct {
	*interp.Frame
	Registry *fqn.Registry

	// TB is the blue-call-chain trace shared by every Doppler spawned while
	// redshifting one top-level function, so a failure nested arbitrarily
	// deep (via shiftCall's recursive redshift calls) can report the full
	// chain of callers, per spec.md §4.3's "cyclic blue call... reported as
	// a static error with the call stack".
	TB *errs.Traceback
}

// NewDoppler builds a Doppler over a fresh Frame closing over fn's own
// closure, matching the scope a redshift of fn would see.
func NewDoppler(globals interp.Globals, reg *fqn.Registry, closure []map[string]object.Value) *Doppler {
	return &Doppler{Frame: interp.NewFrame(globals, closure), Registry: reg, TB: &errs.Traceback{}}
}

// Redshift produces fn's residual form: a new ASTFunc whose body is fully
// red, whose closure is empty (every non-local lookup has been folded to a
// constant), and which is memoized onto fn.RedshiftedInto so repeated
// redshifts of the same function return the identical result (spec.md
// §4.4's generic/blue-function memoization, §8's "redshift idempotence").
func Redshift(globals interp.Globals, reg *fqn.Registry, fn *object.ASTFunc) (*object.ASTFunc, error) {
	return redshift(globals, reg, fn, &errs.Traceback{})
}

// redshift is Redshift's implementation, threading a shared Traceback
// through every nested redshift shiftCall triggers so a failure deep in the
// blue call chain reports every frame above it, not just its own.
func redshift(globals interp.Globals, reg *fqn.Registry, fn *object.ASTFunc, tb *errs.Traceback) (*object.ASTFunc, error) {
	switch fn.State {
	case object.Redshifted:
		return fn.RedshiftedInto, nil
	case object.Resolving:
		loc := errs.Loc{}
		if fd, ok := fn.Body.(*ast.FuncDef); ok {
			loc = fd.Location()
		}
		return nil, errs.WithTraceback(
			errs.Simple("StaticError", fmt.Sprintf("%s: cyclic blue call during redshift", fn.FuncFQN()), "", loc),
			tb)
	}
	fn.State = object.Resolving
	defer func() {
		if fn.State == object.Resolving {
			fn.State = object.Unresolved
		}
	}()

	fd, ok := fn.Body.(*ast.FuncDef)
	if !ok {
		return nil, fmt.Errorf("doppler: %s: function body is not a *ast.FuncDef", fn.FuncFQN())
	}

	tb.Push(errs.Frame{FuncName: fn.FuncFQN().String(), Loc: fd.Location()})
	defer tb.Pop()

	d := NewDoppler(globals, reg, fn.Closure)
	d.TB = tb
	if err := bindResidualParams(d.Frame, fd); err != nil {
		return nil, attachTraceback(err, tb)
	}

	for _, stmt := range fd.Body {
		if cd, ok := stmt.(*ast.ClassDef); ok {
			if err := d.ExecStmt(cd); err != nil {
				return nil, attachTraceback(err, tb)
			}
		}
	}

	newBody, err := d.shiftBlock(fd.Body)
	if err != nil {
		return nil, attachTraceback(err, tb)
	}

	newFD := &ast.FuncDef{
		Meta:      fd.Meta,
		FQNVal:    fd.FQNVal,
		Params:    fd.Params,
		VarArg:    fd.VarArg,
		Result:    fd.Result,
		Body:      newBody,
		FuncColor: object.Red,
	}
	newFn := object.NewASTFunc(fn.FQNVal, fn.FT, newFD, nil, object.Red)
	newFn.State = object.Redshifted

	fn.State = object.Redshifted
	fn.RedshiftedInto = newFn
	return newFn, nil
}

// attachTraceback annotates err with tb's current frames, unless it's
// already carrying a blue-call-chain note from a deeper redshift call —
// the traceback is meaningful at the point of origin, not at every level
// the error is merely forwarded through.
func attachTraceback(err error, tb *errs.Traceback) error {
	if err == nil {
		return nil
	}
	se, ok := err.(*errs.SPyError)
	if !ok {
		se = errs.New("StaticError", err.Error())
	}
	for _, a := range se.Annotations {
		if a.Level == errs.LevelNote && strings.HasPrefix(a.Message, "blue call chain:") {
			return se
		}
	}
	return errs.WithTraceback(se, tb)
}

// bindResidualParams declares every parameter as a local bound to a
// residualParam placeholder carrying only its declared type, so a parameter
// evaluates to itself (a residual Name) during the shift. Blue parameters
// are bound the same way: no actual argument value is substituted here.
func bindResidualParams(f *interp.Frame, fd *ast.FuncDef) error {
	for _, p := range fd.Params {
		f.DeclareLocal(p.Name, &residualParam{typ: p.Type})
	}
	return nil
}

// residualParam is a placeholder W-object for a not-yet-bound red
// parameter: EvalExpr never actually needs its value (a red Name just
// passes through to a residual ast.Name unevaluated), but the frame's
// LoadName still needs a map entry to resolve "declared, scope-wise".
type residualParam struct{ typ *object.Type }

func (r *residualParam) Type() *object.Type { return r.typ }

func (d *Doppler) shiftBlock(body []ast.Stmt) ([]ast.Stmt, error) {
	out := make([]ast.Stmt, 0, len(body))
	for _, s := range body {
		// If/While get a chance to expand to zero or many statements when
		// their condition is blue (see shiftIfStmts/shiftWhileStmts), so they
		// are handled before falling through to ShiftStmt's one-in-one-out
		// shape.
		switch n := s.(type) {
		case *ast.If:
			stmts, err := d.shiftIfStmts(n)
			if err != nil {
				return nil, err
			}
			out = append(out, stmts...)
			continue
		case *ast.While:
			stmts, err := d.shiftWhileStmts(n)
			if err != nil {
				return nil, err
			}
			out = append(out, stmts...)
			continue
		}
		shifted, err := d.ShiftStmt(s)
		if err != nil {
			return nil, err
		}
		if shifted != nil {
			out = append(out, shifted)
		}
	}
	return out, nil
}

// ShiftStmt produces stmt's residual form, or nil if stmt is purely blue
// and has been folded away (its effect already applied to d.Frame's
// locals), mirroring doppler.py's shift_stmt_* family.
func (d *Doppler) ShiftStmt(stmt ast.Stmt) (ast.Stmt, error) {
	switch n := stmt.(type) {
	case *ast.Pass, *ast.Break, *ast.Continue:
		return stmt, nil
	case *ast.ExprStmt:
		e, err := d.ShiftExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Meta: n.Meta, Value: e}, nil
	case *ast.VarDef:
		return d.shiftVarDef(n)
	case *ast.Assign:
		return d.shiftAssign(n)
	case *ast.Return:
		if n.Value == nil {
			return stmt, nil
		}
		e, err := d.ShiftExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Meta: n.Meta, Value: e}, nil
	case *ast.Raise:
		e, err := d.ShiftExpr(n.Exc)
		if err != nil {
			return nil, err
		}
		return &ast.Raise{Meta: n.Meta, Exc: e}, nil
	case *ast.If, *ast.While:
		// Always intercepted by shiftBlock before reaching here (they may
		// expand to a different number of statements); reaching this case
		// means an If/While occurred somewhere other than a block body.
		return nil, fmt.Errorf("doppler: %s: %T must be shifted via shiftBlock, not ShiftStmt", stmt.Location(), stmt)
	case *ast.For:
		return d.shiftFor(n)
	case *ast.FuncDef:
		// A nested blue function def is fully consumed at redshift time: it
		// is registered so calls to it resolve, but (spec.md §4.5 "no blue
		// function defs remain") it does not itself survive into the
		// residual body.
		if err := d.ExecStmt(n); err != nil {
			return nil, err
		}
		return nil, nil
	case *ast.ClassDef:
		return nil, nil // already fwdecl'd by Redshift before shiftBlock runs
	default:
		return nil, fmt.Errorf("doppler: %s: unhandled statement node %T", stmt.Location(), stmt)
	}
}

func (d *Doppler) shiftVarDef(n *ast.VarDef) (ast.Stmt, error) {
	if n.ColorOf() == object.Blue {
		if n.Value != nil {
			v, err := d.Frame.EvalExpr(n.Value)
			if err != nil {
				return nil, err
			}
			d.DeclareLocal(n.Name, v)
		}
		return nil, nil
	}
	var val ast.Expr
	if n.Value != nil {
		var err error
		val, err = d.ShiftExpr(n.Value)
		if err != nil {
			return nil, err
		}
	}
	return &ast.VarDef{Meta: n.Meta, Name: n.Name, Declared: n.Declared, Value: val}, nil
}

func (d *Doppler) shiftAssign(n *ast.Assign) (ast.Stmt, error) {
	if name, ok := n.Target.(*ast.Name); ok && n.Value.ColorOf() == object.Blue && name.Kind == symtable.Local {
		v, err := d.Frame.EvalExpr(n.Value)
		if err != nil {
			return nil, err
		}
		d.StoreLocal(name.Ident, v)
		return nil, nil
	}
	val, err := d.ShiftExpr(n.Value)
	if err != nil {
		return nil, err
	}
	target, err := d.ShiftExpr(n.Target)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Meta: n.Meta, Target: target, Value: val}, nil
}

// maxBlueWhileIterations bounds a blue while loop's compile-time unrolling
// (shiftWhileStmts): a blue condition that never goes false would otherwise
// hang redshift forever, so past this many iterations we report it as a
// static error instead.
const maxBlueWhileIterations = 100000

// shiftIfStmts redshifts an If statement. Spec.md §4.3: a blue condition is
// resolved during redshift itself, so only the taken branch is recursed
// into — the untaken branch is discarded whole, not shifted, so its blue
// side effects never run and code in it that only typechecks under the
// untaken condition (e.g. a generic instantiation guarded by the very test
// being folded) never gets a chance to raise. A red condition keeps the
// previous behavior: both branches survive into a residual If.
func (d *Doppler) shiftIfStmts(n *ast.If) ([]ast.Stmt, error) {
	if n.Cond.ColorOf() == object.Blue {
		taken, err := d.evalBlueBool(n.Cond)
		if err != nil {
			return nil, err
		}
		if taken {
			return d.shiftBlock(n.Then)
		}
		return d.shiftBlock(n.Else)
	}
	cond, err := d.ShiftExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := d.shiftBlock(n.Then)
	if err != nil {
		return nil, err
	}
	els, err := d.shiftBlock(n.Else)
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{&ast.If{Meta: n.Meta, Cond: cond, Then: then, Else: els}}, nil
}

// shiftWhileStmts redshifts a While statement. A blue condition makes the
// loop's trip count a compile-time quantity, so rather than emit a residual
// While whose test never changes at runtime, the loop is unrolled: the
// condition is re-evaluated after each iteration's blue side effects, and
// every iteration's shifted body statements are spliced in sequence until
// the condition goes false. A red condition keeps the previous behavior.
func (d *Doppler) shiftWhileStmts(n *ast.While) ([]ast.Stmt, error) {
	if n.Cond.ColorOf() == object.Blue {
		var out []ast.Stmt
		for i := 0; ; i++ {
			if i >= maxBlueWhileIterations {
				return nil, errs.Simple("StaticError",
					fmt.Sprintf("blue while loop did not terminate within %d iterations", maxBlueWhileIterations),
					"", n.Location())
			}
			taken, err := d.evalBlueBool(n.Cond)
			if err != nil {
				return nil, err
			}
			if !taken {
				break
			}
			body, err := d.shiftBlock(n.Body)
			if err != nil {
				return nil, err
			}
			out = append(out, body...)
		}
		return out, nil
	}
	cond, err := d.ShiftExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	body, err := d.shiftBlock(n.Body)
	if err != nil {
		return nil, err
	}
	return []ast.Stmt{&ast.While{Meta: n.Meta, Cond: cond, Body: body}}, nil
}

// evalBlueBool evaluates a blue condition expression and requires it to be
// an object.Bool, matching the static type checker's guarantee that an
// `if`/`while` test is bool.
func (d *Doppler) evalBlueBool(cond ast.Expr) (bool, error) {
	v, err := d.Frame.EvalExpr(cond)
	if err != nil {
		return false, err
	}
	b, ok := v.(object.Bool)
	if !ok {
		return false, fmt.Errorf("doppler: %s: blue condition did not evaluate to bool (got %T)", cond.Location(), v)
	}
	return b.Val, nil
}

func (d *Doppler) shiftFor(n *ast.For) (ast.Stmt, error) {
	iter, err := d.ShiftExpr(n.Iter)
	if err != nil {
		return nil, err
	}
	body, err := d.shiftBlock(n.Body)
	if err != nil {
		return nil, err
	}
	return &ast.For{Meta: n.Meta, Target: n.Target, Iter: iter, Body: body}, nil
}

// ShiftExpr produces expr's residual form: a folded constant if expr is
// blue, or a structurally-shifted red node otherwise, mirroring doppler.py's
// shift_expr_* family (spec.md §4.4's "blue subexpressions are evaluated
// eagerly in both modes").
func (d *Doppler) ShiftExpr(e ast.Expr) (ast.Expr, error) {
	if e.ColorOf() == object.Blue {
		v, err := d.Frame.EvalExpr(e)
		if err != nil {
			return nil, err
		}
		return MakeConst(d.Registry, e.Location(), v), nil
	}
	switch n := e.(type) {
	case *ast.Const, *ast.FQNConst, *ast.StrConst:
		return e, nil
	case *ast.Name:
		if n.Kind == symtable.Global {
			return &ast.FQNConst{Meta: n.Meta, FQNVal: n.FQNVal}, nil
		}
		return e, nil
	case *ast.FStr:
		parts, err := d.shiftExprList(n.Parts)
		if err != nil {
			return nil, err
		}
		return &ast.FStr{Meta: n.Meta, Parts: parts}, nil
	case *ast.List:
		elems, err := d.shiftExprList(n.Elems)
		if err != nil {
			return nil, err
		}
		return &ast.List{Meta: n.Meta, Elems: elems}, nil
	case *ast.Tuple:
		elems, err := d.shiftExprList(n.Elems)
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Meta: n.Meta, Elems: elems}, nil
	case *ast.And:
		left, right, err := d.shiftPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.And{Meta: n.Meta, Left: left, Right: right}, nil
	case *ast.Or:
		left, right, err := d.shiftPair(n.Left, n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.Or{Meta: n.Meta, Left: left, Right: right}, nil
	case *ast.BinOp:
		return d.shiftOperator(binOpName[n.Op], n.Meta, n.Left, n.Right)
	case *ast.UnaryOp:
		opName := "neg"
		if n.Op == "not" {
			opName = "not"
		}
		return d.shiftOperator(opName, n.Meta, n.Operand)
	case *ast.Compare:
		return d.shiftOperator(cmpOpName[n.Op], n.Meta, n.Left, n.Right)
	case *ast.Call:
		return d.shiftCall(n)
	case *ast.GetAttr:
		obj, err := d.ShiftExpr(n.Obj)
		if err != nil {
			return nil, err
		}
		return &ast.GetAttr{Meta: n.Meta, Obj: obj, Attr: n.Attr}, nil
	case *ast.SetAttr:
		obj, val, err := d.shiftPair(n.Obj, n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.SetAttr{Meta: n.Meta, Obj: obj, Attr: n.Attr, Value: val}, nil
	case *ast.GetItem:
		obj, idx, err := d.shiftPair(n.Obj, n.Index)
		if err != nil {
			return nil, err
		}
		return &ast.GetItem{Meta: n.Meta, Obj: obj, Index: idx}, nil
	case *ast.SetItem:
		obj, idx, err := d.shiftPair(n.Obj, n.Index)
		if err != nil {
			return nil, err
		}
		val, err := d.ShiftExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.SetItem{Meta: n.Meta, Obj: obj, Index: idx, Value: val}, nil
	default:
		return nil, fmt.Errorf("doppler: %s: unhandled expression node %T", e.Location(), e)
	}
}

func (d *Doppler) shiftExprList(exprs []ast.Expr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(exprs))
	for i, e := range exprs {
		shifted, err := d.ShiftExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = shifted
	}
	return out, nil
}

func (d *Doppler) shiftPair(a, b ast.Expr) (ast.Expr, ast.Expr, error) {
	sa, err := d.ShiftExpr(a)
	if err != nil {
		return nil, nil, err
	}
	sb, err := d.ShiftExpr(b)
	if err != nil {
		return nil, nil, err
	}
	return sa, sb, nil
}

// shiftOperator resolves an arithmetic/comparison node to a concrete
// operator FQN via pkg/ops.Dispatch (using the operands' static types,
// which redshift never needs to guess at: they were stamped by symbol
// analysis before this pass ever runs) and rebuilds it as a residual Call
// targeting that FQN, satisfying spec.md §4.5's "every arithmetic node
// names a concrete operator FQN" and "every call target is a resolved FQN"
// in one motion.
func (d *Doppler) shiftOperator(opName string, meta ast.Meta, operands ...ast.Expr) (ast.Expr, error) {
	args := make([]ops.OpArg, len(operands))
	for i, o := range operands {
		args[i] = ops.OpArg{Color: object.Red, StaticType: o.Type(), Loc: o.Location()}
	}
	impl, err := ops.Dispatch(opName, args)
	if err != nil {
		return nil, errs.Simple("TypeError", err.Error(), "", meta.Loc)
	}
	shiftedOperands, err := d.shiftExprList(operands)
	if err != nil {
		return nil, err
	}
	callArgs := make([]ast.Expr, 0, len(shiftedOperands))
	if impl.IsSimple() {
		callArgs = shiftedOperands
	} else {
		for _, spec := range impl.Args {
			arg, err := d.buildResidualArg(spec, shiftedOperands, meta.Loc)
			if err != nil {
				return nil, err
			}
			callArgs = append(callArgs, arg)
		}
	}
	return &ast.Call{
		Meta: ast.Meta{Loc: meta.Loc, StaticType: meta.StaticType, Color: object.Red},
		Func: &ast.FQNConst{Meta: ast.Meta{Loc: meta.Loc, Color: object.Blue}, FQNVal: impl.Func.FuncFQN()},
		Args: callArgs,
	}, nil
}

// buildResidualArg produces the residual expression for one ArgSpec of an
// already-shifted operand list. Unlike interp's buildOpImplArgs, an
// ArgConvert spec is left as a residual call to the converter rather than
// applied eagerly (spec.md §4.2 step 5: "if we are redshifting, leave it as
// a residual call node").
func (d *Doppler) buildResidualArg(spec ops.ArgSpec, shiftedOperands []ast.Expr, loc errs.Loc) (ast.Expr, error) {
	switch spec.Kind {
	case ops.ArgConst:
		return MakeConst(d.Registry, loc, spec.ConstVal), nil
	case ops.ArgConvert:
		inner, err := d.buildResidualArg(*spec.Inner, shiftedOperands, loc)
		if err != nil {
			return nil, err
		}
		return &ast.Call{
			Meta: ast.Meta{Loc: loc, Color: object.Red},
			Func: &ast.FQNConst{Meta: ast.Meta{Loc: loc, Color: object.Blue}, FQNVal: spec.ConvertFn.FuncFQN()},
			Args: []ast.Expr{inner},
		}, nil
	default:
		return shiftedOperands[spec.Index], nil
	}
}

// shiftCall resolves the callee: a blue function value is redshifted (if
// not already) and named by FQNConst; anything else (an already-red
// function value reached through a red expression) is shifted structurally.
func (d *Doppler) shiftCall(n *ast.Call) (ast.Expr, error) {
	args, err := d.shiftExprList(n.Args)
	if err != nil {
		return nil, err
	}
	if n.Func.ColorOf() == object.Blue {
		v, err := d.Frame.EvalExpr(n.Func)
		if err != nil {
			return nil, err
		}
		fn, ok := v.(*object.ASTFunc)
		if ok {
			shifted, err := redshift(d.Globals, d.Registry, fn, d.TB)
			if err != nil {
				return nil, err
			}
			return &ast.Call{
				Meta: n.Meta,
				Func: &ast.FQNConst{Meta: ast.Meta{Loc: n.Location(), Color: object.Blue}, FQNVal: shifted.FuncFQN()},
				Args: args,
			}, nil
		}
		if nf, ok := v.(*object.NativeFunc); ok {
			return &ast.Call{
				Meta: n.Meta,
				Func: &ast.FQNConst{Meta: ast.Meta{Loc: n.Location(), Color: object.Blue}, FQNVal: nf.FuncFQN()},
				Args: args,
			}, nil
		}
	}
	fn, err := d.ShiftExpr(n.Func)
	if err != nil {
		return nil, err
	}
	return &ast.Call{Meta: n.Meta, Func: fn, Args: args}, nil
}
