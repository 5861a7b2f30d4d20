package doppler

import (
	"fmt"
	"strings"

	"spy/corelang/pkg/ast"
	"spy/corelang/pkg/errs"
	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/libspy"
	"spy/corelang/pkg/object"
)

// CheckResidual verifies the five guarantees spec.md §4.5 makes about a
// redshifted ASTFunc's body, returning the first violation found. It's not
// on the hot path of Redshift itself (shiftOperator/shiftCall already
// construct a body that satisfies them by build) — this exists so tests,
// and an external emitter before it trusts the tree, can assert the
// guarantees hold rather than take them on faith.
func CheckResidual(fn *object.ASTFunc) error {
	fd, ok := fn.Body.(*ast.FuncDef)
	if !ok {
		return fmt.Errorf("doppler: %s: not a *ast.FuncDef", fn.FuncFQN())
	}
	if fd.FuncColor != object.Red {
		return fmt.Errorf("doppler: %s: residual function is not red", fn.FuncFQN())
	}
	return checkBlock(fd.Body)
}

func checkBlock(body []ast.Stmt) error {
	for _, s := range body {
		if err := checkStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// checkStmt enforces (i) every node is red (by recursively checking the
// expressions it carries — statement-level Color isn't itself a meaningful
// signal here: per pkg/ast/node.go, a statement's Meta.Color just follows
// its sub-expressions' colors rather than being independently stamped) and
// (v) no blue FuncDef survives.
func checkStmt(stmt ast.Stmt) error {
	switch n := stmt.(type) {
	case *ast.Pass, *ast.Break, *ast.Continue, *ast.ClassDef:
		return nil
	case *ast.ExprStmt:
		return checkExpr(n.Value)
	case *ast.VarDef:
		if n.Value != nil {
			return checkExpr(n.Value)
		}
		return nil
	case *ast.Assign:
		if err := checkExpr(n.Target); err != nil {
			return err
		}
		return checkExpr(n.Value)
	case *ast.Return:
		if n.Value != nil {
			return checkExpr(n.Value)
		}
		return nil
	case *ast.Raise:
		return checkExpr(n.Exc)
	case *ast.If:
		if err := checkExpr(n.Cond); err != nil {
			return err
		}
		if err := checkBlock(n.Then); err != nil {
			return err
		}
		return checkBlock(n.Else)
	case *ast.While:
		if err := checkExpr(n.Cond); err != nil {
			return err
		}
		return checkBlock(n.Body)
	case *ast.For:
		if err := checkExpr(n.Iter); err != nil {
			return err
		}
		return checkBlock(n.Body)
	case *ast.FuncDef:
		return fmt.Errorf("doppler: %s: function definition in residual body", stmt.Location())
	default:
		return fmt.Errorf("doppler: %s: unrecognized residual statement %T", stmt.Location(), stmt)
	}
}

// checkExpr enforces (i) every node is red, (ii) every call target is a
// resolved FQN, (iii) every arithmetic/comparison node is gone (folded into
// an FQN'd Call by shiftOperator — a surviving BinOp/UnaryOp/Compare node
// is itself the violation), and (iv) every type is concrete.
func checkExpr(e ast.Expr) error {
	// (iv) every type is concrete: this object model has no type-variable
	// Kind at all (pkg/object.Type is always a resolved struct/func/
	// primitive/pointer), so there is nothing further to check here — a
	// blue.generic's type parameter is bound to a concrete *Type the
	// moment it's passed as a blue argument (spec.md §4.4), before
	// redshift ever walks the body.
	switch e.(type) {
	case *ast.Const, *ast.FQNConst, *ast.StrConst:
		// Folded-in constants keep the Blue tag MakeConst stamps on them —
		// that tag means "a known compile-time value", not "still needs
		// evaluation", so it's exempt from the red-node guarantee below.
		return nil
	default:
		if e.ColorOf() == object.Blue {
			return fmt.Errorf("doppler: %s: unfolded blue %T in residual body", e.Location(), e)
		}
	}
	switch n := e.(type) {
	case *ast.Name:
		return nil
	case *ast.BinOp, *ast.UnaryOp, *ast.Compare:
		return fmt.Errorf("doppler: %s: raw operator node %T survived redshift", e.Location(), e)
	case *ast.Call:
		fqnConst, ok := n.Func.(*ast.FQNConst)
		if !ok {
			return fmt.Errorf("doppler: %s: call target is not a resolved FQN", e.Location())
		}
		if err := checkLibspyContract(fqnConst.FQNVal, e.Location()); err != nil {
			return err
		}
		for _, a := range n.Args {
			if err := checkExpr(a); err != nil {
				return err
			}
		}
		return nil
	case *ast.And:
		if err := checkExpr(n.Left); err != nil {
			return err
		}
		return checkExpr(n.Right)
	case *ast.Or:
		if err := checkExpr(n.Left); err != nil {
			return err
		}
		return checkExpr(n.Right)
	case *ast.FStr:
		for _, p := range n.Parts {
			if err := checkExpr(p); err != nil {
				return err
			}
		}
		return nil
	case *ast.List:
		for _, el := range n.Elems {
			if err := checkExpr(el); err != nil {
				return err
			}
		}
		return nil
	case *ast.Tuple:
		for _, el := range n.Elems {
			if err := checkExpr(el); err != nil {
				return err
			}
		}
		return nil
	case *ast.GetAttr:
		return checkExpr(n.Obj)
	case *ast.SetAttr:
		if err := checkExpr(n.Obj); err != nil {
			return err
		}
		return checkExpr(n.Value)
	case *ast.GetItem:
		if err := checkExpr(n.Obj); err != nil {
			return err
		}
		return checkExpr(n.Index)
	case *ast.SetItem:
		if err := checkExpr(n.Obj); err != nil {
			return err
		}
		if err := checkExpr(n.Index); err != nil {
			return err
		}
		return checkExpr(n.Value)
	default:
		return fmt.Errorf("doppler: %s: unrecognized residual expression %T", e.Location(), e)
	}
}

// checkLibspyContract enforces that every residual "operator::" or "str::"
// call names a real libspy entry point. Other FQNs (builtins::, unsafe::,
// user-defined red functions) aren't in libspy.Table under their full name
// (pkg/vm/builtins.go registers those under their own modules, not
// libspy's bare-name contract rows), so they're out of scope here — this
// only validates the FQNs libspy itself owns.
func checkLibspyContract(f fqn.FQN, loc errs.Loc) error {
	if f.Module != "operator" && f.Module != "str" {
		return nil
	}
	if _, ok := libspy.Lookup(f.String()); !ok {
		return fmt.Errorf("doppler: %s: %s is not a libspy contract entry", loc, f)
	}
	return nil
}

// Dump renders fn's residual body as a stable, line-oriented text form, one
// line per statement with its expressions rendered inline, indented by
// nesting depth — the same
// shape an external C emitter would walk, and a format stable enough to
// diff in a test. There is no bytecode here to disassemble (spec.md §4.5's
// residual AST is emitted as a tree, not instructions), so this plays the
// role xirelogy-go-flux's disasm.go plays for its VM: a deterministic,
// human-readable view of what would otherwise only be inspectable by
// walking the tree in a debugger.
func Dump(fn *object.ASTFunc) (string, error) {
	fd, ok := fn.Body.(*ast.FuncDef)
	if !ok {
		return "", fmt.Errorf("doppler: %s: not a *ast.FuncDef", fn.FuncFQN())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "func %s\n", fn.FuncFQN())
	dumpBlock(&b, fd.Body, 1)
	return b.String(), nil
}

func dumpBlock(b *strings.Builder, body []ast.Stmt, depth int) {
	for _, s := range body {
		dumpStmt(b, s, depth)
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func dumpStmt(b *strings.Builder, stmt ast.Stmt, depth int) {
	indent(b, depth)
	switch n := stmt.(type) {
	case *ast.Pass:
		b.WriteString("pass\n")
	case *ast.Break:
		b.WriteString("break\n")
	case *ast.Continue:
		b.WriteString("continue\n")
	case *ast.ExprStmt:
		fmt.Fprintf(b, "%s\n", dumpExpr(n.Value))
	case *ast.VarDef:
		if n.Value != nil {
			fmt.Fprintf(b, "vardef %s = %s\n", n.Name, dumpExpr(n.Value))
		} else {
			fmt.Fprintf(b, "vardef %s\n", n.Name)
		}
	case *ast.Assign:
		fmt.Fprintf(b, "%s = %s\n", dumpExpr(n.Target), dumpExpr(n.Value))
	case *ast.Return:
		if n.Value != nil {
			fmt.Fprintf(b, "return %s\n", dumpExpr(n.Value))
		} else {
			b.WriteString("return\n")
		}
	case *ast.Raise:
		fmt.Fprintf(b, "raise %s\n", dumpExpr(n.Exc))
	case *ast.If:
		fmt.Fprintf(b, "if %s:\n", dumpExpr(n.Cond))
		dumpBlock(b, n.Then, depth+1)
		if len(n.Else) > 0 {
			indent(b, depth)
			b.WriteString("else:\n")
			dumpBlock(b, n.Else, depth+1)
		}
	case *ast.While:
		fmt.Fprintf(b, "while %s:\n", dumpExpr(n.Cond))
		dumpBlock(b, n.Body, depth+1)
	case *ast.For:
		fmt.Fprintf(b, "for %s in %s:\n", n.Target, dumpExpr(n.Iter))
		dumpBlock(b, n.Body, depth+1)
	case *ast.ClassDef:
		fmt.Fprintf(b, "class %s\n", n.FQNVal)
	default:
		fmt.Fprintf(b, "<%T>\n", stmt)
	}
}

func dumpExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Const:
		return fmt.Sprintf("%v", n.Val)
	case *ast.StrConst:
		return fmt.Sprintf("%q", n.Val)
	case *ast.FQNConst:
		return n.FQNVal.String()
	case *ast.Name:
		return n.Ident
	case *ast.Call:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = dumpExpr(a)
		}
		return fmt.Sprintf("%s(%s)", dumpExpr(n.Func), strings.Join(parts, ", "))
	case *ast.And:
		return fmt.Sprintf("(%s and %s)", dumpExpr(n.Left), dumpExpr(n.Right))
	case *ast.Or:
		return fmt.Sprintf("(%s or %s)", dumpExpr(n.Left), dumpExpr(n.Right))
	case *ast.GetAttr:
		return fmt.Sprintf("%s.%s", dumpExpr(n.Obj), n.Attr)
	case *ast.SetAttr:
		return fmt.Sprintf("%s.%s := %s", dumpExpr(n.Obj), n.Attr, dumpExpr(n.Value))
	case *ast.GetItem:
		return fmt.Sprintf("%s[%s]", dumpExpr(n.Obj), dumpExpr(n.Index))
	case *ast.SetItem:
		return fmt.Sprintf("%s[%s] := %s", dumpExpr(n.Obj), dumpExpr(n.Index), dumpExpr(n.Value))
	case *ast.List:
		parts := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			parts[i] = dumpExpr(el)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *ast.Tuple:
		parts := make([]string, len(n.Elems))
		for i, el := range n.Elems {
			parts[i] = dumpExpr(el)
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case *ast.FStr:
		parts := make([]string, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = dumpExpr(p)
		}
		return fmt.Sprintf("f\"%s\"", strings.Join(parts, ""))
	default:
		return fmt.Sprintf("<%T>", e)
	}
}
