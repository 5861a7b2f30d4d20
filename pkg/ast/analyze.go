package ast

import (
	"fmt"

	"spy/corelang/pkg/fqn"
	"spy/corelang/pkg/object"
	"spy/corelang/pkg/symtable"
)

// Predeclared names a global that exists before analysis starts: a builtin
// function or type an external caller (pkg/vm) already registered, visible
// unqualified inside every module's body without an explicit import,
// matching original_source/spy/vm/vm.py's "builtins are injected into
// every module's globals" behavior.
type Predeclared struct {
	Name  string
	FQN   fqn.FQN
	Type  *object.Type
	Color symtable.Color
}

// Analyzer turns a RawModule into a typed top-level statement list: it
// resolves every declared type name to a concrete *object.Type, resolves
// every Name to a scope kind and (for globals) an FQN via pkg/symtable's
// scope chain, and stamps a color onto every expression by spec.md §3.4's
// monotonicity rule (object.Merge): a composite expression is red iff any
// of its sub-expressions is red.
//
// Grounded on original_source/spy/irgen.py's two-pass module build
// (signatures declared before any body is walked, so mutual/self recursion
// resolves) and on spy/symtable.py's scope-kind classification, which
// pkg/symtable.SymTable.Lookup already implements directly.
type Analyzer struct {
	modpath   string
	types     map[string]*object.Type // declared type name -> resolved type (builtins + this module's classes)
	globalFQN map[string]fqn.FQN       // global symbol name -> its FQN (predeclared + this module's own)
}

// NewAnalyzer builds an Analyzer for a module at modpath, seeded with
// builtin primitive types.
func NewAnalyzer(modpath string) *Analyzer {
	a := &Analyzer{
		modpath:   modpath,
		types:     make(map[string]*object.Type),
		globalFQN: make(map[string]fqn.FQN),
	}
	for _, t := range object.BuiltinTypes() {
		a.types[t.FQN().Symbol] = t
	}
	return a
}

// Analyze converts raw's top-level statements into a typed statement list
// suitable for pkg/interp.Frame.RunFuncBody: executing that list as a
// module's top-level body registers every function/class/variable into the
// global registry exactly the way a nested FuncDef/ClassDef does (spec.md
// §3.1/§3.7), so this Analyzer itself never touches a registry.
func (a *Analyzer) Analyze(raw *RawModule, predeclared []Predeclared) ([]Stmt, error) {
	global := symtable.New(nil, false)
	for _, p := range predeclared {
		if _, err := global.Declare(p.Name, p.Type, p.Color); err != nil {
			return nil, fmt.Errorf("ast: analyze: predeclared %q: %w", p.Name, err)
		}
		a.globalFQN[p.Name] = p.FQN
	}

	// pass 1: classes, so field/param types can name a class declared
	// anywhere else in the same file regardless of source order.
	var out []Stmt
	classNodes := make(map[string]*ClassDef)
	for _, rs := range raw.Body {
		if rs.Kind != RawClassDef {
			continue
		}
		cd, err := a.declareClass(rs, global)
		if err != nil {
			return nil, err
		}
		classNodes[rs.Name] = cd
	}

	// pass 2: function signatures (forward declarations) before any body
	// is walked, so mutually/self-recursive calls resolve.
	funcTypes := make(map[string]*object.Type)
	for _, rs := range raw.Body {
		if rs.Kind != RawFuncDef {
			continue
		}
		ft, err := a.declareFuncSignature(rs, global)
		if err != nil {
			return nil, err
		}
		funcTypes[rs.Name] = ft
	}

	// pass 3 + emission: walk bodies (functions) and convert literal
	// module-level variables, preserving source order in the output.
	for _, rs := range raw.Body {
		switch rs.Kind {
		case RawClassDef:
			out = append(out, classNodes[rs.Name])
		case RawFuncDef:
			fd, err := a.analyzeFuncBody(rs, global, funcTypes[rs.Name])
			if err != nil {
				return nil, err
			}
			out = append(out, fd)
		case RawVarDef:
			vd, err := a.declareModuleVar(rs, global)
			if err != nil {
				return nil, err
			}
			out = append(out, vd)
		default:
			return nil, fmt.Errorf("ast: analyze: %s: statement kind %d is not valid at module scope", rs.Loc, rs.Kind)
		}
	}
	return out, nil
}

// resolveType maps a declared type name as written in source to a concrete
// *object.Type: builtin primitives, "void" (the empty declaration), or a
// struct type this module (or a predeclared namespace) already named.
// SPy's real type grammar (parametric/pointer type expressions) is not
// attempted here — every declared type in the programs this module targets
// is a bare name, and this analyzer does not invent syntax spec.md §3.3
// does not specify.
func (a *Analyzer) resolveType(name string) (*object.Type, error) {
	if name == "" || name == "void" {
		return object.TypeVoid, nil
	}
	if t, ok := a.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("ast: analyze: unresolved type name %q", name)
}

// declareClass resolves rs's field types and also declares rs.Name into
// global as an ordinary Name binding (Color Blue, type object.TypeType): a
// class name is not only a type-name string a declared-type field can
// reference (via resolveType) but also an ordinary expression, e.g.
// `gc_alloc(Point)` passing the type itself as a value.
func (a *Analyzer) declareClass(rs RawStmt, global *symtable.SymTable) (*ClassDef, error) {
	fqnVal := fqn.Simple(a.modpath, rs.Name)
	t := object.NewType(fqnVal, object.KindStruct)
	fields := make([]FieldDef, len(rs.Fields))
	offset := 0
	for i, rf := range rs.Fields {
		ft, err := a.resolveType(rf.Type)
		if err != nil {
			return nil, fmt.Errorf("ast: analyze: class %s field %s: %w", rs.Name, rf.Name, err)
		}
		fields[i] = FieldDef{Name: rf.Name, Type: ft}
		t.Fields = append(t.Fields, object.FieldLayout{Name: rf.Name, Type: ft, Offset: offset})
		offset++
	}
	a.types[rs.Name] = t
	a.globalFQN[rs.Name] = fqnVal
	if _, err := global.Declare(rs.Name, object.TypeType, symtable.Blue); err != nil {
		return nil, fmt.Errorf("ast: analyze: %w", err)
	}
	return &ClassDef{
		Meta:   Meta{Loc: rs.Loc, StaticType: object.TypeType, Color: symtable.Blue},
		FQNVal: fqnVal,
		Fields: fields,
	}, nil
}

// declareFuncSignature resolves rs's parameter/result types and declares
// its name into global (Color Blue: a function's own name is always a
// known, compile-time value, independent of whether calling it produces a
// blue or a red result), returning the function's type for analyzeFuncBody
// and for any sibling that calls it.
func (a *Analyzer) declareFuncSignature(rs RawStmt, global *symtable.SymTable) (*object.Type, error) {
	params := make([]*object.Type, len(rs.Params))
	for i, p := range rs.Params {
		pt, err := a.resolveType(p.Type)
		if err != nil {
			return nil, fmt.Errorf("ast: analyze: func %s param %s: %w", rs.Name, p.Name, err)
		}
		params[i] = pt
	}
	var vararg *object.Type
	if rs.VarArg != nil {
		vt, err := a.resolveType(rs.VarArg.Type)
		if err != nil {
			return nil, fmt.Errorf("ast: analyze: func %s vararg %s: %w", rs.Name, rs.VarArg.Name, err)
		}
		vararg = vt
	}
	result, err := a.resolveType(rs.Result)
	if err != nil {
		return nil, fmt.Errorf("ast: analyze: func %s result: %w", rs.Name, err)
	}
	color := symtable.Red
	if rs.IsBlue {
		color = symtable.Blue
	}
	fqnVal := fqn.Simple(a.modpath, rs.Name)
	ft := object.NewFuncType(fqnVal, params, vararg, result, color)
	if _, err := global.Declare(rs.Name, ft, symtable.Blue); err != nil {
		return nil, fmt.Errorf("ast: analyze: %w", err)
	}
	a.globalFQN[rs.Name] = fqnVal
	return ft, nil
}

func (a *Analyzer) analyzeFuncBody(rs RawStmt, global *symtable.SymTable, ft *object.Type) (*FuncDef, error) {
	scope := symtable.New(global, true)
	paramColor := symtable.Red
	if rs.IsBlue {
		paramColor = symtable.Blue
	}
	params := make([]Param, len(rs.Params))
	for i, p := range rs.Params {
		if _, err := scope.Declare(p.Name, ft.Params[i], paramColor); err != nil {
			return nil, fmt.Errorf("ast: analyze: func %s: %w", rs.Name, err)
		}
		params[i] = Param{Name: p.Name, Type: ft.Params[i]}
	}
	var vararg *Param
	if rs.VarArg != nil {
		if _, err := scope.Declare(rs.VarArg.Name, ft.VarArg, paramColor); err != nil {
			return nil, fmt.Errorf("ast: analyze: func %s: %w", rs.Name, err)
		}
		vararg = &Param{Name: rs.VarArg.Name, Type: ft.VarArg}
	}

	body, err := a.convertBlock(rs.Body, scope)
	if err != nil {
		return nil, fmt.Errorf("ast: analyze: func %s: %w", rs.Name, err)
	}

	color := symtable.Red
	if rs.IsBlue {
		color = symtable.Blue
	}
	return &FuncDef{
		Meta:      Meta{Loc: rs.Loc, Color: color},
		FQNVal:    fqn.Simple(a.modpath, rs.Name),
		Params:    params,
		VarArg:    vararg,
		Result:    ft.Result,
		Body:      body,
		FuncColor: color,
	}, nil
}

// declareModuleVar supports module-level constants: a name bound to a
// literal value, visible to every function in the module as a Global. SPy
// modules in practice use VarDef at top level only for such constants (any
// executable top-level statement beyond defs/constants is out of scope
// here, matching the programs spec.md §8's scenarios exercise); a non-
// literal initializer is rejected rather than silently mis-evaluated.
func (a *Analyzer) declareModuleVar(rs RawStmt, global *symtable.SymTable) (*VarDef, error) {
	val, t, err := a.evalModuleLiteral(rs.Value)
	if err != nil {
		return nil, fmt.Errorf("ast: analyze: module var %s: %w", rs.Name, err)
	}
	if rs.Declared != "" {
		declared, err := a.resolveType(rs.Declared)
		if err != nil {
			return nil, fmt.Errorf("ast: analyze: module var %s: %w", rs.Name, err)
		}
		t = declared
	}
	fqnVal := fqn.Simple(a.modpath, rs.Name)
	if _, err := global.Declare(rs.Name, t, symtable.Blue); err != nil {
		return nil, fmt.Errorf("ast: analyze: %w", err)
	}
	a.globalFQN[rs.Name] = fqnVal
	return &VarDef{
		Meta:     Meta{Loc: rs.Loc, StaticType: t, Color: symtable.Blue},
		Name:     rs.Name,
		Declared: t,
		Value:    &Const{Meta: Meta{Loc: rs.Loc, StaticType: t, Color: symtable.Blue}, Val: val},
	}, nil
}

func (a *Analyzer) evalModuleLiteral(re *RawExpr) (object.Value, *object.Type, error) {
	if re == nil {
		return nil, nil, fmt.Errorf("module-level variables require an initializer")
	}
	switch re.Kind {
	case RawIntConst:
		return object.I32{Val: int32(re.Int)}, object.TypeI32, nil
	case RawFloatConst:
		return object.F64{Val: re.Float}, object.TypeF64, nil
	case RawBoolConst:
		return object.Bool{Val: re.Bool}, object.TypeBool, nil
	case RawStrConst:
		return object.NewStr(re.Str), object.TypeStr, nil
	default:
		return nil, nil, fmt.Errorf("%s: module-level variables must be initialized with a literal", re.Loc)
	}
}

// convertBlock converts a raw statement list under scope, in order.
func (a *Analyzer) convertBlock(body []RawStmt, scope *symtable.SymTable) ([]Stmt, error) {
	out := make([]Stmt, 0, len(body))
	for _, rs := range body {
		s, err := a.convertStmt(rs, scope)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (a *Analyzer) convertStmt(rs RawStmt, scope *symtable.SymTable) (Stmt, error) {
	switch rs.Kind {
	case RawPass:
		return &Pass{Meta: Meta{Loc: rs.Loc}}, nil
	case RawExprStmt:
		v, err := a.convertExpr(rs.Value, scope)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{Meta: Meta{Loc: rs.Loc, Color: v.ColorOf()}, Value: v}, nil
	case RawAssign:
		sym, kind, ok := scope.Lookup(rs.Target)
		if !ok {
			return nil, fmt.Errorf("ast: analyze: %s: assignment to undeclared name %q", rs.Loc, rs.Target)
		}
		target := &Name{Meta: Meta{Loc: rs.Loc, StaticType: sym.StaticType, Color: sym.Color}, Ident: rs.Target, Kind: kind}
		if kind == symtable.Global {
			target.FQNVal = a.globalFQN[rs.Target]
		}
		val, err := a.convertExpr(rs.Value, scope)
		if err != nil {
			return nil, err
		}
		return &Assign{Meta: Meta{Loc: rs.Loc, Color: object.Merge(sym.Color, val.ColorOf())}, Target: target, Value: val}, nil
	case RawVarDef:
		return a.convertVarDef(rs, scope)
	case RawIf:
		cond, err := a.convertExpr(rs.Cond, scope)
		if err != nil {
			return nil, err
		}
		then, err := a.convertBlock(rs.Then, scope)
		if err != nil {
			return nil, err
		}
		els, err := a.convertBlock(rs.Else, scope)
		if err != nil {
			return nil, err
		}
		return &If{Meta: Meta{Loc: rs.Loc, Color: cond.ColorOf()}, Cond: cond, Then: then, Else: els}, nil
	case RawWhile:
		cond, err := a.convertExpr(rs.Cond, scope)
		if err != nil {
			return nil, err
		}
		bodyStmts, err := a.convertBlock(rs.Body, scope)
		if err != nil {
			return nil, err
		}
		return &While{Meta: Meta{Loc: rs.Loc, Color: cond.ColorOf()}, Cond: cond, Body: bodyStmts}, nil
	case RawFor:
		return a.convertFor(rs, scope)
	case RawReturn:
		if rs.Value == nil {
			return &Return{Meta: Meta{Loc: rs.Loc}}, nil
		}
		v, err := a.convertExpr(rs.Value, scope)
		if err != nil {
			return nil, err
		}
		return &Return{Meta: Meta{Loc: rs.Loc, StaticType: v.Type(), Color: v.ColorOf()}, Value: v}, nil
	case RawRaise:
		exc, err := a.convertExpr(rs.Value, scope)
		if err != nil {
			return nil, err
		}
		return &Raise{Meta: Meta{Loc: rs.Loc, Color: exc.ColorOf()}, Exc: exc}, nil
	default:
		return nil, fmt.Errorf("ast: analyze: %s: statement kind %d is not valid inside a function body", rs.Loc, rs.Kind)
	}
}

func (a *Analyzer) convertVarDef(rs RawStmt, scope *symtable.SymTable) (*VarDef, error) {
	var val Expr
	var err error
	color := symtable.Red
	var t *object.Type
	if rs.Value != nil {
		val, err = a.convertExpr(rs.Value, scope)
		if err != nil {
			return nil, err
		}
		color = val.ColorOf()
		t = val.Type()
	}
	if rs.Declared != "" {
		declared, err := a.resolveType(rs.Declared)
		if err != nil {
			return nil, fmt.Errorf("ast: analyze: vardef %s: %w", rs.Name, err)
		}
		t = declared
	}
	if _, err := scope.Declare(rs.Name, t, color); err != nil {
		return nil, fmt.Errorf("ast: analyze: %w", err)
	}
	return &VarDef{Meta: Meta{Loc: rs.Loc, StaticType: t, Color: color}, Name: rs.Name, Declared: t, Value: val}, nil
}

// convertFor declares the loop target in a fresh nested scope (so it does
// not leak past the loop) with an element type inferred only when Iter
// converts to a List/Tuple literal with a uniform element type, or to a
// pointer; any other iterable leaves the target's static type nil, which
// pkg/interp evaluates fine (it resolves locals dynamically by name) but
// which pkg/doppler cannot redshift any arithmetic on (a documented
// analyzer limitation, not a doppler one — this module does not run a full
// __iter__/__item__ capability-driven type inference pass).
func (a *Analyzer) convertFor(rs RawStmt, scope *symtable.SymTable) (*For, error) {
	iter, err := a.convertExpr(rs.Iter, scope)
	if err != nil {
		return nil, err
	}
	var elemType *object.Type
	switch it := iter.(type) {
	case *List:
		elemType = uniformElemType(it.Elems)
	case *Tuple:
		elemType = uniformElemType(it.Elems)
	default:
		if t := iter.Type(); t != nil && t.Kind == object.KindPtr {
			elemType = t.Elem
		}
	}
	loopScope := symtable.New(scope, false)
	if _, err := loopScope.Declare(rs.Target, elemType, symtable.Red); err != nil {
		return nil, fmt.Errorf("ast: analyze: %w", err)
	}
	bodyStmts, err := a.convertBlock(rs.Body, loopScope)
	if err != nil {
		return nil, err
	}
	return &For{Meta: Meta{Loc: rs.Loc, Color: iter.ColorOf()}, Target: rs.Target, Iter: iter, Body: bodyStmts}, nil
}

func uniformElemType(elems []Expr) *object.Type {
	if len(elems) == 0 {
		return nil
	}
	t := elems[0].Type()
	for _, e := range elems[1:] {
		if e.Type() != t {
			return nil
		}
	}
	return t
}

func (a *Analyzer) convertExpr(re *RawExpr, scope *symtable.SymTable) (Expr, error) {
	if re == nil {
		return nil, fmt.Errorf("ast: analyze: nil expression")
	}
	switch re.Kind {
	case RawIntConst:
		return &Const{Meta: Meta{Loc: re.Loc, StaticType: object.TypeI32, Color: symtable.Blue}, Val: object.I32{Val: int32(re.Int)}}, nil
	case RawFloatConst:
		return &Const{Meta: Meta{Loc: re.Loc, StaticType: object.TypeF64, Color: symtable.Blue}, Val: object.F64{Val: re.Float}}, nil
	case RawBoolConst:
		return &Const{Meta: Meta{Loc: re.Loc, StaticType: object.TypeBool, Color: symtable.Blue}, Val: object.Bool{Val: re.Bool}}, nil
	case RawStrConst:
		return &StrConst{Meta: Meta{Loc: re.Loc, StaticType: object.TypeStr, Color: symtable.Blue}, Val: re.Str}, nil
	case RawFStrLit:
		parts := make([]Expr, len(re.Parts))
		color := symtable.Blue
		for i := range re.Parts {
			p, err := a.convertExpr(&re.Parts[i], scope)
			if err != nil {
				return nil, err
			}
			parts[i] = p
			color = object.Merge(color, p.ColorOf())
		}
		return &FStr{Meta: Meta{Loc: re.Loc, StaticType: object.TypeStr, Color: color}, Parts: parts}, nil
	case RawNameExpr:
		sym, kind, ok := scope.Lookup(re.Str)
		if !ok {
			return nil, fmt.Errorf("ast: analyze: %s: name %q is not defined", re.Loc, re.Str)
		}
		n := &Name{Meta: Meta{Loc: re.Loc, StaticType: sym.StaticType, Color: sym.Color}, Ident: re.Str, Kind: kind}
		if kind == symtable.Global {
			n.FQNVal = a.globalFQN[re.Str]
		}
		return n, nil
	case RawBinOp:
		l, r, err := a.convertPair(re.Left, re.Right, scope)
		if err != nil {
			return nil, err
		}
		return &BinOp{Meta: Meta{Loc: re.Loc, StaticType: binOpStaticType(re.Str, l), Color: object.Merge(l.ColorOf(), r.ColorOf())}, Op: re.Str, Left: l, Right: r}, nil
	case RawUnaryOp:
		operand, err := a.convertExpr(re.Value, scope)
		if err != nil {
			return nil, err
		}
		return &UnaryOp{Meta: Meta{Loc: re.Loc, StaticType: operand.Type(), Color: operand.ColorOf()}, Op: re.Str, Operand: operand}, nil
	case RawCompare:
		l, r, err := a.convertPair(re.Left, re.Right, scope)
		if err != nil {
			return nil, err
		}
		return &Compare{Meta: Meta{Loc: re.Loc, StaticType: object.TypeBool, Color: object.Merge(l.ColorOf(), r.ColorOf())}, Op: re.Str, Left: l, Right: r}, nil
	case RawCall:
		return a.convertCall(re, scope)
	case RawGetAttr:
		obj, err := a.convertExpr(re.Obj, scope)
		if err != nil {
			return nil, err
		}
		ft := fieldType(obj.Type(), re.Str)
		return &GetAttr{Meta: Meta{Loc: re.Loc, StaticType: ft, Color: obj.ColorOf()}, Obj: obj, Attr: re.Str}, nil
	case RawSetAttr:
		obj, val, err := a.convertPair(re.Obj, re.Value, scope)
		if err != nil {
			return nil, err
		}
		return &SetAttr{Meta: Meta{Loc: re.Loc, StaticType: val.Type(), Color: object.Merge(obj.ColorOf(), val.ColorOf())}, Obj: obj, Attr: re.Str, Value: val}, nil
	case RawGetItem:
		obj, idx, err := a.convertPair(re.Obj, re.Index, scope)
		if err != nil {
			return nil, err
		}
		var elemType *object.Type
		if t := obj.Type(); t != nil && t.Kind == object.KindPtr {
			elemType = t.Elem
		}
		return &GetItem{Meta: Meta{Loc: re.Loc, StaticType: elemType, Color: object.Merge(obj.ColorOf(), idx.ColorOf())}, Obj: obj, Index: idx}, nil
	case RawSetItem:
		obj, err := a.convertExpr(re.Obj, scope)
		if err != nil {
			return nil, err
		}
		idx, err := a.convertExpr(re.Index, scope)
		if err != nil {
			return nil, err
		}
		val, err := a.convertExpr(re.Value, scope)
		if err != nil {
			return nil, err
		}
		return &SetItem{Meta: Meta{Loc: re.Loc, StaticType: val.Type(), Color: object.Merge(obj.ColorOf(), idx.ColorOf(), val.ColorOf())}, Obj: obj, Index: idx, Value: val}, nil
	case RawListLit:
		elems, color, err := a.convertList(re.Elems, scope)
		if err != nil {
			return nil, err
		}
		return &List{Meta: Meta{Loc: re.Loc, Color: color}, Elems: elems}, nil
	case RawTupleLit:
		elems, color, err := a.convertList(re.Elems, scope)
		if err != nil {
			return nil, err
		}
		return &Tuple{Meta: Meta{Loc: re.Loc, Color: color}, Elems: elems}, nil
	case RawAndExpr:
		l, r, err := a.convertPair(re.Left, re.Right, scope)
		if err != nil {
			return nil, err
		}
		return &And{Meta: Meta{Loc: re.Loc, StaticType: object.TypeBool, Color: object.Merge(l.ColorOf(), r.ColorOf())}, Left: l, Right: r}, nil
	case RawOrExpr:
		l, r, err := a.convertPair(re.Left, re.Right, scope)
		if err != nil {
			return nil, err
		}
		return &Or{Meta: Meta{Loc: re.Loc, StaticType: object.TypeBool, Color: object.Merge(l.ColorOf(), r.ColorOf())}, Left: l, Right: r}, nil
	default:
		return nil, fmt.Errorf("ast: analyze: %s: unrecognized raw expression kind %d", re.Loc, re.Kind)
	}
}

// binOpStaticType picks a BinOp's result type: "/" is true division
// (spec.md §4.1's `__truediv__` slot), which always promotes to f64 even
// over two integer operands, per spec.md §8 scenario 5 (`i32_div(7,2) ->
// 3.5`); every other operator keeps the left operand's type, matching
// libspy's same-type arithmetic contract.
func binOpStaticType(op string, l Expr) *object.Type {
	if op == "/" {
		return object.TypeF64
	}
	return l.Type()
}

func (a *Analyzer) convertPair(left, right *RawExpr, scope *symtable.SymTable) (Expr, Expr, error) {
	l, err := a.convertExpr(left, scope)
	if err != nil {
		return nil, nil, err
	}
	r, err := a.convertExpr(right, scope)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (a *Analyzer) convertList(raw []RawExpr, scope *symtable.SymTable) ([]Expr, symtable.Color, error) {
	elems := make([]Expr, len(raw))
	color := symtable.Blue
	for i := range raw {
		e, err := a.convertExpr(&raw[i], scope)
		if err != nil {
			return nil, 0, err
		}
		elems[i] = e
		color = object.Merge(color, e.ColorOf())
	}
	return elems, color, nil
}

func (a *Analyzer) convertCall(re *RawExpr, scope *symtable.SymTable) (Expr, error) {
	fn, err := a.convertExpr(re.Func, scope)
	if err != nil {
		return nil, err
	}
	args := make([]Expr, len(re.Args))
	color := fn.ColorOf()
	for i := range re.Args {
		arg, err := a.convertExpr(&re.Args[i], scope)
		if err != nil {
			return nil, err
		}
		args[i] = arg
		color = object.Merge(color, arg.ColorOf())
	}
	var resultType *object.Type
	if ft := fn.Type(); ft != nil && ft.Kind == object.KindFunc {
		resultType = ft.Result
	}
	return &Call{Meta: Meta{Loc: re.Loc, StaticType: resultType, Color: color}, Func: fn, Args: args}, nil
}

// fieldType looks up a struct field's declared type; nil (unknown) if t
// isn't a struct or the field doesn't exist, surfaced as a runtime
// AttributeError by pkg/interp rather than rejected here — this analyzer
// does not re-implement full member-existence checking.
func fieldType(t *object.Type, name string) *object.Type {
	base := t
	if base != nil && base.Kind == object.KindPtr {
		base = base.Elem
	}
	if base == nil {
		return nil
	}
	if fl, ok := base.Field(name); ok {
		return fl.Type
	}
	return nil
}
