package typeck

import "github.com/woxQAQ/decaf-lsp/internal/syntax"

var opText = map[syntax.TokenKind]string{
	syntax.Plus:  "+",
	syntax.Minus: "-",
	syntax.Mul:   "*",
	syntax.Div:   "/",
	syntax.Mod:   "%",
	syntax.Eq:    "==",
	syntax.Ne:    "!=",
	syntax.Lt:    "<",
	syntax.Le:    "<=",
	syntax.Gt:    ">",
	syntax.Ge:    ">=",
	syntax.And:   "&&",
	syntax.Or:    "||",
	syntax.Not:   "!",
}

// expr infers, records and returns the type of e.
func (c *checker) expr(e syntax.Expr) *syntax.Ty {
	t := c.infer(e)
	e.SetType(t)
	return t
}

func (c *checker) infer(e syntax.Expr) *syntax.Ty {
	switch e := e.(type) {
	case *syntax.VarSel:
		return c.varSel(e)
	case *syntax.Call:
		return c.call(e)
	case *syntax.IndexSel:
		arr := c.expr(e.Arr)
		idx := c.expr(e.Idx)
		if idx != nil && !idx.Is(syntax.TyInt) {
			c.errs.Add(e.Idx.Pos(), "array subscript must be an integer")
		}
		if arr == nil {
			return nil
		}
		if !arr.IsArray() {
			c.errs.Add(e.Loc, "[] can only be applied to arrays")
			return nil
		}
		return arr.Elem()
	case *syntax.Unary:
		r := c.expr(e.R)
		want := syntax.IntTy
		if e.Op == syntax.Not {
			want = syntax.BoolTy
		}
		if r != nil && !r.Equal(want) {
			c.errs.Add(e.Loc, "incompatible operand: %s%s", opText[e.Op], r)
			return nil
		}
		return want
	case *syntax.Binary:
		return c.binary(e)
	case *syntax.IntLitExpr, *syntax.ReadIntExpr:
		return syntax.IntTy
	case *syntax.BoolLitExpr:
		return syntax.BoolTy
	case *syntax.StringLitExpr, *syntax.ReadLineExpr:
		return syntax.StringTy
	case *syntax.NullLit:
		return syntax.NullTy
	case *syntax.ThisExpr:
		if c.fn.Static {
			c.errs.Add(e.Loc, "can not use this in static function")
			return nil
		}
		return c.class.Ty
	case *syntax.NewClass:
		cls, ok := c.classes[e.Name]
		if !ok {
			c.errs.Add(e.NameLoc, "class '%s' not found", e.Name)
			return nil
		}
		e.Decl = cls.ID
		return cls.Ty
	case *syntax.NewArray:
		n := c.expr(e.Len)
		if n != nil && !n.Is(syntax.TyInt) {
			c.errs.Add(e.Len.Pos(), "new array length must be an integer")
		}
		elem := c.resolveType(e.Elem)
		if elem == nil {
			return nil
		}
		if elem.Is(syntax.TyVoid) {
			c.errs.Add(e.Elem.Loc, "array element type must be non-void known type")
			return nil
		}
		return syntax.ArrayOf(elem)
	}
	return nil
}

func (c *checker) binary(e *syntax.Binary) *syntax.Ty {
	l := c.expr(e.L)
	r := c.expr(e.R)
	if l == nil || r == nil {
		return nil
	}

	var ok bool
	var result *syntax.Ty
	switch e.Op {
	case syntax.Plus, syntax.Minus, syntax.Mul, syntax.Div, syntax.Mod:
		ok, result = l.Is(syntax.TyInt) && r.Is(syntax.TyInt), syntax.IntTy
	case syntax.Lt, syntax.Le, syntax.Gt, syntax.Ge:
		ok, result = l.Is(syntax.TyInt) && r.Is(syntax.TyInt), syntax.BoolTy
	case syntax.Eq, syntax.Ne:
		ok, result = c.assignable(l, r) || c.assignable(r, l), syntax.BoolTy
	case syntax.And, syntax.Or:
		ok, result = l.Is(syntax.TyBool) && r.Is(syntax.TyBool), syntax.BoolTy
	}
	if !ok {
		c.errs.Add(e.Loc, "incompatible operands: %s %s %s", l, opText[e.Op], r)
		return nil
	}
	return result
}

// lookupMember finds name among the members of class cls, inherited
// members included.
func (c *checker) lookupMember(cls, name string) (syntax.Decl, bool) {
	s, ok := c.members[cls]
	if !ok {
		return nil, false
	}
	return s.lookup(name)
}

func (c *checker) varSel(e *syntax.VarSel) *syntax.Ty {
	if e.Owner == nil {
		if d, ok := c.local.lookup(e.Name); ok {
			if _, isFn := d.(*syntax.FuncDef); isFn {
				e.Decl = declID(d)
				c.errs.Add(e.Loc, "method '%s' cannot be used as a value", e.Name)
				return d.DeclType()
			}
			e.Decl = declID(d)
			return d.DeclType()
		}
		if cls, ok := c.classes[e.Name]; ok {
			e.Decl = cls.ID
			return cls.Ty
		}
		c.errs.Add(e.Loc, "undeclared variable '%s'", e.Name)
		return nil
	}

	owner := c.expr(e.Owner)
	if owner == nil {
		return nil
	}
	if !owner.Is(syntax.TyClass) {
		c.errs.Add(e.Loc, "cannot access field '%s' from '%s'", e.Name, owner)
		return nil
	}
	d, ok := c.lookupMember(owner.Class, e.Name)
	if !ok {
		c.errs.Add(e.Loc, "field '%s' not found in '%s'", e.Name, owner)
		return nil
	}
	e.Decl = declID(d)
	return d.DeclType()
}

func (c *checker) call(e *syntax.Call) *syntax.Ty {
	fn, ret := c.callee(e)
	args := make([]*syntax.Ty, len(e.Args))
	for i, a := range e.Args {
		args[i] = c.expr(a)
	}
	if fn == nil {
		return ret
	}

	e.Func.Decl = fn.ID
	e.Func.SetType(fn.Ty)
	if fn.Ty == nil {
		return nil
	}
	if len(args) != len(fn.Ty.Params) {
		c.errs.Add(e.Loc, "function '%s' expects %d argument(s) but %d given",
			fn.Name, len(fn.Ty.Params), len(args))
		return fn.Ty.Ret
	}
	for i, a := range args {
		if !c.assignable(a, fn.Ty.Params[i]) {
			c.errs.Add(e.Args[i].Pos(), "incompatible argument %d: %s given, %s expected",
				i+1, a, fn.Ty.Params[i])
		}
	}
	return fn.Ty.Ret
}

// callee resolves the method a call targets. When there is no method (array
// length, or an error) it returns a nil method and the call's type.
func (c *checker) callee(e *syntax.Call) (*syntax.FuncDef, *syntax.Ty) {
	sel := e.Func
	var d syntax.Decl
	var ok bool
	var where string

	if sel.Owner == nil {
		d, ok = c.local.lookup(sel.Name)
		where = "class " + c.class.Name
	} else {
		owner := c.expr(sel.Owner)
		switch {
		case owner == nil:
			return nil, nil
		case owner.IsArray() && sel.Name == "length":
			if len(e.Args) != 0 {
				c.errs.Add(e.Loc, "function 'length' expects 0 argument(s) but %d given", len(e.Args))
			}
			sel.SetType(&syntax.Ty{Kind: syntax.TyFunc, Ret: syntax.IntTy})
			return nil, syntax.IntTy
		case !owner.Is(syntax.TyClass):
			c.errs.Add(sel.Loc, "cannot access field '%s' from '%s'", sel.Name, owner)
			return nil, nil
		}
		d, ok = c.lookupMember(owner.Class, sel.Name)
		where = owner.String()
	}

	if !ok {
		c.errs.Add(sel.Loc, "method '%s' not found in '%s'", sel.Name, where)
		return nil, nil
	}
	fn, isFn := d.(*syntax.FuncDef)
	if !isFn {
		sel.Decl = declID(d)
		c.errs.Add(sel.Loc, "'%s' is not a method", sel.Name)
		return nil, nil
	}
	return fn, nil
}
