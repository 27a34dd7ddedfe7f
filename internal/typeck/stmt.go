package typeck

import "github.com/woxQAQ/decaf-lsp/internal/syntax"

func (c *checker) block(b *syntax.Block) {
	if b == nil {
		return
	}
	outer := c.local
	c.local = newScope(outer)
	for _, s := range b.Stmts {
		c.stmt(s)
	}
	c.local = outer
}

func (c *checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.Block:
		c.block(s)
	case *syntax.LocalDecl:
		v := s.Var
		v.Ty = c.varType(v)
		if v.Init != nil {
			t := c.expr(v.Init)
			if !c.assignable(t, v.Ty) {
				c.errs.Add(v.Init.Pos(), "incompatible operands: %s = %s", v.Ty, t)
			}
		}
		c.declare(c.local, v)
	case *syntax.Assign:
		dst := c.expr(s.Dst)
		src := c.expr(s.Src)
		if sel, ok := s.Dst.(*syntax.VarSel); ok {
			if _, isFn := c.prog.Decl(sel.Decl).(*syntax.FuncDef); isFn {
				c.errs.Add(s.Loc, "cannot assign value to class member method '%s'", sel.Name)
				return
			}
		}
		if !c.assignable(src, dst) {
			c.errs.Add(s.Loc, "incompatible operands: %s = %s", dst, src)
		}
	case *syntax.ExprStmt:
		c.expr(s.X)
	case *syntax.If:
		c.cond(s.Cond)
		c.block(s.Then)
		c.block(s.Else)
	case *syntax.While:
		c.cond(s.Cond)
		c.loops++
		c.block(s.Body)
		c.loops--
	case *syntax.For:
		outer := c.local
		c.local = newScope(outer)
		c.stmt(s.Init)
		c.cond(s.Cond)
		c.stmt(s.Update)
		c.loops++
		c.block(s.Body)
		c.loops--
		c.local = outer
	case *syntax.Return:
		c.ret(s)
	case *syntax.Print:
		for i, arg := range s.Args {
			t := c.expr(arg)
			if t != nil && !t.Is(syntax.TyInt) && !t.Is(syntax.TyBool) && !t.Is(syntax.TyString) {
				c.errs.Add(arg.Pos(), "incompatible argument %d: %s given, int/bool/string expected", i+1, t)
			}
		}
	case *syntax.Break:
		if c.loops == 0 {
			c.errs.Add(s.Loc, "'break' is only allowed inside a loop")
		}
	case *syntax.Skip:
	}
}

func (c *checker) cond(e syntax.Expr) {
	t := c.expr(e)
	if t != nil && !t.Is(syntax.TyBool) {
		c.errs.Add(e.Pos(), "test expression must have bool type")
	}
}

func (c *checker) ret(s *syntax.Return) {
	var want *syntax.Ty
	if c.fn.Ty != nil {
		want = c.fn.Ty.Ret
	}
	if s.X == nil {
		if want != nil && !want.Is(syntax.TyVoid) {
			c.errs.Add(s.Loc, "missing return value, %s expected", want)
		}
		return
	}
	got := c.expr(s.X)
	if want.Is(syntax.TyVoid) {
		c.errs.Add(s.Loc, "void method cannot return a value")
		return
	}
	if !c.assignable(got, want) {
		c.errs.Add(s.Loc, "incompatible return: %s given, %s expected", got, want)
	}
}
