// Package typeck resolves names and infers types for a parsed Decaf program.
//
// Check annotates the tree in place: declarations get their Ty, expressions
// get their inferred type and every name use records the DeclID it resolved
// to. Nodes the checker cannot type keep a nil type, and errors do not stop
// the walk, so a program with type errors is still fully annotated wherever
// that is possible.
package typeck

import (
	"github.com/woxQAQ/decaf-lsp/internal/syntax"
)

type checker struct {
	prog    *syntax.Program
	classes map[string]*syntax.ClassDef
	members map[string]*scope
	parents map[string]*syntax.ClassDef
	errs    syntax.ErrorList

	class *syntax.ClassDef
	fn    *syntax.FuncDef
	local *scope
	loops int
}

// Check type-checks prog and returns the errors found, in source order of
// discovery. A nil list means the program is well typed.
func Check(prog *syntax.Program) syntax.ErrorList {
	c := &checker{
		prog:    prog,
		classes: make(map[string]*syntax.ClassDef),
		members: make(map[string]*scope),
		parents: make(map[string]*syntax.ClassDef),
	}

	c.collectClasses()
	c.linkParents()
	for _, cls := range prog.Classes {
		c.memberScope(cls)
	}
	for _, cls := range prog.Classes {
		c.checkClass(cls)
	}
	return c.errs
}

func (c *checker) collectClasses() {
	for _, cls := range c.prog.Classes {
		cls.Ty = syntax.ClassTy(cls.Name)
		if prev, ok := c.classes[cls.Name]; ok {
			c.errs.Add(cls.NameLoc, "class '%s' conflicts with earlier declaration at (%d,%d)",
				cls.Name, prev.NameLoc.Line, prev.NameLoc.Col)
			continue
		}
		c.classes[cls.Name] = cls
	}
}

// linkParents records each class's parent, dropping unknown parents and
// links that would close an inheritance cycle.
func (c *checker) linkParents() {
	for _, cls := range c.prog.Classes {
		if cls.Parent == "" || c.classes[cls.Name] != cls {
			continue
		}
		parent, ok := c.classes[cls.Parent]
		if !ok {
			c.errs.Add(cls.Loc, "class '%s' not found", cls.Parent)
			continue
		}
		if c.reaches(parent, cls) {
			c.errs.Add(cls.Loc, "illegal class inheritance (should be acyclic)")
			continue
		}
		c.parents[cls.Name] = parent
	}
}

func (c *checker) reaches(from, target *syntax.ClassDef) bool {
	for cur := from; cur != nil; cur = c.parents[cur.Name] {
		if cur == target {
			return true
		}
	}
	return false
}

func (c *checker) isSubclass(sub, super string) bool {
	for cur := c.classes[sub]; cur != nil; cur = c.parents[cur.Name] {
		if cur.Name == super {
			return true
		}
	}
	return false
}

// memberScope builds (once) the scope holding cls's fields and methods,
// chained to its parent's member scope.
func (c *checker) memberScope(cls *syntax.ClassDef) *scope {
	if s, ok := c.members[cls.Name]; ok {
		return s
	}
	var parent *scope
	if p, ok := c.parents[cls.Name]; ok {
		parent = c.memberScope(p)
	}
	s := newScope(parent)
	c.members[cls.Name] = s

	for _, f := range cls.Fields {
		switch f := f.(type) {
		case *syntax.VarDef:
			f.Ty = c.varType(f)
		case *syntax.FuncDef:
			ft := &syntax.Ty{Kind: syntax.TyFunc, Ret: c.resolveType(f.Ret)}
			for _, p := range f.Params {
				p.Ty = c.varType(p)
				ft.Params = append(ft.Params, p.Ty)
			}
			f.Ty = ft
		}
		c.declare(s, f)
	}
	return s
}

func (c *checker) declare(s *scope, d syntax.Decl) {
	if prev, ok := s.declare(d); !ok {
		loc := prev.DeclLoc()
		c.errs.Add(d.DeclLoc(), "declaration of '%s' here conflicts with earlier declaration at (%d,%d)",
			d.DeclName(), loc.Line, loc.Col)
	}
}

func (c *checker) resolveType(ref syntax.TypeRef) *syntax.Ty {
	var t *syntax.Ty
	switch ref.Base {
	case syntax.TyInt:
		t = syntax.IntTy
	case syntax.TyBool:
		t = syntax.BoolTy
	case syntax.TyString:
		t = syntax.StringTy
	case syntax.TyVoid:
		t = syntax.VoidTy
	case syntax.TyClass:
		if _, ok := c.classes[ref.Class]; !ok {
			c.errs.Add(ref.Loc, "class '%s' not found", ref.Class)
			return nil
		}
		t = syntax.ClassTy(ref.Class)
	}
	if ref.Dim > 0 && t.Kind == syntax.TyVoid {
		c.errs.Add(ref.Loc, "array element type must be non-void known type")
		return nil
	}
	for i := 0; i < ref.Dim; i++ {
		t = syntax.ArrayOf(t)
	}
	return t
}

func (c *checker) varType(v *syntax.VarDef) *syntax.Ty {
	t := c.resolveType(v.Type)
	if t.Is(syntax.TyVoid) {
		c.errs.Add(v.Loc, "cannot declare identifier '%s' as void type", v.Name)
		return nil
	}
	return t
}

func (c *checker) checkClass(cls *syntax.ClassDef) {
	if c.classes[cls.Name] != cls {
		return
	}
	c.class = cls
	for _, f := range cls.Fields {
		fn, ok := f.(*syntax.FuncDef)
		if !ok {
			continue
		}
		c.fn = fn
		c.local = newScope(c.members[cls.Name])
		for _, p := range fn.Params {
			c.declare(c.local, p)
		}
		c.block(fn.Body)
	}
	c.class, c.fn, c.local = nil, nil, nil
}

// declID returns the arena index of a declaration.
func declID(d syntax.Decl) syntax.DeclID {
	switch d := d.(type) {
	case *syntax.ClassDef:
		return d.ID
	case *syntax.FuncDef:
		return d.ID
	case *syntax.VarDef:
		return d.ID
	}
	return syntax.NoDecl
}

// assignable reports whether a value of type from may be stored in to.
// Unknown types are assignable both ways so one error does not cascade.
func (c *checker) assignable(from, to *syntax.Ty) bool {
	if from == nil || to == nil || from.Equal(to) {
		return true
	}
	if from.Is(syntax.TyNull) && to.Dim == 0 && to.Kind == syntax.TyClass {
		return true
	}
	if from.Is(syntax.TyClass) && to.Is(syntax.TyClass) {
		return c.isSubclass(from.Class, to.Class)
	}
	return false
}
