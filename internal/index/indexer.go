package index

import (
	"fmt"

	"github.com/woxQAQ/decaf-lsp/internal/position"
	"github.com/woxQAQ/decaf-lsp/internal/syntax"
	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

// Facts is everything the AST walk derives from one program.
type Facts struct {
	Symbols     []protocol.SymbolInformation
	Hovers      []protocol.Hover
	Definitions []protocol.DefinitionLink
}

type indexer struct {
	uri   string
	prog  *syntax.Program
	facts Facts
}

// IndexProgram walks prog depth-first in source order. Hovers and
// definition links come out in traversal order, which the range query
// relies on to break ties between overlapping ranges. Symbols come out in
// declaration order: each class, then its members as written.
func IndexProgram(uri string, prog *syntax.Program) Facts {
	ix := &indexer{uri: uri, prog: prog}
	for _, c := range prog.Classes {
		ix.class(c)
	}
	return ix.facts
}

func (ix *indexer) symbol(name string, kind protocol.SymbolKind, r protocol.Range, container string) {
	ix.facts.Symbols = append(ix.facts.Symbols, protocol.SymbolInformation{
		Name:          name,
		Kind:          kind,
		Location:      protocol.Location{URI: ix.uri, Range: r},
		ContainerName: container,
	})
}

func (ix *indexer) hover(r protocol.Range, format string, args ...any) {
	ix.facts.Hovers = append(ix.facts.Hovers, protocol.Hover{
		Range:    r,
		Contents: fmt.Sprintf(format, args...),
	})
}

// link records a definition link from use to the declaration id resolves to.
func (ix *indexer) link(use protocol.Range, id syntax.DeclID) {
	d := ix.prog.Decl(id)
	if d == nil {
		return
	}
	ix.facts.Definitions = append(ix.facts.Definitions, protocol.DefinitionLink{
		Use:  use,
		Decl: position.ToNamedRange(d.DeclLoc(), d.DeclName()),
	})
}

func (ix *indexer) class(c *syntax.ClassDef) {
	ix.symbol(c.Name, protocol.SymbolKindClass, position.ToRangeSpan(c.Loc, c.End), "")
	ix.hover(position.ToNamedRange(c.NameLoc, c.Name), "%s", c.Name)

	for _, f := range c.Fields {
		switch f := f.(type) {
		case *syntax.FuncDef:
			head := position.ToNamedRange(f.Loc, f.Name)
			ix.symbol(f.Name, protocol.SymbolKindMethod, head, c.Name)
			ix.hover(head, "%s: %s", f.Name, f.Ty)
			for _, p := range f.Params {
				ix.varDef(p)
			}
			ix.block(f.Body)
		case *syntax.VarDef:
			ix.symbol(f.Name, protocol.SymbolKindField, position.ToNamedRange(f.Loc, f.Name), c.Name)
			ix.varDef(f)
		}
	}
}

func (ix *indexer) varDef(v *syntax.VarDef) {
	ix.hover(position.ToNamedRange(v.Loc, v.Name), "%s: %s", v.Name, v.Ty)
}

func (ix *indexer) block(b *syntax.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		ix.stmt(s)
	}
}

func (ix *indexer) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.Assign:
		ix.expr(s.Dst)
		ix.expr(s.Src)
	case *syntax.LocalDecl:
		ix.varDef(s.Var)
		if s.Var.Init != nil {
			ix.expr(s.Var.Init)
		}
	case *syntax.ExprStmt:
		ix.expr(s.X)
	case *syntax.If:
		ix.expr(s.Cond)
		ix.block(s.Then)
		ix.block(s.Else)
	case *syntax.While:
		ix.expr(s.Cond)
		ix.block(s.Body)
	case *syntax.For:
		ix.stmt(s.Init)
		ix.expr(s.Cond)
		ix.stmt(s.Update)
		ix.block(s.Body)
	case *syntax.Return:
		if s.X != nil {
			ix.expr(s.X)
		}
	case *syntax.Print:
		for _, e := range s.Args {
			ix.expr(e)
		}
	case *syntax.Block:
		ix.block(s)
	}
}

func (ix *indexer) expr(e syntax.Expr) {
	switch e := e.(type) {
	case *syntax.VarSel:
		ix.varSel(e)
	case *syntax.IndexSel:
		ix.expr(e.Arr)
		ix.expr(e.Idx)
	case *syntax.Call:
		ix.varSel(e.Func)
		for _, a := range e.Args {
			ix.expr(a)
		}
	case *syntax.Unary:
		ix.expr(e.R)
	case *syntax.Binary:
		ix.expr(e.L)
		ix.expr(e.R)
	case *syntax.NewClass:
		ix.link(position.ToNamedRange(e.NameLoc, e.Name), e.Decl)
	case *syntax.NewArray:
		ix.expr(e.Len)
	}
}

func (ix *indexer) varSel(v *syntax.VarSel) {
	use := position.ToNamedRange(v.Loc, v.Name)
	ix.hover(use, "%s: %s", v.Name, v.Type())
	ix.link(use, v.Decl)
	if v.Owner != nil {
		ix.expr(v.Owner)
	}
}
